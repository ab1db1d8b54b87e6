package costing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boozeclub/backoffice/internal/pricing"
	"github.com/boozeclub/backoffice/internal/settings"
)

type mockRepo struct {
	records map[string]Data
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]Data)}
}

func (m *mockRepo) Get(_ context.Context, quoteID string) (*Data, error) {
	d, ok := m.records[quoteID]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *mockRepo) Upsert(_ context.Context, d Data) error {
	m.records[d.QuoteID] = d
	return nil
}

type mockQuotes struct {
	contexts map[string]QuoteContext
}

func (m *mockQuotes) QuoteContext(_ context.Context, id string) (QuoteContext, error) {
	q, ok := m.contexts[id]
	if !ok {
		return QuoteContext{}, ErrNotFound
	}
	return q, nil
}

type mockSettings struct {
	cfg settings.Settings
}

func (m *mockSettings) Load(_ context.Context) (settings.Settings, error) {
	return m.cfg, nil
}

func newTestService(q QuoteContext) (*Service, *mockRepo) {
	repo := newMockRepo()
	quotes := &mockQuotes{contexts: map[string]QuoteContext{q.ID: q}}
	svc := NewService(repo, quotes, &mockSettings{cfg: settings.Defaults()}, slog.Default())
	return svc, repo
}

func TestForQuoteCreatesLazily(t *testing.T) {
	q := quoteCtx(pricing.Line{Kind: pricing.KindStaffWork, HourlyRate: 25, Hours: 4})
	svc, repo := newTestService(q)

	data, err := svc.ForQuote(context.Background(), "q-1")
	require.NoError(t, err)

	assert.Equal(t, "q-1", data.QuoteID)
	assert.InDelta(t, 100.0, data.Overheads.StaffWages, 0.001)
	assert.Len(t, data.Beers, 4)

	// The lazily created record is persisted.
	_, ok := repo.records["q-1"]
	assert.True(t, ok)
}

func TestForQuoteMirrorsOverheadsOnEveryAccess(t *testing.T) {
	q := quoteCtx(pricing.Line{Kind: pricing.KindStaffWork, HourlyRate: 25, Hours: 4})
	svc, repo := newTestService(q)

	_, err := svc.ForQuote(context.Background(), "q-1")
	require.NoError(t, err)

	// Tamper with the stored overheads; the next read re-imposes the quote.
	stored := repo.records["q-1"]
	stored.Overheads.StaffWages = 1
	stored.Overheads.Petrol = 999
	repo.records["q-1"] = stored

	data, err := svc.ForQuote(context.Background(), "q-1")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, data.Overheads.StaffWages, 0.001)
	assert.Equal(t, 0.0, data.Overheads.Petrol)
}

func TestUpdateNormalizesBeforePersist(t *testing.T) {
	q := quoteCtx()
	svc, repo := newTestService(q)

	edited := sampleData()
	edited.Cocktails[0].Qty = -5
	edited.Totals = Totals{CustomerTotal: 12345}

	data, err := svc.Update(context.Background(), "q-1", edited)
	require.NoError(t, err)

	assert.Equal(t, 0.0, data.Cocktails[0].Qty)
	assert.Equal(t, Calculate(*data), data.Totals)
	assert.Equal(t, *data, repo.records["q-1"])
}

func TestRefreshReplacesDerivedExtrasKeepsUserRows(t *testing.T) {
	q := quoteCtx(pricing.Line{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1})
	svc, _ := newTestService(q)

	first, err := svc.ForQuote(context.Background(), "q-1")
	require.NoError(t, err)
	require.Len(t, first.Extras, 1)

	// User adds an untagged row, then the quote's custom line changes.
	edited := *first
	edited.Extras = append(edited.Extras, Item{ID: "user-1", Name: "Ice delivery", Qty: 1, Cost: 5, CustomerPrice: 15})
	_, err = svc.Update(context.Background(), "q-1", edited)
	require.NoError(t, err)

	svc.quotes.(*mockQuotes).contexts["q-1"] = quoteCtx(
		pricing.Line{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 350, Qty: 2},
	)

	data, err := svc.ForQuote(context.Background(), "q-1")
	require.NoError(t, err)

	require.Len(t, data.Extras, 2)
	assert.Equal(t, 350.0, data.Extras[0].CustomerPrice)
	assert.Equal(t, 2.0, data.Extras[0].Qty)
	assert.Equal(t, "Ice delivery", data.Extras[1].Name)
}

func TestApplyDefaultsService(t *testing.T) {
	q := quoteCtx()
	svc, repo := newTestService(q)

	seed := sampleData()
	seed.Cocktails = []Item{{ID: "ct-0", Name: "Pornstar Martini", Qty: 0, Cost: 2.95, CustomerPrice: 10}}
	require.NoError(t, repo.Upsert(context.Background(), seed))

	data, err := svc.ApplyDefaults(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Empty(t, data.Cocktails) // ghost preset row removed
	assert.Equal(t, settings.Defaults().CostTables.Beer.CustomerPrice, data.Beers[0].CustomerPrice)
}
