package costing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
	"github.com/boozeclub/backoffice/internal/settings"
)

// ErrNotFound indicates no costing record exists for the quote.
var ErrNotFound = fmt.Errorf("costing: %w", httpx.ErrNotFound)

// Repository persists costing records keyed by quote id.
type Repository interface {
	Get(ctx context.Context, quoteID string) (*Data, error)
	Upsert(ctx context.Context, d Data) error
}

// QuoteSource resolves the pricing context of a quote.
type QuoteSource interface {
	QuoteContext(ctx context.Context, id string) (QuoteContext, error)
}

// SettingsSource loads the current business settings.
type SettingsSource interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// Service owns the costing lifecycle: lazy creation, normalization after
// every edit, and mirroring of quote-driven fields.
type Service struct {
	repo     Repository
	quotes   QuoteSource
	settings SettingsSource
	logger   *slog.Logger
}

// NewService constructs a service.
func NewService(repo Repository, quotes QuoteSource, settings SettingsSource, logger *slog.Logger) *Service {
	return &Service{repo: repo, quotes: quotes, settings: settings, logger: logger}
}

// Stored returns the persisted record without creating one or refreshing it
// from the quote. Callers that need the maintained view use ForQuote.
func (s *Service) Stored(ctx context.Context, quoteID string) (*Data, error) {
	return s.repo.Get(ctx, quoteID)
}

// ForQuote returns the costing record for a quote, creating it from defaults
// on first access. Overheads and quote-derived extras are refreshed from the
// quote's current lines before the record is returned.
func (s *Service) ForQuote(ctx context.Context, quoteID string) (*Data, error) {
	q, err := s.quotes.QuoteContext(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("resolve quote: %w", err)
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var data Data
	stored, err := s.repo.Get(ctx, quoteID)
	switch {
	case err == nil:
		data = *stored
	case errors.Is(err, ErrNotFound):
		data = DefaultData(q, cfg)
	default:
		return nil, fmt.Errorf("get costing: %w", err)
	}

	data = s.refresh(data, q, cfg)
	if err := s.repo.Upsert(ctx, data); err != nil {
		return nil, fmt.Errorf("store costing: %w", err)
	}
	return &data, nil
}

// Update stores an edited record. Quote-mirrored fields are re-imposed so an
// edit can never desynchronize the record from its quote, and the record is
// normalized before persistence.
func (s *Service) Update(ctx context.Context, quoteID string, data Data) (*Data, error) {
	q, err := s.quotes.QuoteContext(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("resolve quote: %w", err)
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	data.QuoteID = quoteID
	data = s.refresh(data, q, cfg)
	if err := s.repo.Upsert(ctx, data); err != nil {
		return nil, fmt.Errorf("store costing: %w", err)
	}
	return &data, nil
}

// ApplyDefaults pushes the settings price tables into an existing record.
// This is the explicit settings-propagation operation; it is never run as a
// side effect of Update.
func (s *Service) ApplyDefaults(ctx context.Context, quoteID string) (*Data, error) {
	current, err := s.ForQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	q, err := s.quotes.QuoteContext(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("resolve quote: %w", err)
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	data := ApplyDefaults(*current, q, cfg)
	if err := s.repo.Upsert(ctx, data); err != nil {
		return nil, fmt.Errorf("store costing: %w", err)
	}
	return &data, nil
}

// refresh imposes the quote-mirrored fields and normalizes. Derived extras
// are replaced wholesale when their signature changed, keeping user-added
// rows (no source tag) intact.
func (s *Service) refresh(data Data, q QuoteContext, cfg settings.Settings) Data {
	// Quote lines are authoritative for all three overheads and the VAT rate.
	data.Overheads = OverheadsFromQuote(q)

	derived := ExtrasFromQuote(q, cfg)
	var currentDerived, userAdded []Item
	for _, it := range data.Extras {
		if it.Source == "" {
			userAdded = append(userAdded, it)
		} else {
			currentDerived = append(currentDerived, it)
		}
	}
	if Signature(currentDerived) != Signature(derived) {
		data.Extras = MergeExtras(append(derived, userAdded...))
	}

	return Normalize(data)
}
