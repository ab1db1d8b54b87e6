package costing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boozeclub/backoffice/internal/pricing"
	"github.com/boozeclub/backoffice/internal/settings"
)

func sampleData() Data {
	return Data{
		QuoteID: "q-1",
		Beers:   []Item{{ID: "coors", Name: "Coors Light (bottle)", Qty: 12, Cost: 0.62, CustomerPrice: 3}},
		Cocktails: []Item{
			{ID: "ct-0", Name: "Pornstar Martini", Qty: 8, Cost: 2.95, CustomerPrice: 10},
		},
		Wines: Wines{
			BottleCounts:     &BottleCounts{Red: 2, White: 1.5},
			GlassesPerBottle: 4,
			BottleCost:       10,
			Red:              []Item{{ID: "wine-red", Name: "Red Wine (glass)", Cost: 2.5, CustomerPrice: 8}},
			White:            []Item{{ID: "wine-white", Name: "White Wine (glass)", Cost: 2.5, CustomerPrice: 8}},
		},
		Extras:    []Item{{ID: "x-1", Name: "Mixers", Qty: 3, Cost: 1.2, CustomerPrice: 2.5}},
		Overheads: Overheads{StaffWages: 100, VATRate: 23},
	}
}

func TestNormalizeWineGlassInvariant(t *testing.T) {
	got := Normalize(sampleData())

	require.NotNil(t, got.Wines.BottleCounts)
	assert.InDelta(t, 8.0, got.Wines.Red[0].Qty, 0.0001)   // 2 bottles * 4 glasses
	assert.InDelta(t, 6.0, got.Wines.White[0].Qty, 0.0001) // 1.5 bottles * 4 glasses
}

func TestNormalizeDerivesBottleCountsOnce(t *testing.T) {
	d := sampleData()
	d.Wines.BottleCounts = nil
	d.Wines.Red[0].Qty = 10 // 2.5 bottles at 4 glasses per bottle

	got := Normalize(d)
	require.NotNil(t, got.Wines.BottleCounts)
	assert.InDelta(t, 2.5, got.Wines.BottleCounts.Red, 0.001)
	assert.InDelta(t, 10.0, got.Wines.Red[0].Qty, 0.001)
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(sampleData())
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeClampsAndRounds(t *testing.T) {
	d := sampleData()
	d.Cocktails[0].Qty = -3
	d.Extras[0].Cost = 1.23456
	d.Extras[0].Qty = math.NaN()
	d.Beers[0].Qty = -1

	got := Normalize(d)
	assert.Equal(t, 0.0, got.Cocktails[0].Qty)
	assert.Equal(t, 1.2346, got.Extras[0].Cost)
	assert.Equal(t, 0.0, got.Extras[0].Qty)
	assert.Equal(t, 0.0, got.Beers[0].Qty)
}

func TestNormalizePreservesExactBeerQty(t *testing.T) {
	d := sampleData()
	d.Beers[0].Qty = 17.00001 // typed value survives, unlike 4dp-rounded sections
	got := Normalize(d)
	assert.Equal(t, 17.00001, got.Beers[0].Qty)
}

func TestNormalizeRecomputesTotals(t *testing.T) {
	d := sampleData()
	d.Totals = Totals{InternalCost: 9999} // stale stored totals are discarded
	got := Normalize(d)
	assert.Equal(t, Calculate(got), got.Totals)
	assert.NotEqual(t, 9999.0, got.Totals.InternalCost)
}

func quoteCtx(lines ...pricing.Line) QuoteContext {
	return QuoteContext{
		ID:       "q-1",
		Lines:    lines,
		VAT:      pricing.VAT{Enabled: true, Rate: 23},
		Currency: "EUR",
	}
}

func TestOverheadsFromQuote(t *testing.T) {
	q := quoteCtx(
		pricing.Line{Kind: pricing.KindStaffWork, HourlyRate: 25, Hours: 6},
		pricing.Line{Kind: pricing.KindStaffTravel, HourlyRate: 15, Hours: 2},
		pricing.Line{Kind: pricing.KindPetrol, Model: pricing.PetrolModelMPG, Miles: 100, MPG: 35, PricePerLitre: 1.75},
		pricing.Line{Kind: pricing.KindPackage, UnitPrice: 650, Qty: 1},
	)
	got := OverheadsFromQuote(q)

	assert.InDelta(t, 150.0, got.StaffWages, 0.001)
	assert.InDelta(t, 30.0, got.StaffTravel, 0.001)
	assert.InDelta(t, 22.73, got.Petrol, 0.005)
	assert.Equal(t, 23.0, got.VATRate)
}

func TestOverheadsVATDisabled(t *testing.T) {
	q := quoteCtx()
	q.VAT.Enabled = false
	assert.Equal(t, 0.0, OverheadsFromQuote(q).VATRate)
}

func TestExtrasFromQuote(t *testing.T) {
	q := quoteCtx(
		pricing.Line{Kind: pricing.KindClass, Tier: "Luxury", PricePerGuest: 30, Guests: 12},
		pricing.Line{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1},
		pricing.Line{Kind: pricing.KindGuestFee, PricePerGuest: 9.5, Guests: 40},
	)
	got := ExtrasFromQuote(q, settings.Defaults())

	require.Len(t, got, 3)
	assert.Equal(t, SourceQuoteClass, got[0].Source)
	assert.Equal(t, "Luxury", got[0].Name)
	assert.InDelta(t, 7.4, got[0].Cost, 0.001) // settings luxury per head
	assert.Equal(t, 12.0, got[0].Qty)

	assert.Equal(t, SourceCustomLine, got[1].Source)
	assert.Equal(t, 300.0, got[1].CustomerPrice)

	assert.Equal(t, SourceQuoteGuestFee, got[2].Source)
	assert.Equal(t, "Custom Package", got[2].Name)
}

func TestExtrasFromQuoteNumbersWithinCategory(t *testing.T) {
	q := quoteCtx(
		pricing.Line{Kind: pricing.KindPackage, Name: "Lily", UnitPrice: 650, Qty: 1},
		pricing.Line{Kind: pricing.KindClass, Tier: "Classic", PricePerGuest: 25, Guests: 10},
		pricing.Line{Kind: pricing.KindStaffWork, HourlyRate: 25, Hours: 4},
		pricing.Line{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1},
		pricing.Line{Kind: pricing.KindCustom, Description: "Glass hire", UnitPrice: 80, Qty: 1},
	)
	got := ExtrasFromQuote(q, settings.Defaults())

	require.Len(t, got, 3)
	assert.Equal(t, "quote-class-0", got[0].ID)
	assert.Equal(t, "quote-line-0", got[1].ID)
	assert.Equal(t, "quote-line-1", got[2].ID)
}

func TestMergeExtrasSumsIdenticalRows(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "Spirits", Qty: 1, CustomerPrice: 300, Source: SourceCustomLine},
		{ID: "b", Name: "Spirits", Qty: 1, CustomerPrice: 300, Source: SourceCustomLine},
		{ID: "c", Name: "Spirits", Qty: 1, CustomerPrice: 250, Source: SourceCustomLine},
	}
	got := MergeExtras(items)

	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Qty)
	assert.Equal(t, 1.0, got[1].Qty)
}

func TestSignatureStable(t *testing.T) {
	a := []Item{{ID: "x", Name: "Spirits", Qty: 2, CustomerPrice: 300, Source: SourceCustomLine}}
	b := []Item{{ID: "different-id", Name: "Spirits", Qty: 2, CustomerPrice: 300, Source: SourceCustomLine}}
	c := []Item{{ID: "x", Name: "Spirits", Qty: 3, CustomerPrice: 300, Source: SourceCustomLine}}

	assert.Equal(t, Signature(a), Signature(b)) // ids do not participate
	assert.NotEqual(t, Signature(a), Signature(c))
}

func TestDefaultData(t *testing.T) {
	q := quoteCtx(pricing.Line{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1})
	got := DefaultData(q, settings.Defaults())

	require.Len(t, got.Beers, 4)
	assert.Equal(t, 4.0, got.Beers[0].CustomerPrice)
	assert.Empty(t, got.Cocktails)
	require.Len(t, got.Wines.Red, 1)
	assert.InDelta(t, 2.5, got.Wines.Red[0].Cost, 0.001) // 10 bottle / 4 glasses
	require.Len(t, got.Extras, 1)
	assert.Equal(t, 23.0, got.Overheads.VATRate)
}

func TestDefaultDataGBPConversion(t *testing.T) {
	q := quoteCtx()
	q.Currency = "GBP"
	q.FXRate = 0.85
	got := DefaultData(q, settings.Defaults())

	assert.InDelta(t, 4.0*0.85, got.Beers[0].CustomerPrice, 0.001)
	assert.InDelta(t, 10*0.85, got.Wines.BottleCost, 0.001)
}

func TestApplyDefaultsRemovesGhostPresetRows(t *testing.T) {
	d := sampleData()
	d.Cocktails = []Item{
		{ID: "ct-0", Name: "Pornstar Martini", Qty: 0, Cost: 2.95, CustomerPrice: 10}, // ghost preset
		{ID: "ct-1", Name: "Espresso Martini", Qty: 4, Cost: 2.7, CustomerPrice: 10},  // in use
		{ID: "custom-9", Name: "House special", Qty: 0, Cost: 3, CustomerPrice: 12},   // user row
	}
	got := ApplyDefaults(d, quoteCtx(), settings.Defaults())

	require.Len(t, got.Cocktails, 2)
	assert.Equal(t, "Espresso Martini", got.Cocktails[0].Name)
	assert.Equal(t, "House special", got.Cocktails[1].Name)
}

func TestApplyDefaultsKeepsRenamedZeroQtyPresetRow(t *testing.T) {
	d := sampleData()
	d.Cocktails = []Item{
		{ID: "ct-0", Name: "My House Special", Qty: 0, Cost: 2.95, CustomerPrice: 10},
	}
	got := ApplyDefaults(d, quoteCtx(), settings.Defaults())

	require.Len(t, got.Cocktails, 1)
	assert.Equal(t, "My House Special", got.Cocktails[0].Name)
	assert.Equal(t, 10.0, got.Cocktails[0].CustomerPrice)
}

func TestApplyDefaultsKeepsPriceCustomizedZeroQtyPresetRow(t *testing.T) {
	d := sampleData()
	d.Cocktails = []Item{
		{ID: "ct-0", Name: "Pornstar Martini", Qty: 0, Cost: 9.99, CustomerPrice: 15},
	}
	got := ApplyDefaults(d, quoteCtx(), settings.Defaults())

	require.Len(t, got.Cocktails, 1)
	assert.Equal(t, 9.99, got.Cocktails[0].Cost)
	// The customer price overwrite still applies to surviving rows.
	assert.Equal(t, 10.0, got.Cocktails[0].CustomerPrice)
}

func TestApplyDefaultsPushesSettingsPrices(t *testing.T) {
	s := settings.Defaults()
	s.CostTables.Cocktail.CustomerPrice = 9.5
	s.CostTables.Beer.CustomerPrice = 3.75

	d := sampleData()
	got := ApplyDefaults(d, quoteCtx(), s)

	assert.Equal(t, 9.5, got.Cocktails[0].CustomerPrice)
	assert.Equal(t, 3.75, got.Beers[0].CustomerPrice)
	assert.InDelta(t, 2.5, got.Wines.Red[0].Cost, 0.001)
	assert.Equal(t, 8.0, got.Wines.Red[0].CustomerPrice)
}
