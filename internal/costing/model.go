// Package costing maintains the internal cost and profitability breakdown
// paired 1:1 with a quote: beverage inventory, overheads mirrored from the
// quote's lines, and derived totals.
package costing

import (
	"math"

	"github.com/boozeclub/backoffice/internal/pricing"
)

// Source tags where a breakdown item came from. Quote-derived tags prevent
// bundle revenue from being billed twice.
type Source string

const (
	SourceCustomLine    Source = "customLine"
	SourceQuoteClass    Source = "quoteDerivedClass"
	SourceQuoteBrunch   Source = "quoteDerivedBrunch"
	SourceQuoteGuestFee Source = "quoteDerivedGuestFee"
)

// Item is one beverage row: quantity is continuous (fractional bottles are
// allowed), cost is the internal unit cost, customer price the unit sell
// price ex VAT.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Qty           float64 `json:"qty"`
	Cost          float64 `json:"cost"`
	CustomerPrice float64 `json:"customerPrice"`
	Source        Source  `json:"source,omitempty"`
}

// BottleCounts is the source of truth for wine quantities; glass counts are
// derived from it, never edited directly.
type BottleCounts struct {
	Red   float64 `json:"red"`
	White float64 `json:"white"`
}

// Wines groups the wine breakdown with its bottle-to-glass derivation
// parameters.
type Wines struct {
	BottleCounts     *BottleCounts `json:"bottleCounts,omitempty"`
	GlassesPerBottle float64       `json:"glassesPerBottle"`
	BottleCost       float64       `json:"bottleCost"`
	Red              []Item        `json:"red"`
	White            []Item        `json:"white"`
}

// Overheads are the non-beverage internal costs. When the parent quote has
// staff or petrol lines these mirror the quote and are not independently
// editable.
type Overheads struct {
	StaffWages  float64 `json:"staffWages"`
	StaffTravel float64 `json:"staffTravel"`
	Petrol      float64 `json:"petrol"`
	VATRate     float64 `json:"vatRate"`
}

// Totals are derived from the rest of the record and recomputed after every
// mutation.
type Totals struct {
	InternalCost  float64 `json:"internalCost"`
	CustomerTotal float64 `json:"customerTotal"`
	Profit        float64 `json:"profit"`
	MarginPct     float64 `json:"marginPct"`
	VATAmount     float64 `json:"vatAmount"`
}

// Data is the full costing record for one quote.
type Data struct {
	QuoteID   string    `json:"quoteId"`
	Beers     []Item    `json:"beers"`
	Cocktails []Item    `json:"cocktails"`
	Wines     Wines     `json:"wines"`
	Extras    []Item    `json:"extras"`
	Overheads Overheads `json:"overheads"`
	Totals    Totals    `json:"totals"`
}

// QuoteContext is the slice of a quote the costing layer needs. It avoids a
// dependency on the quotes package.
type QuoteContext struct {
	ID       string
	Lines    []pricing.Line
	VAT      pricing.VAT
	Currency string
	FXRate   float64
}

// Convert applies the quote's currency to a preset price expressed in the
// base currency. EUR quotes pass through; GBP quotes multiply by the rate.
func (q QuoteContext) Convert(v float64) float64 {
	if q.Currency == "GBP" && q.FXRate > 0 {
		return v * q.FXRate
	}
	return v
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10000) / 10000
}

func clampQty(v float64) float64 {
	return math.Max(0, round4(v))
}

func normalizeItem(it Item) Item {
	it.Qty = clampQty(it.Qty)
	it.Cost = round4(it.Cost)
	it.CustomerPrice = round4(it.CustomerPrice)
	return it
}
