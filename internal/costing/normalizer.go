package costing

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/boozeclub/backoffice/internal/pricing"
	"github.com/boozeclub/backoffice/internal/settings"
)

// Normalize enforces cross-field consistency and re-derives totals. It runs
// after every mutation and is idempotent, so callers may apply it to its own
// output freely. Steps, in order:
//
//  1. wine glass quantities are set to bottleCounts × glassesPerBottle
//     (bottleCounts is derived once from existing glasses when absent, and is
//     authoritative thereafter);
//  2. beverage quantities are clamped to ≥0 and prices rounded to 4 decimals,
//     except beer bottle counts which keep the exact typed value;
//  3. totals are recomputed from scratch.
func Normalize(d Data) Data {
	out := d

	perBottle := d.Wines.GlassesPerBottle
	if perBottle <= 0 {
		perBottle = 1
	}

	counts := BottleCounts{}
	if d.Wines.BottleCounts != nil {
		counts = *d.Wines.BottleCounts
	} else {
		counts.Red = deriveBottleCount(d.Wines.Red, perBottle)
		counts.White = deriveBottleCount(d.Wines.White, perBottle)
	}
	counts.Red = math.Max(0, round2(counts.Red))
	counts.White = math.Max(0, round2(counts.White))

	out.Wines.BottleCounts = &counts
	out.Wines.Red = applyBottleCount(d.Wines.Red, counts.Red, perBottle)
	out.Wines.White = applyBottleCount(d.Wines.White, counts.White, perBottle)

	out.Beers = make([]Item, len(d.Beers))
	for i, b := range d.Beers {
		// Bottle counts stay exactly as typed; only prices are rounded.
		if math.IsNaN(b.Qty) || math.IsInf(b.Qty, 0) || b.Qty < 0 {
			b.Qty = 0
		}
		b.Cost = round4(b.Cost)
		b.CustomerPrice = round4(b.CustomerPrice)
		out.Beers[i] = b
	}

	out.Cocktails = make([]Item, len(d.Cocktails))
	for i, c := range d.Cocktails {
		out.Cocktails[i] = normalizeItem(c)
	}
	out.Extras = make([]Item, len(d.Extras))
	for i, e := range d.Extras {
		out.Extras[i] = normalizeItem(e)
	}

	out.Totals = Calculate(out)
	return out
}

func deriveBottleCount(items []Item, perBottle float64) float64 {
	if len(items) == 0 || perBottle <= 0 {
		return 0
	}
	return round2(items[0].Qty / perBottle)
}

func applyBottleCount(items []Item, bottles, perBottle float64) []Item {
	glasses := round4(bottles * perBottle)
	out := make([]Item, len(items))
	for i, it := range items {
		it.Qty = glasses
		out[i] = it
	}
	return out
}

// OverheadsFromQuote mirrors staff and fuel overheads from the quote's own
// lines. These fields are not an independent source of truth when the quote
// carries corresponding lines.
func OverheadsFromQuote(q QuoteContext) Overheads {
	sumKind := func(kind pricing.Kind) float64 {
		var total float64
		for _, l := range q.Lines {
			if l.Kind == kind {
				total += l.Amount()
			}
		}
		return round2(total)
	}
	var vatRate float64
	if q.VAT.Enabled {
		vatRate = q.VAT.Rate
	}
	return Overheads{
		StaffWages:  sumKind(pricing.KindStaffWork),
		StaffTravel: sumKind(pricing.KindStaffTravel),
		Petrol:      sumKind(pricing.KindPetrol),
		VATRate:     vatRate,
	}
}

// ExtrasFromQuote regenerates the quote-derived extras rows from the quote's
// current custom, class, brunch and guest-fee lines, merged so identical rows
// sum their quantities.
func ExtrasFromQuote(q QuoteContext, s settings.Settings) []Item {
	classCost := map[string]float64{
		"Classic":  q.Convert(s.ClassPricing.ClassicPerHead),
		"Luxury":   q.Convert(s.ClassPricing.LuxuryPerHead),
		"Ultimate": q.Convert(s.ClassPricing.UltimatePerHead),
	}

	// IDs number within each category so inserting unrelated lines does not
	// shift them.
	counts := map[string]int{}
	next := func(prefix string) string {
		id := prefix + strconv.Itoa(counts[prefix])
		counts[prefix]++
		return id
	}

	var items []Item
	for _, line := range q.Lines {
		switch line.Kind {
		case pricing.KindClass:
			items = append(items, Item{
				ID:            next("quote-class-"),
				Name:          line.Tier,
				Qty:           line.Guests,
				Cost:          classCost[line.Tier],
				CustomerPrice: line.PricePerGuest,
				Source:        SourceQuoteClass,
			})
		case pricing.KindBoozyBrunch:
			items = append(items, Item{
				ID:            next("quote-brunch-"),
				Name:          "Boozy Brunch",
				Qty:           line.Guests,
				CustomerPrice: line.PricePerGuest,
				Source:        SourceQuoteBrunch,
			})
		case pricing.KindGuestFee:
			items = append(items, Item{
				ID:            next("quote-guestfee-"),
				Name:          "Custom Package",
				Qty:           line.Guests,
				CustomerPrice: line.PricePerGuest,
				Source:        SourceQuoteGuestFee,
			})
		case pricing.KindCustom:
			name := line.Description
			if name == "" {
				name = "Custom item"
			}
			items = append(items, Item{
				ID:            next("quote-line-"),
				Name:          name,
				Qty:           line.Qty,
				Cost:          line.OwnerCost,
				CustomerPrice: line.UnitPrice,
				Source:        SourceCustomLine,
			})
		}
	}
	return MergeExtras(items)
}

// MergeExtras groups items by source|name|cost|customerPrice and sums their
// quantities, preserving first-seen order.
func MergeExtras(items []Item) []Item {
	type key struct {
		source        Source
		name          string
		cost          float64
		customerPrice float64
	}
	index := make(map[key]int)
	var merged []Item
	for _, it := range items {
		k := key{it.Source, it.Name, it.Cost, it.CustomerPrice}
		if pos, ok := index[k]; ok {
			merged[pos].Qty += it.Qty
			continue
		}
		index[k] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// Signature is a stable serialization of the identity-bearing fields of an
// extras collection. Derived extras are replaced wholesale when the signature
// changes; comparing serializations avoids false positives from fresh slices.
func Signature(items []Item) string {
	type sig struct {
		Name          string  `json:"name"`
		Qty           float64 `json:"qty"`
		Cost          float64 `json:"cost"`
		CustomerPrice float64 `json:"customerPrice"`
		Source        Source  `json:"source,omitempty"`
	}
	sigs := make([]sig, len(items))
	for i, it := range items {
		sigs[i] = sig{it.Name, it.Qty, it.Cost, it.CustomerPrice, it.Source}
	}
	raw, _ := json.Marshal(sigs)
	return string(raw)
}

// DefaultData builds the costing record created lazily on first access:
// preset beers at settings prices, no cocktails, one glass row per wine
// colour, extras derived from the quote, zero overheads. Currency conversion
// of preset prices follows the quote.
func DefaultData(q QuoteContext, s settings.Settings) Data {
	perBottle := s.CostTables.Wine.GlassesPerBottle
	if perBottle <= 0 {
		perBottle = 4
	}
	bottleCost := q.Convert(s.CostTables.Wine.BottleCost)
	if bottleCost <= 0 {
		bottleCost = q.Convert(10)
	}
	costPerGlass := bottleCost / perBottle
	wineCustomer := q.Convert(s.CostTables.Wine.CustomerPricePerGlass)

	var vatRate float64
	if q.VAT.Enabled {
		vatRate = q.VAT.Rate
	}

	return Data{
		QuoteID:   q.ID,
		Beers:     defaultBeers(q, s),
		Cocktails: []Item{},
		Wines: Wines{
			BottleCounts:     &BottleCounts{},
			GlassesPerBottle: perBottle,
			BottleCost:       bottleCost,
			Red:              []Item{defaultWineItem("red", costPerGlass, wineCustomer)},
			White:            []Item{defaultWineItem("white", costPerGlass, wineCustomer)},
		},
		Extras:    ExtrasFromQuote(q, s),
		Overheads: Overheads{VATRate: vatRate},
	}
}

// ApplyDefaults pushes the settings price tables into the record. This is an
// explicit operation, never run implicitly by Normalize. Zero-quantity
// cocktail rows that are still untouched presets (same name, same cost) are
// removed so unused stock does not linger as ghost inventory; renamed,
// price-customized, custom, or nonzero rows always survive.
func ApplyDefaults(d Data, q QuoteContext, s settings.Settings) Data {
	out := d

	beerPrice := q.Convert(s.CostTables.Beer.CustomerPrice)
	out.Beers = make([]Item, len(d.Beers))
	for i, b := range d.Beers {
		b.CustomerPrice = beerPrice
		out.Beers[i] = b
	}

	cocktailPrice := q.Convert(s.CostTables.Cocktail.CustomerPrice)
	out.Cocktails = nil
	for _, c := range d.Cocktails {
		if p, ok := cocktailPresetByID(c.ID); ok && c.Qty == 0 && c.Name == p.Name && c.Cost == p.Cost {
			continue
		}
		c.CustomerPrice = cocktailPrice
		out.Cocktails = append(out.Cocktails, c)
	}

	wine := s.CostTables.Wine
	perBottle := wine.GlassesPerBottle
	if perBottle <= 0 {
		perBottle = 1
	}
	bottleCost := q.Convert(wine.BottleCost)
	costPerGlass := bottleCost / perBottle
	winePrice := q.Convert(wine.CustomerPricePerGlass)

	out.Wines.GlassesPerBottle = perBottle
	out.Wines.BottleCost = bottleCost
	out.Wines.Red = applyWineDefaults(d.Wines.Red, costPerGlass, winePrice)
	out.Wines.White = applyWineDefaults(d.Wines.White, costPerGlass, winePrice)

	return Normalize(out)
}

func applyWineDefaults(items []Item, costPerGlass, customerPrice float64) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Cost = costPerGlass
		it.CustomerPrice = customerPrice
		out[i] = it
	}
	return out
}

