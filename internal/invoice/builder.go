// Package invoice projects a quote's lines and its costing breakdown into
// the ordered line list shown on customer and owner documents. The customer
// view hides internal lines and applies the bundling rule; the owner view
// shows everything for profitability tracking.
package invoice

import (
	"strconv"
	"strings"

	"github.com/boozeclub/backoffice/internal/costing"
	"github.com/boozeclub/backoffice/internal/pricing"
)

// Line is one row on a rendered invoice. A non-visible line shows its
// description with a blank amount.
type Line struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Visible     bool    `json:"visible"`
}

// Options controls which view of the quote is built.
type Options struct {
	// Costing, when set, contributes beverage revenue lines.
	Costing *costing.Data
	// IncludeInternal selects the owner view: internal lines are kept and
	// descriptions carry full pricing detail.
	IncludeInternal bool
}

// num renders a float the way it was entered, without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Describe renders a quote line as invoice copy. The customer phrasing omits
// per-unit rates for bundle kinds; the owner phrasing keeps them.
func Describe(l pricing.Line, includeInternal bool) string {
	switch l.Kind {
	case pricing.KindPackage:
		return l.Name + " package × " + num(l.Qty)
	case pricing.KindClass:
		return l.Tier + " cocktail class · " + num(l.Guests) + " guests"
	case pricing.KindBoozyBrunch:
		return "Boozy brunch · " + num(l.Guests) + " guests"
	case pricing.KindGuestFee:
		if !includeInternal {
			return "Custom package · " + num(l.Guests) + " cocktails"
		}
		return "Custom package · " + num(l.Guests) + " cocktails @ €" + num(l.PricePerGuest) + "/cocktail"
	case pricing.KindCustom:
		return l.Description + " × " + num(l.Qty)
	case pricing.KindStaffWork:
		return "Staff work · " + num(l.Hours) + " hrs @ €" + num(l.HourlyRate) + "/h"
	case pricing.KindStaffTravel:
		return "Staff travel · " + num(l.Hours) + " hrs @ €" + num(l.HourlyRate) + "/h"
	case pricing.KindPetrol:
		if l.Model == pricing.PetrolModelMPG {
			return "Travel (" + num(l.Miles) + " miles · " + num(l.MPG) + " mpg · €" + num(l.PricePerLitre) + "/L)"
		}
		return "Travel (" + num(l.Miles) + " miles · €" + num(l.CostPerMile) + "/mile)"
	default:
		return "Line item"
	}
}

func sumRevenue(items []costing.Item) float64 {
	var total float64
	for _, it := range items {
		total += it.CustomerPrice * it.Qty
	}
	return total
}

func sumQty(items []costing.Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Qty
	}
	return total
}

func summarizeSelections(items []costing.Item) string {
	var parts []string
	for _, it := range items {
		if it.Qty > 0 {
			parts = append(parts, num(it.Qty)+" "+it.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func categoryLine(label, unit string, items []costing.Item) (Line, bool) {
	revenue := sumRevenue(items)
	if revenue <= 0 {
		return Line{}, false
	}
	desc := label
	if qty := sumQty(items); qty > 0 {
		desc += " (" + num(qty)
		if unit != "" {
			desc += " " + unit
		}
		if sel := summarizeSelections(items); sel != "" {
			desc += ": " + sel
		}
		desc += ")"
	}
	return Line{Description: desc, Amount: revenue, Visible: true}, true
}

// hasBundleLine reports whether the quote already prices drinks as part of a
// flat package.
func hasBundleLine(lines []pricing.Line) bool {
	for _, l := range lines {
		if l.IsBundle() {
			return true
		}
	}
	return false
}

// BuildLines produces the ordered invoice lines for a quote: the quote's own
// priced lines first, then selection detail, then beverage revenue lines.
// Zero-amount quote lines are dropped. When the quote carries a bundle line
// and IncludeInternal is false, the cocktails revenue line is suppressed so
// the customer is not charged twice for drinks a package already covers.
func BuildLines(quoteLines []pricing.Line, opts Options) []Line {
	var out []Line
	for _, l := range quoteLines {
		if !opts.IncludeInternal && l.IsInternal() {
			continue
		}
		amount := l.Amount()
		if amount <= 0 {
			continue
		}
		out = append(out, Line{Description: Describe(l, opts.IncludeInternal), Amount: amount, Visible: true})
	}

	if opts.Costing == nil {
		return out
	}
	c := opts.Costing

	cocktailSelection := summarizeSelections(c.Cocktails)
	if cocktailSelection != "" {
		out = append(out, Line{Description: "Cocktails selection: " + cocktailSelection, Visible: false})
	}

	if beers, ok := categoryLine("Beers", "bottles", c.Beers); ok {
		out = append(out, beers)
	}
	chargeCocktails := opts.IncludeInternal || !hasBundleLine(quoteLines)
	if cocktails, ok := categoryLine("Cocktails", "", c.Cocktails); ok && chargeCocktails {
		out = append(out, cocktails)
	}
	wineItems := append(append([]costing.Item{}, c.Wines.Red...), c.Wines.White...)
	if wine, ok := categoryLine("Wine by the glass", "glasses", wineItems); ok {
		out = append(out, wine)
	}

	return out
}
