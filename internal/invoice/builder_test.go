package invoice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boozeclub/backoffice/internal/costing"
	"github.com/boozeclub/backoffice/internal/pricing"
)

func bundledQuote() []pricing.Line {
	return []pricing.Line{
		{Kind: pricing.KindPackage, Name: "Lily", UnitPrice: 650, Qty: 1},
		{Kind: pricing.KindStaffWork, HourlyRate: 25, Hours: 6},
	}
}

func drinksCosting() *costing.Data {
	return &costing.Data{
		Beers: []costing.Item{
			{ID: "heineken", Name: "Heineken (bottle)", Qty: 3, Cost: 0.86, CustomerPrice: 3},
			{ID: "corona", Name: "Corona (bottle)", Qty: 2, Cost: 1.04, CustomerPrice: 3},
		},
		Cocktails: []costing.Item{
			{ID: "ct-0", Name: "Pornstar Martini", Qty: 8, Cost: 2.95, CustomerPrice: 10},
		},
		Wines: costing.Wines{
			Red: []costing.Item{{ID: "wine-red", Name: "Red Wine (glass)", Qty: 8, Cost: 2.5, CustomerPrice: 8}},
		},
	}
}

func TestCustomerViewExcludesInternalLines(t *testing.T) {
	lines := BuildLines(bundledQuote(), Options{IncludeInternal: false})

	require.Len(t, lines, 1)
	assert.Equal(t, "Lily package × 1", lines[0].Description)
	assert.Equal(t, 650.0, lines[0].Amount)
}

func TestOwnerViewIncludesInternalLines(t *testing.T) {
	lines := BuildLines(bundledQuote(), Options{IncludeInternal: true})

	require.Len(t, lines, 2)
	assert.Equal(t, "Staff work · 6 hrs @ €25/h", lines[1].Description)
	assert.Equal(t, 150.0, lines[1].Amount)
}

func TestBundlingSuppressesCocktailsForCustomerOnly(t *testing.T) {
	c := drinksCosting()

	customer := BuildLines(bundledQuote(), Options{Costing: c, IncludeInternal: false})
	owner := BuildLines(bundledQuote(), Options{Costing: c, IncludeInternal: true})

	findCocktails := func(lines []Line) *Line {
		for i := range lines {
			if lines[i].Visible && strings.HasPrefix(lines[i].Description, "Cocktails (") {
				return &lines[i]
			}
		}
		return nil
	}
	customerCocktails := findCocktails(customer)
	ownerCocktails := findCocktails(owner)

	assert.Nil(t, customerCocktails)
	require.NotNil(t, ownerCocktails)
	assert.Equal(t, 80.0, ownerCocktails.Amount)
}

func TestCocktailSelectionDetailLineIsNotPriced(t *testing.T) {
	lines := BuildLines(bundledQuote(), Options{Costing: drinksCosting()})

	var detail *Line
	for i := range lines {
		if !lines[i].Visible {
			detail = &lines[i]
		}
	}
	require.NotNil(t, detail)
	assert.Equal(t, "Cocktails selection: 8 Pornstar Martini", detail.Description)
	assert.Equal(t, 0.0, detail.Amount)
}

func TestBeverageRevenueLines(t *testing.T) {
	lines := BuildLines(bundledQuote(), Options{Costing: drinksCosting()})

	descs := make(map[string]float64)
	for _, l := range lines {
		descs[l.Description] = l.Amount
	}
	assert.Equal(t, 15.0, descs["Beers (5 bottles: 3 Heineken (bottle), 2 Corona (bottle))"])
	assert.Equal(t, 64.0, descs["Wine by the glass (8 glasses: 8 Red Wine (glass))"])
}

func TestZeroAmountQuoteLinesDropped(t *testing.T) {
	lines := BuildLines([]pricing.Line{
		{Kind: pricing.KindCustom, Description: "TBC", UnitPrice: 0, Qty: 1},
		{Kind: pricing.KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1},
	}, Options{})

	require.Len(t, lines, 1)
	assert.Equal(t, "Spirits × 1", lines[0].Description)
}

func TestCustomerPhrasingOmitsGuestFeeRate(t *testing.T) {
	l := pricing.Line{Kind: pricing.KindGuestFee, PricePerGuest: 5.4, Guests: 30}

	assert.Equal(t, "Custom package · 30 cocktails", Describe(l, false))
	assert.Equal(t, "Custom package · 30 cocktails @ €5.4/cocktail", Describe(l, true))
}

func TestTotalsDivergeFromQuoteTotalsUnderBundling(t *testing.T) {
	vat := pricing.VAT{Enabled: true, Rate: 23}
	quote := bundledQuote()
	c := drinksCosting()

	_, customer := Build(quote, vat, Options{Costing: c, IncludeInternal: false})
	_, owner := Build(quote, vat, Options{Costing: c, IncludeInternal: true})

	// Customer view: 650 package + 15 beers + 64 wine.
	assert.InDelta(t, 729.0, customer.Net, 0.001)
	assert.InDelta(t, 729.0*1.23, customer.Gross, 0.001)

	// Owner view adds 150 staff work and the 80 cocktail revenue.
	assert.InDelta(t, 959.0, owner.Net, 0.001)
}

func TestVATDisabledIsZero(t *testing.T) {
	lines, totals := Build(bundledQuote(), pricing.VAT{Enabled: false, Rate: 23}, Options{})

	require.NotEmpty(t, lines)
	assert.Equal(t, 0.0, totals.VAT)
	assert.Equal(t, totals.Net, totals.Gross)
}
