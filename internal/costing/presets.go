package costing

import (
	"fmt"

	"github.com/boozeclub/backoffice/internal/settings"
)

// preset is a stock beverage with a known internal cost.
type preset struct {
	ID   string
	Name string
	Cost float64
}

var beerPresets = []preset{
	{ID: "coors", Name: "Coors Light (bottle)", Cost: 0.62},
	{ID: "heineken", Name: "Heineken Lager (bottle)", Cost: 0.86},
	{ID: "corona", Name: "Corona Extra (bottle)", Cost: 1.04},
	{ID: "moretti", Name: "Birra Moretti Lager (bottle)", Cost: 0.93},
}

var cocktailPresets = buildCocktailPresets()

func buildCocktailPresets() []preset {
	type entry struct {
		name string
		cost float64
	}
	entries := []entry{
		{"Pornstar Martini", 2.95},
		{"Espresso Martini", 2.7},
		{"Cosmopolitan", 2.5},
		{"Margarita", 2.8},
		{"Martini", 2.1},
		{"Aviation", 2.65},
		{"Boulevardier", 3.2},
		{"Bacardi Cocktail", 2.45},
		{"Clover Club", 2.55},
		{"Daiquiri", 2.3},
		{"Manhattan", 3.1},
		{"White Lady", 2.4},
		{"Woo Woo", 2.35},
		{"Old Fashioned", 3.0},
		{"Whiskey Sour", 2.75},
		{"Mimosa", 1.85},
		{"Kir", 2.0},
		{"French 75", 2.6},
		{"Mojito", 2.3},
		{"Gin Basil Smash", 2.45},
		{"Irish Coffee", 2.7},
		{"Pina Colada", 2.65},
		{"Tequila Sunrise", 2.5},
		{"Sex on the Beach", 2.4},
		{"Bramble", 2.55},
		{"Paloma", 2.6},
		{"Penicillin", 2.85},
	}
	presets := make([]preset, len(entries))
	for i, e := range entries {
		presets[i] = preset{ID: fmt.Sprintf("ct-%d", i), Name: e.name, Cost: e.cost}
	}
	return presets
}

// CocktailPresets exposes the stock cocktail list (id, name, internal cost)
// for UI dropdowns.
func CocktailPresets() []Item {
	items := make([]Item, len(cocktailPresets))
	for i, p := range cocktailPresets {
		items[i] = Item{ID: p.ID, Name: p.Name, Cost: p.Cost}
	}
	return items
}

func cocktailPresetByID(id string) (preset, bool) {
	for _, p := range cocktailPresets {
		if p.ID == id {
			return p, true
		}
	}
	return preset{}, false
}

func defaultBeers(q QuoteContext, s settings.Settings) []Item {
	customerPrice := q.Convert(s.CostTables.Beer.CustomerPrice)
	items := make([]Item, len(beerPresets))
	for i, p := range beerPresets {
		items[i] = Item{
			ID:            p.ID,
			Name:          p.Name,
			Qty:           0,
			Cost:          q.Convert(p.Cost),
			CustomerPrice: customerPrice,
		}
	}
	return items
}

func defaultWineItem(kind string, costPerGlass, customerPrice float64) Item {
	name := "Red Wine (glass)"
	id := "wine-red"
	if kind == "white" {
		name = "White Wine (glass)"
		id = "wine-white"
	}
	return Item{ID: id, Name: name, Qty: 0, Cost: costPerGlass, CustomerPrice: customerPrice}
}
