package settings

import "encoding/json"

// Defaults returns the compiled-in configuration used when nothing has been
// saved yet, and as the base layer for Merge.
func Defaults() Settings {
	return Settings{
		Business: Business{
			Name:    "The Beautiful Booze Club",
			Address: "",
		},
		Currency: Currency{
			Default: "EUR",
			GBPRate: 0.85,
		},
		VAT: VATDefaults{
			DefaultEnabled: true,
			DefaultRate:    23,
		},
		Travel: Travel{
			DefaultMPG: 35,
		},
		HourlyRates: HourlyRates{
			StaffWork:   25,
			StaffTravel: 15,
		},
		CostTables: CostTables{
			Beer:     BeerTable{CustomerPrice: 4.0},
			Cocktail: CocktailTable{CustomerPrice: 10.0},
			Wine:     WineTable{BottleCost: 10, GlassesPerBottle: 4, CustomerPricePerGlass: 8.0},
		},
		ClassPricing: ClassPricing{
			ClassicPerHead:  5.4,
			LuxuryPerHead:   7.4,
			UltimatePerHead: 10.1,
		},
	}
}

// Merge overlays a stored partial document on the defaults. Keys present in
// raw win; everything else keeps its default.
func Merge(raw []byte) Settings {
	merged := Defaults()
	if len(raw) == 0 {
		return merged
	}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return Defaults()
	}
	return merged
}
