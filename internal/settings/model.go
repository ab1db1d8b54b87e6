// Package settings holds the process-wide business configuration: identity,
// VAT defaults, hourly rates, beverage cost tables and class tier pricing.
package settings

// Settings is the full configuration document. A partial document may be
// stored; Merge overlays it on the compiled defaults.
type Settings struct {
	Business     Business     `json:"business"`
	Currency     Currency     `json:"currency"`
	VAT          VATDefaults  `json:"vat"`
	Travel       Travel       `json:"travel"`
	HourlyRates  HourlyRates  `json:"hourlyRates"`
	CostTables   CostTables   `json:"costTables"`
	ClassPricing ClassPricing `json:"classPricing"`
}

type Business struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type Currency struct {
	Default string  `json:"default"`
	GBPRate float64 `json:"gbpRate"`
}

type VATDefaults struct {
	DefaultEnabled bool    `json:"defaultEnabled"`
	DefaultRate    float64 `json:"defaultRate"`
}

type Travel struct {
	DefaultMPG  float64 `json:"defaultMpg"`
	CostPerMile float64 `json:"costPerMile,omitempty"`
}

type HourlyRates struct {
	StaffWork   float64 `json:"staffWork"`
	StaffTravel float64 `json:"staffTravel"`
}

type CostTables struct {
	Beer     BeerTable     `json:"beer"`
	Cocktail CocktailTable `json:"cocktail"`
	Wine     WineTable     `json:"wine"`
}

type BeerTable struct {
	CustomerPrice float64 `json:"customerPrice"`
}

type CocktailTable struct {
	CustomerPrice float64 `json:"customerPrice"`
}

type WineTable struct {
	BottleCost            float64 `json:"bottleCost"`
	GlassesPerBottle      float64 `json:"glassesPerBottle"`
	CustomerPricePerGlass float64 `json:"customerPricePerGlass"`
}

type ClassPricing struct {
	ClassicPerHead  float64 `json:"classicPerHead"`
	LuxuryPerHead   float64 `json:"luxuryPerHead"`
	UltimatePerHead float64 `json:"ultimatePerHead"`
}
