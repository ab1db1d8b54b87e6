// Package pricing computes monetary amounts for quote line items.
package pricing

import "math"

// LitresPerGallon converts imperial gallons to litres for fuel costing.
const LitresPerGallon = 4.54609

// Kind identifies the variant of a quote line.
type Kind string

const (
	KindPackage     Kind = "package"
	KindClass       Kind = "class"
	KindBoozyBrunch Kind = "boozyBrunch"
	KindGuestFee    Kind = "guestFee"
	KindCustom      Kind = "custom"
	KindStaffWork   Kind = "staffWork"
	KindStaffTravel Kind = "staffTravel"
	KindPetrol      Kind = "petrol"
)

// Kinds returns every line kind the pricing function handles. Tests use this
// to assert exhaustive coverage when a new kind is introduced.
func Kinds() []Kind {
	return []Kind{
		KindPackage,
		KindClass,
		KindBoozyBrunch,
		KindGuestFee,
		KindCustom,
		KindStaffWork,
		KindStaffTravel,
		KindPetrol,
	}
}

// PetrolModel selects the fuel cost formula for petrol lines.
type PetrolModel string

const (
	PetrolModelMPG     PetrolModel = "mpg"
	PetrolModelPerMile PetrolModel = "perMile"
)

// Line is one priceable unit within a quote. It is a tagged union: Kind
// selects which of the remaining fields are meaningful. Unused fields stay
// zero and are omitted from the wire form.
type Line struct {
	Kind Kind `json:"kind"`

	// package
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
	Qty       float64 `json:"qty,omitempty"`

	// class / boozyBrunch / guestFee
	Tier          string  `json:"tier,omitempty"`
	PricePerGuest float64 `json:"pricePerGuest,omitempty"`
	Guests        float64 `json:"guests,omitempty"`

	// custom
	Description string  `json:"description,omitempty"`
	OwnerCost   float64 `json:"ownerCost,omitempty"`

	// staffWork / staffTravel
	HourlyRate float64 `json:"hourlyRate,omitempty"`
	Hours      float64 `json:"hours,omitempty"`

	// petrol
	Model         PetrolModel `json:"model,omitempty"`
	PricePerLitre float64     `json:"pricePerLitre,omitempty"`
	Miles         float64     `json:"miles,omitempty"`
	MPG           float64     `json:"mpg,omitempty"`
	CostPerMile   float64     `json:"costPerMile,omitempty"`
}

// Amount computes the monetary total of a single line. Incomplete lines
// contribute 0 so that partially entered quotes remain saveable; the result
// is never negative and never NaN.
func (l Line) Amount() float64 {
	switch l.Kind {
	case KindPackage, KindCustom:
		return clampAmount(l.UnitPrice * l.Qty)
	case KindClass, KindBoozyBrunch, KindGuestFee:
		return clampAmount(l.PricePerGuest * l.Guests)
	case KindStaffWork, KindStaffTravel:
		return clampAmount(l.HourlyRate * l.Hours)
	case KindPetrol:
		if l.Model == PetrolModelMPG && l.Miles > 0 && l.MPG > 0 && l.PricePerLitre > 0 {
			litres := (l.Miles / l.MPG) * LitresPerGallon
			return clampAmount(litres * l.PricePerLitre)
		}
		if l.Model == PetrolModelPerMile && l.Miles > 0 && l.CostPerMile > 0 {
			return clampAmount(l.Miles * l.CostPerMile)
		}
		return 0
	}
	return 0
}

// IsBundle reports whether the line prices cocktails as part of a flat-rate
// package, which suppresses separate cocktail billing on customer documents.
func (l Line) IsBundle() bool {
	switch l.Kind {
	case KindPackage, KindGuestFee, KindClass, KindBoozyBrunch:
		return true
	}
	return false
}

// IsInternal reports whether the line is an internal overhead hidden from
// customer-facing documents.
func (l Line) IsInternal() bool {
	switch l.Kind {
	case KindStaffWork, KindStaffTravel, KindPetrol:
		return true
	}
	return false
}

func clampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
