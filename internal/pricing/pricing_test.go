package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want float64
	}{
		{"package", Line{Kind: KindPackage, Name: "Lily", UnitPrice: 650, Qty: 1}, 650},
		{"package qty 2", Line{Kind: KindPackage, Name: "Rose", UnitPrice: 850, Qty: 2}, 1700},
		{"class", Line{Kind: KindClass, Tier: "Classic", PricePerGuest: 30, Guests: 12}, 360},
		{"boozy brunch", Line{Kind: KindBoozyBrunch, PricePerGuest: 25, Guests: 10}, 250},
		{"guest fee", Line{Kind: KindGuestFee, PricePerGuest: 9.5, Guests: 4}, 38},
		{"custom", Line{Kind: KindCustom, Description: "Spirits", UnitPrice: 300, Qty: 1}, 300},
		{"staff work", Line{Kind: KindStaffWork, HourlyRate: 25, Hours: 6}, 150},
		{"staff travel", Line{Kind: KindStaffTravel, HourlyRate: 15, Hours: 2}, 30},
		{"petrol per mile", Line{Kind: KindPetrol, Model: PetrolModelPerMile, Miles: 80, CostPerMile: 0.45}, 36},
		{"petrol missing mpg", Line{Kind: KindPetrol, Model: PetrolModelMPG, Miles: 100, PricePerLitre: 1.75}, 0},
		{"petrol zero mpg", Line{Kind: KindPetrol, Model: PetrolModelMPG, Miles: 100, MPG: 0, PricePerLitre: 1.75}, 0},
		{"petrol no model", Line{Kind: KindPetrol, Miles: 100}, 0},
		{"empty custom", Line{Kind: KindCustom}, 0},
		{"unknown kind", Line{Kind: Kind("mystery"), UnitPrice: 10, Qty: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.line.Amount(), 1e-9)
		})
	}
}

func TestLineAmountPetrolMPG(t *testing.T) {
	// 100 miles at 35 mpg: (100/35)*4.54609 litres at 1.75/litre.
	line := Line{Kind: KindPetrol, Model: PetrolModelMPG, Miles: 100, MPG: 35, PricePerLitre: 1.75}
	litres := (100.0 / 35.0) * LitresPerGallon
	assert.InDelta(t, 12.9888, litres, 0.0001)
	assert.InDelta(t, 22.73, line.Amount(), 0.005)
}

func TestLineAmountNeverNegative(t *testing.T) {
	lines := []Line{
		{Kind: KindCustom, UnitPrice: -10, Qty: 3},
		{Kind: KindStaffWork, HourlyRate: 25, Hours: -2},
		{Kind: KindClass, PricePerGuest: math.NaN(), Guests: 10},
		{Kind: KindPackage, UnitPrice: math.Inf(1), Qty: 1},
	}
	for _, l := range lines {
		got := l.Amount()
		assert.GreaterOrEqual(t, got, 0.0)
		assert.False(t, math.IsNaN(got))
		assert.False(t, math.IsInf(got, 0))
	}
}

// Every declared kind must produce a nonzero amount for a fully populated
// line; a new kind added without a pricing rule fails here.
func TestEveryKindIsPriced(t *testing.T) {
	full := Line{
		UnitPrice: 10, Qty: 2,
		PricePerGuest: 5, Guests: 4,
		HourlyRate: 20, Hours: 3,
		Model: PetrolModelMPG, Miles: 50, MPG: 30, PricePerLitre: 1.5,
	}
	require.Len(t, Kinds(), 8)
	for _, kind := range Kinds() {
		l := full
		l.Kind = kind
		assert.Greater(t, l.Amount(), 0.0, "kind %q has no pricing rule", kind)
	}
}

func TestSumTotals(t *testing.T) {
	lines := []Line{
		{Kind: KindPackage, Name: "Lily", UnitPrice: 650, Qty: 1},
		{Kind: KindCustom, Description: "Welcome drinks", UnitPrice: 200, Qty: 1},
	}
	got := Sum(lines, VAT{Enabled: true, Rate: 23})
	assert.InDelta(t, 850.00, got.Net, 0.001)
	assert.InDelta(t, 195.50, got.VAT, 0.001)
	assert.InDelta(t, 1045.50, got.Gross, 0.001)
}

func TestSumVATDisabled(t *testing.T) {
	lines := []Line{{Kind: KindCustom, UnitPrice: 120, Qty: 3}}
	got := Sum(lines, VAT{Enabled: false, Rate: 23})
	assert.Equal(t, 0.0, got.VAT)
	assert.Equal(t, got.Net, got.Gross)
}

func TestSumOrderIndependent(t *testing.T) {
	lines := []Line{
		{Kind: KindPackage, UnitPrice: 650, Qty: 1},
		{Kind: KindStaffWork, HourlyRate: 25, Hours: 4},
		{Kind: KindCustom, UnitPrice: 42.42, Qty: 3},
		{Kind: KindBoozyBrunch, PricePerGuest: 25, Guests: 14},
	}
	want := Sum(lines, VAT{Enabled: true, Rate: 23})

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Line, len(lines))
		copy(shuffled, lines)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Sum(shuffled, VAT{Enabled: true, Rate: 23})
		assert.InDelta(t, want.Net, got.Net, 1e-9)
		assert.InDelta(t, want.Gross, got.Gross, 1e-9)
	}
}
