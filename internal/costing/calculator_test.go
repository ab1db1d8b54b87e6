package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBeersOnly(t *testing.T) {
	d := Data{
		Beers: []Item{{ID: "coors", Name: "Coors Light", Qty: 10, Cost: 0.62, CustomerPrice: 3.00}},
	}
	got := Calculate(d)

	assert.InDelta(t, 6.20, got.InternalCost, 0.001)
	assert.InDelta(t, 30.00, got.CustomerTotal, 0.001)
	assert.InDelta(t, 23.80, got.Profit, 0.001)
	assert.InDelta(t, 79.33, got.MarginPct, 0.01)
	assert.Equal(t, 0.0, got.VATAmount)
}

func TestCalculateWithOverheadsAndVAT(t *testing.T) {
	d := Data{
		Cocktails: []Item{{Qty: 20, Cost: 2.5, CustomerPrice: 10}},
		Overheads: Overheads{StaffWages: 150, StaffTravel: 30, Petrol: 22.73, VATRate: 23},
	}
	got := Calculate(d)

	assert.InDelta(t, 50+150+30+22.73, got.InternalCost, 0.001)
	assert.InDelta(t, 200, got.CustomerTotal, 0.001)
	assert.InDelta(t, 200-252.73, got.Profit, 0.001)
	assert.InDelta(t, 46.0, got.VATAmount, 0.001)
}

func TestCalculateSpansAllCollections(t *testing.T) {
	d := Data{
		Beers:     []Item{{Qty: 1, Cost: 1, CustomerPrice: 2}},
		Cocktails: []Item{{Qty: 1, Cost: 1, CustomerPrice: 2}},
		Wines: Wines{
			Red:   []Item{{Qty: 1, Cost: 1, CustomerPrice: 2}},
			White: []Item{{Qty: 1, Cost: 1, CustomerPrice: 2}},
		},
		Extras: []Item{{Qty: 1, Cost: 1, CustomerPrice: 2}},
	}
	got := Calculate(d)
	assert.InDelta(t, 5.0, got.InternalCost, 0.001)
	assert.InDelta(t, 10.0, got.CustomerTotal, 0.001)
}

func TestCalculateZeroRevenueZeroMargin(t *testing.T) {
	got := Calculate(Data{Overheads: Overheads{StaffWages: 100}})
	assert.Equal(t, 0.0, got.MarginPct)
	assert.InDelta(t, -100.0, got.Profit, 0.001)
}
