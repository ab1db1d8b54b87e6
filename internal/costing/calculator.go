package costing

// Calculate derives the totals from a record's item collections and
// overheads. It is pure: the record itself is not modified. Money totals are
// rounded to 2 decimals here and nowhere else; per-item precision stays at 4
// decimals to support partial bottles.
func Calculate(d Data) Totals {
	collections := [][]Item{d.Beers, d.Cocktails, d.Wines.Red, d.Wines.White, d.Extras}

	var drinkCost, drinkRevenue float64
	for _, items := range collections {
		for _, it := range items {
			drinkCost += it.Qty * it.Cost
			drinkRevenue += it.Qty * it.CustomerPrice
		}
	}

	internalCost := drinkCost + d.Overheads.StaffWages + d.Overheads.StaffTravel + d.Overheads.Petrol
	customerTotal := drinkRevenue
	profit := customerTotal - internalCost

	var marginPct float64
	if customerTotal > 0 {
		marginPct = profit / customerTotal * 100
	}

	var vatAmount float64
	if d.Overheads.VATRate > 0 {
		vatAmount = customerTotal * d.Overheads.VATRate / 100
	}

	return Totals{
		InternalCost:  round2(internalCost),
		CustomerTotal: round2(customerTotal),
		Profit:        round2(profit),
		MarginPct:     round2(marginPct),
		VATAmount:     round2(vatAmount),
	}
}
