package pricing

// VAT is a quote's tax configuration.
type VAT struct {
	Enabled bool    `json:"enabled"`
	Rate    float64 `json:"rate"`
}

// Totals is the canonical net/vat/gross triple for a set of lines.
type Totals struct {
	Net   float64 `json:"net"`
	VAT   float64 `json:"vat"`
	Gross float64 `json:"gross"`
}

// Sum recomputes totals from lines. Stored totals are never trusted; callers
// recompute through here before persisting or comparing.
func Sum(lines []Line, vat VAT) Totals {
	var net float64
	for _, l := range lines {
		net += l.Amount()
	}
	var vatAmount float64
	if vat.Enabled {
		vatAmount = net * vat.Rate / 100
	}
	return Totals{Net: net, VAT: vatAmount, Gross: net + vatAmount}
}
