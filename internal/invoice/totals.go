package invoice

import "github.com/boozeclub/backoffice/internal/pricing"

// Totals sums built invoice lines into net/vat/gross. This intentionally
// diverges from the raw quote totals when the bundling rule suppressed a
// line.
func Totals(lines []Line, vat pricing.VAT) pricing.Totals {
	var net float64
	for _, l := range lines {
		net += l.Amount
	}
	var vatAmount float64
	if vat.Enabled {
		vatAmount = net * vat.Rate / 100
	}
	return pricing.Totals{Net: net, VAT: vatAmount, Gross: net + vatAmount}
}

// Build is the one-call form: lines plus their totals for a given view.
func Build(quoteLines []pricing.Line, vat pricing.VAT, opts Options) ([]Line, pricing.Totals) {
	lines := BuildLines(quoteLines, opts)
	return lines, Totals(lines, vat)
}
