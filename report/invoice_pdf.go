// Package report renders quote and invoice documents as PDFs.
package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/boozeclub/backoffice/internal/fx"
	"github.com/boozeclub/backoffice/internal/invoice"
	"github.com/boozeclub/backoffice/internal/pricing"
	"github.com/boozeclub/backoffice/internal/quotes"
	"github.com/boozeclub/backoffice/internal/settings"
)

// InvoiceDocument collects everything a rendered invoice needs.
type InvoiceDocument struct {
	Business settings.Business
	Quote    quotes.Quote
	Lines    []invoice.Line
	Totals   pricing.Totals
	// OwnerView marks the internal profitability rendering.
	OwnerView bool
	// GBPRate, when set, adds a dual-currency footer. Display only.
	GBPRate *fx.Rate
}

var (
	mutedText = props.Color{Red: 100, Green: 100, Blue: 100}
	headerBg  = props.Color{Red: 33, Green: 37, Blue: 41}
	altBg     = props.Color{Red: 248, Green: 249, Blue: 250}
	white     = props.Color{Red: 255, Green: 255, Blue: 255}
)

func money(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

// GenerateInvoicePDF renders the document and returns the PDF bytes.
func GenerateInvoicePDF(doc InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &mutedText,
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addCustomerBlock(m, doc)
	addLinesTable(m, doc)
	addTotals(m, doc)
	addCurrencyFooter(m, doc)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generate invoice pdf: %w", err)
	}
	return generated.GetBytes(), nil
}

func addHeader(m core.Maroto, doc InvoiceDocument) {
	title := "INVOICE"
	if doc.OwnerView {
		title = "INTERNAL COSTING"
	}

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(doc.Business.Name, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left}),
			),
			col.New(6).Add(
				text.New(title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(doc.Business.Address, props.Text{Size: 8, Align: align.Left, Color: &mutedText}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote #: %s", doc.Quote.ID), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			),
		),
		row.New(3),
	)
}

func addCustomerBlock(m core.Maroto, doc InvoiceDocument) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: &mutedText}
	value := props.Text{Size: 8, Align: align.Left}
	rightLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: &mutedText}
	rightValue := props.Text{Size: 8, Align: align.Right}

	ev := doc.Quote.Event
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("CUSTOMER", label)),
			col.New(6).Add(text.New("EVENT", rightLabel)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(doc.Quote.Customer.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left})),
			col.New(3).Add(text.New("Type:", rightLabel)),
			col.New(3).Add(text.New(ev.Type, rightValue)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(doc.Quote.Customer.Email, value)),
			col.New(3).Add(text.New("Date:", rightLabel)),
			col.New(3).Add(text.New(fmt.Sprintf("%s %s", ev.Date, ev.Time), rightValue)),
		),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("Location:", rightLabel)),
			col.New(3).Add(text.New(ev.Location, rightValue)),
		),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("Guests:", rightLabel)),
			col.New(3).Add(text.New(fmt.Sprintf("%d", ev.Guests), rightValue)),
		),
		row.New(3),
	)
}

func addLinesTable(m core.Maroto, doc InvoiceDocument) {
	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: &white}
	headerRight := headerText
	headerRight.Align = align.Right
	headerCell := props.Cell{BackgroundColor: &headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Description", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Amount", headerRight)).WithStyle(&headerCell),
		),
	)

	for i, l := range doc.Lines {
		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: &altBg}
		}

		// Detail lines show their description with no amount.
		amount := ""
		if l.Visible {
			amount = money(l.Amount)
		}

		cols := []core.Col{
			col.New(9).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left})),
			col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right})),
		}
		r := row.New(7).Add(cols...)
		if cellStyle != nil {
			r.WithStyle(cellStyle)
		}
		m.AddRows(r)
	}

	m.AddRows(row.New(2).Add(col.New(12).Add(line.New())))
}

func addTotals(m core.Maroto, doc InvoiceDocument) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: &mutedText}
	value := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(9).Add(text.New("Net", label)),
			col.New(3).Add(text.New(money(doc.Totals.Net), value)),
		),
	)
	if doc.Quote.VAT.Enabled {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(text.New(fmt.Sprintf("VAT (%.0f%%)", doc.Quote.VAT.Rate), label)),
				col.New(3).Add(text.New(money(doc.Totals.VAT), value)),
			),
		)
	}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
			col.New(3).Add(text.New(money(doc.Totals.Gross), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
	)
}

func addCurrencyFooter(m core.Maroto, doc InvoiceDocument) {
	if doc.GBPRate == nil {
		return
	}
	converted := fx.Convert(doc.Totals.Gross, *doc.GBPRate)
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(
				fmt.Sprintf("Approx. £%.2f at %.4f EUR/GBP (%s)", converted, doc.GBPRate.Rate, doc.GBPRate.Source),
				props.Text{Size: 7, Align: align.Right, Color: &mutedText},
			)),
		),
	)
}
