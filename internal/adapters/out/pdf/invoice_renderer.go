// Package pdf renders invoices as PDF documents with maroto.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"freight/internal/core/ports"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

const dateLayout = "02 Jan 2006"

// InvoiceRenderer lays out one A4 page per invoice.
type InvoiceRenderer struct {
	issuer string
}

// NewInvoiceRenderer creates a renderer printing issuer in the letterhead.
func NewInvoiceRenderer(issuer string) *InvoiceRenderer {
	if strings.TrimSpace(issuer) == "" {
		issuer = "Freight Back Office"
	}
	return &InvoiceRenderer{issuer: issuer}
}

func (r *InvoiceRenderer) RenderInvoice(ctx context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, r.issuer, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(4, "INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice number: "+doc.InvoiceNumber, props.Text{Top: 0}),
			text.New("Invoice date: "+doc.InvoiceDate.Format(dateLayout), props.Text{Top: 5}),
			text.New("Due date: "+doc.DueDate.Format(dateLayout), props.Text{Top: 10}),
			text.New("Status: "+doc.PaymentStatus.String(), props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Bill to customer #"+doc.CustomerID.String(), props.Text{Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	m.AddRow(8, text.NewCol(12, "Shipment "+orDash(doc.ShipmentNumber), props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}))
	if doc.ShipmentNumber != "" && doc.Route.OriginCity != "" {
		m.AddRow(18,
			col.New(6).Add(
				text.New(fmt.Sprintf("From: %s, %s", doc.Route.OriginCity, doc.Route.OriginCountry), props.Text{Size: 9}),
				text.New(fmt.Sprintf("To: %s, %s", doc.Route.DestinationCity, doc.Route.DestinationCountry), props.Text{Size: 9, Top: 5}),
			),
			col.New(6).Add(
				text.New("Mode: "+doc.TransportMode.String(), props.Text{Size: 9, Align: align.Right}),
				text.New("Weight: "+doc.Weight.String()+" kg", props.Text{Size: 9, Top: 5, Align: align.Right}),
				text.New(orDash(doc.CargoDescription), props.Text{Size: 9, Top: 10, Align: align.Right}),
			),
		)
	}

	m.AddRow(10,
		text.NewCol(8, "Description", props.Text{Style: fontstyle.Bold, Size: 9, Top: 3}),
		text.NewCol(4, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Top: 3, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(8, "Freight charges", props.Text{Size: 9}),
		text.NewCol(4, money(doc.SubTotal), props.Text{Size: 9, Align: align.Right}),
	)

	r.totalRow(m, "Subtotal", doc.SubTotal, false)
	r.totalRow(m, "Tax ("+doc.TaxRate.Shift(2).String()+"%)", doc.TaxAmount, false)
	r.totalRow(m, "Total", doc.TotalAmount, true)
	r.totalRow(m, "Paid", doc.PaidAmount, false)
	r.totalRow(m, "Balance due", decimal.Max(doc.TotalAmount.Sub(doc.PaidAmount), decimal.Zero), true)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.InvoiceNumber, err)
	}
	return out.GetBytes(), nil
}

func (r *InvoiceRenderer) totalRow(m core.Maroto, label string, amount decimal.Decimal, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(7,
		col.New(6),
		text.NewCol(3, label, props.Text{Size: 9, Style: style}),
		text.NewCol(3, money(amount), props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
