package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/pdf"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func document() ports.InvoiceDocument {
	issued := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	return ports.InvoiceDocument{
		InvoiceNumber:  "INV-20240315-001",
		ShipmentNumber: "SHP-20240310-004",
		CustomerID:     7,
		InvoiceDate:    issued,
		DueDate:        issued.AddDate(0, 0, 30),
		PaymentStatus:  invoice.Pending,
		Route: shipment.Route{
			OriginCity:         "Rotterdam",
			OriginCountry:      "Netherlands",
			DestinationCity:    "Singapore",
			DestinationCountry: "Singapore",
		},
		TransportMode:    kernel.Sea,
		Weight:           decimal.RequireFromString("1250.125"),
		CargoDescription: "Auto parts",
		SubTotal:         decimal.RequireFromString("9900.00"),
		TaxRate:          decimal.RequireFromString("0.18"),
		TaxAmount:        decimal.RequireFromString("1782.00"),
		TotalAmount:      decimal.RequireFromString("11682.00"),
		PaidAmount:       decimal.Zero,
	}
}

func TestInvoiceRenderer_RenderInvoice(t *testing.T) {
	r := pdf.NewInvoiceRenderer("Acme Freight")

	out, err := r.RenderInvoice(t.Context(), document())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output is a PDF")
	assert.Greater(t, len(out), 500)
}

func TestInvoiceRenderer_WithoutShipmentDetails(t *testing.T) {
	doc := document()
	doc.ShipmentNumber = ""
	doc.Route = shipment.Route{}

	out, err := pdf.NewInvoiceRenderer("").RenderInvoice(t.Context(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestInvoiceRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := pdf.NewInvoiceRenderer("Acme Freight").RenderInvoice(ctx, document())
	require.ErrorIs(t, err, context.Canceled)
}
