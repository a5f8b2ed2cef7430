package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// InvoiceDocument is everything printed on an invoice. Shipment details are
// zero when the shipment could not be loaded.
type InvoiceDocument struct {
	InvoiceNumber  string
	ShipmentNumber string
	CustomerID     kernel.ID
	InvoiceDate    time.Time
	DueDate        time.Time
	PaymentStatus  invoice.PaymentStatus

	Route            shipment.Route
	TransportMode    kernel.TransportMode
	Weight           decimal.Decimal
	CargoDescription string

	SubTotal    decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
}

// InvoiceRenderer turns an invoice into a printable document.
type InvoiceRenderer interface {
	// RenderInvoice returns the encoded document, e.g. PDF bytes.
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
