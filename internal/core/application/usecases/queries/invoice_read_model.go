package queries

import (
	"database/sql"
	"time"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// InvoiceResponse is the read model of an invoice. ShipmentNumber is empty
// when the shipment row is gone.
type InvoiceResponse struct {
	ID             kernel.ID
	InvoiceNumber  string
	ShipmentID     kernel.ID
	ShipmentNumber string
	CustomerID     kernel.ID
	InvoiceDate    time.Time
	DueDate        time.Time
	SubTotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  invoice.PaymentStatus
	PaidAmount     decimal.Decimal
	PaidDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Balance is what is still owed.
func (r InvoiceResponse) Balance() decimal.Decimal {
	return decimal.Max(r.TotalAmount.Sub(r.PaidAmount), decimal.Zero)
}

const invoiceColumns = `
	i.id,
	i.invoice_number,
	i.shipment_id,
	s.shipment_number,
	i.customer_id,
	i.invoice_date,
	i.due_date,
	i.sub_total,
	i.tax_amount,
	i.total_amount,
	i.payment_status,
	i.paid_amount,
	i.paid_date,
	i.created_at,
	i.updated_at`

const invoiceFrom = ` FROM invoices i LEFT JOIN shipments s ON s.id = i.shipment_id`

func scanInvoice(scanner interface{ Scan(dest ...any) error }) (InvoiceResponse, error) {
	var r InvoiceResponse
	var shipmentNumber sql.NullString
	var status string
	var paid sql.NullTime

	err := scanner.Scan(
		&r.ID,
		&r.InvoiceNumber,
		&r.ShipmentID,
		&shipmentNumber,
		&r.CustomerID,
		&r.InvoiceDate,
		&r.DueDate,
		&r.SubTotal,
		&r.TaxAmount,
		&r.TotalAmount,
		&status,
		&r.PaidAmount,
		&paid,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return InvoiceResponse{}, err
	}

	if r.PaymentStatus, err = invoice.ParsePaymentStatus(status); err != nil {
		return InvoiceResponse{}, err
	}
	r.ShipmentNumber = shipmentNumber.String
	r.InvoiceDate = r.InvoiceDate.UTC()
	r.DueDate = r.DueDate.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	r.PaidDate = nullTimePtr(paid)
	return r, nil
}
