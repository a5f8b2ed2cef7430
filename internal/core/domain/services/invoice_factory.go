package services

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// PaymentTermDays is the number of days between invoice date and due date.
const PaymentTermDays = 30

var (
	// TaxRate is the flat tax applied to every invoice.
	TaxRate = decimal.RequireFromString("0.18")

	ErrShipmentNotInvoiceable = errors.New("shipment is not invoiceable")
)

// InvoiceFactory raises invoices for shipments.
//
// Business rules:
//   - the invoiced amount is the actual cost when recorded, else the estimate
//   - taxAmount = round2(subTotal * TaxRate)
//   - totalAmount = round2(subTotal * (1 + TaxRate)), computed directly
//   - dueDate = invoiceDate + PaymentTermDays
//   - cancelled shipments are not invoiced
type InvoiceFactory struct{}

func NewInvoiceFactory() InvoiceFactory {
	return InvoiceFactory{}
}

// CreateForShipment builds the Pending invoice of s, dated now in UTC, under
// the given identity and INV number.
func (InvoiceFactory) CreateForShipment(
	s *shipment.Shipment,
	id kernel.ID,
	number document.Number,
	now time.Time,
) (*invoice.Invoice, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Status() == shipment.Cancelled {
		return nil, fmt.Errorf("%w: shipment %s is %s", ErrShipmentNotInvoiceable, s.Number(), s.Status())
	}

	// Calendar arithmetic in UTC keeps the payment term exactly 30 days long.
	now = now.UTC()

	return invoice.NewInvoice(
		id,
		number,
		s.ID(),
		s.CustomerID(),
		now,
		now.AddDate(0, 0, PaymentTermDays),
		InvoiceAmounts(s.InvoiceableAmount()),
	)
}

// InvoiceAmounts applies the tax policy to subTotal.
// subTotal is rounded to cents first so the stored figures satisfy
// totalAmount == round2(subTotal * (1 + TaxRate)).
func InvoiceAmounts(subTotal decimal.Decimal) invoice.Amounts {
	sub := kernel.Round2(subTotal)
	return invoice.Amounts{
		SubTotal:    sub,
		TaxAmount:   kernel.Round2(sub.Mul(TaxRate)),
		TotalAmount: kernel.Round2(sub.Mul(decimal.NewFromInt(1).Add(TaxRate))),
	}
}
