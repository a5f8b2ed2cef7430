package invoice

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice constructor")

// Amounts are the monetary figures fixed when an invoice is issued.
type Amounts struct {
	SubTotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

func (a Amounts) validate() error {
	return errors.Join(
		kernel.ValidateNonNegative("subTotal", a.SubTotal),
		kernel.ValidateNonNegative("taxAmount", a.TaxAmount),
		kernel.ValidateNonNegative("totalAmount", a.TotalAmount),
	)
}

// Invoice is the aggregate root of a bill raised for one shipment.
type Invoice struct {
	id            kernel.ID
	number        document.Number
	shipmentID    kernel.ID
	customerID    kernel.ID
	invoiceDate   time.Time
	dueDate       time.Time
	amounts       Amounts
	paymentStatus PaymentStatus
	paidAmount    decimal.Decimal
	paidDate      *time.Time
	createdAt     time.Time
	updatedAt     time.Time
	version       int64

	isConstructed bool
}

// NewInvoice issues a Pending invoice with nothing paid.
func NewInvoice(
	id kernel.ID,
	number document.Number,
	shipmentID, customerID kernel.ID,
	invoiceDate, dueDate time.Time,
	amounts Amounts,
) (*Invoice, error) {
	inv := &Invoice{
		paymentStatus: Pending,
		paidAmount:    decimal.Zero,
		createdAt:     invoiceDate.UTC(),
		updatedAt:     invoiceDate.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setNumber(number),
		inv.setParties(shipmentID, customerID),
		inv.setDates(invoiceDate, dueDate),
		inv.setAmounts(amounts),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// State is the full persisted form of an invoice.
type State struct {
	ID            kernel.ID
	Number        string
	ShipmentID    kernel.ID
	CustomerID    kernel.ID
	InvoiceDate   time.Time
	DueDate       time.Time
	Amounts       Amounts
	PaymentStatus PaymentStatus
	PaidAmount    decimal.Decimal
	PaidDate      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

func RestoreInvoice(st State) (*Invoice, error) {
	number, err := document.ParseNumber(st.Number)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		createdAt:     st.CreatedAt.UTC(),
		updatedAt:     st.UpdatedAt.UTC(),
		version:       st.Version,
		isConstructed: true,
	}
	if st.PaidDate != nil {
		paid := st.PaidDate.UTC()
		inv.paidDate = &paid
	}

	if err = errors.Join(
		inv.setID(st.ID),
		inv.setNumber(number),
		inv.setParties(st.ShipmentID, st.CustomerID),
		inv.setDates(st.InvoiceDate, st.DueDate),
		inv.setAmounts(st.Amounts),
		inv.setPaymentStatus(st.PaymentStatus),
		inv.setPaidAmount(st.PaidAmount),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.ID                { return i.id }
func (i *Invoice) Number() document.Number      { return i.number }
func (i *Invoice) ShipmentID() kernel.ID        { return i.shipmentID }
func (i *Invoice) CustomerID() kernel.ID        { return i.customerID }
func (i *Invoice) InvoiceDate() time.Time       { return i.invoiceDate }
func (i *Invoice) DueDate() time.Time           { return i.dueDate }
func (i *Invoice) Amounts() Amounts             { return i.amounts }
func (i *Invoice) SubTotal() decimal.Decimal    { return i.amounts.SubTotal }
func (i *Invoice) TaxAmount() decimal.Decimal   { return i.amounts.TaxAmount }
func (i *Invoice) TotalAmount() decimal.Decimal { return i.amounts.TotalAmount }
func (i *Invoice) PaymentStatus() PaymentStatus { return i.paymentStatus }
func (i *Invoice) PaidAmount() decimal.Decimal  { return i.paidAmount }
func (i *Invoice) PaidDate() *time.Time         { return i.paidDate }
func (i *Invoice) CreatedAt() time.Time         { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time         { return i.updatedAt }
func (i *Invoice) Version() int64               { return i.version }

// IsActive reports whether the invoice counts as the shipment's invoice.
func (i *Invoice) IsActive() bool {
	return i.paymentStatus != Cancelled
}

// MarkPersisted records the version the repository stored.
func (i *Invoice) MarkPersisted(version int64) {
	i.version = version
}

// UpdatePayment sets the payment status and paid amount. The first move to
// Paid stamps paidDate.
func (i *Invoice) UpdatePayment(status PaymentStatus, paidAmount decimal.Decimal, now time.Time) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := kernel.ValidateNonNegative("paidAmount", paidAmount); err != nil {
		return err
	}

	next, err := i.paymentStatus.TransitionTo(status)
	if err != nil {
		return err
	}

	i.paymentStatus = next
	i.paidAmount = kernel.Round2(paidAmount)
	i.updatedAt = now.UTC()
	if next == Paid && i.paidDate == nil {
		paid := now.UTC()
		i.paidDate = &paid
	}
	return nil
}

// IsOverdueAt reports whether a Pending invoice is past its due date at now.
func (i *Invoice) IsOverdueAt(now time.Time) bool {
	return i.paymentStatus == Pending && now.After(i.dueDate)
}

// MarkOverdue moves a Pending invoice past its due date to Overdue. It
// returns false when nothing changed.
func (i *Invoice) MarkOverdue(now time.Time) bool {
	if !i.IsOverdueAt(now) {
		return false
	}
	i.paymentStatus = Overdue
	i.updatedAt = now.UTC()
	return true
}

func (i *Invoice) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setNumber(number document.Number) error {
	if number.IsZero() {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	if number.Prefix() != document.InvoicePrefix {
		return errs.NewValueIsInvalidErrorWithCause(
			"invoiceNumber",
			fmt.Errorf("%s does not carry the %s prefix", number, document.InvoicePrefix),
		)
	}
	i.number = number
	return nil
}

func (i *Invoice) setParties(shipmentID, customerID kernel.ID) error {
	if err := errors.Join(shipmentID.Validate(), customerID.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipmentId/customerId", err)
	}
	i.shipmentID = shipmentID
	i.customerID = customerID
	return nil
}

func (i *Invoice) setDates(invoiceDate, dueDate time.Time) error {
	if invoiceDate.IsZero() {
		return errs.NewValueIsRequiredError("invoiceDate")
	}
	if dueDate.Before(invoiceDate) {
		return errs.NewValueIsInvalidErrorWithCause("dueDate", fmt.Errorf("%s is before invoice date %s",
			dueDate.Format(time.RFC3339), invoiceDate.Format(time.RFC3339)))
	}
	i.invoiceDate = invoiceDate.UTC()
	i.dueDate = dueDate.UTC()
	return nil
}

func (i *Invoice) setAmounts(a Amounts) error {
	if err := a.validate(); err != nil {
		return err
	}
	i.amounts = a
	return nil
}

func (i *Invoice) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.paymentStatus = status
	return nil
}

func (i *Invoice) setPaidAmount(amount decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("paidAmount", amount); err != nil {
		return err
	}
	i.paidAmount = amount
	return nil
}
