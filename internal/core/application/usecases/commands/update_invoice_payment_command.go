package commands

import (
	"errors"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateInvoicePaymentCommandIsNotConstructed = errors.New(
	"UpdateInvoicePaymentCommand must be created via NewUpdateInvoicePaymentCommand constructor",
)

// UpdateInvoicePaymentCommand records the payment state of an invoice.
type UpdateInvoicePaymentCommand struct { //nolint:recvcheck //using for validation
	invoiceID  kernel.ID
	status     invoice.PaymentStatus
	paidAmount decimal.Decimal

	guard guard.ConstructorGuard
}

func NewUpdateInvoicePaymentCommand(
	invoiceID kernel.ID,
	status invoice.PaymentStatus,
	paidAmount decimal.Decimal,
) (UpdateInvoicePaymentCommand, error) {
	cmd := UpdateInvoicePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInvoiceID(invoiceID),
		cmd.setStatus(status),
		cmd.setPaidAmount(paidAmount),
	); err != nil {
		return UpdateInvoicePaymentCommand{}, err
	}

	return cmd, nil
}

func (c UpdateInvoicePaymentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInvoicePaymentCommandIsNotConstructed)
}

func (c UpdateInvoicePaymentCommand) InvoiceID() kernel.ID                 { return c.invoiceID }
func (c UpdateInvoicePaymentCommand) PaymentStatus() invoice.PaymentStatus { return c.status }
func (c UpdateInvoicePaymentCommand) PaidAmount() decimal.Decimal          { return c.paidAmount }

func (c *UpdateInvoicePaymentCommand) setInvoiceID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.invoiceID = id
	return nil
}

func (c *UpdateInvoicePaymentCommand) setStatus(status invoice.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *UpdateInvoicePaymentCommand) setPaidAmount(amount decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("paidAmount", amount); err != nil {
		return err
	}
	c.paidAmount = amount
	return nil
}
