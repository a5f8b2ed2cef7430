package commands

import (
	"context"

	"freight/internal/pkg/clock"
)

// UpdateInvoicePaymentCommandHandler applies payment updates. The first move
// to Paid stamps the paid date.
type UpdateInvoicePaymentCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      clock.Clock
}

func NewUpdateInvoicePaymentCommandHandler(uowFactory InvoiceUoWFactory, clk clock.Clock) UpdateInvoicePaymentCommandHandler {
	return UpdateInvoicePaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h *UpdateInvoicePaymentCommandHandler) Handle(ctx context.Context, cmd UpdateInvoicePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.Get(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	if err = inv.UpdatePayment(cmd.PaymentStatus(), cmd.PaidAmount(), h.clock.Now()); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
