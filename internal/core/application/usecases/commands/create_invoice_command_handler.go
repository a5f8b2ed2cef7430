package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/metrics"
)

// CreateInvoiceCommandHandler issues invoices through the InvoiceFactory.
// The invoice is numbered with the INV prefix for the day it is issued.
type CreateInvoiceCommandHandler struct {
	uowFactory InvoicingUoWFactory
	factory    services.InvoiceFactory
	clock      clock.Clock
	metrics    *metrics.Metrics
}

func NewCreateInvoiceCommandHandler(
	uowFactory InvoicingUoWFactory,
	factory services.InvoiceFactory,
	clk clock.Clock,
	m *metrics.Metrics,
) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{
		uowFactory: uowFactory,
		factory:    factory,
		clock:      clk,
		metrics:    m,
	}
}

// Handle fails with errs.ObjectNotFoundError for an unknown shipment and with
// services.ErrShipmentNotInvoiceable when the shipment is cancelled or already
// carries a non-cancelled invoice.
func (h *CreateInvoiceCommandHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if _, err = issueInvoice(ctx, uow, h.factory, s, cmd.InvoiceID(), now, h.metrics); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
