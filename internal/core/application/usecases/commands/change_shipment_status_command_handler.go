package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/metrics"

	"go.uber.org/zap"
)

// autoInvoiceSavepoint isolates the invoice insert. A concurrent manual
// invoice makes the insert fail; the transition must still commit.
const autoInvoiceSavepoint = "auto_invoice"

// ChangeShipmentStatusCommandHandler applies lifecycle transitions.
// With autoInvoice enabled, a transition to Delivered also issues the
// shipment's invoice inside the same transaction.
type ChangeShipmentStatusCommandHandler struct {
	uowFactory  InvoicingUoWFactory
	factory     services.InvoiceFactory
	ids         kernel.IDGenerator
	clock       clock.Clock
	metrics     *metrics.Metrics
	autoInvoice bool
}

func NewChangeShipmentStatusCommandHandler(
	uowFactory InvoicingUoWFactory,
	factory services.InvoiceFactory,
	ids kernel.IDGenerator,
	clk clock.Clock,
	m *metrics.Metrics,
	autoInvoice bool,
) ChangeShipmentStatusCommandHandler {
	return ChangeShipmentStatusCommandHandler{
		uowFactory:  uowFactory,
		factory:     factory,
		ids:         ids,
		clock:       clk,
		metrics:     m,
		autoInvoice: autoInvoice,
	}
}

func (h *ChangeShipmentStatusCommandHandler) Handle(ctx context.Context, cmd ChangeShipmentStatusCommand) error {
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
	from := s.Status()

	if cost := cmd.ActualCost(); cost != nil {
		if err = s.RecordActualCost(*cost, now); err != nil {
			return err
		}
	}

	if _, err = s.Transition(cmd.Status(), cmd.Remarks(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}

	if h.autoInvoice && s.Status() == shipment.Delivered {
		var inv *invoice.Invoice
		issueErr := uow.Savepoint(ctx, autoInvoiceSavepoint, func() error {
			var err error
			inv, err = issueInvoice(ctx, uow, h.factory, s, h.ids.NextID(), now, h.metrics)
			return err
		})
		switch {
		case errors.Is(issueErr, services.ErrShipmentNotInvoiceable):
			logging.FromContext(ctx).Info("shipment already invoiced, skipping automatic invoice",
				zap.String("shipment", s.Number().String()),
			)
		case issueErr != nil:
			return issueErr
		default:
			logging.FromContext(ctx).Info("invoice issued on delivery",
				zap.String("shipment", s.Number().String()),
				zap.String("invoice", inv.Number().String()),
			)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.StatusTransition(from.String(), s.Status().String())
	return nil
}
