package commands

import (
	"context"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/metrics"
)

// CreateShipmentCommandHandler books shipments. Rule lookup, cost calculation,
// SHP numbering and the insert of the shipment with its initial history entry
// happen in one transaction, so a failed booking never consumes a number.
type CreateShipmentCommandHandler struct {
	uowFactory BookingUoWFactory
	calculator services.CostCalculator
	clock      clock.Clock
	metrics    *metrics.Metrics
}

func NewCreateShipmentCommandHandler(
	uowFactory BookingUoWFactory,
	calculator services.CostCalculator,
	clk clock.Clock,
	m *metrics.Metrics,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		clock:      clk,
		metrics:    m,
	}
}

// Handle processes the booking command.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	cargo := cmd.Cargo()
	rule, err := uow.PricingRuleRepository().FindActiveRule(ctx, cargo.TransportMode)
	if err != nil {
		h.metrics.CostCalculated(cargo.TransportMode.String(), err)
		return err
	}

	breakdown, err := h.calculator.Calculate(rule, cargo.Weight, cmd.DistanceKm())
	h.metrics.CostCalculated(cargo.TransportMode.String(), err)
	if err != nil {
		return err
	}

	number, err := issueNumber(ctx, uow.DocumentSequenceRepository(), document.ShipmentPrefix, now, h.metrics)
	if err != nil {
		return err
	}

	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		number,
		cmd.CustomerID(),
		cmd.VendorID(),
		cmd.Route(),
		cargo,
		breakdown.EstimatedCost,
		cmd.BookingDate(),
		cmd.ExpectedDeliveryDate(),
		cmd.Actor(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
