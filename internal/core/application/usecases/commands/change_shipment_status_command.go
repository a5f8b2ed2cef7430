package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const maxRemarksLength = 500

var ErrChangeShipmentStatusCommandIsNotConstructed = errors.New(
	"ChangeShipmentStatusCommand must be created via NewChangeShipmentStatusCommand constructor",
)

// ChangeShipmentStatusCommand moves a shipment along its lifecycle.
// ActualCost, when present, is recorded together with the transition.
type ChangeShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	status     shipment.Status
	remarks    string
	actualCost *decimal.Decimal
	actor      kernel.ID

	guard guard.ConstructorGuard
}

func NewChangeShipmentStatusCommand(
	shipmentID kernel.ID,
	status shipment.Status,
	remarks string,
	actualCost *decimal.Decimal,
	actor kernel.ID,
) (ChangeShipmentStatusCommand, error) {
	cmd := ChangeShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
		cmd.setRemarks(remarks),
		cmd.setActualCost(actualCost),
		cmd.setActor(actor),
	); err != nil {
		return ChangeShipmentStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeShipmentStatusCommandIsNotConstructed)
}

func (c ChangeShipmentStatusCommand) ShipmentID() kernel.ID        { return c.shipmentID }
func (c ChangeShipmentStatusCommand) Status() shipment.Status      { return c.status }
func (c ChangeShipmentStatusCommand) Remarks() string              { return c.remarks }
func (c ChangeShipmentStatusCommand) ActualCost() *decimal.Decimal { return c.actualCost }
func (c ChangeShipmentStatusCommand) Actor() kernel.ID             { return c.actor }

func (c *ChangeShipmentStatusCommand) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *ChangeShipmentStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *ChangeShipmentStatusCommand) setRemarks(remarks string) error {
	remarks = strings.TrimSpace(remarks)
	if len(remarks) > maxRemarksLength {
		return errs.NewValueIsOutOfRangeError("remarks", len(remarks), 0, maxRemarksLength)
	}
	c.remarks = remarks
	return nil
}

func (c *ChangeShipmentStatusCommand) setActualCost(cost *decimal.Decimal) error {
	if cost == nil {
		return nil
	}
	if err := kernel.ValidateNonNegative("actualCost", *cost); err != nil {
		return err
	}
	v := *cost
	c.actualCost = &v
	return nil
}

func (c *ChangeShipmentStatusCommand) setActor(actor kernel.ID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
