package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// CreateInvoiceCommand issues the invoice of a shipment on demand.
type CreateInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID  kernel.ID
	shipmentID kernel.ID

	guard guard.ConstructorGuard
}

func NewCreateInvoiceCommand(invoiceID, shipmentID kernel.ID) (CreateInvoiceCommand, error) {
	cmd := CreateInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInvoiceID(invoiceID),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return CreateInvoiceCommand{}, err
	}

	return cmd, nil
}

func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

func (c CreateInvoiceCommand) InvoiceID() kernel.ID  { return c.invoiceID }
func (c CreateInvoiceCommand) ShipmentID() kernel.ID { return c.shipmentID }

func (c *CreateInvoiceCommand) setInvoiceID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.invoiceID = id
	return nil
}

func (c *CreateInvoiceCommand) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}
