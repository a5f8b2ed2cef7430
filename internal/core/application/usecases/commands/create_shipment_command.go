package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentParams are the raw booking inputs.
type CreateShipmentParams struct {
	ShipmentID           kernel.ID
	CustomerID           kernel.ID
	VendorID             kernel.ID
	Route                shipment.Route
	Cargo                shipment.Cargo
	DistanceKm           decimal.Decimal
	BookingDate          time.Time
	ExpectedDeliveryDate *time.Time
	Actor                kernel.ID
}

// CreateShipmentCommand books a shipment. The estimated cost is computed from
// the active pricing rule of the cargo's transport mode and DistanceKm.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(CreateShipmentParams{
//	    ShipmentID: ids.NextID(),
//	    CustomerID: 7,
//	    VendorID:   9,
//	    Route:      shipment.Route{OriginCity: "Dubai", OriginCountry: "UAE", ...},
//	    Cargo:      shipment.Cargo{TransportMode: kernel.Air, Weight: decimal.NewFromFloat(150.5)},
//	    DistanceKm: decimal.NewFromInt(4500),
//	    Actor:      1,
//	})
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	params CreateShipmentParams

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(p CreateShipmentParams) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(p.ShipmentID, p.CustomerID, p.VendorID, p.Actor),
		cmd.setRoute(p.Route),
		cmd.setCargo(p.Cargo),
		cmd.setDistance(p.DistanceKm),
		cmd.setDates(p.BookingDate, p.ExpectedDeliveryDate),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.ID            { return c.params.ShipmentID }
func (c CreateShipmentCommand) CustomerID() kernel.ID            { return c.params.CustomerID }
func (c CreateShipmentCommand) VendorID() kernel.ID              { return c.params.VendorID }
func (c CreateShipmentCommand) Route() shipment.Route            { return c.params.Route }
func (c CreateShipmentCommand) Cargo() shipment.Cargo            { return c.params.Cargo }
func (c CreateShipmentCommand) DistanceKm() decimal.Decimal      { return c.params.DistanceKm }
func (c CreateShipmentCommand) BookingDate() time.Time           { return c.params.BookingDate }
func (c CreateShipmentCommand) ExpectedDeliveryDate() *time.Time { return c.params.ExpectedDeliveryDate }
func (c CreateShipmentCommand) Actor() kernel.ID                 { return c.params.Actor }

func (c *CreateShipmentCommand) setIDs(shipmentID, customerID, vendorID, actor kernel.ID) error {
	if err := errors.Join(
		shipmentID.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		actor.Validate(),
	); err != nil {
		return err
	}

	c.params.ShipmentID = shipmentID
	c.params.CustomerID = customerID
	c.params.VendorID = vendorID
	c.params.Actor = actor
	return nil
}

func (c *CreateShipmentCommand) setRoute(route shipment.Route) error {
	route.OriginCity = strings.TrimSpace(route.OriginCity)
	route.OriginCountry = strings.TrimSpace(route.OriginCountry)
	route.DestinationCity = strings.TrimSpace(route.DestinationCity)
	route.DestinationCountry = strings.TrimSpace(route.DestinationCountry)

	var err error
	for _, field := range []struct{ name, value string }{
		{"originCity", route.OriginCity},
		{"originCountry", route.OriginCountry},
		{"destinationCity", route.DestinationCity},
		{"destinationCountry", route.DestinationCountry},
	} {
		if field.value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(field.name))
		}
	}
	if err != nil {
		return err
	}

	c.params.Route = route
	return nil
}

func (c *CreateShipmentCommand) setCargo(cargo shipment.Cargo) error {
	if err := errors.Join(
		cargo.TransportMode.Validate(),
		kernel.ValidatePositive("weight", cargo.Weight),
		kernel.ValidateNonNegative("volume", cargo.Volume),
	); err != nil {
		return err
	}

	cargo.Description = strings.TrimSpace(cargo.Description)
	c.params.Cargo = cargo
	return nil
}

func (c *CreateShipmentCommand) setDistance(distanceKm decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("distanceKm", distanceKm); err != nil {
		return err
	}

	c.params.DistanceKm = distanceKm
	return nil
}

func (c *CreateShipmentCommand) setDates(bookingDate time.Time, expected *time.Time) error {
	if expected != nil && !bookingDate.IsZero() && expected.Before(bookingDate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedDeliveryDate",
			errors.New("expected delivery date precedes the booking date"),
		)
	}

	c.params.BookingDate = bookingDate
	c.params.ExpectedDeliveryDate = expected
	return nil
}
