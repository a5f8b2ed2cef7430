package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

// Route is where the cargo travels from and to.
type Route struct {
	OriginCity         string
	OriginCountry      string
	DestinationCity    string
	DestinationCountry string
}

// Cargo describes what is carried and how.
type Cargo struct {
	TransportMode kernel.TransportMode
	Weight        decimal.Decimal
	Volume        decimal.Decimal
	Description   string
}

func (c Cargo) validate() error {
	return errors.Join(
		c.TransportMode.Validate(),
		kernel.ValidatePositive("weight", c.Weight),
		kernel.ValidateNonNegative("volume", c.Volume),
	)
}

// Shipment is the aggregate root of a booked consignment.
//
// Invariants:
//   - the shipment number is assigned at booking and never changes
//   - status moves only along the lifecycle table of Status
//   - every status change appends exactly one history entry
//   - actualDeliveryDate is stamped the first time the shipment is delivered
type Shipment struct {
	id                   kernel.ID
	number               document.Number
	customerID           kernel.ID
	vendorID             kernel.ID
	route                Route
	cargo                Cargo
	estimatedCost        decimal.Decimal
	actualCost           decimal.Decimal
	status               Status
	bookingDate          time.Time
	expectedDeliveryDate *time.Time
	actualDeliveryDate   *time.Time
	createdBy            kernel.ID
	createdAt            time.Time
	updatedAt            time.Time
	version              int64

	history        []HistoryEntry
	flushedHistory int

	isConstructed bool
}

// NewShipment books a shipment. The shipment starts Booked and carries its
// initial "Shipment created" history entry in PendingHistory. A zero
// bookingDate defaults to now.
func NewShipment(
	id kernel.ID,
	number document.Number,
	customerID, vendorID kernel.ID,
	route Route,
	cargo Cargo,
	estimatedCost decimal.Decimal,
	bookingDate time.Time,
	expectedDeliveryDate *time.Time,
	actor kernel.ID,
	now time.Time,
) (*Shipment, error) {
	if bookingDate.IsZero() {
		bookingDate = now
	}

	s := &Shipment{
		route:                route,
		actualCost:           decimal.Zero,
		status:               Booked,
		bookingDate:          bookingDate.UTC(),
		createdBy:            actor,
		expectedDeliveryDate: utcPtr(expectedDeliveryDate),
		createdAt:            now.UTC(),
		updatedAt:            now.UTC(),
		version:              1,
		isConstructed:        true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setNumber(number),
		s.setParties(customerID, vendorID),
		s.setCargo(cargo),
		s.setEstimatedCost(estimatedCost),
	); err != nil {
		return nil, err
	}

	s.history = append(s.history, newHistoryEntry(s.id, Booked, InitialRemarks, actor, now))
	return s, nil
}

// State is the full persisted form of a shipment, used to restore it.
type State struct {
	ID                   kernel.ID
	Number               string
	CustomerID           kernel.ID
	VendorID             kernel.ID
	Route                Route
	Cargo                Cargo
	EstimatedCost        decimal.Decimal
	ActualCost           decimal.Decimal
	Status               Status
	BookingDate          time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedBy            kernel.ID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int64
}

// RestoreShipment rebuilds a shipment read from storage. No history entry is
// produced.
func RestoreShipment(st State) (*Shipment, error) {
	number, err := document.ParseNumber(st.Number)
	if err != nil {
		return nil, err
	}

	s := &Shipment{
		route:                st.Route,
		bookingDate:          st.BookingDate.UTC(),
		expectedDeliveryDate: utcPtr(st.ExpectedDeliveryDate),
		actualDeliveryDate:   utcPtr(st.ActualDeliveryDate),
		createdBy:            st.CreatedBy,
		createdAt:            st.CreatedAt.UTC(),
		updatedAt:            st.UpdatedAt.UTC(),
		version:              st.Version,
		isConstructed:        true,
	}

	if err = errors.Join(
		s.setID(st.ID),
		s.setNumber(number),
		s.setParties(st.CustomerID, st.VendorID),
		s.setCargo(st.Cargo),
		s.setEstimatedCost(st.EstimatedCost),
		s.setActualCost(st.ActualCost),
		s.setStatus(st.Status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.ID                       { return s.id }
func (s *Shipment) Number() document.Number             { return s.number }
func (s *Shipment) CustomerID() kernel.ID               { return s.customerID }
func (s *Shipment) VendorID() kernel.ID                 { return s.vendorID }
func (s *Shipment) Route() Route                        { return s.route }
func (s *Shipment) Cargo() Cargo                        { return s.cargo }
func (s *Shipment) TransportMode() kernel.TransportMode { return s.cargo.TransportMode }
func (s *Shipment) EstimatedCost() decimal.Decimal      { return s.estimatedCost }
func (s *Shipment) ActualCost() decimal.Decimal         { return s.actualCost }
func (s *Shipment) Status() Status                      { return s.status }
func (s *Shipment) BookingDate() time.Time              { return s.bookingDate }
func (s *Shipment) ExpectedDeliveryDate() *time.Time    { return s.expectedDeliveryDate }
func (s *Shipment) ActualDeliveryDate() *time.Time      { return s.actualDeliveryDate }
func (s *Shipment) CreatedBy() kernel.ID                { return s.createdBy }
func (s *Shipment) CreatedAt() time.Time                { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time                { return s.updatedAt }

// Version is the optimistic concurrency token of the stored row.
func (s *Shipment) Version() int64 { return s.version }

// PendingHistory returns the entries not yet written to storage.
func (s *Shipment) PendingHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history[s.flushedHistory:]...)
}

// RecordedHistory returns every entry produced since the shipment was booked
// or restored, stored or not.
func (s *Shipment) RecordedHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

// MarkPersisted is called by the repository once the row and the pending
// history are stored under version.
func (s *Shipment) MarkPersisted(version int64) {
	s.version = version
	s.flushedHistory = len(s.history)
}

// InvoiceableAmount is the amount an invoice is raised on: the actual cost
// when one was recorded, otherwise the estimate.
func (s *Shipment) InvoiceableAmount() decimal.Decimal {
	if s.actualCost.IsPositive() {
		return s.actualCost
	}
	return s.estimatedCost
}

// Transition moves the shipment to target and appends the history entry it
// returns. Entering Delivered stamps actualDeliveryDate when it is unset.
func (s *Shipment) Transition(target Status, remarks string, actor kernel.ID, now time.Time) (HistoryEntry, error) {
	if err := s.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	next, err := s.status.TransitionTo(target)
	if err != nil {
		return HistoryEntry{}, err
	}

	s.status = next
	s.updatedAt = now.UTC()
	if next == Delivered && s.actualDeliveryDate == nil {
		delivered := now.UTC()
		s.actualDeliveryDate = &delivered
	}

	entry := newHistoryEntry(s.id, next, strings.TrimSpace(remarks), actor, now)
	s.history = append(s.history, entry)
	return entry, nil
}

// RecordActualCost stores the realized cost. It is rejected once the shipment
// is cancelled.
func (s *Shipment) RecordActualCost(cost decimal.Decimal, now time.Time) error {
	if s.status == Cancelled {
		return fmt.Errorf("%w: actual cost cannot be recorded on a cancelled shipment", ErrInvalidStatusTransition)
	}
	if err := s.setActualCost(cost); err != nil {
		return err
	}
	s.updatedAt = now.UTC()
	return nil
}

func (s *Shipment) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setNumber(number document.Number) error {
	if number.IsZero() {
		return errs.NewValueIsRequiredError("shipmentNumber")
	}
	if number.Prefix() != document.ShipmentPrefix {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipmentNumber",
			fmt.Errorf("%s does not carry the %s prefix", number, document.ShipmentPrefix),
		)
	}
	s.number = number
	return nil
}

func (s *Shipment) setParties(customerID, vendorID kernel.ID) error {
	if err := errors.Join(customerID.Validate(), vendorID.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerId/vendorId", err)
	}
	s.customerID = customerID
	s.vendorID = vendorID
	return nil
}

func (s *Shipment) setCargo(cargo Cargo) error {
	if err := cargo.validate(); err != nil {
		return err
	}
	s.cargo = cargo
	return nil
}

func (s *Shipment) setEstimatedCost(cost decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("estimatedCost", cost); err != nil {
		return err
	}
	s.estimatedCost = kernel.Round2(cost)
	return nil
}

func (s *Shipment) setActualCost(cost decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("actualCost", cost); err != nil {
		return err
	}
	s.actualCost = kernel.Round2(cost)
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
