package shipment_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	number, err := document.NewNumber(document.ShipmentPrefix, bookedAt, 1)
	require.NoError(t, err)

	s, err := shipment.NewShipment(
		101,
		number,
		7,
		9,
		shipment.Route{
			OriginCity:         "New York",
			OriginCountry:      "USA",
			DestinationCity:    "Los Angeles",
			DestinationCountry: "USA",
		},
		shipment.Cargo{
			TransportMode: kernel.Air,
			Weight:        decimal.RequireFromString("150.5"),
			Volume:        decimal.RequireFromString("2.5"),
			Description:   "Electronics",
		},
		decimal.RequireFromString("2482.50"),
		time.Time{},
		nil,
		1,
		bookedAt,
	)
	require.NoError(t, err)
	return s
}

func TestNewShipment(t *testing.T) {
	s := newTestShipment(t)

	require.NoError(t, s.Validate())
	assert.Equal(t, "SHP-20240315-001", s.Number().String())
	assert.Equal(t, shipment.Booked, s.Status())
	assert.Equal(t, bookedAt, s.BookingDate())
	assert.Equal(t, int64(1), s.Version())
	assert.Nil(t, s.ActualDeliveryDate())
	assert.True(t, s.ActualCost().IsZero())

	history := s.PendingHistory()
	require.Len(t, history, 1)
	assert.Equal(t, shipment.Booked, history[0].Status())
	assert.Equal(t, shipment.InitialRemarks, history[0].Remarks())
	assert.Equal(t, kernel.ID(1), history[0].UpdatedBy())
	assert.Equal(t, kernel.ID(101), history[0].ShipmentID())
}

func TestNewShipment_Validation(t *testing.T) {
	number, err := document.NewNumber(document.ShipmentPrefix, bookedAt, 1)
	require.NoError(t, err)
	invoiceNumber, err := document.NewNumber(document.InvoicePrefix, bookedAt, 1)
	require.NoError(t, err)

	validCargo := shipment.Cargo{TransportMode: kernel.Sea, Weight: decimal.NewFromInt(10), Volume: decimal.Zero}

	tests := []struct {
		name   string
		id     kernel.ID
		number document.Number
		cargo  shipment.Cargo
		cost   decimal.Decimal
		field  string
	}{
		{name: "missing id", id: 0, number: number, cargo: validCargo, cost: decimal.Zero, field: "id"},
		{name: "missing number", id: 1, number: document.Number{}, cargo: validCargo, cost: decimal.Zero, field: "shipmentNumber"},
		{name: "invoice number", id: 1, number: invoiceNumber, cargo: validCargo, cost: decimal.Zero, field: "shipmentNumber"},
		{
			name:   "zero weight",
			id:     1,
			number: number,
			cargo:  shipment.Cargo{TransportMode: kernel.Sea, Weight: decimal.Zero},
			cost:   decimal.Zero,
			field:  "weight",
		},
		{
			name:   "unknown mode",
			id:     1,
			number: number,
			cargo:  shipment.Cargo{Weight: decimal.NewFromInt(1)},
			cost:   decimal.Zero,
			field:  "transportMode",
		},
		{name: "negative cost", id: 1, number: number, cargo: validCargo, cost: decimal.NewFromInt(-1), field: "estimatedCost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shipment.NewShipment(tt.id, tt.number, 1, 1, shipment.Route{}, tt.cargo, tt.cost,
				time.Time{}, nil, 1, bookedAt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestShipment_Transition(t *testing.T) {
	t.Run("full lifecycle appends one entry per change", func(t *testing.T) {
		s := newTestShipment(t)
		s.MarkPersisted(1)
		require.Empty(t, s.PendingHistory())

		inTransitAt := bookedAt.Add(2 * time.Hour)
		entry, err := s.Transition(shipment.InTransit, " departed JFK ", 5, inTransitAt)
		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, entry.Status())
		assert.Equal(t, "departed JFK", entry.Remarks())
		assert.Equal(t, kernel.ID(5), entry.UpdatedBy())
		assert.Equal(t, inTransitAt, s.UpdatedAt())
		assert.Nil(t, s.ActualDeliveryDate())

		deliveredAt := bookedAt.Add(48 * time.Hour)
		_, err = s.Transition(shipment.Delivered, "", 5, deliveredAt)
		require.NoError(t, err)
		require.NotNil(t, s.ActualDeliveryDate())
		assert.Equal(t, deliveredAt, *s.ActualDeliveryDate())

		assert.Len(t, s.PendingHistory(), 2)
	})

	t.Run("terminal statuses reject further changes", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Transition(shipment.Cancelled, "customer request", 1, bookedAt)
		require.NoError(t, err)

		for _, target := range shipment.Statuses() {
			_, err = s.Transition(target, "", 1, bookedAt)
			require.ErrorIs(t, err, shipment.ErrInvalidStatusTransition)
		}
		assert.Len(t, s.PendingHistory(), 2, "rejected transitions append nothing")
	})

	t.Run("booked cannot jump to delivered", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Transition(shipment.Delivered, "", 1, bookedAt)
		require.ErrorIs(t, err, shipment.ErrInvalidStatusTransition)
		assert.Equal(t, shipment.Booked, s.Status())
	})

	t.Run("restored delivery date is kept", func(t *testing.T) {
		earlier := bookedAt.Add(time.Hour)
		s, err := shipment.RestoreShipment(shipment.State{
			ID:                 5,
			Number:             "SHP-20240315-004",
			CustomerID:         1,
			VendorID:           2,
			Cargo:              shipment.Cargo{TransportMode: kernel.Road, Weight: decimal.NewFromInt(1)},
			EstimatedCost:      decimal.NewFromInt(200),
			ActualCost:         decimal.Zero,
			Status:             shipment.InTransit,
			BookingDate:        bookedAt,
			ActualDeliveryDate: &earlier,
			Version:            3,
		})
		require.NoError(t, err)
		require.Empty(t, s.PendingHistory())

		_, err = s.Transition(shipment.Delivered, "", 1, bookedAt.Add(72*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, earlier, *s.ActualDeliveryDate())
		assert.Equal(t, int64(3), s.Version())
	})
}

func TestShipment_RecordActualCost(t *testing.T) {
	s := newTestShipment(t)
	assert.True(t, decimal.RequireFromString("2482.50").Equal(s.InvoiceableAmount()))

	require.NoError(t, s.RecordActualCost(decimal.RequireFromString("2850.004"), bookedAt))
	assert.True(t, decimal.RequireFromString("2850.00").Equal(s.ActualCost()))
	assert.True(t, s.ActualCost().Equal(s.InvoiceableAmount()))

	require.ErrorIs(t, s.RecordActualCost(decimal.NewFromInt(-1), bookedAt), errs.ErrValueIsInvalid)

	_, err := s.Transition(shipment.Cancelled, "", 1, bookedAt)
	require.NoError(t, err)
	require.ErrorIs(t, s.RecordActualCost(decimal.NewFromInt(1), bookedAt), shipment.ErrInvalidStatusTransition)
}

func TestRestoreShipment_RejectsBadState(t *testing.T) {
	_, err := shipment.RestoreShipment(shipment.State{ID: 1, Number: "garbage"})
	require.ErrorIs(t, err, document.ErrNumberIsMalformed)

	_, err = shipment.RestoreShipment(shipment.State{
		ID:         1,
		Number:     "SHP-20240315-001",
		CustomerID: 1,
		VendorID:   1,
		Cargo:      shipment.Cargo{TransportMode: kernel.Air, Weight: decimal.NewFromInt(1)},
		Status:     shipment.Unknown,
	})
	require.Error(t, err)
}

func TestShipment_ZeroValue(t *testing.T) {
	var s shipment.Shipment
	require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
	_, err := s.Transition(shipment.InTransit, "", 1, bookedAt)
	require.ErrorIs(t, err, shipment.ErrShipmentIsNotConstructed)
}

func TestShipment_RecordedEvents(t *testing.T) {
	s := newTestShipment(t)
	s.MarkPersisted(1)
	_, err := s.Transition(shipment.InTransit, "loaded", 3, bookedAt.Add(time.Hour))
	require.NoError(t, err)

	assert.Len(t, s.PendingHistory(), 1)
	assert.Len(t, s.RecordedHistory(), 2)

	events := s.RecordedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, shipment.Booked, events[0].Status)
	assert.Equal(t, shipment.InTransit, events[1].Status)
	assert.Equal(t, "SHP-20240315-001", events[1].ShipmentNumber)
	assert.Equal(t, kernel.ID(7), events[1].CustomerID)
	assert.Equal(t, kernel.ID(3), events[1].UpdatedBy)
	assert.Equal(t, "loaded", events[1].Remarks)
}
