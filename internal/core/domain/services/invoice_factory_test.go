package services_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)

func newShipment(t *testing.T, estimated string) *shipment.Shipment {
	t.Helper()
	number, err := document.NewNumber(document.ShipmentPrefix, now, 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(10, number, 4, 5, shipment.Route{},
		shipment.Cargo{TransportMode: kernel.Air, Weight: dec("150.5"), Volume: dec("1")},
		dec(estimated), time.Time{}, nil, 1, now)
	require.NoError(t, err)
	return s
}

func invoiceNumber(t *testing.T) document.Number {
	t.Helper()
	n, err := document.NewNumber(document.InvoicePrefix, now, 1)
	require.NoError(t, err)
	return n
}

func TestInvoiceFactory_CreateForShipment(t *testing.T) {
	factory := services.NewInvoiceFactory()

	t.Run("uses estimate when no actual cost", func(t *testing.T) {
		s := newShipment(t, "2482.50")

		inv, err := factory.CreateForShipment(s, 77, invoiceNumber(t), now)
		require.NoError(t, err)

		assert.Equal(t, kernel.ID(77), inv.ID())
		assert.Equal(t, s.ID(), inv.ShipmentID())
		assert.Equal(t, s.CustomerID(), inv.CustomerID())
		assert.Equal(t, "INV-20240320-001", inv.Number().String())
		assert.True(t, dec("2482.50").Equal(inv.SubTotal()))
		assert.True(t, dec("446.85").Equal(inv.TaxAmount()))
		assert.True(t, dec("2929.35").Equal(inv.TotalAmount()))
		assert.Equal(t, invoice.Pending, inv.PaymentStatus())
		assert.True(t, inv.PaidAmount().IsZero())
		assert.Equal(t, now, inv.InvoiceDate())
		assert.Equal(t, 30*24*time.Hour, inv.DueDate().Sub(inv.InvoiceDate()))
	})

	t.Run("prefers recorded actual cost", func(t *testing.T) {
		s := newShipment(t, "2482.50")
		require.NoError(t, s.RecordActualCost(dec("2850.00"), now))

		inv, err := factory.CreateForShipment(s, 78, invoiceNumber(t), now)
		require.NoError(t, err)
		assert.True(t, dec("2850.00").Equal(inv.SubTotal()))
		assert.True(t, dec("3363.00").Equal(inv.TotalAmount()))
	})

	t.Run("cancelled shipment is not invoiceable", func(t *testing.T) {
		s := newShipment(t, "100")
		_, err := s.Transition(shipment.Cancelled, "", 1, now)
		require.NoError(t, err)

		_, err = factory.CreateForShipment(s, 79, invoiceNumber(t), now)
		require.ErrorIs(t, err, services.ErrShipmentNotInvoiceable)
	})

	t.Run("unconstructed shipment", func(t *testing.T) {
		_, err := factory.CreateForShipment(&shipment.Shipment{}, 80, invoiceNumber(t), now)
		require.ErrorIs(t, err, shipment.ErrShipmentIsNotConstructed)
	})
}

func TestInvoiceFactory_CreateForShipment_DatesInUTC(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Daylight saving starts on 2024-03-10, inside the payment term.
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, newYork)

	inv, err := services.NewInvoiceFactory().CreateForShipment(newShipment(t, "1000.00"), 77, invoiceNumber(t), issuedAt)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, inv.InvoiceDate().Location())
	assert.True(t, inv.InvoiceDate().Equal(issuedAt))
	assert.Equal(t, 30*24*time.Hour, inv.DueDate().Sub(inv.InvoiceDate()))
}

func TestInvoiceAmounts_Properties(t *testing.T) {
	for _, s := range []string{"0", "0.01", "0.05", "81", "299.995", "2482.50", "12345.67", "99999.99"} {
		a := services.InvoiceAmounts(dec(s))
		sub := a.SubTotal

		assert.True(t, kernel.Round2(sub.Mul(dec("1.18"))).Equal(a.TotalAmount), "total for %s", s)
		assert.True(t, kernel.Round2(sub.Mul(dec("0.18"))).Equal(a.TaxAmount), "tax for %s", s)
		assert.False(t, a.TotalAmount.LessThan(a.SubTotal))
	}

	a := services.InvoiceAmounts(decimal.RequireFromString("0.05"))
	assert.True(t, dec("0.01").Equal(a.TaxAmount), "0.009 rounds to 0.01")
	assert.True(t, dec("0.06").Equal(a.TotalAmount), "0.059 rounds to 0.06")
}
