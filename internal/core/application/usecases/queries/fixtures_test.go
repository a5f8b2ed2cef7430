package queries_test

import (
	"fmt"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/invoicerepo"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var day = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres_adapter.Migrate(t.Context(), db))
	return db
}

func seedRules(t *testing.T, db *gorm.DB) {
	t.Helper()

	repo := pricingrepo.NewGormPricingRuleRepository(db)
	for i, rate := range pricing.ReferenceRates() {
		rule, err := pricing.NewRule(kernel.ID(i+1), rate.TransportMode, rate.BaseRatePerKg, rate.DistanceMultiplier, rate.MinimumCharge)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), rule))
	}
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

// seedShipment books a shipment at bookedAt for customer and walks it through
// statuses, one hour apart.
func seedShipment(
	t *testing.T,
	db *gorm.DB,
	id kernel.ID,
	customer kernel.ID,
	bookedAt time.Time,
	statuses ...shipment.Status,
) *shipment.Shipment {
	t.Helper()

	number, err := document.NewNumber(document.ShipmentPrefix, bookedAt, int(id%1000))
	require.NoError(t, err)

	s, err := shipment.NewShipment(
		id,
		number,
		customer,
		9,
		shipment.Route{
			OriginCity:         "Hamburg",
			OriginCountry:      "Germany",
			DestinationCity:    "Lyon",
			DestinationCountry: "France",
		},
		shipment.Cargo{
			TransportMode: kernel.Road,
			Weight:        decimal.RequireFromString("800.5"),
			Volume:        decimal.NewFromInt(4),
			Description:   "Machinery",
		},
		decimal.RequireFromString("8030.00"),
		bookedAt,
		nil,
		1,
		bookedAt,
	)
	require.NoError(t, err)

	at := bookedAt
	for _, status := range statuses {
		at = at.Add(time.Hour)
		_, err = s.Transition(status, "moved to "+status.String(), 2, at)
		require.NoError(t, err)
	}

	require.NoError(t, shipmentrepo.NewGormShipmentRepository(db, noopTracker{}).Add(t.Context(), s))
	return s
}

func seedInvoice(t *testing.T, db *gorm.DB, id kernel.ID, s *shipment.Shipment, issuedAt time.Time) *invoice.Invoice {
	t.Helper()

	number, err := document.NewNumber(document.InvoicePrefix, issuedAt, int(id%1000))
	require.NoError(t, err)

	inv, err := services.NewInvoiceFactory().CreateForShipment(s, id, number, issuedAt)
	require.NoError(t, err)
	require.NoError(t, invoicerepo.NewGormInvoiceRepository(db).Add(t.Context(), inv))
	return inv
}
