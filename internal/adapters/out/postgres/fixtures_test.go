package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
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

// openSQLite returns a migrated private in-memory database. A single
// connection serialises transactions the way row locks do on PostgreSQL.
func openSQLite(t *testing.T) *gorm.DB {
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

func newShipment(t *testing.T, id kernel.ID, seq int) *shipment.Shipment {
	t.Helper()

	number, err := document.NewNumber(document.ShipmentPrefix, day, seq)
	require.NoError(t, err)

	expected := day.AddDate(0, 0, 7)
	s, err := shipment.NewShipment(
		id,
		number,
		7,
		9,
		shipment.Route{
			OriginCity:         "Rotterdam",
			OriginCountry:      "Netherlands",
			DestinationCity:    "Singapore",
			DestinationCountry: "Singapore",
		},
		shipment.Cargo{
			TransportMode: kernel.Sea,
			Weight:        decimal.RequireFromString("1250.125"),
			Volume:        decimal.RequireFromString("12.5"),
			Description:   "Auto parts",
		},
		decimal.RequireFromString("10300.00"),
		day,
		&expected,
		1,
		day,
	)
	require.NoError(t, err)
	return s
}

func newInvoice(t *testing.T, id, shipmentID kernel.ID, seq int, issuedAt time.Time) *invoice.Invoice {
	t.Helper()

	number, err := document.NewNumber(document.InvoicePrefix, issuedAt, seq)
	require.NoError(t, err)

	inv, err := invoice.NewInvoice(
		id,
		number,
		shipmentID,
		7,
		issuedAt,
		issuedAt.AddDate(0, 0, services.PaymentTermDays),
		services.InvoiceAmounts(decimal.RequireFromString("10300.00")),
	)
	require.NoError(t, err)
	return inv
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

type recordingPublisher struct {
	mu     sync.Mutex
	events []shipment.StatusChanged
	err    error
}

func (p *recordingPublisher) PublishStatusChanged(_ context.Context, events ...shipment.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) published() []shipment.StatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shipment.StatusChanged(nil), p.events...)
}
