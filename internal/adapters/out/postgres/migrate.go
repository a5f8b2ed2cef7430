package postgres

import (
	"context"
	"fmt"

	"freight/internal/adapters/out/postgres/invoicerepo"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/adapters/out/postgres/sequencerepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Partial unique indexes are understood by both PostgreSQL and SQLite.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_pricing_rules_active_mode
		ON pricing_rules (transport_mode) WHERE is_active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_active_shipment
		ON invoices (shipment_id) WHERE payment_status <> 'Cancelled'`,
}

// Models lists the persisted DTOs in dependency order.
func Models() []any {
	return []any{
		&pricingrepo.PricingRuleDTO{},
		&sequencerepo.DocumentSequenceDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.StatusHistoryDTO{},
		&invoicerepo.InvoiceDTO{},
	}
}

// TableNames lists the tables created by Migrate.
func TableNames() []string {
	return []string{
		"pricing_rules",
		"document_sequences",
		"shipments",
		"shipment_status_histories",
		"invoices",
	}
}

// Migrate creates or upgrades the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
