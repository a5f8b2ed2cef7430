package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
)

// InvoiceRepository persists invoice aggregates.
type InvoiceRepository interface {
	// Add stores a new invoice.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update stores the changed invoice under optimistic versioning, with the
	// same error contract as ShipmentRepository.Update.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// Get loads an invoice by id.
	Get(ctx context.Context, id kernel.ID) (*invoice.Invoice, error)

	// FindActiveByShipment returns the non-cancelled invoice of a shipment,
	// or nil when the shipment has none.
	FindActiveByShipment(ctx context.Context, shipmentID kernel.ID) (*invoice.Invoice, error)

	// ListOverdueCandidates returns up to limit Pending invoices due before now,
	// oldest due date first.
	ListOverdueCandidates(ctx context.Context, now time.Time, limit int) ([]*invoice.Invoice, error)
}
