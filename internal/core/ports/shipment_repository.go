package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipment aggregates together with their
// status history.
type ShipmentRepository interface {
	// Add stores a newly booked shipment and its pending history entries.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update stores the changed shipment under optimistic versioning and
	// appends its pending history entries.
	// Returns errs.ObjectNotFoundError if the row is gone and
	// errs.VersionIsInvalidError if another writer got there first.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a shipment by id. History is not loaded.
	Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)
}
