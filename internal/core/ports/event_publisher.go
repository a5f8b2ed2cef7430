package ports

import (
	"context"

	"freight/internal/core/domain/model/shipment"
)

// ShipmentEventPublisher delivers shipment integration events to the outside
// world. It is called only after the producing transaction committed.
type ShipmentEventPublisher interface {
	PublishStatusChanged(ctx context.Context, events ...shipment.StatusChanged) error
}
