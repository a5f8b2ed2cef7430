package shipment

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

// StatusChanged is the integration event emitted for every history entry.
type StatusChanged struct {
	ShipmentID     kernel.ID
	ShipmentNumber string
	CustomerID     kernel.ID
	Status         Status
	Remarks        string
	UpdatedBy      kernel.ID
	OccurredAt     time.Time
}

// RecordedEvents turns RecordedHistory into integration events.
func (s *Shipment) RecordedEvents() []StatusChanged {
	events := make([]StatusChanged, 0, len(s.history))
	for _, h := range s.history {
		events = append(events, StatusChanged{
			ShipmentID:     s.id,
			ShipmentNumber: s.number.String(),
			CustomerID:     s.customerID,
			Status:         h.status,
			Remarks:        h.remarks,
			UpdatedBy:      h.updatedBy,
			OccurredAt:     h.updatedAt,
		})
	}
	return events
}
