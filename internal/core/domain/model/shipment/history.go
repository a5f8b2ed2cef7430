package shipment

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

// InitialRemarks is recorded on the history entry written at booking.
const InitialRemarks = "Shipment created"

// HistoryEntry is one immutable line of the status ledger.
type HistoryEntry struct {
	shipmentID kernel.ID
	status     Status
	remarks    string
	updatedBy  kernel.ID
	updatedAt  time.Time
}

func newHistoryEntry(shipmentID kernel.ID, status Status, remarks string, actor kernel.ID, at time.Time) HistoryEntry {
	return HistoryEntry{
		shipmentID: shipmentID,
		status:     status,
		remarks:    remarks,
		updatedBy:  actor,
		updatedAt:  at.UTC(),
	}
}

// RestoreHistoryEntry rebuilds a ledger line read from storage.
func RestoreHistoryEntry(
	shipmentID kernel.ID,
	status Status,
	remarks string,
	updatedBy kernel.ID,
	updatedAt time.Time,
) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return newHistoryEntry(shipmentID, status, remarks, updatedBy, updatedAt), nil
}

func (h HistoryEntry) ShipmentID() kernel.ID { return h.shipmentID }
func (h HistoryEntry) Status() Status        { return h.status }
func (h HistoryEntry) Remarks() string       { return h.remarks }
func (h HistoryEntry) UpdatedBy() kernel.ID  { return h.updatedBy }
func (h HistoryEntry) UpdatedAt() time.Time  { return h.updatedAt }
