package queries

import (
	"context"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetShipmentHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentHistoryQueryHandler(db *gorm.DB) GetShipmentHistoryQueryHandler {
	return GetShipmentHistoryQueryHandler{db: db}
}

// Handle returns the history newest first. An unknown shipment is reported
// as not found rather than as an empty ledger.
func (h GetShipmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentHistoryQuery,
) ([]StatusHistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM shipments WHERE id = ?",
		query.ShipmentID().Int64(),
	).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("shipment", query.ShipmentID())
	}

	return loadHistory(ctx, h.db, query.ShipmentID())
}
