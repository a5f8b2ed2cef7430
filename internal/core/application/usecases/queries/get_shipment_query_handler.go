package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns the shipment with its history newest first, or an
// *errs.ObjectNotFoundError.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	s, err := getShipment(ctx, h.db, query.ShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	if s.History, err = loadHistory(ctx, h.db, s.ID); err != nil {
		return ShipmentResponse{}, err
	}
	return s, nil
}

func getShipment(ctx context.Context, db *gorm.DB, id kernel.ID) (ShipmentResponse, error) {
	row := db.WithContext(ctx).Raw(
		"SELECT"+shipmentColumns+" FROM shipments WHERE id = ?",
		id.Int64(),
	).Row()

	s, err := scanShipment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipmentResponse{}, errs.NewObjectNotFoundError("shipment", id)
	}
	return s, err
}
