package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle returns the matching shipments ordered by creation time, newest
// first. History is not loaded.
func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	f := query.Filter()

	stmt := h.db.WithContext(ctx).Table("shipments").Select(shipmentColumns)
	if f.Status != nil {
		stmt = stmt.Where("status = ?", f.Status.String())
	}
	if f.CustomerID != nil {
		stmt = stmt.Where("customer_id = ?", f.CustomerID.Int64())
	}
	if f.FromDate != nil {
		stmt = stmt.Where("booking_date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		stmt = stmt.Where("booking_date <= ?", f.ToDate.UTC())
	}

	rows, err := stmt.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Page.Limit).
		Offset(f.Page.Offset).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentResponse, 0)
	for rows.Next() {
		s, scanErr := scanShipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shipments = append(shipments, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
