package queries

import (
	"context"
	"database/sql"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShipmentResponse is the read model of a shipment. History is filled only
// by GetShipmentQueryHandler.
type ShipmentResponse struct {
	ID                   kernel.ID
	ShipmentNumber       string
	CustomerID           kernel.ID
	VendorID             kernel.ID
	OriginCity           string
	OriginCountry        string
	DestinationCity      string
	DestinationCountry   string
	TransportMode        kernel.TransportMode
	Weight               decimal.Decimal
	Volume               decimal.Decimal
	CargoDescription     string
	EstimatedCost        decimal.Decimal
	ActualCost           decimal.Decimal
	Status               shipment.Status
	BookingDate          time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedBy            kernel.ID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	History              []StatusHistoryResponse
}

// StatusHistoryResponse is one entry of the shipment history ledger.
type StatusHistoryResponse struct {
	ID        int64
	Status    shipment.Status
	Remarks   string
	UpdatedBy kernel.ID
	UpdatedAt time.Time
}

const shipmentColumns = `
	id,
	shipment_number,
	customer_id,
	vendor_id,
	origin_city,
	origin_country,
	destination_city,
	destination_country,
	transport_mode,
	weight,
	volume,
	cargo_description,
	estimated_cost,
	actual_cost,
	status,
	booking_date,
	expected_delivery_date,
	actual_delivery_date,
	created_by,
	created_at,
	updated_at`

func scanShipment(scanner interface{ Scan(dest ...any) error }) (ShipmentResponse, error) {
	var s ShipmentResponse
	var mode, status string
	var expected, actual sql.NullTime

	err := scanner.Scan(
		&s.ID,
		&s.ShipmentNumber,
		&s.CustomerID,
		&s.VendorID,
		&s.OriginCity,
		&s.OriginCountry,
		&s.DestinationCity,
		&s.DestinationCountry,
		&mode,
		&s.Weight,
		&s.Volume,
		&s.CargoDescription,
		&s.EstimatedCost,
		&s.ActualCost,
		&status,
		&s.BookingDate,
		&expected,
		&actual,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return ShipmentResponse{}, err
	}

	if s.TransportMode, err = kernel.ParseTransportMode(mode); err != nil {
		return ShipmentResponse{}, err
	}
	if s.Status, err = shipment.ParseStatus(status); err != nil {
		return ShipmentResponse{}, err
	}
	s.BookingDate = s.BookingDate.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	s.ExpectedDeliveryDate = nullTimePtr(expected)
	s.ActualDeliveryDate = nullTimePtr(actual)
	return s, nil
}

// loadHistory returns the ledger of a shipment, newest first.
func loadHistory(ctx context.Context, db *gorm.DB, shipmentID kernel.ID) ([]StatusHistoryResponse, error) {
	history := make([]StatusHistoryResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			remarks,
			updated_by,
			updated_at
		FROM shipment_status_histories
		WHERE shipment_id = ?
		ORDER BY updated_at DESC, id DESC
	`, shipmentID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusHistoryResponse
		var status string
		var remarks sql.NullString

		if err = rows.Scan(&entry.ID, &status, &remarks, &entry.UpdatedBy, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		if entry.Status, err = shipment.ParseStatus(status); err != nil {
			return nil, err
		}
		entry.Remarks = remarks.String
		entry.UpdatedAt = entry.UpdatedAt.UTC()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
