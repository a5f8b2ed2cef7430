// Package shipmentrepo persists shipment aggregates and their status history.
package shipmentrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// ShipmentDTO is the row of shipments.
type ShipmentDTO struct {
	ID                   int64           `gorm:"primaryKey;autoIncrement:false"`
	ShipmentNumber       string          `gorm:"size:20;not null;uniqueIndex"`
	CustomerID           int64           `gorm:"not null;index"`
	VendorID             int64           `gorm:"not null;index"`
	OriginCity           string          `gorm:"size:100;not null"`
	OriginCountry        string          `gorm:"size:100;not null"`
	DestinationCity      string          `gorm:"size:100;not null"`
	DestinationCountry   string          `gorm:"size:100;not null"`
	TransportMode        string          `gorm:"size:10;not null"`
	Weight               decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Volume               decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	CargoDescription     string          `gorm:"size:500"`
	EstimatedCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ActualCost           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status               string          `gorm:"size:20;not null;index"`
	BookingDate          time.Time       `gorm:"not null;index"`
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedBy            int64     `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"not null;autoUpdateTime:false"`
	Version              int64     `gorm:"not null"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// StatusHistoryDTO is one append-only row of shipment_status_histories.
type StatusHistoryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID int64     `gorm:"not null;index"`
	Status     string    `gorm:"size:20;not null"`
	Remarks    string    `gorm:"size:500"`
	UpdatedBy  int64     `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null;index;autoUpdateTime:false"`
}

func (StatusHistoryDTO) TableName() string {
	return "shipment_status_histories"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	route := s.Route()
	cargo := s.Cargo()

	return ShipmentDTO{
		ID:                   s.ID().Int64(),
		ShipmentNumber:       s.Number().String(),
		CustomerID:           s.CustomerID().Int64(),
		VendorID:             s.VendorID().Int64(),
		OriginCity:           route.OriginCity,
		OriginCountry:        route.OriginCountry,
		DestinationCity:      route.DestinationCity,
		DestinationCountry:   route.DestinationCountry,
		TransportMode:        cargo.TransportMode.String(),
		Weight:               cargo.Weight,
		Volume:               cargo.Volume,
		CargoDescription:     cargo.Description,
		EstimatedCost:        s.EstimatedCost(),
		ActualCost:           s.ActualCost(),
		Status:               s.Status().String(),
		BookingDate:          s.BookingDate(),
		ExpectedDeliveryDate: s.ExpectedDeliveryDate(),
		ActualDeliveryDate:   s.ActualDeliveryDate(),
		CreatedBy:            s.CreatedBy().Int64(),
		CreatedAt:            s.CreatedAt(),
		UpdatedAt:            s.UpdatedAt(),
		Version:              s.Version(),
	}
}

func historyFromDomain(entries []shipment.HistoryEntry) []StatusHistoryDTO {
	dtos := make([]StatusHistoryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, StatusHistoryDTO{
			ShipmentID: e.ShipmentID().Int64(),
			Status:     e.Status().String(),
			Remarks:    e.Remarks(),
			UpdatedBy:  e.UpdatedBy().Int64(),
			UpdatedAt:  e.UpdatedAt(),
		})
	}
	return dtos
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	mode, err := kernel.ParseTransportMode(dto.TransportMode)
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.State{
		ID:         kernel.ID(dto.ID),
		Number:     dto.ShipmentNumber,
		CustomerID: kernel.ID(dto.CustomerID),
		VendorID:   kernel.ID(dto.VendorID),
		Route: shipment.Route{
			OriginCity:         dto.OriginCity,
			OriginCountry:      dto.OriginCountry,
			DestinationCity:    dto.DestinationCity,
			DestinationCountry: dto.DestinationCountry,
		},
		Cargo: shipment.Cargo{
			TransportMode: mode,
			Weight:        dto.Weight,
			Volume:        dto.Volume,
			Description:   dto.CargoDescription,
		},
		EstimatedCost:        dto.EstimatedCost,
		ActualCost:           dto.ActualCost,
		Status:               status,
		BookingDate:          dto.BookingDate,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		ActualDeliveryDate:   dto.ActualDeliveryDate,
		CreatedBy:            kernel.ID(dto.CreatedBy),
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
		Version:              dto.Version,
	})
}
