// Package invoicerepo persists invoice aggregates.
package invoicerepo

import (
	"time"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// InvoiceDTO is the row of invoices. A partial unique index created by the
// migration keeps one non-cancelled invoice per shipment.
type InvoiceDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	InvoiceNumber string          `gorm:"size:20;not null;uniqueIndex"`
	ShipmentID    int64           `gorm:"not null;index"`
	CustomerID    int64           `gorm:"not null;index"`
	InvoiceDate   time.Time       `gorm:"not null;index"`
	DueDate       time.Time       `gorm:"not null;index"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentStatus string          `gorm:"size:20;not null;index"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidDate      *time.Time
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
	Version       int64     `gorm:"not null"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:            inv.ID().Int64(),
		InvoiceNumber: inv.Number().String(),
		ShipmentID:    inv.ShipmentID().Int64(),
		CustomerID:    inv.CustomerID().Int64(),
		InvoiceDate:   inv.InvoiceDate(),
		DueDate:       inv.DueDate(),
		SubTotal:      inv.SubTotal(),
		TaxAmount:     inv.TaxAmount(),
		TotalAmount:   inv.TotalAmount(),
		PaymentStatus: inv.PaymentStatus().String(),
		PaidAmount:    inv.PaidAmount(),
		PaidDate:      inv.PaidDate(),
		CreatedAt:     inv.CreatedAt(),
		UpdatedAt:     inv.UpdatedAt(),
		Version:       inv.Version(),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	status, err := invoice.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(invoice.State{
		ID:          kernel.ID(dto.ID),
		Number:      dto.InvoiceNumber,
		ShipmentID:  kernel.ID(dto.ShipmentID),
		CustomerID:  kernel.ID(dto.CustomerID),
		InvoiceDate: dto.InvoiceDate,
		DueDate:     dto.DueDate,
		Amounts: invoice.Amounts{
			SubTotal:    dto.SubTotal,
			TaxAmount:   dto.TaxAmount,
			TotalAmount: dto.TotalAmount,
		},
		PaymentStatus: status,
		PaidAmount:    dto.PaidAmount,
		PaidDate:      dto.PaidDate,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		Version:       dto.Version,
	})
}
