package invoicerepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add saves a new invoice. Losing the race for the shipment's single active
// invoice slot is reported as services.ErrShipmentNotInvoiceable.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: shipment %s already has an active invoice (%w)",
				services.ErrShipmentNotInvoiceable, aggregate.ShipmentID(), err)
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the invoice if its stored version still matches.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := db.Model(&InvoiceDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "invoice_number", "shipment_id", "customer_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var n int64
		if err := db.Model(&InvoiceDTO{}).Where("id = ?", dto.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return errs.NewObjectNotFoundError("invoice", aggregate.ID())
		}
		return errs.NewVersionIsInvalidErrorWithCause(
			"invoice",
			errors.New("invoice was modified concurrently, reload and retry"),
		)
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Get retrieves an invoice by ID.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.ID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindActiveByShipment returns nil, nil when the shipment has no
// non-cancelled invoice.
func (r *GormInvoiceRepository) FindActiveByShipment(ctx context.Context, shipmentID kernel.ID) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ? AND payment_status <> ?", shipmentID.Int64(), invoice.Cancelled.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil // absence is not an error here
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInvoiceRepository) ListOverdueCandidates(ctx context.Context, now time.Time, limit int) ([]*invoice.Invoice, error) {
	var dtos []InvoiceDTO
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND due_date < ?", invoice.Pending.String(), now.UTC()).
		Order("due_date").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// isUniqueViolation matches gorm's translated duplicate-key error and the raw
// SQLite constraint message.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
