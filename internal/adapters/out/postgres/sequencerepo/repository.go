package sequencerepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/document"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// The upsert takes the row lock for (prefix, day) until the surrounding
// transaction ends, so concurrent callers receive consecutive values.
const nextValueSQL = `
	INSERT INTO document_sequences (prefix, day, value)
	VALUES (?, ?, 1)
	ON CONFLICT (prefix, day) DO UPDATE SET value = document_sequences.value + 1
	RETURNING value
`

// GormDocumentSequenceRepository implements ports.DocumentSequenceRepository.
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

func (r *GormDocumentSequenceRepository) Next(ctx context.Context, prefix document.Prefix, day string) (int, error) {
	if err := prefix.Validate(); err != nil {
		return 0, err
	}
	if len(day) != len("20060102") {
		return 0, errs.NewValueIsInvalidErrorWithCause("day", errors.New("day must be formatted as yyyyMMdd"))
	}

	var value int
	if err := r.db.WithContext(ctx).Raw(nextValueSQL, prefix.String(), day).Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}
