package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceResponse, error) {
	if err := query.Validate(); err != nil {
		return InvoiceResponse{}, err
	}

	return getInvoice(ctx, h.db, query.InvoiceID())
}

func getInvoice(ctx context.Context, db *gorm.DB, id kernel.ID) (InvoiceResponse, error) {
	row := db.WithContext(ctx).Raw(
		"SELECT"+invoiceColumns+invoiceFrom+" WHERE i.id = ?",
		id.Int64(),
	).Row()

	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return InvoiceResponse{}, errs.NewObjectNotFoundError("invoice", id)
	}
	return inv, err
}
