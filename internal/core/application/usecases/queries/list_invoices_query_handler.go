package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewListInvoicesQueryHandler(db *gorm.DB) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db}
}

// Handle returns the matching invoices, newest invoice date first.
func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]InvoiceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	f := query.Filter()

	sqlText := "SELECT" + invoiceColumns + invoiceFrom + " WHERE 1 = 1"
	args := make([]any, 0, 4)
	if f.PaymentStatus != nil {
		sqlText += " AND i.payment_status = ?"
		args = append(args, f.PaymentStatus.String())
	}
	if f.CustomerID != nil {
		sqlText += " AND i.customer_id = ?"
		args = append(args, f.CustomerID.Int64())
	}
	sqlText += " ORDER BY i.invoice_date DESC, i.id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Page.Limit, f.Page.Offset)

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]InvoiceResponse, 0)
	for rows.Next() {
		inv, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}
