package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetInvoiceDocumentQueryIsNotConstructed = errors.New(
	"GetInvoiceDocumentQuery must be created via NewGetInvoiceDocumentQuery constructor",
)

// GetInvoiceDocumentQuery renders an invoice for download.
type GetInvoiceDocumentQuery struct { //nolint:recvcheck //using for validation
	invoiceID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetInvoiceDocumentQuery(invoiceID kernel.ID) (GetInvoiceDocumentQuery, error) {
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceDocumentQuery{}, err
	}
	return GetInvoiceDocumentQuery{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceDocumentQueryIsNotConstructed)
}

func (q GetInvoiceDocumentQuery) InvoiceID() kernel.ID { return q.invoiceID }

// InvoiceDocumentResponse is a rendered invoice ready to be served.
type InvoiceDocumentResponse struct {
	FileName string
	Content  []byte
}
