package queries

import (
	"errors"

	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
)

// InvoiceFilter narrows ListInvoicesQuery. Nil fields do not filter.
type InvoiceFilter struct {
	PaymentStatus *invoice.PaymentStatus
	CustomerID    *kernel.ID
	Page          Page
}

// ListInvoicesQuery lists invoices newest first.
type ListInvoicesQuery struct { //nolint:recvcheck //using for validation
	filter InvoiceFilter

	guard guard.ConstructorGuard
}

func NewListInvoicesQuery(filter InvoiceFilter) (ListInvoicesQuery, error) {
	var errStatus, errCustomer error
	if filter.PaymentStatus != nil {
		errStatus = filter.PaymentStatus.Validate()
	}
	if filter.CustomerID != nil {
		errCustomer = filter.CustomerID.Validate()
	}

	page, errPage := filter.Page.normalize()
	if err := errors.Join(errStatus, errCustomer, errPage); err != nil {
		return ListInvoicesQuery{}, err
	}
	filter.Page = page

	return ListInvoicesQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) Filter() InvoiceFilter { return q.filter }
