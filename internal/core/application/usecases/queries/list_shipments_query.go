package queries

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ShipmentFilter narrows ListShipmentsQuery. Nil fields do not filter.
// FromDate and ToDate bound the booking date inclusively.
type ShipmentFilter struct {
	Status     *shipment.Status
	CustomerID *kernel.ID
	FromDate   *time.Time
	ToDate     *time.Time
	Page       Page
}

// ListShipmentsQuery lists shipments newest first.
type ListShipmentsQuery struct { //nolint:recvcheck //using for validation
	filter ShipmentFilter

	guard guard.ConstructorGuard
}

func NewListShipmentsQuery(filter ShipmentFilter) (ListShipmentsQuery, error) {
	var errStatus, errCustomer, errRange error
	if filter.Status != nil {
		errStatus = filter.Status.Validate()
	}
	if filter.CustomerID != nil {
		errCustomer = filter.CustomerID.Validate()
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		errRange = errs.NewValueIsInvalidErrorWithCause("toDate", fmt.Errorf("%s is before fromDate %s",
			filter.ToDate.Format(time.RFC3339), filter.FromDate.Format(time.RFC3339)))
	}

	page, errPage := filter.Page.normalize()
	if err := errors.Join(errStatus, errCustomer, errRange, errPage); err != nil {
		return ListShipmentsQuery{}, err
	}
	filter.Page = page

	return ListShipmentsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Filter() ShipmentFilter { return q.filter }
