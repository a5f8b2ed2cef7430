package invoice

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

var ErrInvalidPaymentTransition = errors.New("invalid payment status transition")

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	Pending
	Paid
	Overdue
	Cancelled
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "Unknown",
		Pending:              "Pending",
		Paid:                 "Paid",
		Overdue:              "Overdue",
		Cancelled:            "Cancelled",
	}
}

// Open invoices may be set to their current status again; that records a
// paid amount without a status change.
func getPaymentTransitions() map[PaymentStatus][]PaymentStatus {
	//nolint:exhaustive // Paid and Cancelled are terminal
	return map[PaymentStatus][]PaymentStatus{
		Pending: {Pending, Paid, Overdue, Cancelled},
		Overdue: {Overdue, Paid, Cancelled},
	}
}

func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{Pending, Paid, Overdue, Cancelled}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	needle := strings.TrimSpace(s)
	for _, st := range PaymentStatuses() {
		if strings.EqualFold(st.String(), needle) {
			return st, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not one of Pending, Paid, Overdue, Cancelled", s),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == UnknownPaymentStatus {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s PaymentStatus) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// TransitionTo returns target when the payment table allows it.
func (s PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, error) {
	if err := target.Validate(); err != nil {
		return UnknownPaymentStatus, err
	}
	for _, next := range getPaymentTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return UnknownPaymentStatus, fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, s, target)
}
