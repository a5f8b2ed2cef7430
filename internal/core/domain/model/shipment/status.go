package shipment

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// ErrInvalidStatusTransition is returned when the lifecycle does not allow
// moving from the current status to the requested one.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// Status is the lifecycle state of a shipment.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Booked
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Booked:    "Booked",
		InTransit: "In Transit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getTransitions is the lifecycle table. Statuses absent from it are terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Booked:    {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
	}
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Booked, InTransit, Delivered, Cancelled}
}

// ParseStatus accepts the display names case-insensitively; "InTransit" is
// accepted as well as "In Transit".
func ParseStatus(s string) (Status, error) {
	needle := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, status := range Statuses() {
		if strings.EqualFold(strings.ReplaceAll(status.String(), " ", ""), needle) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is reachable in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the lifecycle allows it.
//
// Valid transitions:
//   - Booked -> In Transit, Cancelled
//   - In Transit -> Delivered, Cancelled
//
// Everything else, including staying in the same status, fails with an error
// wrapping ErrInvalidStatusTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s, target)
	}
	return target, nil
}
