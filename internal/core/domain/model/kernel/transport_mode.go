package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// TransportMode is the carriage type a shipment travels by. It selects the
// pricing rule used for cost calculation.
type TransportMode int

const (
	UnknownTransportMode TransportMode = iota
	Air
	Sea
	Road
)

func getTransportModeStrings() map[TransportMode]string {
	//nolint:exhaustive // UnknownTransportMode has no textual form
	return map[TransportMode]string{
		Air:  "Air",
		Sea:  "Sea",
		Road: "Road",
	}
}

// TransportModes lists the valid modes in declaration order.
func TransportModes() []TransportMode {
	return []TransportMode{Air, Sea, Road}
}

// ParseTransportMode accepts the canonical names case-insensitively.
func ParseTransportMode(s string) (TransportMode, error) {
	needle := strings.TrimSpace(s)
	for mode, name := range getTransportModeStrings() {
		if strings.EqualFold(name, needle) {
			return mode, nil
		}
	}
	return UnknownTransportMode, errs.NewValueIsInvalidErrorWithCause(
		"transportMode",
		fmt.Errorf("%q is not one of Air, Sea, Road", s),
	)
}

func (m TransportMode) Validate() error {
	if _, ok := getTransportModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"transportMode",
			fmt.Errorf("%d is not a valid transport mode", int(m)),
		)
	}
	return nil
}

func (m TransportMode) String() string {
	if s, ok := getTransportModeStrings()[m]; ok {
		return s
	}
	return "Unknown"
}
