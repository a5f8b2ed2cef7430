package shipment_test

import (
	"testing"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want shipment.Status
	}{
		{in: "Booked", want: shipment.Booked},
		{in: "In Transit", want: shipment.InTransit},
		{in: "InTransit", want: shipment.InTransit},
		{in: "in transit", want: shipment.InTransit},
		{in: "DELIVERED", want: shipment.Delivered},
		{in: "Cancelled", want: shipment.Cancelled},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := shipment.ParseStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := shipment.ParseStatus("Lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = shipment.ParseStatus("Unknown")
	require.Error(t, err)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "In Transit", shipment.InTransit.String())
	assert.Equal(t, "Unknown", shipment.Status(42).String())
}

func TestStatus_TransitionTo(t *testing.T) {
	allowed := map[shipment.Status][]shipment.Status{
		shipment.Booked:    {shipment.InTransit, shipment.Cancelled},
		shipment.InTransit: {shipment.Delivered, shipment.Cancelled},
	}

	for _, from := range shipment.Statuses() {
		for _, to := range shipment.Statuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			got, err := from.TransitionTo(to)
			if want {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got)
			} else {
				require.ErrorIs(t, err, shipment.ErrInvalidStatusTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestStatus_TerminalHaveNoExits(t *testing.T) {
	for _, s := range shipment.Statuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, to := range shipment.Statuses() {
			assert.False(t, s.CanTransitionTo(to), "%s -> %s", s, to)
		}
	}
}

func TestStatus_TransitionToUnknown(t *testing.T) {
	_, err := shipment.Booked.TransitionTo(shipment.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
