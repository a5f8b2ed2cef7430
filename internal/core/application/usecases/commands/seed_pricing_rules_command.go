package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSeedPricingRulesCommandIsNotConstructed = errors.New(
	"SeedPricingRulesCommand must be created via NewSeedPricingRulesCommand constructor",
)

// SeedPricingRulesCommand fills an empty pricing catalog with the given rates.
// A catalog that already holds rules is left untouched.
type SeedPricingRulesCommand struct { //nolint:recvcheck //using for validation
	rates []pricing.ReferenceRate

	guard guard.ConstructorGuard
}

func NewSeedPricingRulesCommand(rates []pricing.ReferenceRate) (SeedPricingRulesCommand, error) {
	if len(rates) == 0 {
		return SeedPricingRulesCommand{}, errs.NewValueIsRequiredError("rates")
	}

	seen := make(map[kernel.TransportMode]struct{}, len(rates))
	for _, r := range rates {
		if err := r.TransportMode.Validate(); err != nil {
			return SeedPricingRulesCommand{}, err
		}
		if _, dup := seen[r.TransportMode]; dup {
			return SeedPricingRulesCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"rates",
				fmt.Errorf("transport mode %s listed twice", r.TransportMode),
			)
		}
		seen[r.TransportMode] = struct{}{}
	}

	return SeedPricingRulesCommand{
		rates: append([]pricing.ReferenceRate(nil), rates...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SeedPricingRulesCommand) Validate() error {
	return c.guard.Validate(ErrSeedPricingRulesCommandIsNotConstructed)
}

func (c SeedPricingRulesCommand) Rates() []pricing.ReferenceRate {
	return append([]pricing.ReferenceRate(nil), c.rates...)
}
