package pricing

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule or RestoreRule constructor")

	// ErrPricingRuleNotFound is the sentinel for a transport mode without an active rule.
	ErrPricingRuleNotFound = errors.New("pricing rule not found")
)

// RuleNotFoundError names the transport mode that has no active rule.
type RuleNotFoundError struct {
	TransportMode kernel.TransportMode
}

func NewRuleNotFoundError(mode kernel.TransportMode) *RuleNotFoundError {
	return &RuleNotFoundError{TransportMode: mode}
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("no active pricing rule found for transport mode: %s", e.TransportMode)
}

func (e *RuleNotFoundError) Unwrap() error {
	return ErrPricingRuleNotFound
}

// Rule is the rate configuration of one transport mode.
type Rule struct {
	id                 kernel.ID
	transportMode      kernel.TransportMode
	baseRatePerKg      decimal.Decimal
	distanceMultiplier decimal.Decimal
	minimumCharge      decimal.Decimal
	active             bool

	isConstructed bool
}

// NewRule creates an active rule. All rates must be non-negative.
func NewRule(
	id kernel.ID,
	mode kernel.TransportMode,
	baseRatePerKg, distanceMultiplier, minimumCharge decimal.Decimal,
) (*Rule, error) {
	return RestoreRule(id, mode, baseRatePerKg, distanceMultiplier, minimumCharge, true)
}

// RestoreRule rebuilds a rule from persistence, including its active flag.
func RestoreRule(
	id kernel.ID,
	mode kernel.TransportMode,
	baseRatePerKg, distanceMultiplier, minimumCharge decimal.Decimal,
	active bool,
) (*Rule, error) {
	if err := errors.Join(
		id.Validate(),
		mode.Validate(),
		kernel.ValidateNonNegative("baseRatePerKg", baseRatePerKg),
		kernel.ValidateNonNegative("distanceMultiplier", distanceMultiplier),
		kernel.ValidateNonNegative("minimumCharge", minimumCharge),
	); err != nil {
		return nil, err
	}

	return &Rule{
		id:                 id,
		transportMode:      mode,
		baseRatePerKg:      baseRatePerKg,
		distanceMultiplier: distanceMultiplier,
		minimumCharge:      minimumCharge,
		active:             active,
		isConstructed:      true,
	}, nil
}

func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

func (r *Rule) ID() kernel.ID                       { return r.id }
func (r *Rule) TransportMode() kernel.TransportMode { return r.transportMode }
func (r *Rule) BaseRatePerKg() decimal.Decimal      { return r.baseRatePerKg }
func (r *Rule) DistanceMultiplier() decimal.Decimal { return r.distanceMultiplier }
func (r *Rule) MinimumCharge() decimal.Decimal      { return r.minimumCharge }
func (r *Rule) IsActive() bool                      { return r.active }

// ReferenceRate is the seed configuration of one transport mode.
type ReferenceRate struct {
	TransportMode      kernel.TransportMode
	BaseRatePerKg      decimal.Decimal
	DistanceMultiplier decimal.Decimal
	MinimumCharge      decimal.Decimal
}

// ReferenceRates returns the rates a fresh installation starts with.
func ReferenceRates() []ReferenceRate {
	return []ReferenceRate{
		{
			TransportMode:      kernel.Air,
			BaseRatePerKg:      decimal.RequireFromString("15.00"),
			DistanceMultiplier: decimal.RequireFromString("0.05"),
			MinimumCharge:      decimal.RequireFromString("500.00"),
		},
		{
			TransportMode:      kernel.Sea,
			BaseRatePerKg:      decimal.RequireFromString("8.00"),
			DistanceMultiplier: decimal.RequireFromString("0.02"),
			MinimumCharge:      decimal.RequireFromString("300.00"),
		},
		{
			TransportMode:      kernel.Road,
			BaseRatePerKg:      decimal.RequireFromString("10.00"),
			DistanceMultiplier: decimal.RequireFromString("0.03"),
			MinimumCharge:      decimal.RequireFromString("200.00"),
		},
	}
}
