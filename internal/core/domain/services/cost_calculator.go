package services

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// CostBreakdown is the result of pricing one consignment. It is not persisted.
type CostBreakdown struct {
	TransportMode  kernel.TransportMode
	BaseRate       decimal.Decimal
	WeightCharge   decimal.Decimal
	DistanceCharge decimal.Decimal
	MinimumCharge  decimal.Decimal
	EstimatedCost  decimal.Decimal
	// MinimumApplied is true when the minimum charge replaced the raw cost.
	MinimumApplied bool
}

// CostCalculator prices consignments.
//
// Calculation:
//
//	weightCharge   = weight * baseRatePerKg
//	distanceCharge = distanceKm * distanceMultiplier
//	estimatedCost  = max(weightCharge + distanceCharge, minimumCharge)
//
// The floor is applied before rounding; the returned charges are rounded half
// away from zero to two places.
//
// Example:
//
//	calc := services.NewCostCalculator()
//	rule, _ := pricing.NewRule(1, kernel.Air, rate, multiplier, minimum)
//	breakdown, err := calc.Calculate(rule, weight, distance)
type CostCalculator struct{}

func NewCostCalculator() CostCalculator {
	return CostCalculator{}
}

// Calculate prices weight kilograms carried distanceKm kilometres under rule.
// An inactive rule is treated as missing.
func (CostCalculator) Calculate(rule *pricing.Rule, weight, distanceKm decimal.Decimal) (CostBreakdown, error) {
	if err := rule.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	if !rule.IsActive() {
		return CostBreakdown{}, pricing.NewRuleNotFoundError(rule.TransportMode())
	}
	if err := errors.Join(
		kernel.ValidateNonNegative("weight", weight),
		kernel.ValidateNonNegative("distanceKm", distanceKm),
	); err != nil {
		return CostBreakdown{}, err
	}

	weightCharge := weight.Mul(rule.BaseRatePerKg())
	distanceCharge := distanceKm.Mul(rule.DistanceMultiplier())
	raw := weightCharge.Add(distanceCharge)

	estimated := raw
	minimumApplied := false
	if raw.LessThan(rule.MinimumCharge()) {
		estimated = rule.MinimumCharge()
		minimumApplied = true
	}

	return CostBreakdown{
		TransportMode:  rule.TransportMode(),
		BaseRate:       rule.BaseRatePerKg(),
		WeightCharge:   kernel.Round2(weightCharge),
		DistanceCharge: kernel.Round2(distanceCharge),
		MinimumCharge:  rule.MinimumCharge(),
		EstimatedCost:  kernel.Round2(estimated),
		MinimumApplied: minimumApplied,
	}, nil
}
