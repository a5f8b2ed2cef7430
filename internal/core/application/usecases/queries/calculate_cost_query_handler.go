package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/metrics"
)

// RuleFinder is the lookup half of the pricing rule catalog.
type RuleFinder interface {
	FindActiveRule(ctx context.Context, mode kernel.TransportMode) (*pricing.Rule, error)
}

// CalculateCostQueryHandler looks up the active rule of the requested mode and
// runs the CostCalculator on it.
type CalculateCostQueryHandler struct {
	rules      RuleFinder
	calculator services.CostCalculator
	metrics    *metrics.Metrics
}

func NewCalculateCostQueryHandler(
	rules RuleFinder,
	calculator services.CostCalculator,
	m *metrics.Metrics,
) CalculateCostQueryHandler {
	return CalculateCostQueryHandler{rules: rules, calculator: calculator, metrics: m}
}

// Handle returns the breakdown, or a *pricing.RuleNotFoundError when the mode
// has no active rule.
func (h CalculateCostQueryHandler) Handle(ctx context.Context, query CalculateCostQuery) (services.CostBreakdown, error) {
	if err := query.Validate(); err != nil {
		return services.CostBreakdown{}, err
	}

	breakdown, err := h.calculate(ctx, query)
	h.metrics.CostCalculated(query.TransportMode().String(), err)
	return breakdown, err
}

func (h CalculateCostQueryHandler) calculate(ctx context.Context, query CalculateCostQuery) (services.CostBreakdown, error) {
	rule, err := h.rules.FindActiveRule(ctx, query.TransportMode())
	if err != nil {
		return services.CostBreakdown{}, err
	}
	return h.calculator.Calculate(rule, query.Weight(), query.DistanceKm())
}
