package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListPricingRulesQueryIsNotConstructed = errors.New(
	"ListPricingRulesQuery must be created via NewListPricingRulesQuery constructor",
)

// ListPricingRulesQuery returns the active rule of every configured mode.
type ListPricingRulesQuery struct {
	guard guard.ConstructorGuard
}

func NewListPricingRulesQuery() ListPricingRulesQuery {
	return ListPricingRulesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListPricingRulesQuery) Validate() error {
	return q.guard.Validate(ErrListPricingRulesQueryIsNotConstructed)
}

// PricingRuleResponse is the read model of a pricing rule.
type PricingRuleResponse struct {
	ID                 kernel.ID
	TransportMode      kernel.TransportMode
	BaseRatePerKg      decimal.Decimal
	DistanceMultiplier decimal.Decimal
	MinimumCharge      decimal.Decimal
	IsActive           bool
}
