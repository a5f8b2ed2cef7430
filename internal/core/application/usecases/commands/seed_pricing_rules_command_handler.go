package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
)

type SeedPricingRulesCommandHandler struct {
	uowFactory PricingUoWFactory
	ids        kernel.IDGenerator
}

func NewSeedPricingRulesCommandHandler(uowFactory PricingUoWFactory, ids kernel.IDGenerator) SeedPricingRulesCommandHandler {
	return SeedPricingRulesCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

// Handle returns the number of rules inserted, zero when the catalog was not
// empty.
func (h *SeedPricingRulesCommandHandler) Handle(ctx context.Context, cmd SeedPricingRulesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ruleRepo := uow.PricingRuleRepository()
	count, err := ruleRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, rate := range cmd.Rates() {
		rule, ruleErr := pricing.NewRule(
			h.ids.NextID(),
			rate.TransportMode,
			rate.BaseRatePerKg,
			rate.DistanceMultiplier,
			rate.MinimumCharge,
		)
		if ruleErr != nil {
			return 0, ruleErr
		}
		if err = ruleRepo.Add(ctx, rule); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(cmd.Rates()), nil
}
