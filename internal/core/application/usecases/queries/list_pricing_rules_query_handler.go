package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListPricingRulesQueryHandler struct {
	db *gorm.DB
}

func NewListPricingRulesQueryHandler(db *gorm.DB) ListPricingRulesQueryHandler {
	return ListPricingRulesQueryHandler{db: db}
}

// Handle returns the active rules ordered by transport mode name.
func (h ListPricingRulesQueryHandler) Handle(
	ctx context.Context,
	query ListPricingRulesQuery,
) ([]PricingRuleResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rules := make([]PricingRuleResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			transport_mode,
			base_rate_per_kg,
			distance_multiplier,
			minimum_charge,
			is_active
		FROM pricing_rules
		WHERE is_active = ?
		ORDER BY transport_mode
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rule PricingRuleResponse
		var mode string

		err = rows.Scan(
			&rule.ID,
			&mode,
			&rule.BaseRatePerKg,
			&rule.DistanceMultiplier,
			&rule.MinimumCharge,
			&rule.IsActive,
		)
		if err != nil {
			return nil, err
		}

		if rule.TransportMode, err = kernel.ParseTransportMode(mode); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
