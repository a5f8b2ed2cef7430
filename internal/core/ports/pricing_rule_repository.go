// Package ports defines the persistence and messaging contracts of the freight
// core. Adapters under internal/adapters implement them; use cases depend only
// on these interfaces.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
)

// PricingRuleRepository is the pricing rule catalog.
type PricingRuleRepository interface {
	// FindActiveRule returns the single active rule for mode.
	// Returns *pricing.RuleNotFoundError when no active rule exists.
	FindActiveRule(ctx context.Context, mode kernel.TransportMode) (*pricing.Rule, error)

	// ListActive returns every active rule ordered by transport mode.
	ListActive(ctx context.Context) ([]*pricing.Rule, error)

	// Add stores a new rule. Used when seeding the reference rates.
	Add(ctx context.Context, rule *pricing.Rule) error

	// Count returns the number of stored rules, active or not.
	Count(ctx context.Context) (int64, error)
}
