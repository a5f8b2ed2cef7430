// Package pricingrepo persists the pricing rule catalog.
package pricingrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// PricingRuleDTO is the row of pricing_rules. At most one active row exists
// per transport mode (partial unique index created by the migration).
type PricingRuleDTO struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement:false"`
	TransportMode      string          `gorm:"size:10;not null;index"`
	BaseRatePerKg      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DistanceMultiplier decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MinimumCharge      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsActive           bool            `gorm:"not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

func (PricingRuleDTO) TableName() string {
	return "pricing_rules"
}

func fromDomain(rule *pricing.Rule) PricingRuleDTO {
	return PricingRuleDTO{
		ID:                 rule.ID().Int64(),
		TransportMode:      rule.TransportMode().String(),
		BaseRatePerKg:      rule.BaseRatePerKg(),
		DistanceMultiplier: rule.DistanceMultiplier(),
		MinimumCharge:      rule.MinimumCharge(),
		IsActive:           rule.IsActive(),
	}
}

func toDomain(dto PricingRuleDTO) (*pricing.Rule, error) {
	mode, err := kernel.ParseTransportMode(dto.TransportMode)
	if err != nil {
		return nil, err
	}

	return pricing.RestoreRule(
		kernel.ID(dto.ID),
		mode,
		dto.BaseRatePerKg,
		dto.DistanceMultiplier,
		dto.MinimumCharge,
		dto.IsActive,
	)
}
