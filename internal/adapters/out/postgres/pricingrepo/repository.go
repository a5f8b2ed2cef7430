package pricingrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GormPricingRuleRepository implements ports.PricingRuleRepository using GORM.
type GormPricingRuleRepository struct {
	db *gorm.DB
}

func NewGormPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// FindActiveRule returns the active rule of mode or *pricing.RuleNotFoundError.
func (r *GormPricingRuleRepository) FindActiveRule(ctx context.Context, mode kernel.TransportMode) (*pricing.Rule, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	var dto PricingRuleDTO
	err := r.db.WithContext(ctx).
		Where("transport_mode = ? AND is_active = ?", mode.String(), true).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.NewRuleNotFoundError(mode)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPricingRuleRepository) ListActive(ctx context.Context) ([]*pricing.Rule, error) {
	var dtos []PricingRuleDTO
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("transport_mode").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]*pricing.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *GormPricingRuleRepository) Add(ctx context.Context, rule *pricing.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rule)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPricingRuleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PricingRuleDTO{}).Count(&n).Error
	return n, err
}
