package rulerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRuleRepository implements RuleRepository using GORM.
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GORM rule repository.
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// GetActive retrieves the current auto-assign rule, the most recently
// updated row. Returns errs.ObjectNotFoundError before the first rule
// has been configured.
func (r *GormRuleRepository) GetActive(ctx context.Context) (*rule.AutoAssignRule, error) {
	var dto RuleDTO
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rule", "active")
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the rule by its identifier.
func (r *GormRuleRepository) Save(ctx context.Context, aggregate *rule.AutoAssignRule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
