// Package rulerepo provides data transfer objects and mapping functions for
// auto-assign rule persistence. The table holds the dispatch configuration;
// in practice it contains a single row that is upserted on every change.
package rulerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rule"

	"github.com/google/uuid"
)

// RuleDTO represents the database structure for persisting auto-assign rules.
type RuleDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	IsActive          bool
	MaxRadiusKm       float64
	MaxOrdersPerRider int
	PreferSameZone    bool
	PriorityWeight    float64
	DistanceWeight    float64
	EtaWeight         float64
	UpdatedAt         time.Time
}

// TableName specifies the database table name for rule entities.
func (RuleDTO) TableName() string {
	return "auto_assign_rules"
}

// fromDomain converts a rule aggregate to its database representation.
func fromDomain(aggregate *rule.AutoAssignRule) RuleDTO {
	criteria := aggregate.Criteria()

	return RuleDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		IsActive:          aggregate.IsActive(),
		MaxRadiusKm:       criteria.MaxRadiusKm(),
		MaxOrdersPerRider: criteria.MaxOrdersPerRider(),
		PreferSameZone:    criteria.PreferSameZone(),
		PriorityWeight:    criteria.PriorityWeight(),
		DistanceWeight:    criteria.DistanceWeight(),
		EtaWeight:         criteria.EtaWeight(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a rule aggregate using RestoreAutoAssignRule.
func toDomain(dto RuleDTO) (*rule.AutoAssignRule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	criteria, err := rule.NewCriteria(
		dto.MaxRadiusKm,
		dto.MaxOrdersPerRider,
		dto.PreferSameZone,
		dto.PriorityWeight,
		dto.DistanceWeight,
		dto.EtaWeight,
	)
	if err != nil {
		return nil, err
	}

	return rule.RestoreAutoAssignRule(id, dto.Name, dto.IsActive, criteria, dto.UpdatedAt)
}
