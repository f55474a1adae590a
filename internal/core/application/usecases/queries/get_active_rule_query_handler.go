package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveRuleQueryHandler reads the active rule configuration row.
type GetActiveRuleQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRuleQueryHandler creates a handler for rule configuration queries.
// Requires a GORM database connection for query execution.
func NewGetActiveRuleQueryHandler(db *gorm.DB) GetActiveRuleQueryHandler {
	return GetActiveRuleQueryHandler{db: db}
}

// Handle executes the rule configuration query.
// Returns errs.ObjectNotFoundError when no rule has been configured yet.
func (h GetActiveRuleQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRuleQuery,
) (GetActiveRuleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveRuleQueryResponse{}, err
	}

	var resp GetActiveRuleQueryResponse
	var id uuid.UUID
	var updatedAt time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			is_active,
			max_radius_km,
			max_orders_per_rider,
			prefer_same_zone,
			priority_weight,
			distance_weight,
			eta_weight,
			updated_at
		FROM auto_assign_rules
		ORDER BY updated_at DESC
		LIMIT 1
	`).Row()

	err := row.Scan(
		&id,
		&resp.Name,
		&resp.IsActive,
		&resp.MaxRadiusKm,
		&resp.MaxOrdersPerRider,
		&resp.PreferSameZone,
		&resp.PriorityWeight,
		&resp.DistanceWeight,
		&resp.EtaWeight,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetActiveRuleQueryResponse{}, errs.NewObjectNotFoundError("rule", "active")
	}
	if err != nil {
		return GetActiveRuleQueryResponse{}, err
	}

	ruleID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveRuleQueryResponse{}, err
	}
	resp.ID = ruleID
	resp.UpdatedAt = updatedAt

	return resp, nil
}
