package ports

import (
	"context"

	"dispatch/internal/core/domain/model/rule"
)

// RuleRepository defines the persistence contract for the auto-assign rule.
// Exactly one rule is active per dispatch scope; callers snapshot it once
// per operation and use the snapshot throughout.
type RuleRepository interface {
	// GetActive retrieves the single active rule.
	// Returns errs.ObjectNotFoundError when no rule has been configured yet.
	GetActive(ctx context.Context) (*rule.AutoAssignRule, error)

	// Save upserts the rule by its identifier.
	Save(ctx context.Context, aggregate *rule.AutoAssignRule) error
}
