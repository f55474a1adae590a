package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"
)

// UpdateRuleCommandHandler applies a validated rule update in its own
// transaction. When no rule exists yet (first boot), the update creates it.
type UpdateRuleCommandHandler struct {
	uowFactory RuleUoWFactory
}

// NewUpdateRuleCommandHandler creates a handler for rule update operations.
func NewUpdateRuleCommandHandler(uowFactory RuleUoWFactory) UpdateRuleCommandHandler {
	return UpdateRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the active rule's criteria, name and activation state and
// returns the stored result. The previous rule stays untouched on any error.
func (h UpdateRuleCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateRuleCommand,
) (*rule.AutoAssignRule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ruleRepo := uow.RuleRepository()

	activeRule, err := ruleRepo.GetActive(ctx)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		activeRule, err = rule.NewAutoAssignRule(kernel.NewUUID(), cmd.Name(), cmd.Criteria())
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err = activeRule.UpdateCriteria(cmd.Criteria()); err != nil {
			return nil, err
		}
		if err = activeRule.Rename(cmd.Name()); err != nil {
			return nil, err
		}
	}

	activeRule.SetActive(cmd.IsActive())

	if err = ruleRepo.Save(ctx, activeRule); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return activeRule, nil
}
