package rule

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for rule operations.
var (
	// ErrRuleIsNotConstructed is returned when using an improperly initialized AutoAssignRule.
	ErrRuleIsNotConstructed = errors.New("AutoAssignRule must be created via NewAutoAssignRule constructor")
	// ErrRuleInactive is returned by the auto-assign pass when the active
	// rule has been switched off. It is an expected condition, not a fault.
	ErrRuleInactive = errors.New("auto-assign rule is inactive")

	// ErrNameIsRequired is returned when creating a rule without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// AutoAssignRule is the aggregate governing the automatic assignment pass:
// whether it runs at all (isActive) and with which Criteria. Exactly one rule
// is active at a time; the scheduler snapshots it once per tick.
type AutoAssignRule struct {
	id        kernel.UUID
	name      string
	isActive  bool
	criteria  Criteria
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewAutoAssignRule creates a new active rule with the given criteria.
func NewAutoAssignRule(id kernel.UUID, name string, criteria Criteria) (*AutoAssignRule, error) {
	r := &AutoAssignRule{
		isActive:  true,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setCriteria(criteria),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreAutoAssignRule reconstructs an AutoAssignRule from persistent storage.
func RestoreAutoAssignRule(
	id kernel.UUID,
	name string,
	isActive bool,
	criteria Criteria,
	updatedAt time.Time,
) (*AutoAssignRule, error) {
	r := &AutoAssignRule{
		isActive:  isActive,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setCriteria(criteria),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the AutoAssignRule was properly constructed via a constructor.
func (r *AutoAssignRule) Validate() error {
	if r == nil {
		return ErrRuleIsNotConstructed
	}
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

// ID returns the rule's unique identifier.
func (r *AutoAssignRule) ID() kernel.UUID {
	return r.id
}

// Name returns the rule's human-readable name.
func (r *AutoAssignRule) Name() string {
	return r.name
}

// IsActive reports whether the auto-assign pass should run under this rule.
func (r *AutoAssignRule) IsActive() bool {
	return r.isActive
}

// Criteria returns the rule's current criteria set.
func (r *AutoAssignRule) Criteria() Criteria {
	return r.criteria
}

// UpdatedAt returns the time of the last successful update.
func (r *AutoAssignRule) UpdatedAt() time.Time {
	return r.updatedAt
}

// UpdateCriteria replaces the criteria set. The replacement is atomic: an
// invalid set is rejected and the current criteria remain in effect.
func (r *AutoAssignRule) UpdateCriteria(criteria Criteria) error {
	if err := r.setCriteria(criteria); err != nil {
		return err
	}

	r.updatedAt = time.Now().UTC()
	return nil
}

// Rename changes the rule's display name.
func (r *AutoAssignRule) Rename(name string) error {
	if err := r.setName(name); err != nil {
		return err
	}

	r.updatedAt = time.Now().UTC()
	return nil
}

// Activate switches the auto-assign pass on.
func (r *AutoAssignRule) Activate() {
	r.isActive = true
	r.updatedAt = time.Now().UTC()
}

// Deactivate switches the auto-assign pass off. Already-assigned orders are
// unaffected; the scheduler skips its ticks until the rule is reactivated.
func (r *AutoAssignRule) Deactivate() {
	r.isActive = false
	r.updatedAt = time.Now().UTC()
}

// SetActive applies the desired activation state.
func (r *AutoAssignRule) SetActive(active bool) {
	if active {
		r.Activate()
		return
	}
	r.Deactivate()
}

func (r *AutoAssignRule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

func (r *AutoAssignRule) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	r.name = name
	return nil
}

func (r *AutoAssignRule) setCriteria(criteria Criteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}

	r.criteria = criteria
	return nil
}
