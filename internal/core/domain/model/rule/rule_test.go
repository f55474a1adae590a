package rule_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCriteria(t *testing.T) rule.Criteria {
	t.Helper()

	c, err := rule.NewCriteria(5.0, 3, true, 4.0, 3.0, 3.0)
	require.NoError(t, err)
	return c
}

func TestNewCriteria(t *testing.T) {
	t.Run("creates valid criteria", func(t *testing.T) {
		c := validCriteria(t)

		assert.InDelta(t, 5.0, c.MaxRadiusKm(), 1e-9)
		assert.Equal(t, 3, c.MaxOrdersPerRider())
		assert.True(t, c.PreferSameZone())
		assert.InDelta(t, 4.0, c.PriorityWeight(), 1e-9)
		assert.InDelta(t, 3.0, c.DistanceWeight(), 1e-9)
		assert.InDelta(t, 3.0, c.EtaWeight(), 1e-9)
		require.NoError(t, c.Validate())
	})

	t.Run("allows zero weights", func(t *testing.T) {
		_, err := rule.NewCriteria(5.0, 3, false, 0, 0, 0)
		require.NoError(t, err)
	})

	t.Run("rejects zero radius", func(t *testing.T) {
		_, err := rule.NewCriteria(0, 3, true, 4.0, 3.0, 3.0)
		require.ErrorIs(t, err, rule.ErrInvalidRuleConfig)
	})

	t.Run("rejects zero orders per rider", func(t *testing.T) {
		_, err := rule.NewCriteria(5.0, 0, true, 4.0, 3.0, 3.0)
		require.ErrorIs(t, err, rule.ErrInvalidRuleConfig)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		_, err := rule.NewCriteria(5.0, 3, true, -0.1, 3.0, 3.0)
		require.ErrorIs(t, err, rule.ErrInvalidRuleConfig)
	})

	t.Run("rejects weight above maximum", func(t *testing.T) {
		_, err := rule.NewCriteria(5.0, 3, true, 4.0, 10.1, 3.0)
		require.ErrorIs(t, err, rule.ErrInvalidRuleConfig)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c rule.Criteria
		require.Error(t, c.Validate())
	})
}

func TestNewAutoAssignRule(t *testing.T) {
	t.Run("creates active rule", func(t *testing.T) {
		r, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", validCriteria(t))

		require.NoError(t, err)
		assert.True(t, r.IsActive())
		assert.Equal(t, "default", r.Name())
		assert.False(t, r.UpdatedAt().IsZero())
		require.NoError(t, r.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := rule.NewAutoAssignRule(kernel.NewUUID(), "", validCriteria(t))
		require.ErrorIs(t, err, rule.ErrNameIsRequired)
	})

	t.Run("rejects unconstructed criteria", func(t *testing.T) {
		_, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", rule.Criteria{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r rule.AutoAssignRule
		require.ErrorIs(t, r.Validate(), rule.ErrRuleIsNotConstructed)
	})
}

func TestAutoAssignRule_UpdateCriteria(t *testing.T) {
	t.Run("replaces criteria and bumps updatedAt", func(t *testing.T) {
		r, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", validCriteria(t))
		require.NoError(t, err)
		before := r.UpdatedAt()

		next, err := rule.NewCriteria(8.0, 5, false, 2.0, 6.0, 2.0)
		require.NoError(t, err)

		require.NoError(t, r.UpdateCriteria(next))
		assert.InDelta(t, 8.0, r.Criteria().MaxRadiusKm(), 1e-9)
		assert.Equal(t, 5, r.Criteria().MaxOrdersPerRider())
		assert.False(t, r.UpdatedAt().Before(before))
	})

	t.Run("rejects invalid replacement and keeps current criteria", func(t *testing.T) {
		r, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", validCriteria(t))
		require.NoError(t, err)

		err = r.UpdateCriteria(rule.Criteria{})

		require.Error(t, err)
		assert.InDelta(t, 5.0, r.Criteria().MaxRadiusKm(), 1e-9)
		assert.Equal(t, 3, r.Criteria().MaxOrdersPerRider())
	})
}

func TestAutoAssignRule_Activation(t *testing.T) {
	r, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", validCriteria(t))
	require.NoError(t, err)

	r.Deactivate()
	assert.False(t, r.IsActive())

	r.Activate()
	assert.True(t, r.IsActive())

	r.SetActive(false)
	assert.False(t, r.IsActive())
}

func TestRestoreAutoAssignRule(t *testing.T) {
	updatedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	r, err := rule.RestoreAutoAssignRule(
		kernel.NewUUID(), "default", false, validCriteria(t), updatedAt,
	)

	require.NoError(t, err)
	assert.False(t, r.IsActive())
	assert.Equal(t, updatedAt, r.UpdatedAt())
}
