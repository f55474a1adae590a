package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_ClampsPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, queries.DefaultPerPage},
		{"negative page", -3, 10, 1, 10},
		{"per page above cap", 1, 500, 1, queries.MaxPerPage},
		{"in bounds untouched", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queries.NewGetOrdersQuery("unassigned", "A", "high", "platz", tt.page, tt.perPage)

			require.NoError(t, q.Validate())
			assert.Equal(t, tt.wantPage, q.Page())
			assert.Equal(t, tt.wantPerPage, q.PerPage())
			assert.Equal(t, "unassigned", q.Status())
			assert.Equal(t, "A", q.Zone())
			assert.Equal(t, "high", q.Priority())
			assert.Equal(t, "platz", q.Search())
		})
	}
}

func TestGetOrdersQuery_ZeroValueFailsValidation(t *testing.T) {
	var q queries.GetOrdersQuery
	assert.ErrorIs(t, q.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetRidersQuery_ClampsPagination(t *testing.T) {
	q := queries.NewGetRidersQuery("online", "B", "asel", 0, 1000)

	require.NoError(t, q.Validate())
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, queries.MaxPerPage, q.PerPage())
	assert.Equal(t, "online", q.Status())
	assert.Equal(t, "B", q.Zone())
	assert.Equal(t, "asel", q.Search())
}

func TestGetRidersQuery_ZeroValueFailsValidation(t *testing.T) {
	var q queries.GetRidersQuery
	assert.ErrorIs(t, q.Validate(), queries.ErrGetRidersQueryIsNotConstructed)
}

func TestNewGetAssignmentsByOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewGetAssignmentsByOrderQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, orderID, q.OrderID())
}

func TestNewGetAssignmentsByOrderQuery_RequiresOrderID(t *testing.T) {
	_, err := queries.NewGetAssignmentsByOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetActiveRuleQuery(t *testing.T) {
	q := queries.NewGetActiveRuleQuery()
	require.NoError(t, q.Validate())
}
