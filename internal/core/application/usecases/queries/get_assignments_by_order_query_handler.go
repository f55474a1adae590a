package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentsByOrderQueryHandler reads the append-only assignment trail of
// an order, oldest first.
type GetAssignmentsByOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentsByOrderQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetAssignmentsByOrderQueryHandler(db *gorm.DB) GetAssignmentsByOrderQueryHandler {
	return GetAssignmentsByOrderQueryHandler{db: db}
}

// Handle executes the audit trail query. An order without assignments yields
// an empty slice, not an error.
func (h GetAssignmentsByOrderQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentsByOrderQuery,
) ([]GetAssignmentsByOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	facts := make([]GetAssignmentsByOrderQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			rider_id,
			assigned_at,
			override_sla,
			assigned_by
		FROM assignments
		WHERE order_id = ?
		ORDER BY assigned_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fact GetAssignmentsByOrderQueryResponse
		var orderID, riderID uuid.UUID
		var assignedAt time.Time

		err = rows.Scan(
			&orderID,
			&riderID,
			&assignedAt,
			&fact.OverrideSLA,
			&fact.AssignedBy,
		)
		if err != nil {
			return nil, err
		}

		oid, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		rid, idErr := kernel.UUIDFromBytes(riderID[:])
		if idErr != nil {
			return nil, idErr
		}
		fact.OrderID = oid
		fact.RiderID = rid
		fact.AssignedAt = assignedAt

		facts = append(facts, fact)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return facts, nil
}
