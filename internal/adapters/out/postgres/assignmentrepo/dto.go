// Package assignmentrepo persists assignment facts, the append-only audit
// trail written in the same transaction as each successful assignment.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// AssignmentDTO represents one assignment fact row. Rows are inserted and
// never updated; the surrogate key keeps repeated assignments of the same
// order distinct.
type AssignmentDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	RiderID     uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt  time.Time
	OverrideSLA bool `gorm:"column:override_sla"`
	AssignedBy  string
}

// TableName specifies the database table name for assignment facts.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment fact to its database representation.
func fromDomain(fact order.Assignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:     fact.OrderID().Bytes(),
		RiderID:     fact.RiderID().Bytes(),
		AssignedAt:  fact.AssignedAt(),
		OverrideSLA: fact.OverrideSLA(),
		AssignedBy:  fact.AssignedBy(),
	}
}

// toDomain converts a database DTO to an assignment fact.
func toDomain(dto AssignmentDTO) (order.Assignment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Assignment{}, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return order.Assignment{}, err
	}

	return order.NewAssignment(orderID, riderID, dto.AssignedAt, dto.OverrideSLA, dto.AssignedBy)
}
