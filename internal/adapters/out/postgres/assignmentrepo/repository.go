package assignmentrepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add appends an assignment fact.
func (r *GormAssignmentRepository) Add(ctx context.Context, fact order.Assignment) error {
	if err := fact.OrderID().Validate(); err != nil {
		return err
	}

	dto := fromDomain(fact)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves the assignment history of an order, oldest first.
func (r *GormAssignmentRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("assigned_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	facts := make([]order.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		fact, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		facts = append(facts, fact)
	}

	return facts, nil
}
