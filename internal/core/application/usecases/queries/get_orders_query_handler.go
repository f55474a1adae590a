package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order pages from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the order list query. Results are newest first; the
// address search matches pickup and drop addresses case-insensitively.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 4)
	if query.Status() != "" {
		where += " AND status = ?"
		args = append(args, query.Status())
	}
	if query.Zone() != "" {
		where += " AND zone = ?"
		args = append(args, query.Zone())
	}
	if query.Priority() != "" {
		where += " AND priority = ?"
		args = append(args, query.Priority())
	}
	if query.Search() != "" {
		where += " AND (pickup_address ILIKE ? OR drop_address ILIKE ?)"
		pattern := "%" + query.Search() + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders "+where, args...).
		Scan(&total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	listArgs := append(args, query.PerPage(), (query.Page()-1)*query.PerPage())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			priority,
			pickup_address,
			drop_address,
			zone,
			distance_km,
			eta_minutes,
			sla_deadline,
			rider_id,
			created_at
		FROM orders
		`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, listArgs...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]OrderResponse, 0, query.PerPage())
	for rows.Next() {
		var item OrderResponse
		var id uuid.UUID
		var riderID uuid.NullUUID
		var slaDeadline, createdAt time.Time

		err = rows.Scan(
			&id,
			&item.Status,
			&item.Priority,
			&item.PickupAddress,
			&item.DropAddress,
			&item.Zone,
			&item.DistanceKm,
			&item.EtaMinutes,
			&slaDeadline,
			&riderID,
			&createdAt,
		)
		if err != nil {
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}
		item.ID = orderID
		item.SLADeadline = slaDeadline
		item.CreatedAt = createdAt

		if riderID.Valid {
			rid, ridErr := kernel.UUIDFromBytes(riderID.UUID[:])
			if ridErr != nil {
				return GetOrdersQueryResponse{}, ridErr
			}
			item.RiderID = &rid
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{Items: items, Total: total}, nil
}
