package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRidersQueryHandler retrieves rider pages from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetRidersQueryHandler creates a handler for rider list queries.
// Requires a GORM database connection for query execution.
func NewGetRidersQueryHandler(db *gorm.DB) GetRidersQueryHandler {
	return GetRidersQueryHandler{db: db}
}

// Handle executes the rider list query. Results are sorted by name; the
// search matches rider names case-insensitively.
func (h GetRidersQueryHandler) Handle(
	ctx context.Context,
	query GetRidersQuery,
) (GetRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRidersQueryResponse{}, err
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 3)
	if query.Status() != "" {
		where += " AND status = ?"
		args = append(args, query.Status())
	}
	if query.Zone() != "" {
		where += " AND zone = ?"
		args = append(args, query.Zone())
	}
	if query.Search() != "" {
		where += " AND name ILIKE ?"
		args = append(args, "%"+query.Search()+"%")
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM riders "+where, args...).
		Scan(&total).Error; err != nil {
		return GetRidersQueryResponse{}, err
	}

	listArgs := append(args, query.PerPage(), (query.Page()-1)*query.PerPage())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			zone,
			lat,
			lng,
			active_orders_count,
			max_capacity,
			avg_eta_minutes
		FROM riders
		`+where+`
		ORDER BY name
		LIMIT ? OFFSET ?
	`, listArgs...).Rows()
	if err != nil {
		return GetRidersQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]RiderResponse, 0, query.PerPage())
	for rows.Next() {
		var item RiderResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Name,
			&item.Status,
			&item.Zone,
			&item.Lat,
			&item.Lng,
			&item.ActiveOrdersCount,
			&item.MaxCapacity,
			&item.AvgEtaMinutes,
		)
		if err != nil {
			return GetRidersQueryResponse{}, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetRidersQueryResponse{}, idErr
		}
		item.ID = riderID

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return GetRidersQueryResponse{}, err
	}

	return GetRidersQueryResponse{Items: items, Total: total}, nil
}
