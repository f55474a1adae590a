// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// Pagination defaults and bounds for list queries.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// GetOrdersQuery retrieves a filtered, paginated page of orders.
// All filters are optional; empty values match everything.
type GetOrdersQuery struct {
	status   string
	zone     string
	priority string
	search   string
	page     int
	perPage  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order list query. Page numbers start at 1;
// out-of-bounds pagination values are clamped rather than rejected.
func NewGetOrdersQuery(status, zone, priority, search string, page, perPage int) GetOrdersQuery {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return GetOrdersQuery{
		status:   status,
		zone:     zone,
		priority: priority,
		search:   search,
		page:     page,
		perPage:  perPage,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter; empty matches all statuses.
func (q GetOrdersQuery) Status() string { return q.status }

// Zone returns the zone filter; empty matches all zones.
func (q GetOrdersQuery) Zone() string { return q.zone }

// Priority returns the priority filter; empty matches all priorities.
func (q GetOrdersQuery) Priority() string { return q.priority }

// Search returns the address search text; empty matches everything.
func (q GetOrdersQuery) Search() string { return q.search }

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int { return q.page }

// PerPage returns the page size.
func (q GetOrdersQuery) PerPage() int { return q.perPage }

// OrderResponse is one order row in the list read model.
type OrderResponse struct {
	ID            kernel.UUID
	Status        string
	Priority      string
	PickupAddress string
	DropAddress   string
	Zone          string
	DistanceKm    float64
	EtaMinutes    float64
	SLADeadline   time.Time
	RiderID       *kernel.UUID
	CreatedAt     time.Time
}

// GetOrdersQueryResponse is one page of orders plus the unfiltered total for
// the same filter set.
type GetOrdersQueryResponse struct {
	Items []OrderResponse
	Total int64
}
