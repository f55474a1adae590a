package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRidersQueryIsNotConstructed = errors.New(
	"GetRidersQuery must be created via NewGetRidersQuery constructor",
)

// GetRidersQuery retrieves a filtered, paginated page of riders.
// All filters are optional; empty values match everything.
type GetRidersQuery struct {
	status  string
	zone    string
	search  string
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// NewGetRidersQuery creates a rider list query. Page numbers start at 1;
// out-of-bounds pagination values are clamped rather than rejected.
func NewGetRidersQuery(status, zone, search string, page, perPage int) GetRidersQuery {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return GetRidersQuery{
		status:  status,
		zone:    zone,
		search:  search,
		page:    page,
		perPage: perPage,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRidersQueryIsNotConstructed if validation fails.
func (q GetRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetRidersQueryIsNotConstructed)
}

// Status returns the status filter; empty matches all statuses.
func (q GetRidersQuery) Status() string { return q.status }

// Zone returns the zone filter; empty matches all zones.
func (q GetRidersQuery) Zone() string { return q.zone }

// Search returns the name search text; empty matches everyone.
func (q GetRidersQuery) Search() string { return q.search }

// Page returns the 1-based page number.
func (q GetRidersQuery) Page() int { return q.page }

// PerPage returns the page size.
func (q GetRidersQuery) PerPage() int { return q.perPage }

// RiderResponse is one rider row in the list read model.
type RiderResponse struct {
	ID                kernel.UUID
	Name              string
	Status            string
	Zone              string
	Lat               float64
	Lng               float64
	ActiveOrdersCount int
	MaxCapacity       int
	AvgEtaMinutes     float64
}

// GetRidersQueryResponse is one page of riders plus the unfiltered total for
// the same filter set.
type GetRidersQueryResponse struct {
	Items []RiderResponse
	Total int64
}
