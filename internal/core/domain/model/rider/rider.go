package rider

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
	// ErrRiderOffline is returned when an assignment targets an offline rider.
	ErrRiderOffline = errors.New("rider is offline")
	// ErrRiderFull is returned when an assignment would exceed the rider's
	// capacity, including lost commit races.
	ErrRiderFull = errors.New("rider capacity exhausted")
	// ErrRiderHasNoActiveOrders is returned when completing an order on a
	// rider with zero active orders.
	ErrRiderHasNoActiveOrders = errors.New("rider has no active orders")

	// ErrNameIsRequired is returned when creating a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrZoneIsRequired is returned when creating a rider without a zone.
	ErrZoneIsRequired = errs.NewValueIsRequiredError("zone")
)

// Rider represents a delivery rider in the dispatch system. It is an aggregate
// root that manages rider identity, availability, location, and active load.
//
// Invariants:
//   - 0 <= activeOrdersCount <= maxCapacity at all times
//   - maxCapacity >= 1
//   - An offline rider never accepts a new order
//   - Busy/Idle status tracks whether the rider carries active orders
//
// Example usage:
//
//	loc, _ := kernel.NewGeoPoint(52.52, 13.405)
//	r, err := rider.NewRider(kernel.NewUUID(), "Asel", "berlin-east", loc, 3, 6.5)
//	if err != nil {
//	    // Handle construction error
//	}
type Rider struct {
	id                kernel.UUID
	name              string
	status            Status
	location          kernel.GeoPoint
	zone              string
	activeOrdersCount int
	maxCapacity       int
	avgEtaMinutes     float64
	version           int

	guard guard.ConstructorGuard
}

// NewRider creates a new Rider with the specified parameters. This is the
// intake path for the rider-telemetry collaborator; new riders start idle
// with zero active orders and version 1.
func NewRider(
	id kernel.UUID,
	name string,
	zone string,
	location kernel.GeoPoint,
	maxCapacity int,
	avgEtaMinutes float64,
) (*Rider, error) {
	r := &Rider{
		status:  StatusIdle,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setZone(zone),
		r.setLocation(location),
		r.setMaxCapacity(maxCapacity),
		r.setAvgEtaMinutes(avgEtaMinutes),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage,
// including its availability status, current load and optimistic-concurrency
// version.
func RestoreRider(
	id kernel.UUID,
	name string,
	status Status,
	zone string,
	location kernel.GeoPoint,
	activeOrdersCount int,
	maxCapacity int,
	avgEtaMinutes float64,
	version int,
) (*Rider, error) {
	r := &Rider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setStatus(status),
		r.setZone(zone),
		r.setLocation(location),
		r.setMaxCapacity(maxCapacity),
		r.setActiveOrdersCount(activeOrdersCount),
		r.setAvgEtaMinutes(avgEtaMinutes),
		r.setVersion(version),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Rider was properly constructed via a constructor.
// The zero value of Rider is invalid and will fail this validation.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares two riders by their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's human-readable name.
func (r *Rider) Name() string {
	return r.name
}

// Status returns the rider's availability status.
func (r *Rider) Status() Status {
	return r.status
}

// Zone returns the coarse geographic zone the rider works in.
func (r *Rider) Zone() string {
	return r.zone
}

// Location returns the rider's last reported position.
func (r *Rider) Location() kernel.GeoPoint {
	return r.location
}

// ActiveOrdersCount returns the number of orders the rider currently carries.
func (r *Rider) ActiveOrdersCount() int {
	return r.activeOrdersCount
}

// MaxCapacity returns the maximum number of concurrent orders for this rider.
func (r *Rider) MaxCapacity() int {
	return r.maxCapacity
}

// AvgEtaMinutes returns the rider's historical average pickup overhead in minutes.
func (r *Rider) AvgEtaMinutes() float64 {
	return r.avgEtaMinutes
}

// Version returns the optimistic-concurrency version of the aggregate.
func (r *Rider) Version() int {
	return r.version
}

// RemainingCapacity returns how many more orders the rider can accept.
func (r *Rider) RemainingCapacity() int {
	return r.maxCapacity - r.activeOrdersCount
}

// CanAcceptOrder reports whether the rider may take one more order right now.
func (r *Rider) CanAcceptOrder() bool {
	return r.status.IsAssignable() && r.activeOrdersCount < r.maxCapacity
}

// AcceptOrder commits one more order to the rider.
//
// Business rules, re-checked at commit time by the assignment coordinator:
//   - The rider must not be offline (ErrRiderOffline)
//   - activeOrdersCount must be below maxCapacity (ErrRiderFull)
//
// On success the load is incremented and an idle or online rider becomes busy.
func (r *Rider) AcceptOrder() error {
	if r.status == StatusOffline {
		return ErrRiderOffline
	}
	if r.activeOrdersCount >= r.maxCapacity {
		return ErrRiderFull
	}

	r.activeOrdersCount++
	r.status = StatusBusy
	return nil
}

// CompleteOrder releases one order from the rider after delivery or
// cancellation. At zero load a busy rider becomes idle.
func (r *Rider) CompleteOrder() error {
	if r.activeOrdersCount == 0 {
		return ErrRiderHasNoActiveOrders
	}

	r.activeOrdersCount--
	if r.activeOrdersCount == 0 && r.status == StatusBusy {
		r.status = StatusIdle
	}
	return nil
}

// MoveTo updates the rider's last reported position from the telemetry feed.
func (r *Rider) MoveTo(location kernel.GeoPoint) error {
	return r.setLocation(location)
}

// SetStatus applies an availability update from the telemetry feed.
// Load-derived statuses are preserved: setting online on a loaded rider
// yields busy.
func (r *Rider) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if status == StatusOnline && r.activeOrdersCount > 0 {
		status = StatusBusy
	}

	r.status = status
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	r.name = name
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	r.status = status
	return nil
}

func (r *Rider) setZone(zone string) error {
	if zone == "" {
		return ErrZoneIsRequired
	}

	r.zone = zone
	return nil
}

func (r *Rider) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	r.location = location
	return nil
}

func (r *Rider) setMaxCapacity(maxCapacity int) error {
	if maxCapacity < 1 {
		return errs.NewValueIsOutOfRangeError("maxCapacity", maxCapacity, 1, "unbounded")
	}

	r.maxCapacity = maxCapacity
	return nil
}

// setActiveOrdersCount restores the load, enforcing 0 <= count <= capacity.
// Must run after setMaxCapacity.
func (r *Rider) setActiveOrdersCount(count int) error {
	if count < 0 || count > r.maxCapacity {
		return errs.NewValueIsOutOfRangeError("activeOrdersCount", count, 0, r.maxCapacity)
	}

	r.activeOrdersCount = count
	return nil
}

func (r *Rider) setAvgEtaMinutes(avgEtaMinutes float64) error {
	if avgEtaMinutes < 0 {
		return errs.NewValueIsInvalidError("avgEtaMinutes")
	}

	r.avgEtaMinutes = avgEtaMinutes
	return nil
}

func (r *Rider) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("rider version")
	}

	r.version = version
	return nil
}
