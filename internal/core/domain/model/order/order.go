package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderAlreadyAssigned is returned when an assignment targets an order
	// that is no longer unassigned, including lost commit races.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned")
	// ErrOrderCancelled is returned when an assignment targets a cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")
	// ErrSLABreached is returned when an assignment is attempted after the
	// order's SLA deadline without an explicit override.
	ErrSLABreached = errors.New("order sla deadline has passed")

	// ErrZoneIsRequired is returned when creating an order without a zone.
	ErrZoneIsRequired = errs.NewValueIsRequiredError("zone")
	// ErrPickupAddressIsRequired is returned when creating an order without a pickup address.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickup address")
	// ErrDropAddressIsRequired is returned when creating an order without a drop address.
	ErrDropAddressIsRequired = errs.NewValueIsRequiredError("drop address")
	// ErrSLADeadlineIsRequired is returned when creating an order without an SLA deadline.
	ErrSLADeadlineIsRequired = errs.NewValueIsRequiredError("sla deadline")
)

// Order represents a delivery order in the dispatch system. It is the aggregate
// root that manages the order lifecycle from intake through assignment to
// delivery or cancellation.
//
// Invariants:
//   - Must have a valid unique identifier, zone, and pickup/drop waypoints
//   - distanceKm and etaMinutes are never negative
//   - riderID is set if and only if status is assigned, in_transit, or delivered
//   - Status transitions follow the state machine defined on Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	status        Status
	priority      Priority
	pickupPoint   kernel.GeoPoint
	pickupAddress string
	dropPoint     kernel.GeoPoint
	dropAddress   string
	zone          string
	distanceKm    float64
	etaMinutes    float64
	slaDeadline   time.Time
	riderID       *kernel.UUID
	createdAt     time.Time
	version       int

	guard guard.ConstructorGuard
}

// NewOrder creates a new unassigned Order with validation. This is the intake
// path for both the order feed and manually created orders.
//
// The constructor validates all parameters and aggregates violations into a
// single error. The order starts in StatusUnassigned with no rider, createdAt
// set to the current UTC time and version 1.
//
// Example:
//
//	pickup, _ := kernel.NewGeoPoint(52.52, 13.405)
//	drop, _ := kernel.NewGeoPoint(52.53, 13.41)
//	o, err := order.NewOrder(kernel.NewUUID(), order.PriorityHigh,
//	    pickup, "Warschauer Str. 1", drop, "Boxhagener Str. 2",
//	    "berlin-east", 2.4, 11, time.Now().Add(30*time.Minute))
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	priority Priority,
	pickupPoint kernel.GeoPoint,
	pickupAddress string,
	dropPoint kernel.GeoPoint,
	dropAddress string,
	zone string,
	distanceKm float64,
	etaMinutes float64,
	slaDeadline time.Time,
) (*Order, error) {
	o := &Order{
		status:    StatusUnassigned,
		createdAt: time.Now().UTC(),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPriority(priority),
		o.setPickup(pickupPoint, pickupAddress),
		o.setDrop(dropPoint, dropAddress),
		o.setZone(zone),
		o.setDistanceKm(distanceKm),
		o.setEtaMinutes(etaMinutes),
		o.setSLADeadline(slaDeadline),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its lifecycle status, optional rider assignment, creation time
// and optimistic-concurrency version. The restored order behaves identically
// to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	priority Priority,
	pickupPoint kernel.GeoPoint,
	pickupAddress string,
	dropPoint kernel.GeoPoint,
	dropAddress string,
	zone string,
	distanceKm float64,
	etaMinutes float64,
	slaDeadline time.Time,
	riderID *kernel.UUID,
	createdAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setPriority(priority),
		o.setPickup(pickupPoint, pickupAddress),
		o.setDrop(dropPoint, dropAddress),
		o.setZone(zone),
		o.setDistanceKm(distanceKm),
		o.setEtaMinutes(etaMinutes),
		o.setSLADeadline(slaDeadline),
		o.setRiderID(riderID),
		o.setCreatedAt(createdAt),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate checks if the Order was properly constructed via a constructor.
// The zero value of Order is invalid and will fail this validation.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the urgency tier of the order.
func (o *Order) Priority() Priority {
	return o.priority
}

// PickupPoint returns the pickup coordinate.
func (o *Order) PickupPoint() kernel.GeoPoint {
	return o.pickupPoint
}

// PickupAddress returns the human-readable pickup address.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DropPoint returns the drop coordinate.
func (o *Order) DropPoint() kernel.GeoPoint {
	return o.dropPoint
}

// DropAddress returns the human-readable drop address.
func (o *Order) DropAddress() string {
	return o.dropAddress
}

// Zone returns the coarse geographic zone the order belongs to.
func (o *Order) Zone() string {
	return o.zone
}

// DistanceKm returns the supplied pickup-to-drop route distance in kilometers.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// EtaMinutes returns the supplied delivery ETA in minutes.
func (o *Order) EtaMinutes() float64 {
	return o.etaMinutes
}

// SLADeadline returns the timestamp by which the order must be assigned.
func (o *Order) SLADeadline() time.Time {
	return o.slaDeadline
}

// Rider returns the assigned rider's ID, or nil when unassigned or cancelled.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// Assign commits the order to a rider.
//
// Business rules, re-checked at commit time by the assignment coordinator:
//   - The order must be in StatusUnassigned (ErrOrderAlreadyAssigned,
//     ErrOrderCancelled otherwise)
//   - When overrideSLA is false, at must not be past the SLA deadline
//     (ErrSLABreached)
//
// On success the status becomes StatusAssigned and Rider() returns riderID.
func (o *Order) Assign(riderID kernel.UUID, at time.Time, overrideSLA bool) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	if !overrideSLA && at.After(o.slaDeadline) {
		return ErrSLABreached
	}

	o.status = newStatus
	o.riderID = &riderID
	return nil
}

// StartTransit marks the order as picked up by its rider.
func (o *Order) StartTransit() error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Terminal.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel cancels the order. Allowed from any non-delivered status; clears the
// rider reference so the riderID-iff-active invariant holds. Terminal.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = nil
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	o.priority = priority
	return nil
}

func (o *Order) setPickup(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if address == "" {
		return ErrPickupAddressIsRequired
	}

	o.pickupPoint = point
	o.pickupAddress = address
	return nil
}

func (o *Order) setDrop(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if address == "" {
		return ErrDropAddressIsRequired
	}

	o.dropPoint = point
	o.dropAddress = address
	return nil
}

func (o *Order) setZone(zone string) error {
	if zone == "" {
		return ErrZoneIsRequired
	}

	o.zone = zone
	return nil
}

func (o *Order) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distanceKm")
	}

	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setEtaMinutes(etaMinutes float64) error {
	if etaMinutes < 0 {
		return errs.NewValueIsInvalidError("etaMinutes")
	}

	o.etaMinutes = etaMinutes
	return nil
}

func (o *Order) setSLADeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return ErrSLADeadlineIsRequired
	}

	o.slaDeadline = deadline
	return nil
}

// setRiderID restores the rider reference, enforcing the invariant that a
// rider is present exactly on assigned, in-transit and delivered orders.
func (o *Order) setRiderID(riderID *kernel.UUID) error {
	requiresRider := o.status == StatusAssigned || o.status == StatusInTransit || o.status == StatusDelivered
	if requiresRider && riderID == nil {
		return errs.NewValueIsRequiredError("riderID")
	}
	if !requiresRider && riderID != nil {
		return errs.NewValueIsInvalidError("riderID")
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return err
		}
	}

	o.riderID = riderID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}

	o.createdAt = createdAt
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("order version")
	}

	o.version = version
	return nil
}
