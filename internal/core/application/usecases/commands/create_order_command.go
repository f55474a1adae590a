package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order
// in unassigned state, as placed by an operator or the order-intake feed.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	priority      order.Priority
	pickupPoint   kernel.GeoPoint
	pickupAddress string
	dropPoint     kernel.GeoPoint
	dropAddress   string
	zone          string
	distanceKm    float64
	etaMinutes    float64
	slaDeadline   time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Field validation is deferred to the Order constructor in the handler; the
// command only checks the identifier so an obviously broken request fails
// before a transaction is opened.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	priority order.Priority,
	pickupPoint kernel.GeoPoint,
	pickupAddress string,
	dropPoint kernel.GeoPoint,
	dropAddress string,
	zone string,
	distanceKm float64,
	etaMinutes float64,
	slaDeadline time.Time,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:       orderID,
		priority:      priority,
		pickupPoint:   pickupPoint,
		pickupAddress: pickupAddress,
		dropPoint:     dropPoint,
		dropAddress:   dropAddress,
		zone:          zone,
		distanceKm:    distanceKm,
		etaMinutes:    etaMinutes,
		slaDeadline:   slaDeadline,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Priority returns the order's dispatch priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// PickupPoint returns the pickup coordinates.
func (c CreateOrderCommand) PickupPoint() kernel.GeoPoint {
	return c.pickupPoint
}

// PickupAddress returns the human-readable pickup address.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DropPoint returns the drop-off coordinates.
func (c CreateOrderCommand) DropPoint() kernel.GeoPoint {
	return c.dropPoint
}

// DropAddress returns the human-readable drop-off address.
func (c CreateOrderCommand) DropAddress() string {
	return c.dropAddress
}

// Zone returns the order's dispatch zone.
func (c CreateOrderCommand) Zone() string {
	return c.zone
}

// DistanceKm returns the route distance supplied by the intake feed.
func (c CreateOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

// EtaMinutes returns the route ETA supplied by the intake feed.
func (c CreateOrderCommand) EtaMinutes() float64 {
	return c.etaMinutes
}

// SLADeadline returns the time by which the order must be assigned.
func (c CreateOrderCommand) SLADeadline() time.Time {
	return c.slaDeadline
}
