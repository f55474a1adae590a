package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct dispatch workflow.
//
// State transitions:
//
//	Unassigned ──> Assigned ──> InTransit ──> Delivered
//	     │             │            │
//	     └─────────────┴────────────┴──> Cancelled
//
// Cancelled and Delivered are terminal states.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusUnassigned is the initial status of every order.
	// Orders in this status are waiting for a rider.
	StatusUnassigned

	// StatusAssigned indicates the order has been committed to a rider.
	StatusAssigned

	// StatusInTransit indicates the rider has picked up the order.
	StatusInTransit

	// StatusDelivered indicates the order reached its drop location.
	// Terminal state.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before delivery.
	// Terminal state, reachable from any non-delivered status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusUnassigned: "unassigned",
		StatusAssigned:   "assigned",
		StatusInTransit:  "in_transit",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusUnassigned: "unassigned",
		StatusAssigned:   "assigned",
		StatusInTransit:  "in_transit",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed from this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Assign performs the Unassigned -> Assigned transition.
// Returns ErrOrderCancelled for cancelled orders and ErrOrderAlreadyAssigned
// for any other non-unassigned status.
func (s Status) Assign() (Status, error) {
	switch s {
	case StatusUnassigned:
		return StatusAssigned, nil
	case StatusCancelled:
		return StatusUnknown, ErrOrderCancelled
	default:
		return StatusUnknown, ErrOrderAlreadyAssigned
	}
}

// StartTransit performs the Assigned -> InTransit transition.
func (s Status) StartTransit() (Status, error) {
	if s != StatusAssigned {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot start transit from %s", s))
	}
	return StatusInTransit, nil
}

// Deliver performs the InTransit -> Delivered transition.
func (s Status) Deliver() (Status, error) {
	if s != StatusInTransit {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot deliver from %s", s))
	}
	return StatusDelivered, nil
}

// Cancel performs the transition to Cancelled from any non-delivered status.
func (s Status) Cancel() (Status, error) {
	if s == StatusDelivered {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot cancel a delivered order"))
	}
	if s == StatusCancelled {
		return StatusCancelled, nil
	}
	return StatusCancelled, nil
}
