package rider

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the availability state of a rider.
//
// Online, Idle and Busy riders may receive assignments (subject to capacity);
// Offline riders must never receive one. Busy/Idle are maintained by the
// aggregate as load changes, Online/Offline come from the telemetry feed.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOnline means the rider is available and connected.
	StatusOnline

	// StatusOffline means the rider is disconnected and must not be assigned.
	StatusOffline

	// StatusBusy means the rider is carrying at least one active order.
	StatusBusy

	// StatusIdle means the rider is connected with no active orders.
	StatusIdle
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		StatusOnline:  "online",
		StatusOffline: "offline",
		StatusBusy:    "busy",
		StatusIdle:    "idle",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOnline:  "online",
		StatusOffline: "offline",
		StatusBusy:    "busy",
		StatusIdle:    "idle",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid rider status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid rider status", s))
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

// IsAssignable reports whether a rider in this status may receive new orders.
func (s Status) IsAssignable() bool {
	return s != StatusOffline && s != StatusUnknown
}
