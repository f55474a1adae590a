package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority represents the urgency tier of an order.
// Higher values dispatch first; the scheduler drains high before medium
// before low.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow is the least urgent tier.
	PriorityLow

	// PriorityMedium is the default tier.
	PriorityMedium

	// PriorityHigh is the most urgent tier.
	PriorityHigh
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		PriorityLow:     "low",
		PriorityMedium:  "medium",
		PriorityHigh:    "high",
	}
}

func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityMedium: "medium",
		PriorityHigh:   "high",
	}
}

// PriorityFromString parses a priority from its wire representation.
// Returns an error for unrecognized values.
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getValidPriorityStrings() {
		if str == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid order priority", s))
}

// Validate checks if the Priority value is one of the defined tiers.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid order priority", p))
	}
	return nil
}

// String returns the wire representation of the priority.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Rank returns a comparable urgency value: high > medium > low.
// Used for deterministic ordering of dispatch work.
func (p Priority) Rank() int {
	return int(p)
}
