// Package order contains the Order aggregate root and its supporting value
// objects (Status, Priority).
//
// An order enters the system unassigned, is committed to a rider by the
// assignment coordinator, and then progresses through in_transit to delivered
// via external delivery-progress events. Cancellation is terminal from any
// non-delivered state. The aggregate enforces the rider-reference invariant:
// a rider ID is present exactly while the order is assigned, in transit, or
// delivered.
package order
