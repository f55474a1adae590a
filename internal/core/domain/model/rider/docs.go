// Package rider contains the Rider aggregate root and its Status value object.
//
// A rider's active load is mutated only through AcceptOrder (by the assignment
// coordinator) and CompleteOrder (by the delivery-progress collaborator); both
// keep the load within [0, maxCapacity] and keep the busy/idle status in sync.
package rider
