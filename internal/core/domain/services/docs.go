// Package services provides domain services that coordinate business logic
// across multiple aggregates.
//
// The package includes:
//   - ScoringEngine: filters and ranks candidate riders for an order under
//     the active auto-assign criteria
//
// Services here are pure: they never touch storage and never mutate their
// inputs. Mutation happens in the application layer, which re-validates every
// precondition inside its transaction.
package services
