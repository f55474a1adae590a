// Package rule contains the AutoAssignRule aggregate and its Criteria value
// object. Criteria validation is all-or-nothing: a single out-of-range field
// rejects the whole set and leaves the persisted rule untouched.
package rule
