package match

import "errors"

// These describe engine-internal contract violations. They are never
// expected during correct operation and, by the caller that can observe
// them (the engine itself), are escalated to panics rather than returned.
// Rejections and unknown-id lookups are not errors: a rejection is
// expressed by an empty return value and a Reject Event (see audit.go), and
// a cancel or modify of an unknown id is a silent no-op.
var (
	// ErrOverfill is raised by Order.Fill when the fill quantity exceeds
	// the order's remaining quantity.
	ErrOverfill = errors.New("fill quantity exceeds remaining quantity")

	// ErrInvalidRepeg is raised by Order.ToGoodTillCancel on any order
	// whose type is not Market.
	ErrInvalidRepeg = errors.New("only market orders can be re-pegged")
)
