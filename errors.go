package sqlbind

import "errors"

// Sentinel errors for construction and render faults. All of them indicate a
// caller bug; none is retryable.
var (
	// ErrNilValue is returned when a required condition factory receives a
	// nil value. Use the *If factory when the value is optional.
	ErrNilValue = errors.New("sqlbind: required value is nil")

	// ErrEmptySet is returned when IN/NOT IN is constructed with no values.
	ErrEmptySet = errors.New("sqlbind: membership set is empty")

	// ErrNoConditions is returned when And/Or is left with no conditions
	// after absent entries are dropped.
	ErrNoConditions = errors.New("sqlbind: composite requires at least one condition")

	// ErrNoFilter is returned when an UPDATE or DELETE is rendered with no
	// filter and without the explicit AllRows escape.
	ErrNoFilter = errors.New("sqlbind: statement has no filter; call AllRows to affect every row")

	// ErrRendered is returned when a builder is mutated or rendered after
	// its single Render call.
	ErrRendered = errors.New("sqlbind: builder already rendered")

	// ErrUnboundPlaceholder is returned by Result.Verify when the statement
	// text contains a placeholder with no bound value.
	ErrUnboundPlaceholder = errors.New("sqlbind: placeholder has no bound value")
)
