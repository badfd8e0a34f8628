package postmile

import "errors"

var (
	// ErrInvalidRange is returned when a normalized range has non-finite bounds
	// or lies entirely outside the postmiles present on the route.
	ErrInvalidRange = errors.New("invalid postmile range")

	// ErrEmptySelection is returned when no marker falls inside the range
	ErrEmptySelection = errors.New("no postmile markers in range")

	// ErrEmptyGeometry is returned when a route has no fragments
	ErrEmptyGeometry = errors.New("route has no geometry")

	// ErrInvalidRouteKey is returned when a route key component is missing or
	// contains a path separator or ".."
	ErrInvalidRouteKey = errors.New("invalid route key")

	// ErrNoValidSegment is returned when no fragment of the route could be trimmed
	ErrNoValidSegment = errors.New("no valid segment found for boundary markers")
)
