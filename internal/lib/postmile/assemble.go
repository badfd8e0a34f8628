package postmile

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/dpup/postmile/server/internal/lib/geo"
)

// Assemble trims every fragment of route between the projections of start
// and end and keeps the successful trims as separate fragments, in route
// order.
//
// With the zero Options every fragment with at least 2 coordinates yields a
// trim, including fragments nowhere near the boundary points.
func Assemble(route Route, start, end orb.Point, opts Options) (orb.MultiLineString, error) {
	if len(route.Fragments) == 0 {
		return nil, fmt.Errorf("%w: route %s has no fragments", ErrEmptyGeometry, route.Key)
	}

	var assembled orb.MultiLineString
	for _, fragment := range route.Fragments {
		trimmed, err := geo.Trim(fragment, start, end)
		if err != nil {
			continue
		}

		if opts.MaxFragmentDistance > 0 &&
			math.Min(trimmed.Start.Distance, trimmed.End.Distance) > opts.MaxFragmentDistance {
			continue
		}

		assembled = append(assembled, trimmed.Path)
	}

	if len(assembled) == 0 {
		return nil, fmt.Errorf("%w: none of %d fragments of route %s could be trimmed",
			ErrNoValidSegment, len(route.Fragments), route.Key)
	}

	return assembled, nil
}
