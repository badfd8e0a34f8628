package postmile

import "fmt"

// ExtractSegment trims route between the first and last of the ordered
// markers, as returned by SelectMarkers.
func ExtractSegment(route Route, ordered []Marker, opts Options) (*Result, error) {
	if len(ordered) == 0 {
		return nil, fmt.Errorf("%w: no boundary markers for route %s", ErrEmptySelection, route.Key)
	}

	boundary := [2]Marker{ordered[0], ordered[len(ordered)-1]}

	fragments, err := Assemble(route, boundary[0].Position, boundary[1].Position, opts)
	if err != nil {
		return nil, err
	}

	result := BuildResult(boundary, fragments)
	return &result, nil
}

// Extract selects the markers in r and extracts the route segment between them
func Extract(route Route, markers []Marker, r Range, opts Options) (*Result, error) {
	if len(route.Fragments) == 0 {
		return nil, fmt.Errorf("%w: route %s has no fragments", ErrEmptyGeometry, route.Key)
	}

	ordered, err := SelectMarkers(markers, r)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", route.Key, err)
	}

	return ExtractSegment(route, ordered, opts)
}
