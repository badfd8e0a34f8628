package postmile

import (
	"fmt"
	"math"
	"sort"
)

// SelectMarkers returns the markers whose PM lies in r, inclusive at both
// ends, ordered by PM and then odometer. A reversed range is swapped first.
//
// Exactly one match is a valid, degenerate selection: the first and last
// boundary markers are then the same marker.
func SelectMarkers(markers []Marker, r Range) ([]Marker, error) {
	r = r.Normalize()
	if !r.IsFinite() {
		return nil, fmt.Errorf("%w: %s has non-finite bounds", ErrInvalidRange, r)
	}

	lo, hi, ok := PMExtent(markers)
	if !ok {
		return nil, fmt.Errorf("%w: no markers loaded for range %s", ErrEmptySelection, r)
	}
	if r.End < lo || r.Start > hi {
		return nil, fmt.Errorf("%w: %s is outside postmiles [%.3f, %.3f]", ErrInvalidRange, r, lo, hi)
	}

	var selected []Marker
	for _, m := range markers {
		if r.Contains(m.PM) {
			selected = append(selected, m)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySelection, r)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Less(selected[j])
	})

	return selected, nil
}

// PMExtent returns the smallest and largest PM among markers. ok is false
// when there is no marker with a comparable PM.
func PMExtent(markers []Marker) (lo, hi float64, ok bool) {
	for _, m := range markers {
		if math.IsNaN(m.PM) {
			continue
		}
		if !ok {
			lo, hi, ok = m.PM, m.PM, true
			continue
		}
		if m.PM < lo {
			lo = m.PM
		}
		if m.PM > hi {
			hi = m.PM
		}
	}
	return lo, hi, ok
}
