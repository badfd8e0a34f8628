package geo

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/twpayne/go-polyline"
)

var (
	// ErrShortPath is returned when a path has fewer than 2 coordinates and
	// projection onto it is undefined
	ErrShortPath = errors.New("path must have at least 2 coordinates")

	// ErrInvalidTarget is returned when no micro-segment yields a finite
	// distance to the target, e.g. a NaN coordinate
	ErrInvalidTarget = errors.New("target point has no finite distance to path")
)

// ProjectOntoSegment returns the point on segment a-b closest to target and
// its clamped position t along the segment (0 at a, 1 at b).
func ProjectOntoSegment(target, a, b orb.Point) (orb.Point, float64) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		// Zero-length micro-segment
		return a, 0
	}

	t := ((target[0]-a[0])*dx + (target[1]-a[1])*dy) / lengthSq
	switch {
	case t <= 0:
		return a, 0
	case t >= 1:
		return b, 1
	}

	return orb.Point{a[0] + t*dx, a[1] + t*dy}, t
}

// Locate finds the closest point on path to target. Every consecutive
// coordinate pair is scanned; a strictly smaller distance replaces the current
// best, so on exact ties the first micro-segment in path order wins.
//
// A result is returned for any path with at least 2 coordinates no matter how
// far target is from it. Callers decide whether Distance is too large.
func Locate(path orb.LineString, target orb.Point) (Projection, error) {
	if len(path) < 2 {
		return Projection{}, ErrShortPath
	}

	best := Projection{Index: -1, Distance: math.Inf(1)}
	for i := 0; i < len(path)-1; i++ {
		projected, t := ProjectOntoSegment(target, path[i], path[i+1])
		distance := planar.Distance(target, projected)
		if distance < best.Distance {
			best = Projection{
				Index:    i,
				Point:    projected,
				Distance: distance,
				T:        t,
			}
		}
	}

	if best.Index < 0 {
		return Projection{}, ErrInvalidTarget
	}
	return best, nil
}

// Trim cuts path between the projections of start and end. The result always
// walks forward along the original vertex order: it begins at the projection
// that comes first in the path, continues through the interior vertices, and
// ends at the other projection. A projection that lands exactly on a vertex
// is not followed by a copy of that vertex. If both projections coincide the
// result is a single point.
func Trim(path orb.LineString, start, end orb.Point) (Trimmed, error) {
	s, err := Locate(path, start)
	if err != nil {
		return Trimmed{}, err
	}
	e, err := Locate(path, end)
	if err != nil {
		return Trimmed{}, err
	}

	if s.Index > e.Index || (s.Index == e.Index && s.T > e.T) {
		s, e = e, s
	}

	if s.Index == e.Index && s.Point.Equal(e.Point) {
		return Trimmed{Path: orb.LineString{s.Point}, Start: s, End: e}, nil
	}

	lo, hi := s.Index+1, e.Index+1
	if s.T == 1 {
		lo++
	}
	if e.T == 0 {
		hi--
	}

	trimmed := make(orb.LineString, 0, e.Index-s.Index+2)
	trimmed = append(trimmed, s.Point)
	if lo < hi {
		trimmed = append(trimmed, path[lo:hi]...)
	}
	trimmed = append(trimmed, e.Point)

	return Trimmed{Path: trimmed, Start: s, End: e}, nil
}

// DistanceToPath returns the planar distance from point to the closest point on path
func DistanceToPath(point orb.Point, path orb.LineString) (float64, error) {
	projection, err := Locate(path, point)
	if err != nil {
		return 0, err
	}
	return projection.Distance, nil
}

// GeodesicLength sums the great-circle length in meters of every path, which
// is only meaningful for longitude/latitude coordinates.
func GeodesicLength(paths orb.MultiLineString) float64 {
	total := 0.0
	for _, path := range paths {
		total += orbgeo.Length(path)
	}
	return total
}

// EncodePolyline encodes a longitude/latitude path with the Google polyline
// algorithm. Encoded polylines are latitude first.
func EncodePolyline(path orb.LineString) Polyline {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}

	return Polyline{
		EncodedPolyline: string(polyline.EncodeCoords(coords)),
		Points:          path,
	}
}
