package geo

import "github.com/paulmach/orb"

// Projection is the closest point on a path to some target point
type Projection struct {
	// Index of the micro-segment path[Index]..path[Index+1] holding Point
	Index    int       `json:"index"`
	Point    orb.Point `json:"point"`
	Distance float64   `json:"distance"`
	// T is the clamped position of Point along its micro-segment, 0 at path[Index]
	T float64 `json:"t"`
}

// Trimmed is the part of a path lying between two projections, in path order
type Trimmed struct {
	Path  orb.LineString `json:"path"`
	Start Projection     `json:"start"`
	End   Projection     `json:"end"`
}

// Polyline represents an encoded polyline with optional decoded points
type Polyline struct {
	EncodedPolyline string         `json:"encoded_polyline"`
	Points          orb.LineString `json:"points"`
}
