// Package v1 defines the postmile.v1 SegmentService: its messages, a gRPC
// service descriptor carried over a JSON codec, and the REST gateway routes.
package v1

import "encoding/json"

// RouteRef identifies a route dataset in requests
type RouteRef struct {
	District  string `json:"district"`
	County    string `json:"county"`
	Route     string `json:"route"`
	Direction string `json:"direction"`
}

type ListRoutesRequest struct{}

// ListRoutesResponse is the route catalog as a district, county, route,
// direction hierarchy
type ListRoutesResponse struct {
	Districts []*District `json:"districts"`
	Total     int32       `json:"total"`
}

type District struct {
	Code     string    `json:"code"`
	Counties []*County `json:"counties"`
}

type County struct {
	Code   string        `json:"code"`
	Routes []*RouteEntry `json:"routes"`
}

type RouteEntry struct {
	Route      string   `json:"route"`
	Directions []string `json:"directions"`
}

type GetRouteRequest struct {
	RouteRef
}

type GetRouteResponse struct {
	Route *RouteInfo `json:"route"`
}

// RouteInfo summarizes a route dataset. MinPm and MaxPm bound the ranges
// that can be extracted.
type RouteInfo struct {
	RouteRef
	MinPm         float64 `json:"min_pm"`
	MaxPm         float64 `json:"max_pm"`
	MarkerCount   int32   `json:"marker_count"`
	FragmentCount int32   `json:"fragment_count"`
}

type ExtractSegmentRequest struct {
	RouteRef
	StartPm float64 `json:"start_pm"`
	EndPm   float64 `json:"end_pm"`
}

type ExtractSegmentResponse struct {
	Segment *Segment `json:"segment"`
}

type ExportSegmentRequest struct {
	RouteRef
	StartPm float64 `json:"start_pm"`
	EndPm   float64 `json:"end_pm"`
	// Formats to write; the server defaults apply when empty
	Formats []string `json:"formats,omitempty"`
}

type ExportSegmentResponse struct {
	Segment *Segment `json:"segment"`
	Files   []string `json:"files"`
}

// Segment is an extracted piece of a route
type Segment struct {
	Id         string             `json:"id"`
	Attributes *SegmentAttributes `json:"attributes"`
	// Geometry is a GeoJSON Point, LineString or MultiLineString
	Geometry        json.RawMessage   `json:"geometry"`
	BoundaryMarkers []*BoundaryMarker `json:"boundary_markers"`
	// Polylines holds one Google encoded polyline per fragment
	Polylines     []string `json:"polylines"`
	LengthMeters  float64  `json:"length_meters"`
	FragmentCount int32    `json:"fragment_count"`
	// Degenerate is set when the range selected a single marker
	Degenerate bool `json:"degenerate"`
}

type SegmentAttributes struct {
	District  string  `json:"district"`
	County    string  `json:"county"`
	Route     string  `json:"route"`
	Direction string  `json:"direction"`
	StartPm   float64 `json:"start_pm"`
	EndPm     float64 `json:"end_pm"`
}

type BoundaryMarker struct {
	Pm       float64      `json:"pm"`
	Odometer float64      `json:"odometer"`
	Location *Coordinates `json:"location"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
