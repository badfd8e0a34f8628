package postmile

import "github.com/paulmach/orb"

// Attributes describe an extracted segment
type Attributes struct {
	District  string  `json:"District"`
	County    string  `json:"County"`
	Route     string  `json:"Route"`
	Direction string  `json:"Direction"`
	StartPM   float64 `json:"start_pm"`
	EndPM     float64 `json:"end_pm"`
}

// Properties returns the attributes as GeoJSON feature properties
func (a Attributes) Properties() map[string]interface{} {
	return map[string]interface{}{
		"District":  a.District,
		"County":    a.County,
		"Route":     a.Route,
		"Direction": a.Direction,
		"start_pm":  a.StartPM,
		"end_pm":    a.EndPM,
	}
}

// Result is an extracted route segment. StartPM and EndPM are the postmiles
// of the boundary markers and can differ from the requested range because
// markers only exist at discrete postmiles.
type Result struct {
	Fragments  orb.MultiLineString `json:"fragments"`
	Boundary   [2]Marker           `json:"boundary"`
	Attributes Attributes          `json:"attributes"`
	// Degenerate is set when a single marker was selected; every fragment is
	// then a single point
	Degenerate bool `json:"degenerate"`
}

// BuildResult packages assembled fragments with the boundary markers they
// were trimmed between. Identity codes come from the first boundary marker,
// since every marker of a route shares them.
func BuildResult(boundary [2]Marker, fragments orb.MultiLineString) Result {
	first, last := boundary[0], boundary[1]
	key := first.Key()

	return Result{
		Fragments: fragments,
		Boundary:  boundary,
		Attributes: Attributes{
			District:  key.District,
			County:    key.County,
			Route:     key.Route,
			Direction: key.Direction,
			StartPM:   first.PM,
			EndPM:     last.PM,
		},
		Degenerate: first == last,
	}
}

// Geometry returns the fragments as a single geometry: a LineString for one
// fragment, a MultiLineString for several. A lone single-point fragment is
// returned as a Point; inside a MultiLineString it is repeated so every part
// stays a valid line.
func (r *Result) Geometry() orb.Geometry {
	if len(r.Fragments) == 1 {
		fragment := r.Fragments[0]
		if len(fragment) == 1 {
			return fragment[0]
		}
		return fragment
	}

	lines := make(orb.MultiLineString, len(r.Fragments))
	for i, fragment := range r.Fragments {
		if len(fragment) == 1 {
			fragment = orb.LineString{fragment[0], fragment[0]}
		}
		lines[i] = fragment
	}
	return lines
}
