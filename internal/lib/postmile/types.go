package postmile

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// RouteKey identifies one highway route dataset: a route in one direction
// through one county of one Caltrans district.
type RouteKey struct {
	District  string `json:"district"`
	County    string `json:"county"`
	Route     string `json:"route"`
	Direction string `json:"direction"`
}

func (k RouteKey) String() string {
	return fmt.Sprintf("d%s/%s/%s/%s", k.District, k.County, k.Route, k.Direction)
}

// Validate checks that every component is present and safe to use as part
// of a file name
func (k RouteKey) Validate() error {
	components := []struct{ name, value string }{
		{"district", k.District},
		{"county", k.County},
		{"route", k.Route},
		{"direction", k.Direction},
	}
	for _, c := range components {
		switch {
		case c.value == "":
			return fmt.Errorf("%w: %s is required", ErrInvalidRouteKey, c.name)
		case strings.ContainsAny(c.value, `/\`+"\x00"), strings.Contains(c.value, ".."):
			return fmt.Errorf("%w: %s %q", ErrInvalidRouteKey, c.name, c.value)
		}
	}
	return nil
}

// Route is the drawn geometry of a highway route. A single fragment is a
// continuous route; several fragments mean the drawn geometry is interrupted.
type Route struct {
	Key       RouteKey            `json:"key"`
	Fragments orb.MultiLineString `json:"fragments"`
}

// Marker is a postmile point along a route
type Marker struct {
	Position  orb.Point `json:"position"`
	PM        float64   `json:"pm"`
	Odometer  float64   `json:"odometer"` // breaks ties between equal PM values
	District  string    `json:"district"`
	County    string    `json:"county"`
	Route     string    `json:"route"`
	Direction string    `json:"direction"`
}

// Key returns the identity of the route the marker belongs to
func (m Marker) Key() RouteKey {
	return RouteKey{
		District:  m.District,
		County:    m.County,
		Route:     m.Route,
		Direction: m.Direction,
	}
}

// Less orders markers by PM, then odometer
func (m Marker) Less(other Marker) bool {
	if m.PM != other.PM {
		return m.PM < other.PM
	}
	return m.Odometer < other.Odometer
}

// Range is a postmile interval, inclusive at both ends
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Normalize returns the range with Start <= End
func (r Range) Normalize() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Contains reports whether pm lies inside the range. The range must be normalized.
func (r Range) Contains(pm float64) bool {
	return r.Start <= pm && pm <= r.End
}

// IsFinite reports whether both bounds are real numbers
func (r Range) IsFinite() bool {
	return !math.IsNaN(r.Start) && !math.IsNaN(r.End) &&
		!math.IsInf(r.Start, 0) && !math.IsInf(r.End, 0)
}

func (r Range) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", r.Start, r.End)
}

// Options tune segment extraction
type Options struct {
	// MaxFragmentDistance, when positive, drops route fragments whose closest
	// projection of the boundary markers is farther away than this distance,
	// in the units of the route coordinates. Zero trims every fragment.
	MaxFragmentDistance float64 `json:"max_fragment_distance"`
}
