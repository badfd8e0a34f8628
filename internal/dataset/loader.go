package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// ErrUnknownRoute is returned when no dataset exists for a route key
var ErrUnknownRoute = errors.New("unknown route")

// Dataset is a route and its postmile markers, loaded once and never mutated
type Dataset struct {
	Route   postmile.Route    `json:"route"`
	Markers []postmile.Marker `json:"markers"`
}

// PMExtent returns the smallest and largest postmile of the dataset
func (d *Dataset) PMExtent() (lo, hi float64, ok bool) {
	return postmile.PMExtent(d.Markers)
}

// Load reads the route geometry and postmile files for key under root
func Load(root string, key postmile.RouteKey) (*Dataset, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	lineData, err := os.ReadFile(LinePath(root, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, key)
		}
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}

	pointData, err := os.ReadFile(PointPath(root, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no postmile file", ErrUnknownRoute, key)
		}
		return nil, fmt.Errorf("failed to read postmile file: %w", err)
	}

	route, err := DecodeRoute(lineData, key)
	if err != nil {
		return nil, err
	}

	markers, err := DecodeMarkers(pointData)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", key, err)
	}

	return &Dataset{Route: route, Markers: markers}, nil
}

// DecodeRoute parses a GeoJSON feature collection whose first feature holds
// the route as a LineString or MultiLineString.
func DecodeRoute(data []byte, key postmile.RouteKey) (postmile.Route, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return postmile.Route{}, fmt.Errorf("failed to parse route file for %s: %w", key, err)
	}

	if len(fc.Features) == 0 || fc.Features[0].Geometry == nil {
		return postmile.Route{}, fmt.Errorf("%w: route file for %s has no features", postmile.ErrEmptyGeometry, key)
	}

	route := postmile.Route{Key: key}
	switch g := fc.Features[0].Geometry.(type) {
	case orb.LineString:
		route.Fragments = orb.MultiLineString{g}
	case orb.MultiLineString:
		route.Fragments = g
	default:
		return postmile.Route{}, fmt.Errorf("route file for %s has unsupported geometry %s", key, g.GeoJSONType())
	}

	if len(route.Fragments) == 0 {
		return postmile.Route{}, fmt.Errorf("%w: route %s has no fragments", postmile.ErrEmptyGeometry, key)
	}

	return route, nil
}

// DecodeMarkers parses a GeoJSON feature collection of postmile points with
// PM, Odometer, District, County, Route and Direction properties.
func DecodeMarkers(data []byte) ([]postmile.Marker, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postmile file: %w", err)
	}

	markers := make([]postmile.Marker, 0, len(fc.Features))
	for i, feature := range fc.Features {
		position, ok := feature.Geometry.(orb.Point)
		if !ok {
			if mp, isMulti := feature.Geometry.(orb.MultiPoint); isMulti && len(mp) > 0 {
				position, ok = mp[0], true
			}
		}
		if !ok {
			return nil, fmt.Errorf("postmile feature %d is not a point", i)
		}

		pm, err := propertyFloat(feature.Properties, "PM")
		if err != nil {
			return nil, fmt.Errorf("postmile feature %d: %w", i, err)
		}
		odometer, err := propertyFloat(feature.Properties, "Odometer")
		if err != nil {
			return nil, fmt.Errorf("postmile feature %d: %w", i, err)
		}

		markers = append(markers, postmile.Marker{
			Position:  position,
			PM:        pm,
			Odometer:  odometer,
			District:  propertyString(feature.Properties, "District"),
			County:    propertyString(feature.Properties, "County"),
			Route:     propertyString(feature.Properties, "Route"),
			Direction: propertyString(feature.Properties, "Direction"),
		})
	}

	return markers, nil
}

// propertyFloat reads a numeric property that may be stored as a number or a string
func propertyFloat(props geojson.Properties, key string) (float64, error) {
	switch v := props[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("property %s is not numeric: %q", key, v)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("missing property %s", key)
	default:
		return 0, fmt.Errorf("property %s has unsupported type %T", key, v)
	}
}

// propertyString reads an identity code that may be stored as a string or a number
func propertyString(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
