package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// SegmentFeatures returns the extracted segment as a single feature carrying
// the District, County, Route, Direction, start_pm and end_pm properties
func SegmentFeatures(res *postmile.Result) *geojson.FeatureCollection {
	feature := geojson.NewFeature(res.Geometry())
	for k, v := range res.Attributes.Properties() {
		feature.Properties[k] = v
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	return fc
}

// BoundaryFeatures returns the two boundary markers with their original
// attributes
func BoundaryFeatures(res *postmile.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range res.Boundary {
		feature := geojson.NewFeature(m.Position)
		feature.Properties["PM"] = m.PM
		feature.Properties["Odometer"] = m.Odometer
		feature.Properties["District"] = m.District
		feature.Properties["County"] = m.County
		feature.Properties["Route"] = m.Route
		feature.Properties["Direction"] = m.Direction
		fc.Append(feature)
	}
	return fc
}

// WriteGeoJSON writes fc as indented GeoJSON
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
