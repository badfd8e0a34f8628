package export

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dpup/prefab/logging"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

var ora5 = postmile.RouteKey{District: "12", County: "ORA", Route: "5", Direction: "NB"}

func testContext() context.Context {
	return logging.EnsureLogger(context.Background())
}

func marker(pm float64, x, y float64) postmile.Marker {
	return postmile.Marker{
		Position:  orb.Point{x, y},
		PM:        pm,
		Odometer:  pm,
		District:  "12",
		County:    "ORA",
		Route:     "5",
		Direction: "NB",
	}
}

func testResult(fragments orb.MultiLineString) *postmile.Result {
	res := postmile.BuildResult([2]postmile.Marker{
		marker(3.2, -117.78, 33.62),
		marker(8.7, -117.72, 33.68),
	}, fragments)
	return &res
}

func TestFileNames(t *testing.T) {
	r := postmile.Range{Start: 3.24, End: 8.7}
	assert.Equal(t, "splitted_d12_ORA_5_NB_3.2_8.7.geojson", SegmentFileName(ora5, r, ".geojson"))
	assert.Equal(t, "splitted_d12_ORA_5_NB_3.2_8.7.kml", SegmentFileName(ora5, r, ".kml"))
	assert.Equal(t, "splitted_pm_d12_ORA_5_NB_3.2_8.7.geojson", BoundaryFileName(ora5, r))
	assert.Equal(t, "splitted_d12_ORA_5_NB_3.2_8.7.zip", ArchiveFileName(ora5, r))
}

func TestSegmentFeatures(t *testing.T) {
	res := testResult(orb.MultiLineString{{{-117.78, 33.62}, {-117.75, 33.65}, {-117.72, 33.68}}})

	fc := SegmentFeatures(res)
	require.Len(t, fc.Features, 1)

	feature := fc.Features[0]
	assert.Equal(t, orb.LineString{{-117.78, 33.62}, {-117.75, 33.65}, {-117.72, 33.68}}, feature.Geometry)
	assert.Equal(t, "12", feature.Properties["District"])
	assert.Equal(t, "ORA", feature.Properties["County"])
	assert.Equal(t, "5", feature.Properties["Route"])
	assert.Equal(t, "NB", feature.Properties["Direction"])
	assert.Equal(t, 3.2, feature.Properties["start_pm"])
	assert.Equal(t, 8.7, feature.Properties["end_pm"])
}

func TestSegmentFeatures_MultiFragment(t *testing.T) {
	res := testResult(orb.MultiLineString{
		{{-117.78, 33.62}, {-117.75, 33.65}},
		{{-117.70, 33.70}},
	})

	fc := SegmentFeatures(res)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.MultiLineString{
		{{-117.78, 33.62}, {-117.75, 33.65}},
		{{-117.70, 33.70}, {-117.70, 33.70}},
	}, fc.Features[0].Geometry, "single point fragments become two identical vertices")
}

func TestBoundaryFeatures(t *testing.T) {
	fc := BoundaryFeatures(testResult(orb.MultiLineString{{{-117.78, 33.62}, {-117.72, 33.68}}}))
	require.Len(t, fc.Features, 2)

	assert.Equal(t, orb.Point{-117.78, 33.62}, fc.Features[0].Geometry)
	assert.Equal(t, 3.2, fc.Features[0].Properties["PM"])
	assert.Equal(t, 3.2, fc.Features[0].Properties["Odometer"])
	assert.Equal(t, 8.7, fc.Features[1].Properties["PM"])
	assert.Equal(t, "ORA", fc.Features[1].Properties["County"])
}

func TestWriteGeoJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, SegmentFeatures(testResult(orb.MultiLineString{{{0, 0}, {1, 1}}}))))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, fc.Features[0].Geometry)
	assert.Equal(t, "ORA", fc.Features[0].Properties["County"])
}

func TestWriteKML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, testResult(orb.MultiLineString{{{-117.78, 33.62}, {-117.72, 33.68}}})))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<LineString>")
	assert.Contains(t, out, "-117.78")
	assert.Contains(t, out, "33.62")
	assert.Contains(t, out, "PM 3.200 to 8.700")
	assert.Equal(t, 2, strings.Count(out, "<Point>"), "one point per boundary marker")
}

func TestWriteKML_MultiGeometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, testResult(orb.MultiLineString{
		{{0, 0}, {1, 1}},
		{{2, 2}, {3, 3}},
	})))
	assert.Contains(t, buf.String(), "<MultiGeometry>")
	assert.Equal(t, 2, strings.Count(buf.String(), "<LineString>"))
}

func TestExporter_Export(t *testing.T) {
	out := t.TempDir()
	exporter := NewExporter(out, []string{FormatGeoJSON})
	requested := postmile.Range{Start: 3.2, End: 8.7}
	res := testResult(orb.MultiLineString{{{-117.78, 33.62}, {-117.72, 33.68}}})

	paths, err := exporter.Export(testContext(), ora5, requested, res)
	require.NoError(t, err)

	dir := filepath.Join(out, "splitted")
	assert.Equal(t, []string{
		filepath.Join(dir, "splitted_d12_ORA_5_NB_3.2_8.7.geojson"),
		filepath.Join(dir, "splitted_pm_d12_ORA_5_NB_3.2_8.7.geojson"),
	}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestExporter_AllFormats(t *testing.T) {
	out := t.TempDir()
	exporter := NewExporter(out, nil)
	requested := postmile.Range{Start: 3.2, End: 8.7}
	res := testResult(orb.MultiLineString{{{-117.78, 33.62}, {-117.72, 33.68}}})

	paths, err := exporter.Export(testContext(), ora5, requested, res, FormatGeoJSON, FormatKML, FormatZip)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, ".kml", filepath.Ext(paths[2]))
	assert.Equal(t, ".zip", filepath.Ext(paths[3]))

	zr, err := zip.OpenReader(paths[3])
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"splitted_d12_ORA_5_NB_3.2_8.7.geojson",
		"splitted_pm_d12_ORA_5_NB_3.2_8.7.geojson",
		"splitted_d12_ORA_5_NB_3.2_8.7.kml",
	}, names)
}

func TestExporter_ZipImpliesGeoJSON(t *testing.T) {
	exporter := NewExporter(t.TempDir(), []string{FormatZip})
	res := testResult(orb.MultiLineString{{{0, 0}, {1, 1}}})

	paths, err := exporter.Export(testContext(), ora5, postmile.Range{Start: 1, End: 2}, res)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, ".zip", filepath.Ext(paths[2]))
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	exporter := NewExporter(t.TempDir(), nil)
	res := testResult(orb.MultiLineString{{{0, 0}, {1, 1}}})

	_, err := exporter.Export(testContext(), ora5, postmile.Range{Start: 1, End: 2}, res, "shp")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestExporter_WithoutLogger(t *testing.T) {
	exporter := NewExporter(t.TempDir(), nil)
	res := testResult(orb.MultiLineString{{{0, 0}, {1, 1}}})

	paths, err := exporter.Export(context.Background(), ora5, postmile.Range{Start: 1, End: 2}, res)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestExporter_RejectsPathTraversal(t *testing.T) {
	base := t.TempDir()
	exporter := NewExporter(filepath.Join(base, "output"), nil)
	res := testResult(orb.MultiLineString{{{0, 0}, {1, 1}}})

	for _, key := range []postmile.RouteKey{
		{District: "12", County: "../../evil", Route: "5", Direction: "NB"},
		{District: "12", County: "ORA", Route: "5", Direction: `..\NB`},
	} {
		_, err := exporter.Export(testContext(), key, postmile.Range{Start: 0, End: 10}, res)
		assert.ErrorIs(t, err, postmile.ErrInvalidRouteKey, "%+v", key)
	}

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is written")
}
