package export

import (
	"fmt"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// SplitDir is the directory under the output root receiving exports
const SplitDir = "splitted"

// baseName encodes the route and the requested range to one decimal place,
// e.g. d12_ORA_5_NB_3.2_8.7
func baseName(key postmile.RouteKey, requested postmile.Range) string {
	return fmt.Sprintf("d%s_%s_%s_%s_%.1f_%.1f",
		key.District, key.County, key.Route, key.Direction, requested.Start, requested.End)
}

// SegmentFileName names the segment file, e.g. splitted_d12_ORA_5_NB_3.2_8.7.geojson
func SegmentFileName(key postmile.RouteKey, requested postmile.Range, ext string) string {
	return "splitted_" + baseName(key, requested) + ext
}

// BoundaryFileName names the boundary marker file, e.g. splitted_pm_d12_ORA_5_NB_3.2_8.7.geojson
func BoundaryFileName(key postmile.RouteKey, requested postmile.Range) string {
	return "splitted_pm_" + baseName(key, requested) + ".geojson"
}

// ArchiveFileName names the zip bundle of an export
func ArchiveFileName(key postmile.RouteKey, requested postmile.Range) string {
	return "splitted_" + baseName(key, requested) + ".zip"
}
