package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// FileExt is the extension of route and postmile files
const FileExt = ".geojson"

// LinePath returns the route geometry file for key under root:
// line/d{district}/{county}_route_{route}_{direction}.geojson
func LinePath(root string, key postmile.RouteKey) string {
	return filepath.Join(root, "line", "d"+key.District,
		fmt.Sprintf("%s_route_%s_%s%s", key.County, key.Route, key.Direction, FileExt))
}

// PointPath returns the postmile marker file for key under root:
// point/d{district}/{county}_pm_{route}_{direction}.geojson
func PointPath(root string, key postmile.RouteKey) string {
	return filepath.Join(root, "point", "d"+key.District,
		fmt.Sprintf("%s_pm_%s_%s%s", key.County, key.Route, key.Direction, FileExt))
}

// ParseLineFileName extracts the route key from a route geometry file name
// found in the directory of district. ok is false for names that do not
// follow the {county}_route_{route}_{direction} convention.
func ParseLineFileName(district, name string) (key postmile.RouteKey, ok bool) {
	if !strings.HasSuffix(name, FileExt) {
		return postmile.RouteKey{}, false
	}

	parts := strings.Split(strings.TrimSuffix(name, FileExt), "_")
	if len(parts) != 4 || parts[1] != "route" {
		return postmile.RouteKey{}, false
	}
	for _, part := range parts {
		if part == "" {
			return postmile.RouteKey{}, false
		}
	}

	return postmile.RouteKey{
		District:  district,
		County:    parts[0],
		Route:     parts[2],
		Direction: parts[3],
	}, true
}
