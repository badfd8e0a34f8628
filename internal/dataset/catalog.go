package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// Catalog lists the route datasets available under a data directory
type Catalog struct {
	Root string              `json:"root"`
	Keys []postmile.RouteKey `json:"keys"`
}

// Discover walks root/line/d*/ for route geometry files and keeps every key
// whose postmile file also exists.
func Discover(root string) (*Catalog, error) {
	lineDir := filepath.Join(root, "line")

	districtDirs, err := os.ReadDir(lineDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read route directory %s: %w", lineDir, err)
	}

	catalog := &Catalog{Root: root}
	for _, districtDir := range districtDirs {
		if !districtDir.IsDir() || !strings.HasPrefix(districtDir.Name(), "d") {
			continue
		}
		district := strings.TrimPrefix(districtDir.Name(), "d")
		if district == "" {
			continue
		}

		files, err := os.ReadDir(filepath.Join(lineDir, districtDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read district directory %s: %w", districtDir.Name(), err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			key, ok := ParseLineFileName(district, file.Name())
			if !ok {
				continue
			}
			if _, err := os.Stat(PointPath(root, key)); err != nil {
				continue
			}
			catalog.Keys = append(catalog.Keys, key)
		}
	}

	sort.Slice(catalog.Keys, func(i, j int) bool {
		return keyLess(catalog.Keys[i], catalog.Keys[j])
	})

	return catalog, nil
}

// Contains reports whether key is in the catalog
func (c *Catalog) Contains(key postmile.RouteKey) bool {
	for _, k := range c.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Districts returns the district codes in the catalog
func (c *Catalog) Districts() []string {
	return c.distinct(func(k postmile.RouteKey) (string, bool) {
		return k.District, true
	})
}

// Counties returns the counties of district
func (c *Catalog) Counties(district string) []string {
	return c.distinct(func(k postmile.RouteKey) (string, bool) {
		return k.County, k.District == district
	})
}

// Routes returns the routes through county of district
func (c *Catalog) Routes(district, county string) []string {
	return c.distinct(func(k postmile.RouteKey) (string, bool) {
		return k.Route, k.District == district && k.County == county
	})
}

// Directions returns the directions available for a route
func (c *Catalog) Directions(district, county, route string) []string {
	return c.distinct(func(k postmile.RouteKey) (string, bool) {
		return k.Direction, k.District == district && k.County == county && k.Route == route
	})
}

// distinct collects the values selected by pick, keeping catalog order
func (c *Catalog) distinct(pick func(postmile.RouteKey) (string, bool)) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, key := range c.Keys {
		value, ok := pick(key)
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values
}

// keyLess orders keys by district, county, route and direction. Districts
// and routes compare numerically when both sides are numbers.
func keyLess(a, b postmile.RouteKey) bool {
	if a.District != b.District {
		return codeLess(a.District, b.District)
	}
	if a.County != b.County {
		return a.County < b.County
	}
	if a.Route != b.Route {
		return codeLess(a.Route, b.Route)
	}
	return a.Direction < b.Direction
}

func codeLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
