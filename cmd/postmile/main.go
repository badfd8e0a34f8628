// Command postmile extracts highway segments between two postmiles from a
// local data directory without running the server.
//
//	postmile routes  -data data [-district 12]
//	postmile range   -data data -key 12/ORA/5/NB
//	postmile extract -data data -out output -key 12/ORA/5/NB -start 3.2 -end 8.7 [-formats geojson,kml,zip]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dpup/prefab/logging"

	"github.com/dpup/postmile/server/internal/dataset"
	"github.com/dpup/postmile/server/internal/export"
	"github.com/dpup/postmile/server/internal/lib/geo"
	"github.com/dpup/postmile/server/internal/lib/postmile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "routes":
		err = runRoutes(args)
	case "range":
		err = runRange(args)
	case "extract":
		err = runExtract(args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: postmile <command> [flags]

Commands:
  routes   list the routes available in a data directory
  range    print the postmile extent of a route
  extract  extract and write the segment between two postmiles

Run "postmile <command> -h" for the flags of a command.
`)
}

func runRoutes(args []string) error {
	fs := flag.NewFlagSet("routes", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory holding line/ and point/")
	district := fs.String("district", "", "only list routes in this district")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := dataset.Discover(*dataDir)
	if err != nil {
		return err
	}

	for _, d := range catalog.Districts() {
		if *district != "" && d != *district {
			continue
		}
		for _, c := range catalog.Counties(d) {
			for _, r := range catalog.Routes(d, c) {
				fmt.Printf("%s/%s/%s\t%s\n", d, c, r, strings.Join(catalog.Directions(d, c, r), ","))
			}
		}
	}
	return nil
}

func runRange(args []string) error {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory holding line/ and point/")
	keyFlag := fs.String("key", "", "route as district/county/route/direction, e.g. 12/ORA/5/NB")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := parseKey(*keyFlag)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(*dataDir, key)
	if err != nil {
		return err
	}

	lo, hi, ok := ds.PMExtent()
	if !ok {
		return fmt.Errorf("route %s has no postmile markers", key)
	}

	fmt.Printf("%s\tPM %.3f to %.3f\t%d markers\t%d fragments\n", key, lo, hi, len(ds.Markers), len(ds.Route.Fragments))
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory holding line/ and point/")
	outDir := fs.String("out", "output", "output directory, files are written to its splitted/ folder")
	keyFlag := fs.String("key", "", "route as district/county/route/direction, e.g. 12/ORA/5/NB")
	start := fs.Float64("start", 0, "start postmile")
	end := fs.Float64("end", 0, "end postmile")
	formats := fs.String("formats", export.FormatGeoJSON, "comma separated export formats: geojson, kml, zip")
	maxDistance := fs.Float64("max-fragment-distance", 0, "drop fragments farther than this from the boundary markers, 0 keeps all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := parseKey(*keyFlag)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(*dataDir, key)
	if err != nil {
		return err
	}

	requested := postmile.Range{Start: *start, End: *end}
	res, err := postmile.Extract(ds.Route, ds.Markers, requested, postmile.Options{MaxFragmentDistance: *maxDistance})
	if err != nil {
		return err
	}

	exporter := export.NewExporter(*outDir, nil)
	files, err := exporter.Export(logging.EnsureLogger(context.Background()), key, requested, res, strings.Split(*formats, ",")...)
	if err != nil {
		return err
	}

	fmt.Printf("PM %.3f to %.3f, %d fragment(s), %.0f m\n",
		res.Attributes.StartPM, res.Attributes.EndPM, len(res.Fragments), geo.GeodesicLength(res.Fragments))
	if res.Degenerate {
		fmt.Println("only one postmile marker is in range, the segment is a single point")
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func parseKey(s string) (postmile.RouteKey, error) {
	parts := strings.Split(strings.TrimPrefix(s, "d"), "/")
	if len(parts) != 4 {
		return postmile.RouteKey{}, fmt.Errorf("route %q must be district/county/route/direction", s)
	}
	key := postmile.RouteKey{District: parts[0], County: parts[1], Route: parts[2], Direction: parts[3]}
	if err := key.Validate(); err != nil {
		return postmile.RouteKey{}, fmt.Errorf("route %q must be district/county/route/direction: %w", s, err)
	}
	return key, nil
}
