package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-kml/v2"

	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// WriteKML writes the segment and its boundary markers as a KML document.
// Coordinates are written as-is and so must be longitude/latitude.
func WriteKML(w io.Writer, res *postmile.Result) error {
	attrs := res.Attributes
	title := fmt.Sprintf("District %s %s Route %s %s", attrs.District, attrs.County, attrs.Route, attrs.Direction)

	children := []kml.Element{
		kml.Name(title),
		kml.Placemark(
			kml.Name(fmt.Sprintf("PM %.3f to %.3f", attrs.StartPM, attrs.EndPM)),
			kml.Description(fmt.Sprintf("%s, %d fragment(s)", title, len(res.Fragments))),
			kmlGeometry(res.Geometry()),
		),
	}

	for _, m := range res.Boundary {
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("PM %.3f", m.PM)),
			kml.Description(fmt.Sprintf("Odometer %.3f", m.Odometer)),
			kml.Point(kml.Coordinates(kmlCoordinate(m.Position))),
		))
	}

	doc := kml.KML(kml.Document(children...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write KML: %w", err)
	}
	return nil
}

// kmlGeometry converts a segment geometry to its KML element
func kmlGeometry(g orb.Geometry) kml.Element {
	switch g := g.(type) {
	case orb.Point:
		return kml.Point(kml.Coordinates(kmlCoordinate(g)))
	case orb.LineString:
		return kmlLineString(g)
	case orb.MultiLineString:
		lines := make([]kml.Element, len(g))
		for i, ls := range g {
			lines[i] = kmlLineString(ls)
		}
		return kml.MultiGeometry(lines...)
	}
	return kml.MultiGeometry()
}

func kmlLineString(ls orb.LineString) kml.Element {
	coords := make([]kml.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = kmlCoordinate(p)
	}
	return kml.LineString(kml.Coordinates(coords...))
}

func kmlCoordinate(p orb.Point) kml.Coordinate {
	return kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}
