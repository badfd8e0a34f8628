package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/dpup/prefab/logging"

	"github.com/dpup/postmile/server/internal/lib/postmile"
	"github.com/dpup/postmile/server/internal/metrics"
)

// Supported export formats
const (
	FormatGeoJSON = "geojson"
	FormatKML     = "kml"
	FormatZip     = "zip"
)

// Formats lists every supported export format
var Formats = []string{FormatGeoJSON, FormatKML, FormatZip}

// ValidFormat reports whether format is supported
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// Exporter writes extracted segments to files under OutputDir/splitted
type Exporter struct {
	OutputDir string
	// Formats written when a request names none
	Formats []string
}

// NewExporter creates an Exporter writing the given default formats
func NewExporter(outputDir string, formats []string) *Exporter {
	return &Exporter{OutputDir: outputDir, Formats: formats}
}

// Dir returns the directory exports are written to
func (e *Exporter) Dir() string {
	return filepath.Join(e.OutputDir, SplitDir)
}

// Export writes res in the requested formats and returns the written paths.
// File names carry the requested range rather than the boundary marker
// postmiles. A zip bundle always contains the GeoJSON pair, which is written
// alongside it.
func (e *Exporter) Export(ctx context.Context, key postmile.RouteKey, requested postmile.Range, res *postmile.Result, formats ...string) ([]string, error) {
	ctx = logging.EnsureLogger(ctx)
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if len(formats) == 0 {
		formats = e.Formats
	}
	if len(formats) == 0 {
		formats = []string{FormatGeoJSON}
	}
	for _, f := range formats {
		if !ValidFormat(f) {
			return nil, fmt.Errorf("unsupported export format %q", f)
		}
	}

	dir := e.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	wantZip := slices.Contains(formats, FormatZip)

	if slices.Contains(formats, FormatGeoJSON) || wantZip {
		segmentPath := filepath.Join(dir, SegmentFileName(key, requested, ".geojson"))
		if err := writeFile(segmentPath, func(w io.Writer) error {
			return WriteGeoJSON(w, SegmentFeatures(res))
		}); err != nil {
			return written, err
		}

		boundaryPath := filepath.Join(dir, BoundaryFileName(key, requested))
		if err := writeFile(boundaryPath, func(w io.Writer) error {
			return WriteGeoJSON(w, BoundaryFeatures(res))
		}); err != nil {
			return written, err
		}

		written = append(written, segmentPath, boundaryPath)
		metrics.Exports.WithLabelValues(FormatGeoJSON).Add(2)
	}

	if err := ctx.Err(); err != nil {
		return written, err
	}

	if slices.Contains(formats, FormatKML) {
		kmlPath := filepath.Join(dir, SegmentFileName(key, requested, ".kml"))
		if err := writeFile(kmlPath, func(w io.Writer) error {
			return WriteKML(w, res)
		}); err != nil {
			return written, err
		}
		written = append(written, kmlPath)
		metrics.Exports.WithLabelValues(FormatKML).Inc()
	}

	if wantZip {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		bundled := slices.Clone(written)
		zipPath := filepath.Join(dir, ArchiveFileName(key, requested))
		if err := writeFile(zipPath, func(w io.Writer) error {
			return WriteArchive(w, bundled)
		}); err != nil {
			return written, err
		}
		written = append(written, zipPath)
		metrics.Exports.WithLabelValues(FormatZip).Inc()
	}

	logging.Infow(ctx, "Exported route segment",
		"route", key.String(),
		"range", requested.String(),
		"files", len(written))

	return written, nil
}

// writeFile creates path and fills it with fn, removing it again on failure
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
