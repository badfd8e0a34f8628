package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dpup/prefab/logging"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/dpup/postmile/server/api/v1"
	"github.com/dpup/postmile/server/internal/dataset"
	"github.com/dpup/postmile/server/internal/export"
	"github.com/dpup/postmile/server/internal/lib/geo"
	"github.com/dpup/postmile/server/internal/lib/postmile"
	"github.com/dpup/postmile/server/internal/metrics"
)

// SegmentsService implements the gRPC SegmentService
type SegmentsService struct {
	api.UnimplementedSegmentServiceServer
	store    *dataset.Store
	exporter *export.Exporter
	opts     postmile.Options
}

// NewSegmentsService creates a new SegmentsService
func NewSegmentsService(store *dataset.Store, exporter *export.Exporter, opts postmile.Options) *SegmentsService {
	return &SegmentsService{
		store:    store,
		exporter: exporter,
		opts:     opts,
	}
}

// ListRoutes returns the route catalog as a district hierarchy
func (s *SegmentsService) ListRoutes(ctx context.Context, req *api.ListRoutesRequest) (*api.ListRoutesResponse, error) {
	ctx = logging.EnsureLogger(ctx)
	catalog, err := s.store.Catalog(ctx)
	if err != nil {
		logging.Errorw(ctx, "Failed to discover routes", "error", err)
		return nil, status.Errorf(codes.Unavailable, "route catalog unavailable: %v", err)
	}

	resp := &api.ListRoutesResponse{Total: int32(len(catalog.Keys))}
	for _, d := range catalog.Districts() {
		district := &api.District{Code: d}
		for _, c := range catalog.Counties(d) {
			county := &api.County{Code: c}
			for _, r := range catalog.Routes(d, c) {
				county.Routes = append(county.Routes, &api.RouteEntry{
					Route:      r,
					Directions: catalog.Directions(d, c, r),
				})
			}
			district.Counties = append(district.Counties, county)
		}
		resp.Districts = append(resp.Districts, district)
	}

	return resp, nil
}

// GetRoute describes one route dataset, including the PM extent that
// bounds extractable ranges
func (s *SegmentsService) GetRoute(ctx context.Context, req *api.GetRouteRequest) (*api.GetRouteResponse, error) {
	ctx = logging.EnsureLogger(ctx)
	key, err := routeKey(req.RouteRef)
	if err != nil {
		return nil, err
	}

	ds, err := s.store.Dataset(ctx, key)
	if err != nil {
		return nil, s.statusFor(ctx, err, key, nil)
	}

	info := &api.RouteInfo{
		RouteRef:      req.RouteRef,
		MarkerCount:   int32(len(ds.Markers)),
		FragmentCount: int32(len(ds.Route.Fragments)),
	}
	if lo, hi, ok := ds.PMExtent(); ok {
		info.MinPm, info.MaxPm = lo, hi
	}

	return &api.GetRouteResponse{Route: info}, nil
}

// ExtractSegment trims the route between the markers selected by the
// requested postmile range
func (s *SegmentsService) ExtractSegment(ctx context.Context, req *api.ExtractSegmentRequest) (*api.ExtractSegmentResponse, error) {
	ctx = logging.EnsureLogger(ctx)
	key, err := routeKey(req.RouteRef)
	if err != nil {
		return nil, err
	}
	requested := postmile.Range{Start: req.StartPm, End: req.EndPm}

	res, err := s.extract(ctx, key, requested)
	if err != nil {
		return nil, err
	}

	segment, err := toSegment(res)
	if err != nil {
		logging.Errorw(ctx, "Failed to encode segment", "route", key.String(), "error", err)
		return nil, status.Errorf(codes.Internal, "failed to encode segment: %v", err)
	}

	logging.Infow(ctx, "Extracted route segment",
		"id", segment.Id,
		"route", key.String(),
		"range", requested.String(),
		"fragments", len(res.Fragments),
		"degenerate", res.Degenerate)

	return &api.ExtractSegmentResponse{Segment: segment}, nil
}

// ExportSegment extracts a segment and writes it to the output directory
func (s *SegmentsService) ExportSegment(ctx context.Context, req *api.ExportSegmentRequest) (*api.ExportSegmentResponse, error) {
	ctx = logging.EnsureLogger(ctx)
	key, err := routeKey(req.RouteRef)
	if err != nil {
		return nil, err
	}
	for _, f := range req.Formats {
		if !export.ValidFormat(f) {
			return nil, status.Errorf(codes.InvalidArgument, "unsupported export format %q", f)
		}
	}
	requested := postmile.Range{Start: req.StartPm, End: req.EndPm}

	res, err := s.extract(ctx, key, requested)
	if err != nil {
		return nil, err
	}

	files, err := s.exporter.Export(ctx, key, requested, res, req.Formats...)
	if err != nil {
		logging.Errorw(ctx, "Failed to export segment", "route", key.String(), "range", requested.String(), "error", err)
		return nil, status.Errorf(codes.Internal, "failed to export segment: %v", err)
	}

	segment, err := toSegment(res)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode segment: %v", err)
	}

	return &api.ExportSegmentResponse{Segment: segment, Files: files}, nil
}

// extract loads the dataset for key and runs the extraction, recording its
// outcome
func (s *SegmentsService) extract(ctx context.Context, key postmile.RouteKey, requested postmile.Range) (*postmile.Result, error) {
	ds, err := s.store.Dataset(ctx, key)
	if err != nil {
		metrics.Extractions.WithLabelValues(outcome(err)).Inc()
		return nil, s.statusFor(ctx, err, key, &requested)
	}

	start := time.Now()
	res, err := postmile.Extract(ds.Route, ds.Markers, requested, s.opts)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Extractions.WithLabelValues(outcome(err)).Inc()
		return nil, s.statusFor(ctx, err, key, &requested)
	}

	if res.Degenerate {
		metrics.Extractions.WithLabelValues("degenerate").Inc()
	} else {
		metrics.Extractions.WithLabelValues("ok").Inc()
	}
	metrics.ExtractedFragments.Observe(float64(len(res.Fragments)))

	return res, nil
}

// statusFor translates extraction errors to gRPC status errors
func (s *SegmentsService) statusFor(ctx context.Context, err error, key postmile.RouteKey, requested *postmile.Range) error {
	rng := "-"
	if requested != nil {
		rng = requested.String()
	}

	var code codes.Code
	switch {
	case errors.Is(err, postmile.ErrInvalidRange), errors.Is(err, postmile.ErrInvalidRouteKey):
		code = codes.InvalidArgument
	case errors.Is(err, postmile.ErrEmptySelection), errors.Is(err, dataset.ErrUnknownRoute):
		code = codes.NotFound
	case errors.Is(err, postmile.ErrEmptyGeometry), errors.Is(err, postmile.ErrNoValidSegment):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		logging.Errorw(ctx, "Segment extraction failed", "route", key.String(), "range", rng, "error", err)
		return status.Errorf(codes.Internal, "route %s range %s: %v", key, rng, err)
	}

	logging.Warnw(ctx, "Segment extraction rejected", "route", key.String(), "range", rng, "code", code.String(), "error", err)
	return status.Errorf(code, "route %s range %s: %v", key, rng, err)
}

// outcome labels an extraction error for metrics
func outcome(err error) string {
	switch {
	case errors.Is(err, postmile.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, postmile.ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, postmile.ErrEmptyGeometry):
		return "empty_geometry"
	case errors.Is(err, postmile.ErrNoValidSegment):
		return "no_valid_segment"
	case errors.Is(err, dataset.ErrUnknownRoute):
		return "unknown_route"
	}
	return "error"
}

func routeKey(ref api.RouteRef) (postmile.RouteKey, error) {
	key := postmile.RouteKey{
		District:  ref.District,
		County:    ref.County,
		Route:     ref.Route,
		Direction: ref.Direction,
	}
	if err := key.Validate(); err != nil {
		return key, status.Errorf(codes.InvalidArgument, "route %s: %v", key, err)
	}
	return key, nil
}

// toSegment converts an extraction result to its API message
func toSegment(res *postmile.Result) (*api.Segment, error) {
	geometry, err := geojson.NewGeometry(res.Geometry()).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode geometry: %w", err)
	}

	polylines := make([]string, len(res.Fragments))
	for i, fragment := range res.Fragments {
		polylines[i] = geo.EncodePolyline(fragment).EncodedPolyline
	}

	markers := make([]*api.BoundaryMarker, len(res.Boundary))
	for i, m := range res.Boundary {
		markers[i] = &api.BoundaryMarker{
			Pm:       m.PM,
			Odometer: m.Odometer,
			Location: &api.Coordinates{Latitude: m.Position.Lat(), Longitude: m.Position.Lon()},
		}
	}

	attrs := res.Attributes
	return &api.Segment{
		Id: uuid.NewString(),
		Attributes: &api.SegmentAttributes{
			District:  attrs.District,
			County:    attrs.County,
			Route:     attrs.Route,
			Direction: attrs.Direction,
			StartPm:   attrs.StartPM,
			EndPm:     attrs.EndPM,
		},
		Geometry:        geometry,
		BoundaryMarkers: markers,
		Polylines:       polylines,
		LengthMeters:    geo.GeodesicLength(res.Fragments),
		FragmentCount:   int32(len(res.Fragments)),
		Degenerate:      res.Degenerate,
	}, nil
}
