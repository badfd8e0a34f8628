package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/grpclog"
	"google.golang.org/grpc/status"
)

// REST routes served by the gateway
const (
	routesPattern  = "/api/v1/routes"
	routePattern   = "/api/v1/routes/{district}/{county}/{route}/{direction}"
	segmentPattern = routePattern + "/segment"
	exportPattern  = routePattern + "/segment:export"
)

// RegisterSegmentServiceHandlerFromEndpoint dials endpoint and registers the
// REST routes for SegmentService on mux. The connection is closed when ctx
// is done.
func RegisterSegmentServiceHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption) (err error) {
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if cerr := conn.Close(); cerr != nil {
				grpclog.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
			return
		}
		go func() {
			<-ctx.Done()
			if cerr := conn.Close(); cerr != nil {
				grpclog.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
		}()
	}()

	return RegisterSegmentServiceHandlerClient(ctx, mux, NewSegmentServiceClient(conn))
}

// RegisterSegmentServiceHandlerClient registers the REST routes for
// SegmentService on mux, forwarding requests to client
func RegisterSegmentServiceHandlerClient(ctx context.Context, mux *runtime.ServeMux, client SegmentServiceClient) error {
	routes := []struct {
		method  string
		pattern string
		rpc     string
		handle  func(ctx context.Context, r *http.Request, params map[string]string) (interface{}, error)
	}{
		{
			method:  http.MethodGet,
			pattern: routesPattern,
			rpc:     SegmentService_ListRoutes_FullMethodName,
			handle: func(ctx context.Context, r *http.Request, params map[string]string) (interface{}, error) {
				return client.ListRoutes(ctx, &ListRoutesRequest{})
			},
		},
		{
			method:  http.MethodGet,
			pattern: routePattern,
			rpc:     SegmentService_GetRoute_FullMethodName,
			handle: func(ctx context.Context, r *http.Request, params map[string]string) (interface{}, error) {
				return client.GetRoute(ctx, &GetRouteRequest{RouteRef: routeRef(params)})
			},
		},
		{
			method:  http.MethodGet,
			pattern: segmentPattern,
			rpc:     SegmentService_ExtractSegment_FullMethodName,
			handle: func(ctx context.Context, r *http.Request, params map[string]string) (interface{}, error) {
				req := &ExtractSegmentRequest{RouteRef: routeRef(params)}
				var err error
				query := r.URL.Query()
				if req.StartPm, err = queryFloat(query.Get("start_pm"), "start_pm"); err != nil {
					return nil, err
				}
				if req.EndPm, err = queryFloat(query.Get("end_pm"), "end_pm"); err != nil {
					return nil, err
				}
				return client.ExtractSegment(ctx, req)
			},
		},
		{
			method:  http.MethodPost,
			pattern: exportPattern,
			rpc:     SegmentService_ExportSegment_FullMethodName,
			handle: func(ctx context.Context, r *http.Request, params map[string]string) (interface{}, error) {
				req := &ExportSegmentRequest{}
				body, err := io.ReadAll(r.Body)
				if err != nil {
					return nil, status.Errorf(codes.InvalidArgument, "failed to read body: %v", err)
				}
				if len(strings.TrimSpace(string(body))) > 0 {
					if err := json.Unmarshal(body, req); err != nil {
						return nil, status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
					}
				}
				req.RouteRef = routeRef(params)
				return client.ExportSegment(ctx, req)
			},
		},
	}

	for _, route := range routes {
		err := mux.HandlePath(route.method, route.pattern, func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			ctx, cancel := context.WithCancel(r.Context())
			defer cancel()
			_, outbound := runtime.MarshalerForRequest(mux, r)

			annotated, err := runtime.AnnotateContext(ctx, mux, r, route.rpc, runtime.WithHTTPPathPattern(route.pattern))
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, err)
				return
			}

			resp, err := route.handle(annotated, r, params)
			if err != nil {
				runtime.HTTPError(annotated, mux, outbound, w, r, err)
				return
			}

			writeJSON(w, resp)
		})
		if err != nil {
			return fmt.Errorf("failed to register %s %s: %w", route.method, route.pattern, err)
		}
	}

	return nil
}

func routeRef(params map[string]string) RouteRef {
	return RouteRef{
		District:  params["district"],
		County:    params["county"],
		Route:     params["route"],
		Direction: params["direction"],
	}
}

func queryFloat(value, name string) (float64, error) {
	if value == "" {
		return 0, status.Errorf(codes.InvalidArgument, "missing query parameter %s", name)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, status.Errorf(codes.InvalidArgument, "query parameter %s is not a finite number: %q", name, value)
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		grpclog.Errorf("Failed to write response: %v", err)
	}
}
