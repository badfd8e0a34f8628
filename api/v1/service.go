package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SegmentService_ListRoutes_FullMethodName     = "/postmile.v1.SegmentService/ListRoutes"
	SegmentService_GetRoute_FullMethodName       = "/postmile.v1.SegmentService/GetRoute"
	SegmentService_ExtractSegment_FullMethodName = "/postmile.v1.SegmentService/ExtractSegment"
	SegmentService_ExportSegment_FullMethodName  = "/postmile.v1.SegmentService/ExportSegment"
)

// SegmentServiceClient is the client API for SegmentService
type SegmentServiceClient interface {
	ListRoutes(ctx context.Context, in *ListRoutesRequest, opts ...grpc.CallOption) (*ListRoutesResponse, error)
	GetRoute(ctx context.Context, in *GetRouteRequest, opts ...grpc.CallOption) (*GetRouteResponse, error)
	ExtractSegment(ctx context.Context, in *ExtractSegmentRequest, opts ...grpc.CallOption) (*ExtractSegmentResponse, error)
	ExportSegment(ctx context.Context, in *ExportSegmentRequest, opts ...grpc.CallOption) (*ExportSegmentResponse, error)
}

type segmentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSegmentServiceClient creates a client whose calls use the JSON codec
func NewSegmentServiceClient(cc grpc.ClientConnInterface) SegmentServiceClient {
	return &segmentServiceClient{cc}
}

func (c *segmentServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *segmentServiceClient) ListRoutes(ctx context.Context, in *ListRoutesRequest, opts ...grpc.CallOption) (*ListRoutesResponse, error) {
	out := new(ListRoutesResponse)
	if err := c.invoke(ctx, SegmentService_ListRoutes_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *segmentServiceClient) GetRoute(ctx context.Context, in *GetRouteRequest, opts ...grpc.CallOption) (*GetRouteResponse, error) {
	out := new(GetRouteResponse)
	if err := c.invoke(ctx, SegmentService_GetRoute_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *segmentServiceClient) ExtractSegment(ctx context.Context, in *ExtractSegmentRequest, opts ...grpc.CallOption) (*ExtractSegmentResponse, error) {
	out := new(ExtractSegmentResponse)
	if err := c.invoke(ctx, SegmentService_ExtractSegment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *segmentServiceClient) ExportSegment(ctx context.Context, in *ExportSegmentRequest, opts ...grpc.CallOption) (*ExportSegmentResponse, error) {
	out := new(ExportSegmentResponse)
	if err := c.invoke(ctx, SegmentService_ExportSegment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// SegmentServiceServer is the server API for SegmentService
type SegmentServiceServer interface {
	ListRoutes(context.Context, *ListRoutesRequest) (*ListRoutesResponse, error)
	GetRoute(context.Context, *GetRouteRequest) (*GetRouteResponse, error)
	ExtractSegment(context.Context, *ExtractSegmentRequest) (*ExtractSegmentResponse, error)
	ExportSegment(context.Context, *ExportSegmentRequest) (*ExportSegmentResponse, error)
}

// UnimplementedSegmentServiceServer can be embedded to keep servers
// compiling as methods are added
type UnimplementedSegmentServiceServer struct{}

func (UnimplementedSegmentServiceServer) ListRoutes(context.Context, *ListRoutesRequest) (*ListRoutesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRoutes not implemented")
}

func (UnimplementedSegmentServiceServer) GetRoute(context.Context, *GetRouteRequest) (*GetRouteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRoute not implemented")
}

func (UnimplementedSegmentServiceServer) ExtractSegment(context.Context, *ExtractSegmentRequest) (*ExtractSegmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExtractSegment not implemented")
}

func (UnimplementedSegmentServiceServer) ExportSegment(context.Context, *ExportSegmentRequest) (*ExportSegmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportSegment not implemented")
}

// RegisterSegmentServiceServer registers srv with s
func RegisterSegmentServiceServer(s grpc.ServiceRegistrar, srv SegmentServiceServer) {
	s.RegisterService(&SegmentService_ServiceDesc, srv)
}

func _SegmentService_ListRoutes_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListRoutesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SegmentServiceServer).ListRoutes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SegmentService_ListRoutes_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SegmentServiceServer).ListRoutes(ctx, req.(*ListRoutesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SegmentService_GetRoute_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRouteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SegmentServiceServer).GetRoute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SegmentService_GetRoute_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SegmentServiceServer).GetRoute(ctx, req.(*GetRouteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SegmentService_ExtractSegment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ExtractSegmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SegmentServiceServer).ExtractSegment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SegmentService_ExtractSegment_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SegmentServiceServer).ExtractSegment(ctx, req.(*ExtractSegmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SegmentService_ExportSegment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ExportSegmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SegmentServiceServer).ExportSegment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SegmentService_ExportSegment_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SegmentServiceServer).ExportSegment(ctx, req.(*ExportSegmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SegmentService_ServiceDesc is the grpc.ServiceDesc for SegmentService
var SegmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "postmile.v1.SegmentService",
	HandlerType: (*SegmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListRoutes", Handler: _SegmentService_ListRoutes_Handler},
		{MethodName: "GetRoute", Handler: _SegmentService_GetRoute_Handler},
		{MethodName: "ExtractSegment", Handler: _SegmentService_ExtractSegment_Handler},
		{MethodName: "ExportSegment", Handler: _SegmentService_ExportSegment_Handler},
	},
	Streams: []grpc.StreamDesc{},
}
