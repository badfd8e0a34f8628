package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MockSegmentServiceClient is a mock implementation of SegmentServiceClient
type MockSegmentServiceClient struct {
	mock.Mock
}

func (m *MockSegmentServiceClient) ListRoutes(ctx context.Context, in *ListRoutesRequest, opts ...grpc.CallOption) (*ListRoutesResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*ListRoutesResponse)
	return resp, args.Error(1)
}

func (m *MockSegmentServiceClient) GetRoute(ctx context.Context, in *GetRouteRequest, opts ...grpc.CallOption) (*GetRouteResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*GetRouteResponse)
	return resp, args.Error(1)
}

func (m *MockSegmentServiceClient) ExtractSegment(ctx context.Context, in *ExtractSegmentRequest, opts ...grpc.CallOption) (*ExtractSegmentResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*ExtractSegmentResponse)
	return resp, args.Error(1)
}

func (m *MockSegmentServiceClient) ExportSegment(ctx context.Context, in *ExportSegmentRequest, opts ...grpc.CallOption) (*ExportSegmentResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*ExportSegmentResponse)
	return resp, args.Error(1)
}

func serveGateway(t *testing.T, client SegmentServiceClient, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	mux := runtime.NewServeMux()
	require.NoError(t, RegisterSegmentServiceHandlerClient(context.Background(), mux, client))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGateway_ExtractSegmentRequestMapping(t *testing.T) {
	client := &MockSegmentServiceClient{}
	client.On("ExtractSegment", mock.Anything, &ExtractSegmentRequest{
		RouteRef: RouteRef{District: "12", County: "ORA", Route: "5", Direction: "NB"},
		StartPm:  3.2,
		EndPm:    8.7,
	}).Return(&ExtractSegmentResponse{Segment: &Segment{Id: "abc", FragmentCount: 2}}, nil)

	rec := serveGateway(t, client, http.MethodGet, "/api/v1/routes/12/ORA/5/NB/segment?start_pm=3.2&end_pm=8.7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ExtractSegmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc", body.Segment.Id)
	assert.Equal(t, int32(2), body.Segment.FragmentCount)
	client.AssertExpectations(t)
}

func TestGateway_StatusMapping(t *testing.T) {
	tests := []struct {
		code codes.Code
		http int
	}{
		{codes.InvalidArgument, http.StatusBadRequest},
		{codes.NotFound, http.StatusNotFound},
		{codes.FailedPrecondition, http.StatusBadRequest},
		{codes.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			client := &MockSegmentServiceClient{}
			client.On("GetRoute", mock.Anything, mock.AnythingOfType("*v1.GetRouteRequest")).
				Return(nil, status.Error(tt.code, "route d12/ORA/5/NB"))

			rec := serveGateway(t, client, http.MethodGet, "/api/v1/routes/12/ORA/5/NB")
			assert.Equal(t, tt.http, rec.Code)
			assert.Contains(t, rec.Body.String(), "route d12/ORA/5/NB")
		})
	}
}

func TestGateway_MissingQueryDoesNotCallService(t *testing.T) {
	client := &MockSegmentServiceClient{}

	rec := serveGateway(t, client, http.MethodGet, "/api/v1/routes/12/ORA/5/NB/segment?end_pm=8.7")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_pm")
	client.AssertNotCalled(t, "ExtractSegment", mock.Anything, mock.Anything)
}

func TestGateway_UnknownPath(t *testing.T) {
	rec := serveGateway(t, &MockSegmentServiceClient{}, http.MethodGet, "/api/v1/routes/12/ORA")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
