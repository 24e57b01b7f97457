package grpc

// proto.go describes eligibility.v1.EligibilityService by hand. Messages are
// the application DTOs encoded as JSON, so clients must call with the
// content type application/grpc+json (grpc.CallContentSubtype(ContentSubtype)).
// The health and reflection services keep the default proto codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
)

const (
	ServiceName = "eligibility.v1.EligibilityService"

	// ContentSubtype names the codec the service's messages travel in.
	ContentSubtype = "json"

	AssessFullMethod      = "/" + ServiceName + "/Assess"
	ListRegimesFullMethod = "/" + ServiceName + "/ListRegimes"
)

// EligibilityServiceServer is the server API for EligibilityService.
type EligibilityServiceServer interface {
	Assess(context.Context, *dto.AssessEligibilityRequest) (*dto.AssessEligibilityResponse, error)
	ListRegimes(context.Context, *dto.ListRegimesRequest) (*dto.ListRegimesResponse, error)
	mustEmbedUnimplementedEligibilityServiceServer()
}

// UnimplementedEligibilityServiceServer provides forward-compatible default implementations.
type UnimplementedEligibilityServiceServer struct{}

func (UnimplementedEligibilityServiceServer) Assess(context.Context, *dto.AssessEligibilityRequest) (*dto.AssessEligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Assess not implemented")
}
func (UnimplementedEligibilityServiceServer) ListRegimes(context.Context, *dto.ListRegimesRequest) (*dto.ListRegimesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRegimes not implemented")
}
func (UnimplementedEligibilityServiceServer) mustEmbedUnimplementedEligibilityServiceServer() {}

// RegisterEligibilityServiceServer registers srv with the gRPC server.
func RegisterEligibilityServiceServer(s grpclib.ServiceRegistrar, srv EligibilityServiceServer) {
	s.RegisterService(&_EligibilityService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _EligibilityService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EligibilityServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Assess", Handler: _EligibilityService_Assess_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "ListRegimes", Handler: _EligibilityService_ListRegimes_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _EligibilityService_Assess_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.AssessEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EligibilityServiceServer).Assess(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AssessFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EligibilityServiceServer).Assess(ctx, req.(*dto.AssessEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _EligibilityService_ListRegimes_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ListRegimesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EligibilityServiceServer).ListRegimes(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListRegimesFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EligibilityServiceServer).ListRegimes(ctx, req.(*dto.ListRegimesRequest))
	}
	return interceptor(ctx, in, info, handler)
}
