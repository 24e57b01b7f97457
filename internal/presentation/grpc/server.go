package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/ciran541/loan-eligibility/pkg/auth"
)

const healthServiceName = "eligibility-service"

// Options tunes the gRPC server. A nil Validator disables authentication.
type Options struct {
	Validator     *auth.Validator
	Reflection    bool
	ServerOptions []grpc.ServerOption
}

// Server wraps a gRPC server with the eligibility handler registered.
type Server struct {
	gs      *grpc.Server
	health  *health.Server
	handler *EligibilityHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler *EligibilityHandler, logger *slog.Logger, opts Options) *Server {
	serverOpts := append([]grpc.ServerOption{}, opts.ServerOptions...)

	if opts.Validator != nil {
		authInterceptor := auth.UnaryAuthInterceptor(opts.Validator,
			map[string]string{
				AssessFullMethod:      auth.ScopeAssess,
				ListRegimesFullMethod: auth.ScopeReadRegimes,
			},
			[]string{
				"/grpc.health.v1.Health/Check",
				"/grpc.health.v1.Health/Watch",
			},
		)
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	} else {
		logger.Warn("gRPC authentication disabled")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterEligibilityServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		health:  healthSrv,
		handler: handler,
		logger:  logger,
	}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
