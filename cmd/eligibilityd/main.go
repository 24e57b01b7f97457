package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ciran541/loan-eligibility/internal/application/usecase"
	"github.com/ciran541/loan-eligibility/internal/domain/port"
	"github.com/ciran541/loan-eligibility/internal/domain/service"
	"github.com/ciran541/loan-eligibility/internal/infrastructure/cache"
	"github.com/ciran541/loan-eligibility/internal/infrastructure/config"
	"github.com/ciran541/loan-eligibility/internal/infrastructure/telemetry"
	grpcPresentation "github.com/ciran541/loan-eligibility/internal/presentation/grpc"
	"github.com/ciran541/loan-eligibility/internal/presentation/rest"
	"github.com/ciran541/loan-eligibility/pkg/auth"
	"github.com/ciran541/loan-eligibility/pkg/observability"
	"github.com/ciran541/loan-eligibility/pkg/tlsutil"
)

const memoryCacheEntries = 10_000

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting eligibility-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	var recorder port.AssessmentRecorder = telemetry.NoopRecorder{}
	if mr, err := telemetry.NewMetricRecorder(meterProvider); err != nil {
		logger.Warn("failed to create assessment metrics, continuing without them", "error", err)
	} else {
		recorder = mr
	}

	// Regulatory parameters and engine.
	reg, err := cfg.LoadRegulatory()
	if err != nil {
		logger.Error("failed to load regulatory parameters", "error", err)
		os.Exit(1)
	}
	engine, err := service.NewEligibilityEngine(reg.Policy)
	if err != nil {
		logger.Error("failed to build eligibility engine", "error", err)
		os.Exit(1)
	}
	variants := make([]string, 0, len(reg.Regimes))
	for _, p := range reg.Regimes {
		variants = append(variants, p.Variant.String())
	}
	logger.Info("regulatory parameters loaded",
		"variants", variants,
		"stress_test_rate", reg.Policy.StressTestAnnualRate.String(),
		"installment_basis", string(reg.Policy.InstallmentBasis),
	)

	// Assessment cache.
	var (
		assessmentCache port.AssessmentCache
		readiness       = map[string]rest.Pinger{}
	)
	if cfg.Cache.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		defer func() { _ = rc.Close() }() //nolint:errcheck
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn("redis not reachable yet", "addr", cfg.Cache.RedisAddr, "error", err)
		}
		pingCancel()
		assessmentCache = rc
		readiness["cache"] = rc
		logger.Info("using redis assessment cache", "addr", cfg.Cache.RedisAddr)
	} else {
		assessmentCache = cache.NewMemoryCache(memoryCacheEntries)
		logger.Info("using in-memory assessment cache")
	}

	// Wire use cases.
	assessUC := usecase.NewAssessEligibilityUseCase(engine, reg.Regimes, assessmentCache, cfg.Cache.TTL, recorder, logger)
	listRegimesUC := usecase.NewListRegimesUseCase(engine, reg.Regimes)

	// Optional partner-token validation.
	validator, err := newValidator(cfg.Auth)
	if err != nil {
		logger.Error("failed to initialize token validator", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcOpts := grpcPresentation.Options{
		Validator:  validator,
		Reflection: cfg.GRPCReflection,
	}
	if cfg.TLS.CertFile != "" {
		tlsOpts, err := tlsutil.ServerOptions(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials", "error", err)
			os.Exit(1)
		}
		grpcOpts.ServerOptions = tlsOpts
		logger.Info("gRPC TLS enabled", "cert", cfg.TLS.CertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}
	grpcHandler := grpcPresentation.NewEligibilityHandler(assessUC, listRegimesUC, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, grpcOpts)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, readiness).RegisterRoutes(mux)
	rest.NewEligibilityHandler(assessUC, listRegimesUC, validator, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("eligibility-service stopped")
}

// newValidator returns nil when no verification key is configured. A public
// key takes precedence over a key file.
func newValidator(cfg config.AuthConfig) (*auth.Validator, error) {
	if !cfg.Enabled() {
		slog.Warn("no JWT key configured, eligibility endpoints are unauthenticated")
		return nil, nil
	}

	vcfg := auth.ValidatorConfig{
		Secret:       cfg.Secret,
		PublicKeyPEM: cfg.PublicKey,
		Issuer:       cfg.Issuer,
		Leeway:       30 * time.Second,
	}
	if vcfg.PublicKeyPEM == "" && cfg.PublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		vcfg.PublicKeyPEM = pem
	}
	return auth.NewValidator(vcfg)
}
