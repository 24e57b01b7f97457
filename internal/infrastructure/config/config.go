package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type AuthConfig struct {
	Secret        string
	PublicKey     string
	PublicKeyFile string
	Issuer        string
}

// Enabled reports whether any verification key is configured.
func (a AuthConfig) Enabled() bool {
	return a.Secret != "" || a.PublicKey != "" || a.PublicKeyFile != ""
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	ServiceName    string
	LogLevel       string
	LogFormat      string
	GRPCReflection bool
	OTLPEndpoint   string
	OTLPInsecure   bool

	RegulatoryFile   string
	StressTestRate   string
	InstallmentBasis string

	Cache CacheConfig
	Auth  AuthConfig
	TLS   TLSConfig
}

func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		ServiceName:    "eligibility-service",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),

		RegulatoryFile:   getEnv("REGULATORY_CONFIG", ""),
		StressTestRate:   getEnv("STRESS_TEST_RATE", ""),
		InstallmentBasis: getEnv("INSTALLMENT_BASIS", ""),

		Cache: CacheConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			TTL:           getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKey:     getEnv("JWT_PUBLIC_KEY", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", ""),
		},
		TLS: TLSConfig{
			CertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Auth.Secret != "" && (c.Auth.PublicKey != "" || c.Auth.PublicKeyFile != "") {
		return fmt.Errorf("JWT_SECRET cannot be combined with JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
