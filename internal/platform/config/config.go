package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	JWTSigningKey string
	TokenTTL      time.Duration

	// Principals bootstrapped with elevated rights.
	AdminPrincipal    string
	RegistryPrincipal string

	// Block clock parameters. Height is derived lazily from wall time.
	BlockIntervalSeconds uint64

	// External vetting registry. Empty base URL disables vetting.
	RegistryBaseURL string
	RegistryAPIKey  string

	SeedDemoData bool
}

var TokenTTL = 15 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HAVEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("HAVEN_ENV")
	if env == "" {
		env = "dev"
	}

	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		if duration, err := time.ParseDuration(ttlStr); err == nil {
			TokenTTL = duration
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	admin := os.Getenv("HAVEN_ADMIN_PRINCIPAL")
	if admin == "" {
		admin = "admin"
	}
	registry := os.Getenv("HAVEN_REGISTRY_PRINCIPAL")
	if registry == "" {
		registry = "registry"
	}

	interval := uint64(10)
	if s := os.Getenv("HAVEN_BLOCK_INTERVAL_SECONDS"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil && v > 0 {
			interval = v
		}
	}

	return Server{
		Addr:                 addr,
		Environment:          env,
		JWTSigningKey:        jwtSigningKey,
		TokenTTL:             TokenTTL,
		AdminPrincipal:       admin,
		RegistryPrincipal:    registry,
		BlockIntervalSeconds: interval,
		RegistryBaseURL:      os.Getenv("HAVEN_REGISTRY_URL"),
		RegistryAPIKey:       os.Getenv("HAVEN_REGISTRY_API_KEY"),
		SeedDemoData:         os.Getenv("HAVEN_SEED_DEMO_DATA") == "true",
	}
}
