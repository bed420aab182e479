package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	credhandler "haven/internal/credential/handler"
	credmetrics "haven/internal/credential/metrics"
	credservice "haven/internal/credential/service"
	credstore "haven/internal/credential/store"
	enrollhandler "haven/internal/enrollment/handler"
	enrollmetrics "haven/internal/enrollment/metrics"
	enrollservice "haven/internal/enrollment/service"
	enrollstore "haven/internal/enrollment/store"
	jwttoken "haven/internal/jwt_token"
	"haven/internal/platform/config"
	"haven/internal/platform/health"
	"haven/internal/platform/httpserver"
	"haven/internal/platform/logger"
	proofhandler "haven/internal/proof/handler"
	proofmetrics "haven/internal/proof/metrics"
	proofservice "haven/internal/proof/service"
	proofstore "haven/internal/proof/store"
	"haven/internal/registry"
	"haven/internal/seeder"
	httptransport "haven/internal/transport/http"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	"haven/pkg/platform/serial"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment)

	log.Info("initializing haven",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"block_interval_seconds", cfg.BlockIntervalSeconds,
	)

	clock := blockclock.NewEpoch(time.Now(), time.Duration(cfg.BlockIntervalSeconds)*time.Second)
	gate := serial.New()

	var vetting registry.Client
	if cfg.RegistryBaseURL != "" {
		vetting = registry.NewHTTPClient(cfg.RegistryBaseURL, cfg.RegistryAPIKey, 5*time.Second)
		log.Info("external vetting registry enabled", "url", cfg.RegistryBaseURL)
	}

	proofOpts := []proofservice.Option{
		proofservice.WithMetrics(proofmetrics.New()),
		proofservice.WithLogger(log),
	}
	credOpts := []credservice.Option{
		credservice.WithMetrics(credmetrics.New()),
		credservice.WithLogger(log),
	}
	if vetting != nil {
		proofOpts = append(proofOpts, proofservice.WithRegistry(vetting))
		credOpts = append(credOpts, credservice.WithRegistry(vetting))
	}

	proofs := proofservice.NewService(
		proofstore.NewInMemoryStore(),
		clock,
		gate,
		domain.Principal(cfg.AdminPrincipal),
		proofOpts...,
	)
	credentials := credservice.NewService(
		credstore.NewInMemoryStore(),
		proofs,
		clock,
		gate,
		domain.Principal(cfg.RegistryPrincipal),
		credOpts...,
	)
	enrollments := enrollservice.NewService(
		enrollstore.NewInMemoryStore(),
		credentials,
		credentials,
		clock,
		gate,
		domain.Principal(cfg.AdminPrincipal),
		enrollservice.WithMetrics(enrollmetrics.New()),
		enrollservice.WithLogger(log),
	)

	if cfg.SeedDemoData {
		if err := seeder.New(proofs, credentials, enrollments, log).SeedAll(context.Background()); err != nil {
			log.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "http://localhost"+cfg.Addr, "haven-client", cfg.TokenTTL)

	healthHandler := health.New(cfg.Environment, clock)
	router := httptransport.NewRouter(httptransport.Handlers{
		Proofs:      proofhandler.New(proofs, log),
		Credentials: credhandler.New(credentials, log),
		Enrollments: enrollhandler.New(enrollments, log),
		Health:      healthHandler,
	}, jwttoken.NewJWTServiceAdapter(jwtService), clock, log)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
