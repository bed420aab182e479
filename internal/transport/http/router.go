package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	credhandler "haven/internal/credential/handler"
	enrollhandler "haven/internal/enrollment/handler"
	"haven/internal/platform/health"
	"haven/internal/platform/middleware"
	proofhandler "haven/internal/proof/handler"
	"haven/pkg/blockclock"
)

// Handlers bundles the feature handlers mounted on the router.
type Handlers struct {
	Proofs      *proofhandler.Handler
	Credentials *credhandler.Handler
	Enrollments *enrollhandler.Handler
	Health      *health.Handler
}

// NewRouter wires all public endpoints with middleware. Every feature route
// sits behind bearer token auth; only health and metrics stay open.
func NewRouter(h Handlers, validator middleware.TokenValidator, clock blockclock.Source, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(blockclock.Middleware(clock))

	if h.Health != nil {
		h.Health.Register(r)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		h.Proofs.Register(r)
		h.Credentials.Register(r)
		h.Enrollments.Register(r)
	})

	return r
}
