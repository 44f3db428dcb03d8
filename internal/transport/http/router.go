// Package httptransport assembles the HTTP surface: import and pattern
// endpoints, health, and Prometheus metrics. Handlers stay thin; domain
// logic lives in the services they delegate to.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	importerhandler "docket/internal/importer/handler"
	patternhandler "docket/internal/pattern/handler"
	"docket/pkg/platform/httputil"
	"docket/pkg/platform/middleware/requestid"
	"docket/pkg/platform/middleware/requesttime"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Importer *importerhandler.Handler
	Patterns *patternhandler.Handler
	// Checks run on /healthz, keyed by dependency name. Nil values are
	// skipped so optional backends need no special casing.
	Checks map[string]HealthChecker
}

// NewRouter wires all endpoints with the shared middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	deps.Importer.Register(r)
	deps.Patterns.Register(r)

	r.Get("/healthz", handleHealth(deps.Checks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		out := make(map[string]string, len(checks))
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(r.Context()); err != nil {
				out[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			out[name] = "ok"
		}
		httputil.WriteJSON(w, status, out)
	}
}
