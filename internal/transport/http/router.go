// Package httptransport assembles the public HTTP surface: the middleware
// chain, the CPF routes and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cpfHandler "credito/internal/cpf/handler"
	"credito/internal/platform/metrics"
	"credito/internal/platform/middleware"
	"credito/pkg/platform/httputil"
	"credito/pkg/platform/middleware/admin"
	"credito/pkg/platform/middleware/metadata"
	"credito/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the router mounts.
type Deps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	CPF        *cpfHandler.Handler
	AdminToken string
	// Checks are reported by /healthz. A failing check degrades the report
	// but keeps the status at 200 because the validator itself has no
	// hard dependencies.
	Checks map[string]HealthCheck
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))
	r.Use(middleware.Recovery(d.Logger))

	r.Get("/healthz", healthz(d.Checks))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		d.CPF.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(d.AdminToken, d.Logger))
			d.CPF.RegisterAdmin(r)
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
