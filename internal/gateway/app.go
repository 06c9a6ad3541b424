// Package gateway assembles the public bookstore API. The catalog and the
// user directory are served in-process under /public next to the health,
// readiness and metrics endpoints.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"BookStore/internal/auth"
	"BookStore/internal/catalog"
	"BookStore/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Catalog   catalog.Store
	Directory auth.Directory
}

const (
	publicPrefix = "/public"
	readyTimeout = 2 * time.Second
)

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.Catalog == nil || deps.Directory == nil {
		return nil, errors.New("gateway: catalog and directory are required")
	}
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	metrics := setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log, Metrics: metrics}
	authSrv := &auth.Server{Store: deps.Directory, Log: httpDeps.Log, Metrics: metrics}

	r.Route(publicPrefix, func(pr chi.Router) {
		authSrv.RegisterRoutes(pr)
		catalogSrv.RegisterRoutes(pr)
	})

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

// setupMetrics returns nil when no registry is configured; the servers
// treat a nil *kit.Metrics as disabled.
func setupMetrics(r *chi.Mux, deps HTTPDeps) *kit.Metrics {
	if deps.Registry == nil {
		if deps.MetricsEnabled {
			deps.Log.Warn("metrics enabled but Registry is nil")
		}
		return nil
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if deps.MetricsEnabled {
		r.With(kit.MetricsAuth(deps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	return metrics
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		if err := deps.Directory.Ping(ctx); err != nil {
			log.Warn("readyz failed: directory", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "directory not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
