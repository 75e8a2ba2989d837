package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gliblio/internal/profilelink/handler"
	"gliblio/internal/profilelink/ports"
	"gliblio/pkg/platform/middleware/metadata"
	"gliblio/pkg/platform/middleware/requestid"
)

const healthTimeout = 2 * time.Second

// NewRouter wires the public listener: landing page, app link association
// file, profile links and the catch-all. HEAD is served like GET.
func NewRouter(links *handler.Handler, site *handler.Site) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.GetHead)
	r.Use(links.Recover)

	site.Register(r)
	links.Register(r)
	return r
}

// NewAdminRouter wires the operator listener with Prometheus metrics and a
// health check. pinger may be nil when the store has nothing to ping.
func NewAdminRouter(metricsHandler http.Handler, pinger ports.Pinger, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	r.Get("/healthz", healthHandler(pinger, logger))
	return r
}

func healthHandler(pinger ports.Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "error", err)
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
