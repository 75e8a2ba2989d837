package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"gliblio/internal/profilelink/metrics"
	"gliblio/internal/profilelink/models"
	"gliblio/internal/profilelink/service"
	"gliblio/pkg/requestcontext"
)

// Service defines the profile link operations the handler needs.
type Service interface {
	Resolve(ctx context.Context, req service.Request) models.Outcome
	Classify(userAgent string, headers http.Header) models.ClientClass
	FailureAction(class models.ClientClass) models.Action
}

// Renderer writes an action as an HTTP response.
type Renderer interface {
	Render(w http.ResponseWriter, action models.Action)
}

// UnmatchedRoute decides the response for paths that are not profile links.
type UnmatchedRoute string

const (
	UnmatchedOK       UnmatchedRoute = "ok"
	UnmatchedNotFound UnmatchedRoute = "not_found"
)

// Handler wires profile link endpoints to the profile link service.
type Handler struct {
	service   Service
	renderer  Renderer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	unmatched UnmatchedRoute
}

// New constructs a profile link handler with its dependencies.
func New(svc Service, renderer Renderer, logger *slog.Logger, m *metrics.Metrics, unmatched UnmatchedRoute) *Handler {
	if unmatched != UnmatchedNotFound {
		unmatched = UnmatchedOK
	}
	return &Handler{
		service:   svc,
		renderer:  renderer,
		logger:    logger,
		metrics:   m,
		unmatched: unmatched,
	}
}

// Register mounts the profile link endpoint and the catch-all on the router.
// The catch-all also answers known paths requested with other methods.
func (h *Handler) Register(r chi.Router) {
	r.Get("/{handle}", h.HandleProfileLink)
	r.NotFound(h.HandleUnmatched)
	r.MethodNotAllowed(h.HandleUnmatched)
}

// HandleProfileLink handles GET /{handle}.
func (h *Handler) HandleProfileLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	raw := chi.URLParam(r, "handle")
	// chi routes on RawPath when it is set, so an encoded separator reaches
	// us still escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}

	out := h.service.Resolve(ctx, service.Request{
		RawHandle: raw,
		UserAgent: r.UserAgent(),
		Headers:   r.Header,
	})
	h.renderer.Render(w, out.Action)

	h.logger.InfoContext(ctx, "profile link served",
		"request_id", requestcontext.RequestID(ctx),
		"client_ip", requestcontext.ClientIP(ctx),
		"handle", out.Handle.Normalized,
		"client_class", out.ClientClass,
		"lookup", out.Lookup.Outcome,
		"action", out.Action.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// HandleUnmatched answers every path no other route claimed.
func (h *Handler) HandleUnmatched(w http.ResponseWriter, r *http.Request) {
	action := models.DirectSuccess()
	if h.unmatched == UnmatchedNotFound {
		action = models.RejectNotFound()
	}
	h.renderer.Render(w, action)
	h.logger.DebugContext(r.Context(), "unmatched route",
		"request_id", requestcontext.RequestID(r.Context()),
		"path", r.URL.Path,
		"action", action.Kind,
	)
}

// Recover turns panics in downstream handlers into the failure action for
// the caller's class, so no client ever sees a 5xx from this service.
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			class := h.service.Classify(r.UserAgent(), r.Header)
			h.metrics.IncrementRecovered()
			h.logger.ErrorContext(r.Context(), "recovered panic in profile link handler",
				"request_id", requestcontext.RequestID(r.Context()),
				"path", r.URL.Path,
				"client_class", class,
				"user_agent", requestcontext.UserAgent(r.Context()),
				"panic", rec,
			)
			h.renderer.Render(w, h.service.FailureAction(class))
		}()
		next.ServeHTTP(w, r)
	})
}
