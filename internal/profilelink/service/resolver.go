package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gliblio/internal/profilelink/metrics"
	"gliblio/internal/profilelink/models"
	"gliblio/internal/profilelink/ports"
	"gliblio/pkg/platform/sentinel"
	"gliblio/pkg/requestcontext"
)

const (
	tracerName           = "gliblio/profilelink"
	DefaultLookupTimeout = 3 * time.Second
)

// Resolver turns one store lookup into a LookupResult. It never retries and
// keeps no cache.
type Resolver struct {
	store   ports.ProfileStore
	timeout time.Duration
	tracer  trace.Tracer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLookupTimeout bounds each lookup. Non-positive values keep the default.
func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithResolverMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) ResolverOption {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewResolver constructs a resolver over store.
func NewResolver(store ports.ProfileStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:   store,
		timeout: DefaultLookupTimeout,
		tracer:  otel.Tracer(tracerName),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve looks up h. Timeouts, transport errors, ambiguous matches and
// panics inside the store all come back as a failed result. A store that
// ignores its context is abandoned once the timeout fires.
func (r *Resolver) Resolve(ctx context.Context, h models.Handle) models.LookupResult {
	ctx, span := r.tracer.Start(ctx, "profilelink.lookup",
		trace.WithAttributes(attribute.String("profilelink.handle", h.Normalized)))
	defer span.End()
	start := time.Now()

	result := r.lookup(ctx, h)

	r.metrics.ObserveLookupLatency(string(result.Outcome), time.Since(start))
	span.SetAttributes(attribute.String("profilelink.lookup_outcome", string(result.Outcome)))
	if result.Outcome == models.LookupFailed {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, "lookup failed")
		r.logger.WarnContext(ctx, "profile lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"handle", h.Normalized,
			"error", result.Err,
		)
	}
	return result
}

type storeReply struct {
	profile *models.Profile
	err     error
}

func (r *Resolver) lookup(ctx context.Context, h models.Handle) models.LookupResult {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Buffered so an abandoned lookup can still deliver and exit.
	replies := make(chan storeReply, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				replies <- storeReply{err: fmt.Errorf("profile store panic: %v", rec)}
			}
		}()
		profile, err := r.store.FindByHandle(lookupCtx, h.Normalized)
		replies <- storeReply{profile: profile, err: err}
	}()

	var reply storeReply
	select {
	case reply = <-replies:
	case <-lookupCtx.Done():
		return models.Failed(fmt.Errorf("profile lookup: %w", lookupCtx.Err()))
	}

	switch {
	case errors.Is(reply.err, sentinel.ErrNotFound):
		return models.NotFound()
	case reply.err != nil:
		return models.Failed(reply.err)
	case reply.profile == nil || reply.profile.IdentityID == "":
		return models.Failed(errors.New("profile store returned an empty record"))
	default:
		return models.Found(reply.profile.IdentityID)
	}
}
