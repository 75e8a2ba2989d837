// Package service resolves profile link requests into response actions.
package service

import (
	"context"
	"log/slog"
	"net/http"

	"gliblio/internal/profilelink/handle"
	"gliblio/internal/profilelink/metrics"
	"gliblio/internal/profilelink/models"
	"gliblio/pkg/requestcontext"
)

// Classifier sorts callers into client classes.
type Classifier interface {
	Classify(userAgent string, headers http.Header) models.ClientClass
}

// ProfileResolver performs the single lookup for a valid handle.
type ProfileResolver interface {
	Resolve(ctx context.Context, h models.Handle) models.LookupResult
}

// Request carries the parts of an HTTP request the decision depends on.
type Request struct {
	RawHandle string
	UserAgent string
	Headers   http.Header
}

// Service wires validation, classification, lookup and selection together.
type Service struct {
	validator  *handle.Validator
	classifier Classifier
	resolver   ProfileResolver
	selector   *Selector
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithValidator replaces the default contains-mode validator.
func WithValidator(v *handle.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// New constructs the profile link service.
func New(classifier Classifier, resolver ProfileResolver, selector *Selector, opts ...Option) *Service {
	s := &Service{
		validator:  handle.NewValidator(handle.ReservedContains),
		classifier: classifier,
		resolver:   resolver,
		selector:   selector,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Resolve decides the response for one request. It never fails; every
// fault is folded into the chosen action.
func (s *Service) Resolve(ctx context.Context, req Request) models.Outcome {
	class := s.classifier.Classify(req.UserAgent, req.Headers)
	out := models.Outcome{
		ClientClass: class,
		Lookup:      models.LookupResult{Outcome: models.LookupSkipped},
	}

	h, err := s.validator.Validate(req.RawHandle)
	out.Handle = h
	if err != nil {
		reason := handle.ReasonOf(err)
		s.metrics.IncrementRejection(string(reason))
		s.logger.DebugContext(ctx, "path segment rejected",
			"request_id", requestcontext.RequestID(ctx),
			"reason", reason,
		)
	} else {
		out.Valid = true
		out.Lookup = s.resolver.Resolve(ctx, h)
	}

	out.Action = s.selector.Select(h, err, out.Lookup, class)
	s.metrics.IncrementResponse(string(class), string(out.Action.Kind))
	return out
}

// Classify exposes the classifier for callers that need a class without a
// full resolution, such as panic recovery.
func (s *Service) Classify(userAgent string, headers http.Header) models.ClientClass {
	return s.classifier.Classify(userAgent, headers)
}

// FailureAction is the action served when handling a request broke down.
func (s *Service) FailureAction(class models.ClientClass) models.Action {
	return s.selector.Failure(models.Handle{}, class)
}
