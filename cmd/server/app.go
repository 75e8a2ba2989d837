package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gliblio/internal/platform/config"
	platformmetrics "gliblio/internal/platform/metrics"
	platformpostgres "gliblio/internal/platform/postgres"
	platformredis "gliblio/internal/platform/redis"
	"gliblio/internal/profilelink/classifier"
	"gliblio/internal/profilelink/handle"
	"gliblio/internal/profilelink/handler"
	"gliblio/internal/profilelink/metrics"
	"gliblio/internal/profilelink/ports"
	"gliblio/internal/profilelink/render"
	"gliblio/internal/profilelink/service"
	storememory "gliblio/internal/profilelink/store/memory"
	storepostgres "gliblio/internal/profilelink/store/postgres"
	storeredis "gliblio/internal/profilelink/store/redis"
	storerest "gliblio/internal/profilelink/store/rest"
)

// app holds the wired profile link module and the resources it owns.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *platformmetrics.Registry
	pinger   ports.Pinger
	service  *service.Service
	links    *handler.Handler
	site     *handler.Site
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: platformmetrics.New(cfg.Lookup.Backend),
	}

	store, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if p, ok := store.(ports.Pinger); ok {
		a.pinger = p
	}

	m := metrics.New(a.registry)
	resolver := service.NewResolver(store,
		service.WithLookupTimeout(cfg.Lookup.Timeout),
		service.WithResolverMetrics(m),
		service.WithResolverLogger(logger),
	)
	selector := service.NewSelector(service.Policy{
		Scheme:         cfg.DeepLink.Scheme,
		WebFallbackURL: cfg.DeepLink.WebFallbackURL,
		AppLink:        service.AppLinkStrategy(cfg.DeepLink.AppLinkStrategy),
		Browser:        service.BrowserStrategy(cfg.DeepLink.BrowserStrategy),
	})
	a.service = service.New(
		classifier.New(classifier.Config{
			VerifierTokens:      cfg.Classifier.VerifierTokens,
			NativeTokens:        cfg.Classifier.NativeTokens,
			VerificationHeaders: cfg.Classifier.VerificationHeaders,
		}),
		resolver,
		selector,
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithValidator(handle.NewValidator(handle.ReservedMatch(cfg.DeepLink.ReservedMatch))),
	)

	renderer := render.New(render.Options{
		RedirectStatus: cfg.DeepLink.RedirectStatus,
		Home:           render.HomeStrategy(cfg.DeepLink.HomeStrategy),
		FallbackDelay:  cfg.DeepLink.FallbackDelay(),
		Title:          cfg.Static.LandingTitle,
	})
	a.links = handler.New(a.service, renderer, logger, m, handler.UnmatchedRoute(cfg.DeepLink.UnmatchedRoute))
	a.site = handler.NewSite(cfg.Static.AssetLinksPath, cfg.Static.LandingTitle, logger)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (ports.ProfileStore, error) {
	cfg := a.cfg
	switch cfg.Lookup.Backend {
	case config.BackendMemory:
		seed := make(map[string]string, len(cfg.Memory.Profiles))
		for h, id := range cfg.Memory.Profiles {
			seed[handle.Normalize(h)] = id
		}
		return storememory.New(seed), nil

	case config.BackendPostgres:
		db, err := platformpostgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return storepostgres.NewPostgres(db, storepostgres.Table{
			Name:         cfg.Lookup.Table,
			HandleColumn: cfg.Lookup.HandleColumn,
			IDColumn:     cfg.Lookup.IDColumn,
		}), nil

	case config.BackendRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return storeredis.NewRedis(client.Client, storeredis.WithKeyPrefix(cfg.Redis.KeyPrefix)), nil

	case config.BackendREST:
		return storerest.NewREST(storerest.Config{
			BaseURL:      cfg.REST.URL,
			APIKey:       cfg.REST.APIKey,
			Table:        cfg.Lookup.Table,
			HandleColumn: cfg.Lookup.HandleColumn,
			IDColumn:     cfg.Lookup.IDColumn,
		}, &http.Client{})
	}
	return nil, fmt.Errorf("unknown lookup backend %q", cfg.Lookup.Backend)
}

// Close releases store connections.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
