package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gliblio/internal/platform/config"
	"gliblio/internal/platform/httpserver"
	"gliblio/internal/platform/logger"
	httptransport "gliblio/internal/transport/http"
)

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve profile links until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error("close store", "error", err)
				}
			}()

			public := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(a.links, a.site))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return httpserver.Run(gctx, public, "public server", log)
			})
			if cfg.Admin.Addr != "" {
				admin := httpserver.New(cfg.Admin.Addr, httptransport.NewAdminRouter(a.registry.Handler(), a.pinger, log))
				g.Go(func() error {
					return httpserver.Run(gctx, admin, "admin server", log)
				})
			}

			log.Info("gliblio server running",
				"addr", cfg.Server.Addr,
				"admin_addr", cfg.Admin.Addr,
				"environment", cfg.Server.Environment,
				"lookup_backend", cfg.Lookup.Backend,
				"app_link_strategy", cfg.DeepLink.AppLinkStrategy,
				"browser_strategy", cfg.DeepLink.BrowserStrategy,
			)
			if err := g.Wait(); err != nil {
				return err
			}
			log.Info("gliblio server stopped")
			return nil
		},
	}
}
