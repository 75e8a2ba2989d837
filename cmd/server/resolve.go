package main

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gliblio/internal/platform/config"
	"gliblio/internal/platform/logger"
	"gliblio/internal/profilelink/service"
)

func newResolveCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		userAgent string
		headers   []string
	)

	cmd := &cobra.Command{
		Use:   "resolve <handle>",
		Short: "Resolve one handle against the configured backend and print the chosen response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			h := make(http.Header)
			for _, kv := range headers {
				name, value, ok := strings.Cut(kv, ":")
				if !ok {
					return fmt.Errorf("header %q must be Name: value", kv)
				}
				h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
			}

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			out := a.service.Resolve(cmd.Context(), service.Request{
				RawHandle: args[0],
				UserAgent: userAgent,
				Headers:   h,
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "handle\t%s\n", out.Handle.Normalized)
			fmt.Fprintf(tw, "valid\t%t\n", out.Valid)
			fmt.Fprintf(tw, "client_class\t%s\n", out.ClientClass)
			fmt.Fprintf(tw, "lookup\t%s\n", out.Lookup.Outcome)
			if out.Lookup.Err != nil {
				fmt.Fprintf(tw, "lookup_error\t%v\n", out.Lookup.Err)
			}
			fmt.Fprintf(tw, "action\t%s\n", out.Action.Kind)
			if out.Action.Target != "" {
				fmt.Fprintf(tw, "target\t%s\n", out.Action.Target)
			}
			if out.Action.FallbackURL != "" {
				fmt.Fprintf(tw, "fallback\t%s\n", out.Action.FallbackURL)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent to classify (empty means browser)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra request header as 'Name: value', repeatable")
	return cmd
}
