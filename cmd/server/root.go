package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gliblio/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "gliblio",
		Short:         "Resolve gliblio.com profile links into app deep links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default: ./config/config.yaml or ./config.yaml when present)")

	load := func() (*config.Config, error) {
		return config.Load(viper.New(), configFile)
	}
	serve := newServeCmd(load)
	root.AddCommand(serve, newResolveCmd(load))
	// Running the binary bare serves, matching the container entrypoint.
	root.RunE = serve.RunE
	return root
}
