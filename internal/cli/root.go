// Package cli wires the catalog viewer commands.
package cli

import (
	"fmt"

	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
	apiURL     string
}

// load reads the configuration and applies the persistent flag overrides
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.configFile != "" {
		if err := cfg.Overlay(o.configFile); err != nil {
			return nil, err
		}
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.apiURL != "" {
		cfg.Upstream.BaseURL = o.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRootCmd creates the root command. Without a subcommand it serves the web UI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Product catalog viewer",
		Long:  "Browse, filter and paginate a product catalog fetched from a public REST API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (overrides CONFIG_FILE)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Product API base URL (overrides PRODUCTS_API_URL)")

	root.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
	)

	return root
}
