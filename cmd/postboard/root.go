// ABOUTME: Root Cobra command and global flags for the postboard CLI.
// ABOUTME: Loads config before each command and applies the --api-url override.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
)

var globalConfig *config.Config

var flagAPIURL string

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Tiny posts service with a JSON API",
	Long: `
postboard serves an in-memory collection of posts over HTTP.

Run "postboard serve" to start the API on port 5002, then use the
posts subcommands or the MCP server to work with it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagAPIURL != "" {
			cfg.Client.APIURL = flagAPIURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		globalConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Base URL of a running postboard service (overrides config)")
}
