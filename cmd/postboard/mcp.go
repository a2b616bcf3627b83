// ABOUTME: MCP server command implementation for postboard.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/postboard/internal/mcp"
	"github.com/2389-research/postboard/internal/storage"
)

var mcpLocal bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

By default the tools operate on the service at the configured API URL.
Pass --local to serve a private seeded collection instead.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpLocal, "local", false, "Use an in-process seeded store instead of the remote API")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var store storage.PostStore
	if mcpLocal {
		store = storage.NewSeededMemoryStore()
	} else {
		store = storage.NewRemoteClient(globalConfig.Client.APIURL)
	}
	defer func() { _ = store.Close() }()

	server, err := mcppkg.NewServer(store)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
