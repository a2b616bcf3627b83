// ABOUTME: HTTP serve command for postboard.
// ABOUTME: Runs the JSON API over a seeded in-memory store until interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/api"
	"github.com/2389-research/postboard/internal/metric"
	"github.com/2389-research/postboard/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the postboard HTTP API.

The collection lives in memory and starts with two seed posts.
Every restart discards changes.`,
	RunE: runServe,
}

var (
	serveHost      string
	servePort      int
	serveNoMetrics bool
	serveDebug     bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to bind (default from config)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "Disable the /metrics endpoint")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var metrics *metric.Metrics
	if cfg.MetricsEnabled() && !serveNoMetrics {
		metrics = metric.New()
	}

	store := storage.NewSeededMemoryStore()
	defer func() { _ = store.Close() }()

	server := api.NewServer(store, api.ServerOptions{
		Addr:            cfg.Addr(),
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownSecs) * time.Second,
		Logger:          logger,
		Metrics:         metrics,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Debug("serve: ready", "posts", store.Len(), "metrics", metrics != nil)

	<-ctx.Done()
	logger.Info("shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSecs+1)*time.Second)
	defer stopCancel()
	return server.Stop(stopCtx)
}
