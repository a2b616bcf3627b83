// ABOUTME: HTTP server hosting the postboard JSON API.
// ABOUTME: Owns lifecycle (listen, graceful stop), routing, and middleware wiring.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/2389-research/postboard/internal/metric"
	"github.com/2389-research/postboard/internal/storage"
)

// DefaultAddress binds every interface on the service's fixed port.
const DefaultAddress = "0.0.0.0:5002"

// ServerOptions configures the HTTP server. Zero values take defaults.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger
	Metrics           *metric.Metrics // nil disables /metrics
}

// Server serves the post API over a PostStore.
type Server struct {
	http    *http.Server
	store   storage.PostStore
	logger  *slog.Logger
	metrics *metric.Metrics
	opts    ServerOptions

	mu       sync.Mutex
	listener net.Listener
}

// NewServer constructs a server bound to store.
// It does not listen until Start is called.
func NewServer(store storage.PostStore, opts ServerOptions) *Server {
	if store == nil {
		panic("api.NewServer: store is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		store:   store,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		opts:    opts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/posts", s.handleCreatePost)
	mux.HandleFunc("GET /api/posts/search", s.handleSearchPosts)
	mux.HandleFunc("PUT /api/posts/{id}", s.handleUpdatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", s.handleDeletePost)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           withRequestID(withAccessLog(withCORS(mux), s.logger, s.metrics)),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext: func(l net.Listener) context.Context {
			return context.Background()
		},
	}

	s.refreshPostsGauge()
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start binds the listen address and serves in a background goroutine.
// Bind errors are returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		s.logger.Info("api: listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api: serve error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}

// refreshPostsGauge updates the collection-size gauge after writes.
func (s *Server) refreshPostsGauge() {
	if s.metrics == nil {
		return
	}
	posts, err := s.store.ListPosts(storage.ListPostsOptions{})
	if err != nil {
		s.logger.Warn("api: failed to count posts", "error", err)
		return
	}
	s.metrics.SetPosts(len(posts))
}
