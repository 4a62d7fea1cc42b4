package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
)

// Server runs one named HTTP listener between Start and Stop.
type Server struct {
	name       string
	config     Config
	logger     *slog.Logger
	server     *http.Server
	onServeErr func()

	mu       sync.Mutex
	listener net.Listener
}

// NewServer fills the config defaults, validates it and prepares the http.Server.
// A nil logger falls back to slog.Default. The onServeErr callback, if non-nil,
// runs when serving stops with anything other than a graceful shutdown.
func NewServer(name string, handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		name:   name,
		config: cfg,
		logger: logger.With(slog.String("listener", name)),
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return s.config.Address
	}

	return s.listener.Addr().String()
}

// Start binds the TCP address and serves requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("failed to listen", slog.String("address", s.server.Addr), slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("serving metrics",
		slog.String("address", listener.Addr().String()),
		slog.String("path", s.config.MetricsPath))

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("metrics listener error", slog.Any("error", serveErr))

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping metrics listener")

	err := s.server.Shutdown(ctx)
	if err != nil {
		s.logger.Error("shutdown failed", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
