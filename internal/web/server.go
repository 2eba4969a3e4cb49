package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/affine-affinity/internal/storage"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	Handler        Options
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:        ":8080",
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		RequestTimeout: 15 * time.Second,
	}
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h *Handler, logger *log.Logger, requestTimeout time.Duration) chi.Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	h.RegisterRoutes(r)
	return r
}

// Server serves the HTTP API. It owns the store and closes it on shutdown.
type Server struct {
	config ServerConfig
	server *http.Server
	store  storage.Provider
	logger *log.Logger
}

// NewServer creates an HTTP server over store.
func NewServer(cfg ServerConfig, store storage.Provider, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "affinity-web",
		})
	}
	def := DefaultServerConfig()
	if cfg.Address == "" {
		cfg.Address = def.Address
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	handler := NewHandler(store, logger, cfg.Handler)
	return &Server{
		config: cfg,
		store:  store,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewRouter(handler, logger, cfg.RequestTimeout),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe serves until SIGINT/SIGTERM or until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("web: %w", err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			s.logger.Error("server error", "error", err)
			return errors.Join(err, s.store.Close())
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	return errors.Join(err, s.store.Close())
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

func requestID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}
