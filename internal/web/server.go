// Package web serves a local JSON API over the profile and settings stores,
// the clone wizard and the suggestion provider.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

const maxBodyBytes = 1 << 20

// Config holds the web server configuration
type Config struct {
	Port        int
	Host        string
	OpenBrowser bool
}

// DefaultConfig returns the default web server configuration
func DefaultConfig() Config {
	return Config{
		Port: 8790,
		Host: "127.0.0.1",
	}
}

// Deps are the services the API exposes.
type Deps struct {
	Store    store.Store
	Profiles *service.ProfileStore
	Settings *service.SettingsStore
	Provider suggest.Provider
	Metrics  *monitor.Metrics
	Logger   *slog.Logger

	// Now is the clock used for new profiles; defaults to time.Now
	Now func() time.Time
}

// Server represents the web server
type Server struct {
	httpServer *http.Server
	deps       Deps
	config     Config
	logger     *slog.Logger
	handler    http.Handler
}

// New creates a new web server
func New(config Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Profiles == nil || deps.Settings == nil {
		return nil, errors.New("web server needs a store, profiles and settings")
	}

	if deps.Provider == nil {
		deps.Provider = suggest.NewFallback(nil)
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Server{
		deps:   deps,
		config: config,
		logger: deps.Logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)
	s.handler = s.loggingMiddleware(mux)

	return s, nil
}

// Handler returns the routed handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Suggestions can take as long as the AI timeout.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	url := fmt.Sprintf("http://%s", listener.Addr())

	if s.config.OpenBrowser {
		go func() {
			time.Sleep(100 * time.Millisecond)

			if err := openBrowser(url); err != nil {
				s.logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}()
	}

	s.logger.Info("web server starting", "url", url)

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
}

// Shutdown gracefully shuts down the web server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down web server")

	return s.httpServer.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests and records request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}

		elapsed := time.Since(start)
		s.deps.Metrics.Request(r.Method, pattern, rec.status, elapsed)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// openBrowser opens the default browser to the given URL
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
