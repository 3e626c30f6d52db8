// Package server serves page files over HTTP, building a fresh document for
// every request, and pushes reload notifications to connected browsers when
// page files change.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/conneroisu/pagekit/internal/config"
	"github.com/conneroisu/pagekit/internal/logging"
	"github.com/conneroisu/pagekit/internal/version"
	"github.com/conneroisu/pagekit/internal/watcher"
)

// ReloadPath is the websocket endpoint used by the live-reload script.
const ReloadPath = "/_pagekit/reload"

// PageServer serves page files with optional live reload.
type PageServer struct {
	config       *config.Config
	logger       logging.Logger
	hub          *Hub
	watcher      *watcher.FileWatcher
	httpServer   *http.Server
	serverMutex  sync.RWMutex
	shutdownOnce sync.Once
}

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a page server. The file watcher is only created when live
// reload is enabled.
func New(cfg *config.Config, logger logging.Logger) (*PageServer, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithComponent("server")

	s := &PageServer{
		config: cfg,
		logger: logger,
		hub:    NewHub(logger),
	}

	if cfg.Server.LiveReload {
		fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		s.watcher = fw
	}

	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *PageServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.config.Server.LiveReload {
		mux.HandleFunc("GET "+ReloadPath, s.handleWebSocket)
	}
	mux.HandleFunc("GET /", s.handlePage)

	return s.logRequests(mux)
}

// Start runs the hub, the watcher, and the HTTP server until ctx is done.
func (s *PageServer) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	if s.watcher != nil {
		if err := s.setupFileWatcher(ctx); err != nil {
			s.logger.Warn(ctx, err, "live reload disabled", "pages", s.config.Server.Pages)
		}
	}

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, err, "shutdown failed")
		}
	}()

	s.logger.Info(ctx, "serving pages",
		"addr", server.Addr,
		"pages", s.config.Server.Pages,
		"live_reload", s.config.Server.LiveReload)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the watcher, disconnects websocket clients, and closes
// the HTTP server. Only the first call has an effect.
func (s *PageServer) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "shutting down server")

		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Warn(ctx, err, "stopping file watcher")
			}
		}

		s.hub.CloseAll()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

func (s *PageServer) setupFileWatcher(ctx context.Context) error {
	s.watcher.AddFilter(watcher.PageFilter)
	s.watcher.AddFilter(watcher.NoHiddenFilter)
	s.watcher.AddFilter(watcher.NoGitFilter)
	s.watcher.AddHandler(s.handleFileChange)

	if err := s.watcher.AddRecursive(s.config.Server.Pages); err != nil {
		return fmt.Errorf("watching %s: %w", s.config.Server.Pages, err)
	}
	return s.watcher.Start(ctx)
}

func (s *PageServer) handleFileChange(events []watcher.ChangeEvent) error {
	for _, event := range events {
		s.logger.Info(context.Background(), "page changed",
			"path", event.Path,
			"event", event.Type.String())
		s.broadcastMessage(UpdateMessage{
			Type:      "reload",
			Target:    event.Path,
			Timestamp: time.Now(),
		})
	}
	return nil
}

func (s *PageServer) broadcastMessage(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn(context.Background(), err, "failed to marshal message")
		data = []byte(`{"type":"reload"}`)
	}
	s.hub.Broadcast(data)
}

func (s *PageServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	health := map[string]any{
		"status":      "healthy",
		"version":     version.Short(),
		"clients":     s.hub.ClientCount(),
		"live_reload": s.config.Server.LiveReload,
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warn(r.Context(), err, "writing health response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to the websocket upgrade.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *PageServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
