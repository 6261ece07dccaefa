// Package server exposes a compiled manifest bundle over HTTP.
//
// Routes:
//
//	GET /styles.css          compiled stylesheet
//	GET /classes             class name of every declaration
//	GET /breakpoints         breakpoint table
//	GET /resolve?width=N     breakpoint and resolved values at a width
//	GET /healthz             liveness
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/manifest"
	"github.com/xui-kit/xui/pkg/style"
)

const shutdownTimeout = 5 * time.Second

// Server serves one bundle at a time. The bundle can be swapped while
// serving with [Server.Reload].
type Server struct {
	logger *log.Logger
	router chi.Router

	mu     sync.RWMutex
	bundle *manifest.Bundle
	etag   string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for bundle.
func New(bundle *manifest.Bundle, opts ...Option) *Server {
	s := &Server{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload(bundle)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/styles.css", s.handleStyles)
	r.Get("/classes", s.handleClasses)
	r.Get("/breakpoints", s.handleBreakpoints)
	r.Get("/resolve", s.handleResolve)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})

	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Reload replaces the served bundle.
func (s *Server) Reload(bundle *manifest.Bundle) {
	if bundle == nil {
		bundle = &manifest.Bundle{Table: breakpoint.Default(), Sheet: style.NewStylesheet()}
	}
	etag := `"` + style.Hash([]byte(bundle.CSS()))[:16] + `"`

	s.mu.Lock()
	s.bundle, s.etag = bundle, etag
	s.mu.Unlock()
	s.logger.Debug("bundle loaded", "rules", bundle.Sheet.Len(), "etag", etag)
}

func (s *Server) current() (*manifest.Bundle, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle, s.etag
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	bundle, etag := s.current()

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = bundle.Sheet.WriteTo(w)
}

type classResponse struct {
	Name     string `json:"name"`
	Property string `json:"property"`
	Class    string `json:"class"`
}

func (s *Server) handleClasses(w http.ResponseWriter, _ *http.Request) {
	bundle, _ := s.current()
	out := make([]classResponse, 0, len(bundle.Applied))
	for _, a := range bundle.Applied {
		out = append(out, classResponse{Name: a.Name, Property: a.Property, Class: a.Class})
	}
	writeJSON(w, http.StatusOK, out)
}

type breakpointResponse struct {
	Name     breakpoint.Name `json:"name"`
	MinWidth int             `json:"min_width"`
}

func (s *Server) handleBreakpoints(w http.ResponseWriter, _ *http.Request) {
	bundle, _ := s.current()
	points := bundle.Table.Points()
	out := make([]breakpointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, breakpointResponse{Name: p.Name, MinWidth: p.MinWidth})
	}
	writeJSON(w, http.StatusOK, out)
}

type resolveResponse struct {
	Width      int                 `json:"width"`
	Breakpoint breakpoint.Name     `json:"breakpoint"`
	Styles     []manifest.Resolved `json:"styles"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil || width < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "width must be a non-negative integer"})
		return
	}

	bundle, _ := s.current()
	styles := bundle.ResolveAt(width)
	if styles == nil {
		styles = []manifest.Resolved{}
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		Width:      width,
		Breakpoint: bundle.Table.Current(width),
		Styles:     styles,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// requestLogger logs one line per request at info level.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
