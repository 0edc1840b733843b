// Package web provides the browser mirror of the map: a Leaflet page, a REST
// API that drives the shared session and an SSE stream of its effects.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"indiamap/internal/app"
	"indiamap/internal/metrics"
)

//go:embed static
var staticFiles embed.FS

// Server is the web mirror HTTP server.
type Server struct {
	a    *app.App
	srv  *http.Server
	port int
	hub  *sseHub

	stopOnce sync.Once
}

// New creates a Server bound to a. Session events are forwarded to SSE
// clients from the moment New returns.
func New(a *app.App) *Server {
	s := &Server{a: a, hub: newSSEHub()}
	a.Session().Subscribe(s.publish)
	return s
}

// Port returns the port the server is listening on (0 if not started).
func (s *Server) Port() int { return s.port }

// URL returns the base URL (e.g., "http://localhost:8742").
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Start binds to the first free port at or above the configured one, serves
// in a background goroutine and optionally opens the browser. Returns the URL.
func (s *Server) Start(ctx context.Context) (string, error) {
	cfg := s.a.Config().Web
	ln, err := freePort(cfg.Port)
	if err != nil {
		return "", fmt.Errorf("web: start: find port: %w", err)
	}
	s.port = ln.Addr().(*net.TCPAddr).Port

	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: SSE connections stay open.
	}

	log := s.a.Logs().System
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("web: serve: %v", err)
		}
	}()
	go s.hub.run()

	url := s.URL()
	log.Info("web mirror listening on %s", url)
	if cfg.OpenBrowser {
		openBrowser(ctx, url)
	}
	return url, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	// Open SSE streams can outlive ctx; the hub stops either way.
	s.stopOnce.Do(func() { close(s.hub.quit) })
	if err != nil {
		return fmt.Errorf("web: stop: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("web: embed static: %v", err))
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	// SSE
	mux.HandleFunc("GET /events", s.handleSSE)

	// Dataset
	mux.HandleFunc("GET /api/status", s.handleGetStatus)
	mux.HandleFunc("GET /api/dataset", s.handleGetDataset)
	mux.HandleFunc("GET /api/features", s.handleListFeatures)
	mux.HandleFunc("GET /api/features/{id}", s.handleGetFeature)

	// Pointer events and theme
	mux.HandleFunc("POST /api/features/{id}/{event}", s.handlePointer)
	mux.HandleFunc("POST /api/theme/toggle", s.handleToggleTheme)

	mux.Handle("GET /metrics", metrics.Handler())
}

// freePort finds the first available TCP port starting from start and returns
// the bound listener. The caller is responsible for using or closing it.
// A start of 0 lets the kernel choose.
func freePort(start int) (net.Listener, error) {
	if start == 0 {
		return net.Listen("tcp", "127.0.0.1:0")
	}
	for p := start; p < start+100 && p <= 65535; p++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", p))
		if err == nil {
			return ln, nil
		}
	}
	return nil, fmt.Errorf("web: freePort: no free port found in range %d-%d", start, start+100)
}

// openBrowser opens the given URL in the system default browser.
func openBrowser(ctx context.Context, url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	go func() { _ = cmd.Run() }()
}
