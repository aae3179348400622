package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kraitsura/nomofobia/pkg/model"
)

const shutdownTimeout = 5 * time.Second

// PreviewServer renders the guide on every request so that content reloads
// show up without rebuilding a bundle.
type PreviewServer struct {
	addr     string
	renderer *Renderer
	logger   *log.Logger
	router   chi.Router

	mu      sync.RWMutex
	guide   *model.Guide
	reloads int
	bound   string
	started time.Time
}

// NewPreviewServer creates a server for g listening on addr.
func NewPreviewServer(addr string, g *model.Guide, logger *log.Logger) (*PreviewServer, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &PreviewServer{
		addr:     addr,
		renderer: r,
		logger:   logger,
		guide:    g,
	}
	p.router = p.buildRouter()
	return p, nil
}

func (p *PreviewServer) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(p.requestLogger)
	r.Use(noCacheMiddleware)

	r.Get("/", p.pageHandler(model.DefaultVariant))
	r.Get("/"+IndexFile, p.pageHandler(model.DefaultVariant))
	r.Get("/v/{variant}", p.variantHandler)
	r.Get("/{variant}.html", p.variantHandler)
	r.Get("/__preview__/status", p.statusHandler)
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (p *PreviewServer) Handler() http.Handler {
	return p.router
}

// SetGuide swaps the guide served by later requests.
func (p *PreviewServer) SetGuide(g *model.Guide) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.guide = g
	p.reloads++
}

func (p *PreviewServer) current() (*model.Guide, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.guide, p.reloads
}

// Addr returns the bound address once Run is listening, else the
// configured one.
func (p *PreviewServer) Addr() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.bound != "" {
		return p.bound
	}
	return p.addr
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	return "http://" + p.Addr()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (p *PreviewServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", p.addr, err)
	}
	p.mu.Lock()
	p.bound = ln.Addr().String()
	p.started = time.Now()
	p.mu.Unlock()

	srv := &http.Server{
		Handler:           p.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	p.logger.Info("preview server running", "url", p.URL())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		p.logger.Info("shutting down preview server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down preview server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (p *PreviewServer) variantHandler(w http.ResponseWriter, r *http.Request) {
	v, err := model.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	p.pageHandler(v)(w, r)
}

func (p *PreviewServer) pageHandler(v model.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, _ := p.current()
		var buf bytes.Buffer
		if err := p.renderer.Render(&buf, g, v.Profile()); err != nil {
			p.logger.Error("render failed", "variant", v, "err", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// previewStatus is the body of /__preview__/status.
type previewStatus struct {
	Status   string          `json:"status"`
	Addr     string          `json:"addr"`
	Brand    string          `json:"brand"`
	Sections []string        `json:"sections"`
	Variants []model.Variant `json:"variants"`
	Reloads  int             `json:"reloads"`
	Uptime   string          `json:"uptime,omitempty"`
}

// statusHandler returns the preview server status as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	g, reloads := p.current()
	st := previewStatus{
		Status:   "running",
		Addr:     p.Addr(),
		Brand:    g.Brand.Name,
		Sections: g.SectionIDs(),
		Variants: model.Variants(),
		Reloads:  reloads,
	}
	p.mu.RLock()
	if !p.started.IsZero() {
		st.Uptime = time.Since(p.started).Round(time.Second).String()
	}
	p.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		p.logger.Warn("encoding status", "err", err)
	}
}

// requestLogger logs each request at debug level.
func (p *PreviewServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		p.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "dur", time.Since(start).Round(time.Microsecond))
	})
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
