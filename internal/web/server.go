package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/five82/sheetdash/internal/dashboard"
	"github.com/five82/sheetdash/internal/logging"
)

//go:embed templates/index.html
var templateFS embed.FS

// Manual refreshes allowed per second, with a small burst for impatient clicks.
const (
	defaultRefreshRate  rate.Limit = 1
	defaultRefreshBurst            = 3
)

// Server serves the HTML rendition of the dashboard.
type Server struct {
	ctrl    *dashboard.Controller
	board   *dashboard.Board
	addr    string
	origins []string
	limiter *rate.Limiter
	log     *logrus.Entry
	page    *template.Template
}

// Config holds configuration for the web server.
type Config struct {
	Controller *dashboard.Controller
	Board      *dashboard.Board
	Addr       string

	// AllowedOrigins enables CORS on /api/rows for these origins. Empty
	// leaves the API same-origin only.
	AllowedOrigins []string

	// RefreshRate and RefreshBurst throttle POST /refresh. Zero values use
	// one per second with a burst of three.
	RefreshRate  rate.Limit
	RefreshBurst int
}

// NewServer creates a new web server instance.
func NewServer(cfg Config) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	limit, burst := cfg.RefreshRate, cfg.RefreshBurst
	if limit <= 0 {
		limit = defaultRefreshRate
	}
	if burst <= 0 {
		burst = defaultRefreshBurst
	}

	return &Server{
		ctrl:    cfg.Controller,
		board:   cfg.Board,
		addr:    cfg.Addr,
		origins: cfg.AllowedOrigins,
		limiter: rate.NewLimiter(limit, burst),
		log:     logging.NewLogger("web"),
		page:    page,
	}, nil
}

// Handler returns the router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/", s.handleIndex)
	r.Post("/refresh", s.handleRefresh)
	r.Group(func(r chi.Router) {
		if len(s.origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.origins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept"},
				MaxAge:         300,
			}))
		}
		r.Get("/api/rows", s.handleRows)
		r.Options("/api/rows", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	r.Get("/healthz", s.handleHealth)
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.serveListener(ctx, ln)
}

func (s *Server) serveListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.WithField("addr", "http://"+ln.Addr().String()).Info("web dashboard listening")

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Debug("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"elapsed":    time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := s.buildView(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, view); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		s.log.Debug("manual refresh throttled")
		w.Header().Set("Retry-After", "1")
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	q := r.FormValue("q")
	outcome := s.ctrl.Refresh(r.Context(), dashboard.TriggerManual)
	s.log.WithField("outcome", outcome.String()).Debug("manual refresh from web")

	target := "/"
	if q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type rowsResponse struct {
	Status      string     `json:"status"`
	Severity    string     `json:"severity"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	Total       int        `json:"total"`
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	view := s.buildView(r.URL.Query().Get("q"))

	resp := rowsResponse{
		Status:   view.Status.Label,
		Severity: view.Status.Severity.String(),
		Headers:  view.Table.Headers,
		Rows:     view.Table.Rows,
		Total:    view.Total,
	}
	if resp.Headers == nil {
		resp.Headers = []string{}
	}
	if resp.Rows == nil {
		resp.Rows = [][]string{}
	}
	if !view.updated.IsZero() {
		resp.LastUpdated = &view.updated
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Store().Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"generation":           snap.Generation,
		"consecutive_failures": snap.ConsecutiveFailures,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
