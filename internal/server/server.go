// Package server serves the drill over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/palabra/internal/assets"
	"github.com/at-ishikawa/palabra/internal/config"
	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/lesson"
	"github.com/at-ishikawa/palabra/internal/metrics"
)

// LessonLister lists the selectable lessons.
type LessonLister interface {
	List() ([]lesson.Lesson, error)
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie() Option {
	return func(s *Server) {
		s.secureCookie = true
	}
}

type Server struct {
	cfg          config.ServerConfig
	service      *drill.Service
	lessons      LessonLister
	sessions     drill.Store
	page         *assets.IndexTemplate
	validate     *validator.Validate
	metrics      *metrics.Metrics
	logger       *slog.Logger
	secureCookie bool
}

func New(
	cfg config.ServerConfig,
	service *drill.Service,
	lessons LessonLister,
	sessions drill.Store,
	page *assets.IndexTemplate,
	opts ...Option,
) *Server {
	s := &Server{
		cfg:      cfg,
		service:  service,
		lessons:  lessons,
		sessions: sessions,
		page:     page,
		validate: validator.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	return s
}

// Handler returns the router with every route and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware(routePattern))
	}
	r.Use(s.cors)

	r.Get("/healthz", s.healthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.index)
		r.Post("/check", s.check)
		r.Post("/get_answer", s.getAnswer)
		r.Post("/new_word", s.newWord)
		r.Post("/help", s.help)
		r.Get("/lessons", s.listLessons)
		r.Post("/lessons/select", s.selectLesson)
		r.Get("/stats", s.stats)
	})
	return r
}

// HTTPServer returns a server for the configured port that also accepts
// HTTP/2 without TLS.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(s.cfg.CORS.AllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routePattern labels metrics by route so unknown paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
