// Package server exposes the login gate and the stock chart page over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/board"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/login"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Deps are the components the handlers drive.
type Deps struct {
	Gate         *login.Gate
	Board        *board.Controller
	Fetcher      collector.Fetcher // serves /api/series; defaults to the board's fetcher
	AccessLogger *zerolog.Logger
}

// Server wraps the HTTP listener.
type Server struct {
	deps Deps
	http *http.Server
}

// Options tune the listener.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a Server. It does not start listening.
func New(opts Options, deps Deps) *Server {
	if deps.Gate == nil {
		deps.Gate = login.NewGate("")
	}
	if deps.Fetcher == nil && deps.Board != nil {
		deps.Fetcher = deps.Board.Fetcher
	}
	s := &Server{deps: deps}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(LoggingConfig{AccessLogger: s.deps.AccessLogger, SkipPaths: []string{"/health"}}))
	r.Use(Recovery)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", s.loginPage)
	r.Get("/index.html", s.loginPage)
	r.Post("/login", s.submitLogin)
	r.Get(s.deps.Gate.Path(), s.portfolioPage)
	r.Get("/search", s.search)
	r.Get(s.chartPath(), s.chartImage)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.apiLogin)
		r.Get("/series/{ticker}", s.apiSeries)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, http.StatusNotFound, ErrCodeNotFound, "not found")
	})
	return r
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) chartPath() string {
	return "/chart/" + s.deps.Board.Renderer.Canvas() + ".png"
}
