// Package gateway exposes the router over HTTP/JSON.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/katalvlaran/wayfinder/internal/logging"
	"github.com/katalvlaran/wayfinder/router"
	"github.com/katalvlaran/wayfinder/weather"
)

// RequestIDHeader carries the request ID in and out of the service.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20

// WeatherSource yields the current weather snapshot. *weather.Fetcher
// satisfies it.
type WeatherSource interface {
	Fetch(ctx context.Context) (*weather.Info, error)
}

// FallbackRecorder counts weather requests downgraded to balanced.
type FallbackRecorder interface {
	WeatherFallback()
}

// Config wires the optional collaborators of a Server.
type Config struct {
	Weather     WeatherSource    // nil forces every weather request to fall back
	Fallbacks   FallbackRecorder // optional
	Metrics     http.Handler     // served at /metrics when set
	Logger      logging.Logger
	CORSOrigins []string
}

// Server is the HTTP front of a Router.
type Server struct {
	router    *router.Router
	weather   WeatherSource
	fallbacks FallbackRecorder
	log       logging.Logger
	handler   http.Handler
}

// New builds the handler tree for r.
func New(r *router.Router, cfg Config) *Server {
	s := &Server{
		router:    r,
		weather:   cfg.Weather,
		fallbacks: cfg.Fallbacks,
		log:       cfg.Logger,
	}
	if s.log == nil {
		s.log = logging.Noop()
	}

	m := mux.NewRouter()
	m.Use(s.requestContext)
	m.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	m.HandleFunc("/api/v1/route", s.route).Methods(http.MethodPost)
	if cfg.Metrics != nil {
		m.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Kind: "not_found"})
	})
	m.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Kind: "method_not_allowed"})
	})

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         600,
	}).Handler(m)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// requestContext attaches a request ID and a request-scoped logger, and
// recovers from handler panics.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(RequestIDHeader); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, id := logging.EnsureRequestID(ctx)
		ctx = logging.ContextWithLogger(ctx, s.log)
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				s.log.Error(ctx, "handler panic",
					logging.Any("panic", p),
					logging.String("path", r.URL.Path),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: router.OutcomeInternal})
			}
			s.log.Debug(ctx, "http request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Duration("elapsed", time.Since(start)),
			)
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	g := s.router.Graph()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  g.Len(),
		"edges":  g.EdgeCount(),
	})
}
