package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
)

// RouteRegistrar mounts a handler's routes under /api/v1
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// ReadyCheck reports whether a dependency is usable
type ReadyCheck func(ctx context.Context) error

// RouterConfig holds HTTP router configuration
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the service router: middleware, probes, metrics and the
// API routes of every handler.
func NewRouter(
	config RouterConfig,
	m *metrics.Metrics,
	ready map[string]ReadyCheck,
	logger zerolog.Logger,
	handlers ...RouteRegistrar,
) http.Handler {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"*"}
	}
	res := responder{logger: logger.With().Str("component", "http_router").Logger()}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(instrument(m))
	r.Use(chimiddleware.Timeout(config.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health and monitoring endpoints
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		res.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for name, check := range ready {
			if err := check(ctx); err != nil {
				res.logger.Warn().Err(err).Str("dependency", name).Msg("not ready")
				res.errorResponse(w, http.StatusServiceUnavailable, name+" unavailable")
				return
			}
		}
		res.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		for _, h := range handlers {
			h.RegisterRoutes(r)
		}
	})

	return r
}

// instrument records request counts and latency by route pattern
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
