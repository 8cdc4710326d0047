package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nutrition-calculator/internal/config"
	"nutrition-calculator/internal/handler"
	"nutrition-calculator/internal/middleware"
)

// newRouter wires the routes and middleware. limiter may be nil.
func newRouter(cfg *config.Config, log *zap.Logger, h *handler.Handler, docs http.Handler, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(chimiddleware.GetHead)

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Get("/", h.Calculate)
		r.Method(http.MethodGet, "/docs", docs)
	})

	return r
}
