package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options — параметры сборки роутера.
type Options struct {
	Logger *slog.Logger
	// Timeout ограничивает обработку одного запроса; 0 — без ограничения.
	Timeout time.Duration
	// Metrics отдается на /metrics, если задан.
	Metrics http.Handler
}

// NewServer собирает chi-роутер с middleware и маршрутами API.
func NewServer(h *Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		corsMiddleware(),
		requestIDMiddleware(),
		loggingMiddleware(opts.Logger),
		recoverMiddleware(opts.Logger),
	)
	if opts.Timeout > 0 {
		r.Use(middleware.Timeout(opts.Timeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		r.Get("/date", h.getDate)
		r.Put("/date", h.setDate)

		r.Get("/sources", h.allSources)
		r.Get("/sources/top", h.topSources)
		r.Get("/sources/{source}/news", h.newsFromSource)

		r.Get("/topics", h.allTopics)
		r.Get("/topics/top", h.topTopics)
		r.Get("/topics/{topic}/news", h.newsWithTopic)

		r.Get("/news/search", h.searchNews)
		r.Get("/news/author", h.newsByAuthor)
		r.Get("/news/latest", h.latestNews)
		r.Get("/news/range", h.newsInDateRange)
		r.Get("/news/categories", h.newsWithCategories)
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	return r
}
