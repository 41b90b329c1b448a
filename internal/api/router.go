package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rigfit/rigfit/internal/config"
	"github.com/rigfit/rigfit/internal/events"
	"github.com/rigfit/rigfit/internal/store"
)

func NewRouter(s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	catalogs := NewCatalogsHandler(s, ev)
	analyze := NewAnalyzeHandler(s, ev, cfg, logger)
	explain := NewExplainHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/catalogs", catalogs.Create)
		r.Get("/catalogs", catalogs.List)
		r.Get("/catalogs/{id}", catalogs.Get)
		r.Put("/catalogs/{id}/candidates", catalogs.ReplaceCandidates)
		r.Post("/catalogs/{id}/import", catalogs.ImportCSV)
		r.Get("/catalogs/{id}/export", catalogs.ExportCSV)

		r.Post("/catalogs/{id}/analyze", analyze.Analyze)
		r.Post("/catalogs/{id}/rank", analyze.Rank)
		r.Get("/catalogs/{id}/explain", explain.Explain)

		r.Get("/presets", Presets)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Delete("/catalogs/{id}", catalogs.Delete)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
