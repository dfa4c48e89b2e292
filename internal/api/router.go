// Package api exposes the risk service over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"risk_service/internal/logger"
	"risk_service/internal/metrics"
)

// NewRouter builds the full HTTP surface for the service.
func NewRouter(h *Handler, l *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.AccessMiddleware(l))

	r.Route("/api", func(r chi.Router) {
		r.Post("/selection", h.handleCreateSelection)
		r.Get("/selection", h.handleGetSelection)
		r.Delete("/selection", h.handleDeleteSelection)
		r.Get("/predictions/nearby", h.handleNearby)
		r.Get("/history", h.handleHistory)
		r.Get("/ws", h.handleWebsocket)
	})

	r.Get("/healthz", h.handleHealthz)
	r.Handle("/metrics", metrics.Handler())

	return r
}
