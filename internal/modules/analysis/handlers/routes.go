package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analysis", h.HandleAnalyze)
	r.Post("/scores", h.HandleScores)
	r.Post("/tour", h.HandleTour)
}
