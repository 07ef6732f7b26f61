package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all risk report routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Route("/report", func(r chi.Router) {
			r.Get("/", h.HandleGetReport)
			r.Post("/run", h.HandleRunReport)
			r.Post("/export", h.HandleExportReport)
		})

		r.Get("/securities/{symbol}", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetSecurity(w, r, chi.URLParam(r, "symbol"))
		})

		r.Get("/rankings/{metric}", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetRanking(w, r, chi.URLParam(r, "metric"))
		})
	})
}
