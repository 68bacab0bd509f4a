package handler

import (
	"github.com/go-chi/chi/v5"
)

// RegisterScheduleRoutes registers the monthly-schedule HTTP surface
// (SPEC_FULL.md §6.1).
func RegisterScheduleRoutes(r chi.Router, h *ScheduleHandler) {
	r.Route("/schedules", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/generate", h.Generate)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/publish", h.Publish)
		r.Get("/{id}/export.xlsx", h.ExportXLSX)
		r.Get("/{id}/export.pdf", h.ExportPDF)
	})
}
