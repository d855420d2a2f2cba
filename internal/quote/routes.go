package quote

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes", h.List)
	r.Get("/quotes/{id}", h.Show)
	r.Delete("/quotes/{id}", h.Delete)
	r.Get("/quotes/{id}/pdf", h.ExportPDF)
	r.Get("/quotes/{id}/share", h.ShareLink)
}
