package catalog

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/catalog/items", h.List)
	r.Get("/catalog/items/{id}", h.Show)
	r.Post("/catalog/companies/{companyID}/import", h.Import)
	r.Delete("/catalog/companies/{companyID}/items", h.Purge)
}
