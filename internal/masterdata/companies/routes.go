package companies

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/companies", h.List)
	r.Get("/companies/{id}", h.Show)
	r.Post("/companies", h.Create)
	r.Put("/companies/{id}", h.Update)
	r.Delete("/companies/{id}", h.Delete)
}
