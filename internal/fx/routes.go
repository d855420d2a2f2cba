package fx

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/fx/rates", h.Rates)
	r.Post("/fx/refresh", h.Refresh)
}
