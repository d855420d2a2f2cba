package workspace

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/workspace", h.State)
	r.Put("/workspace/filter", h.SetFilter)
	r.Post("/workspace/catalog/load-more", h.LoadMore)
	r.Put("/workspace/selection/{itemID}", h.SetQuantity)
	r.Post("/workspace/selection/visible", h.SelectVisible)
	r.Post("/workspace/selection/category", h.SelectCategory)
	r.Delete("/workspace/selection", h.ClearSelection)
	r.Put("/workspace/draft", h.UpdateDraft)
	r.Post("/workspace/quotes/{quoteID}/edit", h.LoadQuote)
	r.Post("/workspace/save", h.Save)
}
