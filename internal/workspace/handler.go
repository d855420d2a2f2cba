package workspace

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mnzmnz10/yeter-sub001/internal/auth"
	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/platform/httpx"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

// SaveObserver counts persisted quotes. Satisfied by observability.Metrics.
type SaveObserver interface {
	ObserveQuoteSaved(updated bool)
}

type Handler struct {
	logger    *slog.Logger
	manager   *Manager
	observer  SaveObserver
	validator *validator.Validate
}

// NewHandler constructs the handler. observer may be nil.
func NewHandler(logger *slog.Logger, manager *Manager, observer SaveObserver) *Handler {
	return &Handler{
		logger:    logger,
		manager:   manager,
		observer:  observer,
		validator: validator.New(),
	}
}

// workspace resolves the caller's session workspace. The auth middleware
// guarantees a session on these routes.
func (h *Handler) workspace(r *http.Request) (*Workspace, bool) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		return nil, false
	}
	return h.manager.Acquire(sess.Token), true
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	var req FilterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}

	f := catalog.Filter{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		CompanyID:  req.CompanyID,
	}
	if err := ws.SetFilter(r.Context(), f); err != nil {
		h.logger.Error("set catalog filter", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	if err := ws.LoadMore(r.Context()); err != nil {
		h.logger.Error("load next catalog page", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid item id")
		return
	}

	var req QuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := ws.SetQuantity(itemID, req.Quantity); err != nil {
		if errors.Is(err, selection.ErrUnresolvedItem) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unresolved Item", "item is not in the loaded catalog window")
			return
		}
		h.logger.Error("set selection quantity", slog.Any("error", err), slog.Int64("item_id", itemID))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) SelectVisible(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	ws.SelectAllVisible()
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	var req CategorySelectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	ws.SetCategorySelected(req.CategoryID, req.Selected)
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	ws.ClearSelection()
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	var req DraftUpdate
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := ws.UpdateDraft(req); err != nil {
		if errors.Is(err, ErrInvalidPriceMode) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "price mode must be list or discounted")
			return
		}
		h.logger.Error("update draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) LoadQuote(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	quoteID, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}

	if err := ws.LoadQuoteForEdit(r.Context(), quoteID); err != nil {
		if errors.Is(err, quote.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "quote not found")
			return
		}
		h.logger.Error("load quote for edit", slog.Any("error", err), slog.Int64("quote_id", quoteID))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ws.State())
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	saved, updated, err := ws.Save(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrEmptySelection):
			httpx.Problem(w, http.StatusUnprocessableEntity, "Empty Selection", "select at least one item before saving")
		case errors.Is(err, quote.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "the quote being edited no longer exists")
		default:
			h.logger.Error("save quote", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	if h.observer != nil {
		h.observer.ObserveQuoteSaved(updated)
	}
	h.logger.Info("workspace saved quote",
		slog.Int64("quote_id", saved.ID),
		slog.Bool("updated", updated))
	httpx.JSON(w, http.StatusOK, SaveResponse{Quote: *saved, Updated: updated, State: ws.State()})
}
