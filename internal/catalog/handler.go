package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	q := Query{
		Search:   r.URL.Query().Get("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.CategoryID = &id
		}
	}
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.CompanyID = &id
		}
	}

	res, err := h.service.Query(r.Context(), q)
	if err != nil {
		h.logger.Error("list catalog items", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid item id")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "item not found")
			return
		}
		h.logger.Error("get catalog item", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid company id")
		return
	}

	var req ImportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	items := make([]Item, 0, len(req.Items))
	for _, row := range req.Items {
		items = append(items, row.toItem())
	}

	n, err := h.service.ImportCompanyList(r.Context(), companyID, items)
	if err != nil {
		h.logger.Error("import company price list",
			slog.Any("error", err),
			slog.Int64("company_id", companyID))
		httpx.Problem(w, http.StatusUnprocessableEntity, "Import Failed", err.Error())
		return
	}

	h.logger.Info("company price list imported",
		slog.Int64("company_id", companyID),
		slog.Int("rows", n))
	httpx.JSON(w, http.StatusOK, ImportResponse{Imported: n})
}

func (h *Handler) Purge(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid company id")
		return
	}

	if err := h.service.PurgeCompany(r.Context(), companyID); err != nil {
		h.logger.Error("purge company items",
			slog.Any("error", err),
			slog.Int64("company_id", companyID))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
