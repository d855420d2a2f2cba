package quote

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/httpx"
)

// PDFRenderer turns a persisted quote into a downloadable document.
type PDFRenderer interface {
	Render(q Quote) ([]byte, error)
}

// ShareLinker builds a share link for a persisted quote.
type ShareLinker interface {
	Link(q Quote) string
}

type Handler struct {
	logger  *slog.Logger
	service *Service
	pdf     PDFRenderer
	share   ShareLinker
}

func NewHandler(logger *slog.Logger, service *Service, pdf PDFRenderer, share ShareLinker) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf, share: share}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	quotes, total, err := h.service.List(r.Context(), ListRequest{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("list quotes", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if quotes == nil {
		quotes = []Summary{}
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Quotes: quotes, Total: total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetch(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "quote not found")
			return
		}
		h.logger.Error("delete quote", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportPDF renders the persisted record, so the document always reflects
// the last saved totals rather than the live draft.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetch(w, r)
	if !ok {
		return
	}

	doc, err := h.pdf.Render(*q)
	if err != nil {
		h.logger.Error("render quote pdf", slog.Any("error", err), slog.Int64("id", q.ID))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="teklif-%d.pdf"`, q.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) ShareLink(w http.ResponseWriter, r *http.Request) {
	q, ok := h.fetch(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, ShareResponse{URL: h.share.Link(*q)})
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) (*Quote, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return nil, false
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "quote not found")
			return nil, false
		}
		h.logger.Error("get quote", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return nil, false
	}
	return q, true
}
