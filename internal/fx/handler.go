package fx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/httpx"
)

// RefreshObserver counts refresh attempts. Satisfied by observability.Metrics.
type RefreshObserver interface {
	ObserveFxRefresh(err error)
}

// Handler exposes the current rate table and accepts forced refreshes.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	observer RefreshObserver
}

// NewHandler constructs the handler. observer may be nil.
func NewHandler(logger *slog.Logger, service *Service, observer RefreshObserver) *Handler {
	return &Handler{logger: logger, service: service, observer: observer}
}

// TableResponse is the wire shape of a rate table.
type TableResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
	Version   uint64             `json:"version"`
}

func tableResponse(t Table, version uint64) TableResponse {
	return TableResponse{
		Base:      t.Base(),
		Rates:     t.Rates(),
		FetchedAt: t.FetchedAt(),
		Version:   version,
	}
}

// Rates returns the rate table currently in use.
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	table, version := h.service.Store().Current()
	httpx.JSON(w, http.StatusOK, tableResponse(table, version))
}

// Refresh fetches a fresh table from the provider and installs it.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Refresh(r.Context())
	if h.observer != nil {
		h.observer.ObserveFxRefresh(err)
	}
	if err != nil {
		h.logger.Error("forced rate refresh failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Refresh Failed", "rate provider unavailable")
		return
	}
	httpx.JSON(w, http.StatusOK, tableResponse(table, h.service.Store().Version()))
}
