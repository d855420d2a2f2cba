package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mnzmnz10/yeter-sub001/internal/auth"
	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/categories"
	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/companies"
	"github.com/mnzmnz10/yeter-sub001/internal/observability"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
	"github.com/mnzmnz10/yeter-sub001/internal/workspace"
	"github.com/mnzmnz10/yeter-sub001/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthService       *auth.Service
	AuthHandler       *auth.Handler
	WorkspaceHandler  *workspace.Handler
	CatalogHandler    *catalog.Handler
	QuoteHandler      *quote.Handler
	FxHandler         *fx.Handler
	CompaniesHandler  *companies.Handler
	CategoriesHandler *categories.Handler
	JobsHandler       *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything under /api except the login
// endpoint requires a live operator session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(params.AuthService.RequireSession(params.Logger))

			params.AuthHandler.MountProtectedRoutes(protected)
			params.WorkspaceHandler.MountRoutes(protected)
			params.CatalogHandler.MountRoutes(protected)
			params.QuoteHandler.MountRoutes(protected)
			params.FxHandler.MountRoutes(protected)
			params.CompaniesHandler.MountRoutes(protected)
			params.CategoriesHandler.MountRoutes(protected)
			if params.JobsHandler != nil {
				params.JobsHandler.MountRoutes(protected)
			}
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
