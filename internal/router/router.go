package router

import (
	"net/http"

	"order-dashboard/internal/handler"
	"order-dashboard/internal/metrics"
	"order-dashboard/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// metrics may be nil, in which case /metrics is not served.
func New(
	dashboardHandler *handler.DashboardHandler,
	settingsHandler *handler.SettingsHandler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> Recovery -> Logging -> CORS -> Metrics
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/orders", dashboardHandler.Orders)
		r.Put("/search", dashboardHandler.Search)
		r.Put("/page", dashboardHandler.Page)
		r.Post("/refresh", dashboardHandler.Refresh)
		r.Post("/sync", dashboardHandler.Sync)
		r.Get("/export", dashboardHandler.DownloadExport)
		r.Post("/export", dashboardHandler.SaveExport)
		r.Get("/stats", dashboardHandler.Stats)

		r.Get("/detail", dashboardHandler.Detail)
		r.Delete("/detail", dashboardHandler.CloseDetail)
		r.Put("/detail/{orderID}", dashboardHandler.SelectOrder)

		r.Get("/notification", dashboardHandler.Notification)
		r.Delete("/notification", dashboardHandler.DismissNotification)
	})

	r.Get("/api/settings", settingsHandler.Get)
	r.Patch("/api/settings", settingsHandler.Update)

	return r
}
