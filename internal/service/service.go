package service

import (
	"context"

	"order-dashboard/internal/model"
)

// OrdersAPI is the remote orders backend.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.OrderDetail, error)
	SyncOrders(ctx context.Context) error
	GetStats(ctx context.Context) (*model.Stats, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(message string)
	Error(fallback string, err error)
}

// Recorder receives dashboard metrics.
type Recorder interface {
	SetOrdersLoaded(n int)
	ObserveExport(destination string, err error)
}

// DashboardService holds the orders dashboard session.
type DashboardService interface {
	// Refresh re-fetches the full order collection and resets the page.
	Refresh(ctx context.Context) error

	// Sync asks the backend to pull new orders, then schedules a refresh.
	Sync(ctx context.Context) error

	// SetSearch changes the search term and resets the page to 1.
	SetSearch(term string)

	// SetPage selects a 1-based page of the filtered orders.
	SetPage(page int) error

	// View returns the current page of the orders table.
	View() model.DashboardView

	// ExportCSV renders the filtered orders as CSV for download.
	ExportCSV() model.CSVExport

	// SaveExport renders the filtered orders and writes them through the saver.
	SaveExport(ctx context.Context) (*model.ExportResult, error)

	// SelectOrder opens the detail view and starts loading the order.
	SelectOrder(ctx context.Context, orderID string) error

	// CloseDetail closes the detail view.
	CloseDetail()

	// Detail returns the detail view state.
	Detail() model.DetailView

	// Stats fetches the aggregate statistics.
	Stats(ctx context.Context) (*model.Stats, error)

	// Close stops pending refreshes and waits for background work.
	Close()
}

// SettingsService manages the persisted user preferences.
type SettingsService interface {
	// Load reads the stored preferences. Missing values fall back to defaults.
	Load(ctx context.Context) (model.Preferences, error)

	// Current returns the preferences in effect.
	Current() model.Preferences

	// Update applies a partial change and persists it.
	Update(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error)
}
