package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"order-dashboard/internal/detail"
	"order-dashboard/internal/export"
	"order-dashboard/internal/model"
	"order-dashboard/internal/orders"

	"github.com/rs/zerolog"
)

// Notification texts.
const (
	MsgFetchOrdersFailed = "Failed to fetch orders"
	MsgSyncFailed        = "Failed to sync Amazon orders"
	MsgSyncSucceeded     = "Orders fetched and saved from Amazon."
	MsgExportSucceeded   = "Orders exported to CSV successfully!"
	MsgExportFailed      = "Failed to export orders"
)

// DefaultRefreshDelay is the wait between a successful sync and the list refresh.
const DefaultRefreshDelay = 3 * time.Second

// DashboardOptions configures a dashboard session.
type DashboardOptions struct {
	PageSize     int
	RefreshDelay time.Duration
	Location     *time.Location
	Now          func() time.Time
}

// dashboardService implements DashboardService.
type dashboardService struct {
	api      OrdersAPI
	store    *orders.Store
	fetcher  *detail.Fetcher
	notifier Notifier
	saver    export.Saver
	recorder Recorder
	opts     DashboardOptions
	logger   zerolog.Logger

	mu           sync.Mutex
	searchTerm   string
	page         int
	loading      bool
	syncing      bool
	listGen      uint64
	refreshTimer *time.Timer
	closed       bool

	background sync.WaitGroup
}

// NewDashboardService creates a dashboard session. recorder may be nil.
func NewDashboardService(
	api OrdersAPI,
	store *orders.Store,
	notifier Notifier,
	saver export.Saver,
	recorder Recorder,
	opts DashboardOptions,
	logger zerolog.Logger,
) DashboardService {
	if opts.PageSize <= 0 {
		opts.PageSize = orders.DefaultPageSize
	}
	if opts.RefreshDelay < 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger = logger.With().Str("service", "dashboard").Logger()

	return &dashboardService{
		api:      api,
		store:    store,
		fetcher:  detail.NewFetcher(api, notifier, logger),
		notifier: notifier,
		saver:    saver,
		recorder: recorder,
		opts:     opts,
		logger:   logger,
		page:     1,
	}
}

// Refresh re-fetches the full order collection. When refreshes overlap, only
// the most recently started one is applied.
func (s *dashboardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	s.loading = true
	s.mu.Unlock()

	fetched, err := s.api.ListOrders(ctx)

	s.mu.Lock()
	if gen != s.listGen {
		s.mu.Unlock()
		s.logger.Debug().Uint64("generation", gen).Msg("discarding stale order list response")
		return err
	}
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.notifier.Error(MsgFetchOrdersFailed, err)
		return fmt.Errorf("failed to fetch orders: %w", err)
	}
	s.store.Replace(fetched)
	s.page = 1
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.SetOrdersLoaded(len(fetched))
	}

	s.logger.Info().Int("count", len(fetched)).Msg("orders refreshed")

	return nil
}

// Sync triggers the backend sync. On success the list is re-fetched after the
// refresh delay; the backend may not yet reflect the sync at that point.
func (s *dashboardService) Sync(ctx context.Context) error {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return model.ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	err := s.api.SyncOrders(ctx)

	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()

	if err != nil {
		s.notifier.Error(MsgSyncFailed, err)
		return fmt.Errorf("failed to sync orders: %w", err)
	}

	s.notifier.Success(MsgSyncSucceeded)
	s.scheduleRefresh()

	return nil
}

func (s *dashboardService) scheduleRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.refreshTimer != nil && s.refreshTimer.Stop() {
		s.background.Done()
	}

	s.background.Add(1)
	s.refreshTimer = time.AfterFunc(s.opts.RefreshDelay, func() {
		defer s.background.Done()

		if err := s.Refresh(context.Background()); err != nil {
			s.logger.Warn().Err(err).Msg("post-sync refresh failed")
		}
	})

	s.logger.Debug().Dur("delay", s.opts.RefreshDelay).Msg("post-sync refresh scheduled")
}

func (s *dashboardService) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchTerm = term
	s.page = 1
}

func (s *dashboardService) SetPage(page int) error {
	if page < 1 {
		return model.ErrInvalidPage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = page
	return nil
}

func (s *dashboardService) View() model.DashboardView {
	s.mu.Lock()
	term := s.searchTerm
	page := s.page
	loading := s.loading
	syncing := s.syncing
	s.mu.Unlock()

	all := s.store.All()
	filtered := orders.Filter(all, term)
	visible := orders.Paginate(filtered, page, s.opts.PageSize)

	rows := make([]model.OrderRow, len(visible))
	for i, order := range visible {
		rows[i] = orderRow(order, s.opts.Location)
	}

	view := model.DashboardView{
		Orders:       rows,
		SearchTerm:   term,
		Page:         page,
		PageSize:     s.opts.PageSize,
		PageCount:    orders.PageCount(len(filtered), s.opts.PageSize),
		TotalMatches: len(filtered),
		TotalOrders:  len(all),
		Loading:      loading,
		Syncing:      syncing,
	}

	if len(filtered) == 0 && !loading {
		if term != "" {
			view.EmptyMessage = model.EmptyNoMatches
		} else {
			view.EmptyMessage = model.EmptyNoOrders
		}
	}

	if updated := s.store.UpdatedAt(); !updated.IsZero() {
		view.UpdatedAt = &updated
	}

	return view
}

func (s *dashboardService) ExportCSV() model.CSVExport {
	doc := s.render()
	s.notifier.Success(MsgExportSucceeded)

	s.logger.Info().
		Str("filename", doc.Filename).
		Int("rows", doc.Rows).
		Msg("orders exported")

	return doc
}

func (s *dashboardService) SaveExport(ctx context.Context) (*model.ExportResult, error) {
	doc := s.render()

	location, err := s.saver.Save(ctx, doc.Filename, doc.Data)
	if s.recorder != nil {
		s.recorder.ObserveExport(s.saver.Destination(), err)
	}
	if err != nil {
		s.notifier.Error(MsgExportFailed, err)
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	s.notifier.Success(MsgExportSucceeded)

	return &model.ExportResult{
		Filename:    doc.Filename,
		Location:    location,
		Destination: s.saver.Destination(),
		Rows:        doc.Rows,
	}, nil
}

// render builds the CSV of the orders matching the current search term.
func (s *dashboardService) render() model.CSVExport {
	s.mu.Lock()
	term := s.searchTerm
	s.mu.Unlock()

	filtered := orders.Filter(s.store.All(), term)

	rows := 0
	for _, order := range filtered {
		rows += len(order.Products)
	}

	return model.CSVExport{
		Filename: orders.ExportFilename(s.opts.Now()),
		Data:     orders.ExportCSV(filtered, s.opts.Location),
		Rows:     rows,
	}
}

func (s *dashboardService) SelectOrder(ctx context.Context, orderID string) error {
	return s.fetcher.Select(ctx, orderID)
}

func (s *dashboardService) CloseDetail() {
	s.fetcher.Close()
}

func (s *dashboardService) Detail() model.DetailView {
	return detailView(s.fetcher.Snapshot(), s.opts.Location)
}

// Stats is a pass-through; failures are logged but not shown to the user.
func (s *dashboardService) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.api.GetStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch dashboard stats")
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *dashboardService) Close() {
	s.mu.Lock()
	s.closed = true
	if s.refreshTimer != nil && s.refreshTimer.Stop() {
		s.background.Done()
	}
	s.mu.Unlock()

	s.fetcher.Close()
	s.background.Wait()
	s.fetcher.Wait()
}
