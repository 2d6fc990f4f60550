package detail

import (
	"context"
	"sync"

	"order-dashboard/internal/model"

	"github.com/rs/zerolog"
)

// FailureMessage is shown when a detail fetch fails without a backend message.
const FailureMessage = "Failed to fetch order details"

// State of the detail view.
type State int

const (
	Closed State = iota
	Loading
	Shown
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Shown:
		return "shown"
	default:
		return "closed"
	}
}

// MarshalText renders the state as its lowercase name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Getter fetches a single order detail record.
type Getter interface {
	GetOrder(ctx context.Context, orderID string) (*model.OrderDetail, error)
}

// Notifier receives fetch failures.
type Notifier interface {
	Error(fallback string, err error)
}

// Snapshot is a point-in-time copy of the detail view.
type Snapshot struct {
	State   State
	OrderID string
	Detail  *model.OrderDetail
}

// Loading reports whether a fetch is outstanding.
func (s Snapshot) Loading() bool {
	return s.State == Loading
}

// Fetcher loads order details on demand. Only the response of the most recent
// selection is ever applied; earlier responses are discarded.
type Fetcher struct {
	getter   Getter
	notifier Notifier
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	orderID    string
	detail     *model.OrderDetail
	generation uint64
	cancel     context.CancelFunc

	wg sync.WaitGroup
}

// NewFetcher creates a fetcher in the Closed state.
func NewFetcher(getter Getter, notifier Notifier, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		getter:   getter,
		notifier: notifier,
		logger:   logger.With().Str("component", "detail-fetcher").Logger(),
	}
}

// Select opens the view for orderID and starts fetching its detail in the
// background. Any fetch still in flight is cancelled and its result ignored.
// The request outlives ctx's cancellation but keeps its values.
func (f *Fetcher) Select(ctx context.Context, orderID string) error {
	if orderID == "" {
		return model.ErrOrderIDRequired
	}

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.generation++
	gen := f.generation
	f.state = Loading
	f.orderID = orderID
	f.detail = nil

	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.cancel = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	f.logger.Debug().Str("order_id", orderID).Uint64("generation", gen).Msg("fetching order detail")

	go f.fetch(reqCtx, cancel, gen, orderID)

	return nil
}

func (f *Fetcher) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, orderID string) {
	defer f.wg.Done()
	defer cancel()

	detail, err := f.getter.GetOrder(ctx, orderID)

	f.mu.Lock()
	if gen != f.generation || f.state != Loading {
		f.mu.Unlock()
		f.logger.Debug().
			Str("order_id", orderID).
			Uint64("generation", gen).
			Msg("discarding stale order detail response")
		return
	}

	f.cancel = nil
	f.state = Shown
	if err != nil {
		f.detail = nil
		f.mu.Unlock()

		f.notifier.Error(FailureMessage, err)
		return
	}
	f.detail = detail
	f.mu.Unlock()

	f.logger.Debug().Str("order_id", orderID).Msg("order detail loaded")
}

// Close hides the view, drops the detail and invalidates any in-flight fetch.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.generation++
	f.state = Closed
	f.orderID = ""
	f.detail = nil
}

// Snapshot returns the current view state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		State:   f.state,
		OrderID: f.orderID,
		Detail:  f.detail,
	}
}

// Wait blocks until every started fetch has returned.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}
