package detail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"order-dashboard/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	detail *model.OrderDetail
	err    error
}

// gatedGetter blocks each request until the test releases it.
// It ignores context cancellation so stale responses really arrive late.
type gatedGetter struct {
	mu    sync.Mutex
	gates map[string]chan response
	calls []string
}

func newGatedGetter(ids ...string) *gatedGetter {
	g := &gatedGetter{gates: make(map[string]chan response)}
	for _, id := range ids {
		g.gates[id] = make(chan response, 1)
	}
	return g
}

func (g *gatedGetter) GetOrder(_ context.Context, orderID string) (*model.OrderDetail, error) {
	g.mu.Lock()
	g.calls = append(g.calls, orderID)
	gate := g.gates[orderID]
	g.mu.Unlock()

	r := <-gate
	return r.detail, r.err
}

func (g *gatedGetter) release(orderID string, r response) {
	g.gates[orderID] <- r
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	errs     []error
}

func (n *recordingNotifier) Error(fallback string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, fallback)
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func TestFetcher_InitialState(t *testing.T) {
	f := NewFetcher(newGatedGetter(), &recordingNotifier{}, zerolog.Nop())

	snap := f.Snapshot()
	assert.Equal(t, Closed, snap.State)
	assert.Empty(t, snap.OrderID)
	assert.Nil(t, snap.Detail)
	assert.False(t, snap.Loading())
}

func TestFetcher_SelectSuccess(t *testing.T) {
	getter := newGatedGetter("A")
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))

	snap := f.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, "A", snap.OrderID)
	assert.True(t, snap.Loading())

	getter.release("A", response{detail: &model.OrderDetail{OrderID: "A", CustomerName: "Ada"}})
	f.Wait()

	snap = f.Snapshot()
	assert.Equal(t, Shown, snap.State)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "Ada", snap.Detail.CustomerName)
	assert.Zero(t, notifier.count())
}

func TestFetcher_SelectFailure(t *testing.T) {
	getter := newGatedGetter("A")
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	getter.release("A", response{err: errors.New("boom")})
	f.Wait()

	snap := f.Snapshot()
	assert.Equal(t, Shown, snap.State)
	assert.Equal(t, "A", snap.OrderID)
	assert.Nil(t, snap.Detail)
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, FailureMessage, notifier.messages[0])
}

func TestFetcher_LatestSelectionWins(t *testing.T) {
	getter := newGatedGetter("A", "B")
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	require.NoError(t, f.Select(context.Background(), "B"))

	getter.release("B", response{detail: &model.OrderDetail{OrderID: "B"}})
	require.Eventually(t, func() bool {
		return f.Snapshot().State == Shown
	}, time.Second, 5*time.Millisecond)

	getter.release("A", response{detail: &model.OrderDetail{OrderID: "A"}})
	f.Wait()

	snap := f.Snapshot()
	assert.Equal(t, Shown, snap.State)
	assert.Equal(t, "B", snap.OrderID)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "B", snap.Detail.OrderID)
}

func TestFetcher_StaleResponseArrivingFirstIsDiscarded(t *testing.T) {
	getter := newGatedGetter("A", "B")
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	require.NoError(t, f.Select(context.Background(), "B"))

	getter.release("A", response{err: errors.New("late failure")})
	require.Eventually(t, func() bool {
		getter.mu.Lock()
		defer getter.mu.Unlock()
		return len(getter.calls) == 2
	}, time.Second, 5*time.Millisecond)

	// A's stale response must not move the view out of Loading.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, Loading, f.Snapshot().State)
	assert.Zero(t, notifier.count())

	getter.release("B", response{detail: &model.OrderDetail{OrderID: "B"}})
	f.Wait()

	snap := f.Snapshot()
	assert.Equal(t, Shown, snap.State)
	assert.Equal(t, "B", snap.Detail.OrderID)
	assert.Zero(t, notifier.count())
}

func TestFetcher_CloseDiscardsInFlight(t *testing.T) {
	getter := newGatedGetter("A")
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	f.Close()

	getter.release("A", response{detail: &model.OrderDetail{OrderID: "A"}})
	f.Wait()

	snap := f.Snapshot()
	assert.Equal(t, Closed, snap.State)
	assert.Empty(t, snap.OrderID)
	assert.Nil(t, snap.Detail)
	assert.Zero(t, notifier.count())
}

func TestFetcher_CloseAfterShownClearsDetail(t *testing.T) {
	getter := newGatedGetter("A")
	f := NewFetcher(getter, &recordingNotifier{}, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	getter.release("A", response{detail: &model.OrderDetail{OrderID: "A"}})
	f.Wait()
	require.NotNil(t, f.Snapshot().Detail)

	f.Close()

	assert.Equal(t, Closed, f.Snapshot().State)
	assert.Nil(t, f.Snapshot().Detail)
}

func TestFetcher_SelectCancelsPreviousContext(t *testing.T) {
	cancelled := make(chan struct{})
	getter := getterFunc(func(ctx context.Context, orderID string) (*model.OrderDetail, error) {
		if orderID == "A" {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}
		return &model.OrderDetail{OrderID: orderID}, nil
	})
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, notifier, zerolog.Nop())

	require.NoError(t, f.Select(context.Background(), "A"))
	require.NoError(t, f.Select(context.Background(), "B"))

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("previous request was not cancelled")
	}
	f.Wait()

	assert.Equal(t, "B", f.Snapshot().Detail.OrderID)
	assert.Zero(t, notifier.count())
}

func TestFetcher_CallerCancellationDoesNotAbortFetch(t *testing.T) {
	getter := newGatedGetter("A")
	f := NewFetcher(getter, &recordingNotifier{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.Select(ctx, "A"))
	cancel()

	getter.release("A", response{detail: &model.OrderDetail{OrderID: "A"}})
	f.Wait()

	assert.Equal(t, Shown, f.Snapshot().State)
}

func TestFetcher_EmptyOrderID(t *testing.T) {
	f := NewFetcher(newGatedGetter(), &recordingNotifier{}, zerolog.Nop())

	err := f.Select(context.Background(), "")

	assert.Equal(t, model.ErrOrderIDRequired, err)
	assert.Equal(t, Closed, f.Snapshot().State)
}

func TestState_MarshalText(t *testing.T) {
	for state, expected := range map[State]string{Closed: "closed", Loading: "loading", Shown: "shown"} {
		text, err := state.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, expected, string(text))
	}
}

type getterFunc func(ctx context.Context, orderID string) (*model.OrderDetail, error)

func (fn getterFunc) GetOrder(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	return fn(ctx, orderID)
}
