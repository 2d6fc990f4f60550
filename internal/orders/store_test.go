package orders

import (
	"sync"
	"testing"

	"order-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceWholesale(t *testing.T) {
	store := NewStore()

	require.NotNil(t, store.All())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, uint64(0), store.Version())

	first := sampleOrders()
	v1 := store.Replace(first)
	assert.Equal(t, uint64(1), v1)
	assert.Equal(t, 3, store.Len())

	v2 := store.Replace(first[:1])
	assert.Equal(t, uint64(2), v2)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "111-ALPHA", store.All()[0].OrderID)
	assert.False(t, store.UpdatedAt().IsZero())
}

func TestStore_ReplaceWithNil(t *testing.T) {
	store := NewStore()
	store.Replace(nil)

	all := store.All()
	require.NotNil(t, all)
	assert.Empty(t, all)
}

func TestStore_IsolatedFromCallerMutation(t *testing.T) {
	store := NewStore()
	orders := sampleOrders()
	store.Replace(orders)

	orders[0].OrderID = "mutated"
	assert.Equal(t, "111-ALPHA", store.All()[0].OrderID)

	snapshot := store.All()
	snapshot[0].OrderID = "mutated"
	assert.Equal(t, "111-ALPHA", store.All()[0].OrderID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace([]model.Order{{OrderID: "x"}})
		}()
		go func() {
			defer wg.Done()
			_ = store.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), store.Version())
}
