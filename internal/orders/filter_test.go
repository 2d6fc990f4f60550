package orders

import (
	"strings"
	"testing"

	"order-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFilter_EmptyTermIsIdentity(t *testing.T) {
	orders := sampleOrders()

	filtered := Filter(orders, "")

	assert.Equal(t, orders, filtered)
	assert.Same(t, &orders[0], &filtered[0], "empty term should return the input slice")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name        string
		term        string
		expectedIDs []string
	}{
		{
			name:        "Matches order ID",
			term:        "bravo",
			expectedIDs: []string{"222-BRAVO"},
		},
		{
			name:        "Matches product title case-insensitively",
			term:        "MOUSE",
			expectedIDs: []string{"111-ALPHA"},
		},
		{
			name:        "Matches any product of a multi-item order",
			term:        "stand",
			expectedIDs: []string{"222-BRAVO"},
		},
		{
			name:        "Matches several orders and keeps order",
			term:        "-",
			expectedIDs: []string{"111-ALPHA", "222-BRAVO", "333-CHARLIE"},
		},
		{
			name:        "Order without products matches on ID only",
			term:        "charlie",
			expectedIDs: []string{"333-CHARLIE"},
		},
		{
			name:        "No match",
			term:        "keyboard",
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Filter(sampleOrders(), tt.term)

			ids := make([]string, 0, len(filtered))
			for _, o := range filtered {
				ids = append(ids, o.OrderID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestFilter_ResultSatisfiesPredicateAndIsComplete(t *testing.T) {
	orders := sampleOrders()

	for _, term := range []string{"a", "US", "cable", "111", "zzz", "9"} {
		filtered := Filter(orders, term)
		lower := strings.ToLower(term)

		included := make(map[string]bool)
		for _, o := range filtered {
			included[o.OrderID] = true
			assert.True(t, Matches(o, lower), "order %s should match %q", o.OrderID, term)
		}

		for _, o := range orders {
			if Matches(o, lower) {
				assert.True(t, included[o.OrderID], "order %s matching %q was excluded", o.OrderID, term)
			}
		}
	}
}

func TestFilter_NoMatchYieldsZeroPages(t *testing.T) {
	filtered := Filter(sampleOrders(), "does-not-exist")

	assert.Empty(t, filtered)
	assert.Equal(t, 0, PageCount(len(filtered), DefaultPageSize))
	assert.Empty(t, Paginate(filtered, 1, DefaultPageSize))
}

func TestFilter_NilCollection(t *testing.T) {
	assert.Empty(t, Filter(nil, "x"))
	assert.Nil(t, Filter([]model.Order(nil), ""))
}
