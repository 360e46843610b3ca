package rankgo

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/order"
)

func TestWorkingSetBounded(t *testing.T) {
	ws := newWorkingSet(order.Order{}, 3)

	rng := rand.New(rand.NewSource(7))
	weights := make([]float64, 50)
	for i := range weights {
		weights[i] = rng.Float64() * 100
		ws.add(model.Result{DocID: model.DocID(i + 1), Weight: weights[i]})
		assert.LessOrEqual(t, len(ws.items), 3)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
	got := ws.sorted()
	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, weights[i], got[i].Weight, "rank %d", i)
	}
}

func TestWorkingSetZeroCapacity(t *testing.T) {
	ws := newWorkingSet(order.Order{}, 0)
	ws.add(model.Result{DocID: 1, Weight: 10})
	assert.Empty(t, ws.sorted())
}

func TestWorkingSetRemove(t *testing.T) {
	ws := newWorkingSet(order.Order{}, 5)
	for i := 1; i <= 5; i++ {
		ws.add(model.Result{DocID: model.DocID(i), Weight: float64(10 * i)})
	}

	ws.remove(3)
	got := ws.sorted()
	require.Len(t, got, 4)
	for _, item := range got {
		assert.NotEqual(t, model.DocID(3), item.DocID)
	}

	// Removing an unknown docid is a no-op.
	ws.remove(99)
	assert.Len(t, ws.sorted(), 4)

	// The freed slot admits a new item again.
	ws.add(model.Result{DocID: 6, Weight: 35})
	got = ws.sorted()
	require.Len(t, got, 5)
	assert.Equal(t, model.DocID(6), got[2].DocID)
}
