package rankgo

import (
	"sort"

	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/order"
)

// workingSet is the live top-K result set of one match: a bounded min-heap
// with the worst kept item at the root, so admitting a better candidate over
// a full set is an O(log n) root replacement.
type workingSet struct {
	o        order.Order
	capacity int
	items    []model.Result
}

func newWorkingSet(o order.Order, capacity int) *workingSet {
	return &workingSet{o: o, capacity: capacity}
}

func (w *workingSet) full() bool { return len(w.items) >= w.capacity }

// add admits item if it ranks ahead of the current worst kept item (or the
// set still has room). Items that don't make it are simply dropped; the
// collapser has already accounted for them.
func (w *workingSet) add(item model.Result) {
	if w.capacity == 0 {
		return
	}
	if len(w.items) < w.capacity {
		w.items = append(w.items, item)
		w.siftUp(len(w.items) - 1)
		return
	}
	if w.o.Better(&item, &w.items[0]) {
		w.items[0] = item
		w.siftDown(0)
	}
}

// remove drops the item with the given docid, if it is still kept. Used when
// the collapser evicts an item that had previously been admitted.
func (w *workingSet) remove(did model.DocID) {
	for i := range w.items {
		if w.items[i].DocID != did {
			continue
		}
		last := len(w.items) - 1
		w.items[i] = w.items[last]
		w.items = w.items[:last]
		if i < last {
			w.siftDown(i)
			w.siftUp(i)
		}
		return
	}
}

// sorted returns the kept items best-first. The heap itself is untouched.
func (w *workingSet) sorted() []model.Result {
	out := make([]model.Result, len(w.items))
	copy(out, w.items)
	sort.Slice(out, func(i, j int) bool {
		return w.o.Better(&out[i], &out[j])
	})
	return out
}

// worse reports whether items[i] ranks behind items[j].
func (w *workingSet) worse(i, j int) bool {
	return w.o.Better(&w.items[j], &w.items[i])
}

func (w *workingSet) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !w.worse(i, parent) {
			break
		}
		w.items[i], w.items[parent] = w.items[parent], w.items[i]
		i = parent
	}
}

func (w *workingSet) siftDown(i int) {
	n := len(w.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && w.worse(right, left) {
			child = right
		}
		if !w.worse(child, i) {
			break
		}
		w.items[i], w.items[child] = w.items[child], w.items[i]
		i = child
	}
}
