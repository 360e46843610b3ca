package collapse

import (
	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/order"
)

// Outcome reports how the collapser handled one candidate.
type Outcome int

const (
	// OutcomeEmpty is the zero value; no candidate has been processed.
	OutcomeEmpty Outcome = iota
	// OutcomeAdded means the candidate was kept.
	OutcomeAdded
	// OutcomeRejected means the candidate was dropped in favour of
	// better items already kept for its key.
	OutcomeRejected
	// OutcomeReplaced means the candidate was kept and evicted a
	// previously-kept item for the same key.
	OutcomeReplaced
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "EMPTY"
	case OutcomeAdded:
		return "ADDED"
	case OutcomeRejected:
		return "REJECTED"
	case OutcomeReplaced:
		return "REPLACED"
	default:
		return "unknown"
	}
}

// Bucket tracks the kept items for one value of the collapse key.
//
// items is a min-heap by "worst kept first" once it holds more than one item,
// so the weakest kept item is always at the root and full-bucket decisions
// compare against it in O(1).
type Bucket struct {
	items []model.Result

	// nextBestWeight is the highest weight among items rejected for this
	// key. Monotonically non-decreasing; it bounds how much re-expanding
	// this key could improve the answer.
	nextBestWeight float64

	// collapseCount is the number of items rejected for this key.
	collapseCount uint32
}

// newBucket creates a bucket holding item as its sole kept entry.
// The kept copy's collapse key is cleared; the table key owns those bytes.
func newBucket(item model.Result) *Bucket {
	item.SetCollapseKey(nil)
	return &Bucket{items: []model.Result{item}}
}

// NextBestWeight returns the highest weight of an item rejected for this key.
func (b *Bucket) NextBestWeight() float64 { return b.nextBestWeight }

// CollapseCount returns the number of items rejected for this key.
func (b *Bucket) CollapseCount() uint32 { return b.collapseCount }

// Len returns the number of currently-kept items.
func (b *Bucket) Len() int { return len(b.items) }

// addItem handles a new item sharing this bucket's key. collapseMax is
// treated as at least 1. When the outcome is OutcomeReplaced, the evicted item
// is returned by value so the caller can drop it from any higher-level
// structure that had admitted it.
func (b *Bucket) addItem(item model.Result, collapseMax uint, o order.Order) (Outcome, model.Result) {
	if collapseMax <= 1 {
		held := b.items[0]
		if o.Better(&item, &held) {
			item.SetCollapseKey(nil)
			b.items[0] = item
			b.reject(held)
			return OutcomeReplaced, held
		}
		b.reject(item)
		return OutcomeRejected, model.Result{}
	}

	if uint(len(b.items)) < collapseMax {
		item.SetCollapseKey(nil)
		b.push(item, o)
		return OutcomeAdded, model.Result{}
	}

	// Bucket is full: the heap root is the weakest kept item.
	if !o.Better(&item, &b.items[0]) {
		b.reject(item)
		return OutcomeRejected, model.Result{}
	}
	old := b.items[0]
	item.SetCollapseKey(nil)
	b.items[0] = item
	b.siftDown(0, o)
	b.reject(old)
	return OutcomeReplaced, old
}

// reject records a rejected item in the bucket statistics.
func (b *Bucket) reject(item model.Result) {
	b.collapseCount++
	if item.Weight > b.nextBestWeight {
		b.nextBestWeight = item.Weight
	}
}

// worse reports whether items[i] ranks behind items[j]: the heap property
// keeps the worst kept item at the root.
func (b *Bucket) worse(i, j int, o order.Order) bool {
	return o.Better(&b.items[j], &b.items[i])
}

func (b *Bucket) push(item model.Result, o order.Order) {
	b.items = append(b.items, item)
	i := len(b.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !b.worse(i, parent, o) {
			break
		}
		b.items[i], b.items[parent] = b.items[parent], b.items[i]
		i = parent
	}
}

func (b *Bucket) siftDown(i int, o order.Order) {
	n := len(b.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && b.worse(right, left, o) {
			child = right
		}
		if !b.worse(child, i, o) {
			break
		}
		b.items[i], b.items[child] = b.items[child], b.items[i]
		i = child
	}
}
