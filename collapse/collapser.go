package collapse

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/rankgo/document"
	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/order"
)

// Collapser tracks collapse keys and the results kept for them during one
// match. One instance per query execution, mutated only by the matching loop
// that owns it.
type Collapser struct {
	// table maps collapse key values to their bucket.
	table map[string]*Bucket

	// entryCount is the total number of kept results across all buckets.
	entryCount uint32

	// noCollapseKey counts candidates seen with an empty or absent key.
	// Such candidates never collapse against anything.
	noCollapseKey uint32

	// dupsIgnored counts candidates excluded by collapsing.
	dupsIgnored uint32

	// docsConsidered counts all candidates processed.
	docsConsidered uint32

	// slot is the value slot holding the collapse key.
	slot model.Slot

	// collapseMax is the number of items kept per key; 0 disables
	// collapsing entirely.
	collapseMax uint

	oldItem    model.Result
	hasOldItem bool
}

// New creates a Collapser taking collapse keys from slot and keeping up to
// collapseMax results per distinct key value. collapseMax 0 disables
// collapsing.
func New(slot model.Slot, collapseMax uint) *Collapser {
	return &Collapser{
		table:       make(map[string]*Bucket),
		slot:        slot,
		collapseMax: collapseMax,
	}
}

// Active reports whether collapsing is enabled for this match.
func (c *Collapser) Active() bool { return c.collapseMax != 0 }

// Slot returns the value slot collapse keys are read from.
func (c *Collapser) Slot() model.Slot { return c.slot }

// Process handles one candidate in stream order.
//
// key carries the collapse key when the caller already resolved it (the
// remote-peer case); a nil key means "fetch it from view", which must already
// be positioned on the candidate's document. The returned outcome tells the
// matching loop whether to admit the candidate, drop it, or swap it for the
// evicted item available via OldItem.
func (c *Collapser) Process(item *model.Result, key []byte, view *document.ShardedView, o order.Order) (Outcome, error) {
	c.hasOldItem = false
	c.docsConsidered++

	if !c.Active() {
		return OutcomeAdded, nil
	}

	if key == nil {
		fetched, err := view.Value(c.slot)
		if err != nil {
			return OutcomeEmpty, fmt.Errorf("fetch collapse key for doc %d: %w", item.DocID, err)
		}
		key = fetched
	}
	item.SetCollapseKey(bytes.Clone(key))

	if len(key) == 0 {
		c.noCollapseKey++
		return OutcomeAdded, nil
	}

	b, ok := c.table[string(key)]
	if !ok {
		c.table[string(key)] = newBucket(*item)
		c.entryCount++
		return OutcomeAdded, nil
	}

	collapseMax := c.collapseMax
	if collapseMax < 1 {
		collapseMax = 1
	}
	outcome, old := b.addItem(*item, collapseMax, o)
	switch outcome {
	case OutcomeAdded:
		c.entryCount++
	case OutcomeRejected:
		c.dupsIgnored++
	case OutcomeReplaced:
		// One item out, one in: entryCount is unchanged, but the
		// eviction still counts as a rejection for estimate purposes.
		c.dupsIgnored++
		c.oldItem = old
		c.hasOldItem = true
	}
	return outcome, nil
}

// OldItem returns the item evicted by the most recent Process call that
// returned OutcomeReplaced. ok is false for any other outcome.
func (c *Collapser) OldItem() (item model.Result, ok bool) {
	return c.oldItem, c.hasOldItem
}

// Entries returns the total number of kept results across all buckets.
func (c *Collapser) Entries() uint32 { return c.entryCount }

// DocsConsidered returns the number of candidates processed.
func (c *Collapser) DocsConsidered() uint32 { return c.docsConsidered }

// DupsIgnored returns the number of candidates excluded by collapsing.
func (c *Collapser) DupsIgnored() uint32 { return c.dupsIgnored }

// NoCollapseKey returns the number of candidates seen without a collapse key.
func (c *Collapser) NoCollapseKey() uint32 { return c.noCollapseKey }

// Empty reports whether no keyed candidate has been kept yet.
func (c *Collapser) Empty() bool { return len(c.table) == 0 }

// MatchesLowerBound returns a lower bound on the number of documents in the
// final post-collapse result set. Every kept entry and every keyless candidate
// appears in that set, so the bound is sound and non-decreasing as more
// candidates are processed.
func (c *Collapser) MatchesLowerBound() uint32 {
	return c.entryCount + c.noCollapseKey
}

// CollapseCount estimates how many further documents sharing key were
// excluded from the match at or above the active threshold.
//
// Without a percentage cutoff this is the bucket's full rejection count. With
// one, a nonzero count is only reported when the best rejected weight still
// meets minWeight; otherwise every rejected document would have failed the
// cutoff anyway and 0 is reported.
func (c *Collapser) CollapseCount(key []byte, percentCutoff int, minWeight float64) uint32 {
	b, ok := c.table[string(key)]
	if !ok {
		return 0
	}
	if percentCutoff > 0 && b.nextBestWeight < minWeight {
		return 0
	}
	return b.collapseCount
}
