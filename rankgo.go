package rankgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/rankgo/collapse"
	"github.com/hupe1980/rankgo/document"
	"github.com/hupe1980/rankgo/model"
)

// CandidateSource is the rank-ordered candidate stream produced by the
// upstream matching pipeline.
//
// Candidates must be yielded in the order the query's sort order would rank
// them: weight-descending for relevance ranking, sort-key order for
// value-based ranking. Collapse bookkeeping and match-count bounds rely on
// this and cannot detect violations.
type CandidateSource interface {
	// Next returns the next candidate. ok is false once the stream is
	// exhausted; a non-nil error aborts the match.
	Next() (item model.Result, ok bool, err error)

	// Bounds returns lower/estimated/upper bounds on the total number of
	// candidates the stream would yield. Consulted when the match stops
	// early; a source with no better knowledge may return the count seen
	// so far in all three.
	Bounds() (lower, estimated, upper uint32)
}

// Enquire runs matches against one document source.
//
// An Enquire carries only configuration and may be reused, but each Run
// constructs fresh per-query state (collapser, document view, working set);
// it must not be called concurrently with itself.
type Enquire struct {
	src  document.Source
	opts options
}

// NewEnquire creates an Enquire over src.
func NewEnquire(src document.Source, optFns ...Option) *Enquire {
	return &Enquire{
		src:  src,
		opts: applyOptions(optFns),
	}
}

// Run drives one match: it pulls candidates from stream, resolves collapse
// and sort keys through the document source, applies collapsing and the
// percentage cutoff, and returns the configured page of the ranked survivors.
func (e *Enquire) Run(ctx context.Context, stream CandidateSource) (mset *MSet, err error) {
	start := time.Now()
	o := e.opts

	considered := 0
	defer func() {
		returned := 0
		if mset != nil {
			returned = mset.Len()
		}
		e.opts.metrics.RecordMatch(considered, returned, time.Since(start), err)
		e.opts.logger.LogMatch(ctx, considered, returned, time.Since(start), err)
	}()

	if o.cutoff < 0 || o.cutoff > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCutoff, o.cutoff)
	}
	if o.first < 0 || o.maxItems < 0 {
		return nil, fmt.Errorf("%w: first=%d maxItems=%d", ErrInvalidPaging, o.first, o.maxItems)
	}
	if o.cutoff > 0 && o.order.ValuePrimary() {
		return nil, ErrPercentCutoffNotSupported
	}

	collapseMax := o.collapseMax
	if o.collapseSlot == model.NoSlot {
		collapseMax = 0
	}
	coll := collapse.New(o.collapseSlot, collapseMax)
	view := document.NewShardedView(e.src)
	numShards := view.NumShards()
	ws := newWorkingSet(o.order, o.first+o.maxItems)

	var (
		greatest     float64
		cutoffWeight float64
		haveCutoff   bool
		earlyStop    bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, ok, serr := stream.Next()
		if serr != nil {
			return nil, fmt.Errorf("candidate stream: %w", serr)
		}
		if !ok {
			break
		}
		considered++

		if item.Weight > greatest {
			greatest = item.Weight
		}
		if o.cutoff > 0 {
			if !haveCutoff {
				// Relevance-primary order: the first candidate
				// carries the maximum weight, so the scale and
				// the equivalent weight threshold are fixed now.
				maxwt := item.Weight
				if o.maxWeightHint > maxwt {
					maxwt = o.maxWeightHint
				}
				cutoffWeight = NewScale(maxwt).WeightThreshold(o.cutoff)
				haveCutoff = true
			}
			if item.Weight < cutoffWeight {
				// Rank-ordered stream: no later candidate can
				// pass the cutoff either.
				break
			}
		}

		view.Select(item.DocID.ShardIndex(numShards))
		view.SetDocument(item.DocID)

		if o.sortSlot != model.NoSlot {
			key, verr := view.Value(o.sortSlot)
			if verr != nil {
				return nil, fmt.Errorf("fetch sort key for doc %d: %w", item.DocID, verr)
			}
			item.SortKey = key
		}

		outcome, perr := coll.Process(&item, nil, view, o.order)
		if perr != nil {
			return nil, perr
		}
		switch outcome {
		case collapse.OutcomeAdded:
			ws.add(item)
		case collapse.OutcomeReplaced:
			if old, hasOld := coll.OldItem(); hasOld {
				ws.remove(old.DocID)
			}
			ws.add(item)
		}

		// Once the working set holds first+maxItems survivors, later
		// candidates rank strictly behind everything kept and cannot
		// change the page. Only valid without collapsing (a later
		// duplicate could still evict a kept item), without a cutoff,
		// and when relevance is primary (value orders need the whole
		// stream to fix the percentage scale).
		if ws.capacity > 0 && ws.full() && !coll.Active() &&
			o.cutoff == 0 && !o.order.ValuePrimary() {
			earlyStop = true
			break
		}
	}

	maxwt := greatest
	if o.maxWeightHint > maxwt {
		maxwt = o.maxWeightHint
	}
	scale := NewScale(maxwt)

	items := ws.sorted()
	if o.first > 0 {
		if o.first < len(items) {
			items = items[o.first:]
		} else {
			items = nil
		}
	}

	if coll.Active() {
		minWeight := 0.0
		if o.cutoff > 0 {
			minWeight = cutoffWeight
		}
		for i := range items {
			items[i].CollapseCount = coll.CollapseCount(items[i].CollapseKey(), o.cutoff, minWeight)
		}
		e.opts.metrics.RecordCollapse(coll.Entries(), coll.DupsIgnored())
		e.opts.logger.LogCollapse(ctx, coll.Entries(), coll.DupsIgnored(), coll.NoCollapseKey())
	}

	var lower, est, upper uint32
	if earlyStop {
		// The stream was abandoned with candidates left; combine its
		// own size bounds with what we saw.
		lower, est, upper = stream.Bounds()
		if n := uint32(considered); lower < n {
			lower = n
		}
		if upper < lower {
			upper = lower
		}
		if est < lower {
			est = lower
		}
		if est > upper {
			est = upper
		}
	} else {
		// The stream was consumed until exhaustion or until the cutoff
		// excluded everything further, so the counts are exact.
		n := coll.DocsConsidered()
		if coll.Active() {
			n = coll.MatchesLowerBound()
		}
		lower, est, upper = n, n, n
	}

	return &MSet{
		items:             items,
		first:             o.first,
		scale:             scale,
		matchesLowerBound: lower,
		matchesEstimated:  est,
		matchesUpperBound: upper,
	}, nil
}
