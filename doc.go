// Package rankgo is the result-collapsing and scoring core of a search-query
// matching engine.
//
// It walks a relevance-ranked candidate stream, deduplicates documents that
// share a collapse key, keeps the top survivors per key, and derives stable
// user-facing percentages and match-count bounds from the internal weights.
// The surrounding pipeline (query evaluation, weighting, storage) stays
// outside: rankgo consumes a CandidateSource and a document.Source and
// produces an MSet.
//
// # Quick Start
//
//	src := document.NewMemorySource(2)
//	src.AddDocument(1, map[model.Slot][]byte{0: []byte("cluster-a")}, nil)
//	// ... add more documents ...
//
//	enq := rankgo.NewEnquire(src,
//	    rankgo.WithCollapse(0, 1),     // collapse on slot 0, keep 1 per key
//	    rankgo.WithCutoff(50),         // drop results under 50%
//	    rankgo.WithPaging(0, 10),
//	)
//	mset, err := enq.Run(ctx, stream) // stream yields weight-ordered candidates
//
// The resulting MSet carries the surviving page, a percentage for every item,
// per-item collapse counts, and sound lower/upper bounds on the true
// post-collapse match count.
//
// # Ordering contract
//
// Candidates must arrive in the order the configured sort order would rank
// them (weight-descending for relevance sort). Collapse bookkeeping and the
// match-count bounds depend on that invariant and cannot re-derive it.
//
// All per-query state (Enquire, Collapser, ShardedView) is owned by a single
// goroutine; construct a fresh Enquire per query.
package rankgo
