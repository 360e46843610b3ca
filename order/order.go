// Package order defines the ordering policy applied to scored results.
//
// An Order is a pure comparison contract: a strict weak ordering over Results
// with a total, deterministic tie-break (document id), so it can back heaps and
// keep match results reproducible across re-runs and paging boundaries.
package order

import (
	"bytes"

	"github.com/hupe1980/rankgo/model"
)

// SortBy selects the primary ranking criterion for a match.
type SortBy int

const (
	// ByRelevance ranks by weight, highest first.
	ByRelevance SortBy = iota

	// ByValue ranks by the sort key alone.
	ByValue

	// ByValueThenRelevance ranks by the sort key, breaking ties by weight.
	ByValueThenRelevance

	// ByRelevanceThenValue ranks by weight, breaking ties by the sort key.
	ByRelevanceThenValue
)

// String returns the name of the sort criterion.
func (s SortBy) String() string {
	switch s {
	case ByRelevance:
		return "relevance"
	case ByValue:
		return "value"
	case ByValueThenRelevance:
		return "value_then_relevance"
	case ByRelevanceThenValue:
		return "relevance_then_value"
	default:
		return "unknown"
	}
}

// Order is the active sort order of one match.
//
// The zero value sorts by relevance, which is the common case.
type Order struct {
	// By is the primary ranking criterion.
	By SortBy

	// Reverse flips the direction of sort-key comparisons. It has no effect
	// on pure relevance ranking.
	Reverse bool
}

// ValuePrimary reports whether the sort key is the primary criterion.
// Percentage cutoffs cannot be honoured under such orders.
func (o Order) ValuePrimary() bool {
	return o.By == ByValue || o.By == ByValueThenRelevance
}

// Better reports whether a ranks strictly ahead of b under this order.
//
// It is irreflexive and transitive, and every tie falls through to the
// document id (lower id first), so the ordering is total and deterministic.
func (o Order) Better(a, b *model.Result) bool {
	switch o.By {
	case ByValue:
		if c := o.cmpSortKey(a, b); c != 0 {
			return c > 0
		}
	case ByValueThenRelevance:
		if c := o.cmpSortKey(a, b); c != 0 {
			return c > 0
		}
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
	case ByRelevanceThenValue:
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if c := o.cmpSortKey(a, b); c != 0 {
			return c > 0
		}
	default: // ByRelevance
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
	}
	return a.DocID < b.DocID
}

// cmpSortKey compares sort keys honouring Reverse: >0 means a ranks ahead.
func (o Order) cmpSortKey(a, b *model.Result) int {
	c := bytes.Compare(a.SortKey, b.SortKey)
	if o.Reverse {
		return c
	}
	return -c
}
