// Package collapse deduplicates match results that share a collapse key.
//
// The matching loop walks a rank-ordered candidate stream and hands each
// candidate to a Collapser, which groups candidates by the value in a
// configured slot and keeps at most collapseMax of them per distinct key.
// Keep/evict decisions are irrevocable: the stream is unbounded and visited
// only once, so each bucket also tracks rejection statistics (the best
// rejected weight, the rejection count) that keep the reported match-count
// bounds sound despite the discarded information.
//
// Correctness of those statistics depends on candidates arriving in the order
// the active ordering policy would rank them; the caller owns that invariant.
package collapse
