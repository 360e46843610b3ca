// Package model defines the core value types shared across rankgo packages:
// global document ids with shard resolution, value slots, and the Result type
// that flows from the candidate stream through collapsing into the final match
// set.
//
// The types here carry no behaviour beyond identity and invariants; all
// ranking and collapsing logic lives in the order, collapse and root packages.
package model
