// Package document gives the matching loop value access to "the current
// document" of a sharded database.
//
// A Source is the backend contract: per shard, it can open a value-list cursor
// for a slot, fetch all values of a document, and fetch a document's opaque
// data. ShardedView sits on top and models the movable cursor the matcher
// drives: select a shard, set the active document, fetch values. Per-slot
// cursors are cached lazily because sequential matching asks for the same slot
// (collapse key, sort key) across successive documents, so keeping the cursor
// position amortises seek cost.
//
// MemorySource is the in-memory reference backend, with optional snapshot
// persistence so a built value set can be reloaded in another process.
package document
