// Package db is the incremental query database (spec.md §4.2): the single
// source of truth for file and project inputs, and the memoization layer
// over parse/scope/HIR/sema derived queries (symbol search and reference
// search are recomputed per call on top of them). It follows a
// single-writer/many-reader model (spec.md §5) — [Database] is the sole
// writer, and every read happens against an immutable [Snapshot] cloned
// from it.
//
// No third-party incremental-computation framework is used here: no
// example repo in the retrieval pack implements a rust-analyzer-style
// salsa database, so fabricating a dependency behind a fake import would
// violate the no-fabrication rule (see DESIGN.md). The memoization
// strategy is a hand-rolled per-query, per-key sync.Once cell, which is
// sufficient to satisfy spec.md §4.2's "first read blocks, concurrent
// readers coalesce" contract without needing a general revision graph —
// a Snapshot is already revision-pinned by construction.
package db
