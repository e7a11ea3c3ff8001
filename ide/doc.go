// Package ide implements the core's synchronous, snapshot-scoped query
// surface (spec.md §6.2): goto-definition, find-references, hover,
// signature help, completions, rename, document/workspace symbols, code
// actions, and format. Every query takes a *db.Snapshot plus a
// vfs.FileId/byte-offset pair and returns an absent/empty result rather
// than an error — per spec.md §7, "not known at this revision" is a
// first-class outcome, never a panic.
package ide
