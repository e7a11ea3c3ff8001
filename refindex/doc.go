// Package refindex answers "every reference to this definition" across a
// project (spec.md §4.7). It is always HIR-driven: per DESIGN.md's
// "Reference tables" decision, the semantic analyzer does not keep a
// separate reference table of its own, since this package's discovery
// procedure already covers the same ground without it.
package refindex
