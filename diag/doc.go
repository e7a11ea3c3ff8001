// Package diag defines the diagnostic value types shared by the parser,
// the semantic analyzer, and the IDE query layer: [Severity], [Diagnostic],
// and a [Collector] for accumulating them per file.
package diag
