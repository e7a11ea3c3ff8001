// Package parser turns Solidity source text into a concrete parse tree: a
// hand-written lexer followed by a resilient recursive-descent parser. No
// generated-grammar dependency is used (see DESIGN.md); the parser never
// panics on malformed input — it emits a diagnostic and recovers at the
// next statement or item boundary.
package parser
