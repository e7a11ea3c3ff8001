// Package identscan provides lexer-backed identifier and qualified-name
// chain enumeration over raw Solidity source text (spec.md §4.9). Every
// scan goes through parser.Lex, so comments, doc comments, and string
// literals never produce a match — callers never need to special-case
// them.
package identscan
