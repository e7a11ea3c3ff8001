// Package hir lowers parsed Solidity files into a project-wide high-level
// IR: a DefMap of every contract, function, struct, enum, event, error,
// modifier, state variable, and user-defined value type, plus per-file
// import tables used to answer symbol-resolution queries across files.
package hir
