// Package sema is the type-aware layer over hir.Program: contract
// inheritance linearization (C3), overload resolution by argument shape,
// and member-access visibility rules (spec.md §4.6, §4.8).
//
// The data-model interface in spec.md §6.1 describes an external "type
// checker" collaborator the core merely drives. This codebase has no
// separate Solidity compiler to shell out to — sema *is* that collaborator,
// implemented directly in Go over the parsed syntax, which is exactly what
// spec.md §1 scopes the engine to ("resolves names and kinds, not full type
// inference beyond what overload resolution requires"). See DESIGN.md for
// this Open Question's resolution.
package sema
