package sema

import (
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Snapshot is the type-aware layer sitting on top of one hir.Program: C3
// linearizations, overload resolution, and member-access visibility. A
// Snapshot is immutable once Analyze returns it and is safe to share
// across reader goroutines, matching the single-writer/many-reader model
// the query database builds on top of it.
type Snapshot struct {
	prog  *hir.Program
	trees map[vfs.FileId]*parser.Tree
	texts map[vfs.FileId]string

	linearization map[hir.DefId][]hir.DefId
}

// Analyze builds a Snapshot over prog. trees and texts must cover every
// file prog was built from: trees is needed to recover declaration syntax
// (inheritance lists, parameter lists, visibility keywords) that
// hir.Program itself discards after lowering, and texts is needed to
// re-lex header spans and call-argument text.
//
// Analyze never fails: a file missing from trees or texts simply yields
// conservative (empty/internal-default) answers for definitions declared
// in it, matching spec.md §4.6's Unavailable outcome being handled by the
// caller rather than by sema itself refusing to produce a snapshot.
func Analyze(prog *hir.Program, trees map[vfs.FileId]*parser.Tree, texts map[vfs.FileId]string) *Snapshot {
	s := &Snapshot{
		prog:          prog,
		trees:         trees,
		texts:         texts,
		linearization: make(map[hir.DefId][]hir.DefId),
	}
	// Every contract is linearized here, so the memo map is only read
	// after Analyze returns and concurrent readers never write to it.
	for _, e := range prog.Defs.All() {
		if e.Kind == hir.Contract {
			s.linearize(e.ID, map[hir.DefId]bool{})
		}
	}
	return s
}

// Program returns the hir.Program this snapshot was built over.
func (s *Snapshot) Program() *hir.Program { return s.prog }
