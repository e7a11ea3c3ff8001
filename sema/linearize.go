package sema

import (
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
)

// contractNodeKindOf maps a hir.ContractKind back to the parser.NodeKind
// its definition was parsed as, so a DefEntry's SelectionRange can be
// turned back into a parser.NodeId via Tree.FindBySelection.
func contractNodeKindOf(ck hir.ContractKind) parser.NodeKind {
	switch ck {
	case hir.ContractKindLibrary:
		return parser.KindLibraryDef
	case hir.ContractKindInterface:
		return parser.KindInterfaceDef
	default:
		return parser.KindContractDef
	}
}

// directBases resolves a contract DefEntry's declared "is A, B" list (in
// declaration order) to the DefIds they refer to, skipping any base name
// that does not resolve to a unique Contract-kind definition visible from
// the declaring file (an unresolvable base is dropped rather than blocking
// linearization for the rest of the hierarchy).
func (s *Snapshot) directBases(entry hir.DefEntry) []hir.DefId {
	tree := s.trees[entry.File]
	if tree == nil {
		return nil
	}
	node, ok := tree.FindBySelection(contractNodeKindOf(entry.ContractKind), entry.SelectionRange)
	if !ok {
		return nil
	}
	var out []hir.DefId
	for _, baseName := range tree.Bases(node) {
		if cands := s.prog.ResolveSymbolKindCandidates(entry.File, hir.Contract, baseName); len(cands) == 1 {
			out = append(out, cands[0].ID)
		}
	}
	return out
}

// reverseIDs returns a new slice with ids in reverse order, leaving ids
// untouched.
func reverseIDs(ids []hir.DefId) []hir.DefId {
	out := make([]hir.DefId, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// c3Merge implements the standard C3 linearization merge: repeatedly take
// the first list whose head does not occur in the tail of any list, append
// it to the result, and strip it from every list. If no list's head
// qualifies (an inconsistent hierarchy, which Solidity's own compiler would
// reject at a different layer), the first list's head is taken anyway so
// the merge always terminates rather than looping or panicking.
func c3Merge(lists [][]hir.DefId) []hir.DefId {
	var result []hir.DefId
	for {
		lists = dropEmpty(lists)
		if len(lists) == 0 {
			return result
		}
		head, idx := pickHead(lists)
		_ = idx
		result = append(result, head)
		for i := range lists {
			lists[i] = removeAll(lists[i], head)
		}
	}
}

func dropEmpty(lists [][]hir.DefId) [][]hir.DefId {
	out := lists[:0]
	for _, l := range lists {
		if len(l) > 0 {
			out = append(out, l)
		}
	}
	return out
}

func pickHead(lists [][]hir.DefId) (hir.DefId, int) {
	for i, l := range lists {
		candidate := l[0]
		if !inAnyTail(lists, candidate) {
			return candidate, i
		}
	}
	return lists[0][0], 0
}

func inAnyTail(lists [][]hir.DefId, id hir.DefId) bool {
	for _, l := range lists {
		for _, t := range l[1:] {
			if t == id {
				return true
			}
		}
	}
	return false
}

func removeAll(list []hir.DefId, id hir.DefId) []hir.DefId {
	out := list[:0]
	for _, x := range list {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// linearize computes contract id's C3 linearization, memoizing results and
// guarding against cyclic "is" declarations (which never occur in valid
// Solidity but must not hang the analyzer on malformed input).
//
// Per spec.md §9 and E2E-6: Solidity requires base contracts to be listed
// from most base-like to most derived, and its C3 merge gives priority to
// the *last*-listed base, not the first — so the direct-base list is
// reversed before merging.
func (s *Snapshot) linearize(id hir.DefId, visiting map[hir.DefId]bool) []hir.DefId {
	if l, ok := s.linearization[id]; ok {
		return l
	}
	if visiting[id] {
		return []hir.DefId{id}
	}
	visiting[id] = true
	defer delete(visiting, id)

	entry, ok := s.prog.Defs.Get(id)
	if !ok {
		return []hir.DefId{id}
	}
	bases := reverseIDs(s.directBases(entry))

	lists := make([][]hir.DefId, 0, len(bases)+1)
	for _, b := range bases {
		lists = append(lists, s.linearize(b, visiting))
	}
	lists = append(lists, append([]hir.DefId(nil), bases...))

	result := append([]hir.DefId{id}, c3Merge(lists)...)
	s.linearization[id] = result
	return result
}

// Linearization returns contract id's C3-linearized ancestry, most-derived
// (id itself) first. Returns nil if id is not a Contract-kind definition.
func (s *Snapshot) Linearization(id hir.DefId) []hir.DefId {
	entry, ok := s.prog.Defs.Get(id)
	if !ok || entry.Kind != hir.Contract {
		return nil
	}
	return append([]hir.DefId(nil), s.linearize(id, map[hir.DefId]bool{})...)
}
