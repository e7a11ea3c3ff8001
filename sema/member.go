package sema

import (
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/span"
)

// Visibility classifies a contract member's accessibility, per spec.md
// §4.8. It is derived by re-lexing the member's header text; Solidity's
// default (no explicit modifier) is Internal for both functions and state
// variables.
type Visibility uint8

const (
	VisibilityInternal Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityExternal
)

// ReceiverKind is the shape of the expression a `.member` access is
// performed on, matching the receiver categories spec.md §4.6 enumerates.
type ReceiverKind uint8

const (
	ReceiverInstance ReceiverKind = iota
	ReceiverContractType
	ReceiverSuper
	ReceiverThis
	ReceiverInterface
	ReceiverLibrary
)

// visibilityOf re-lexes entry's header text (a function/modifier's
// HeaderSpan, or a state variable's full declaration) for the visibility
// keyword, since the parser only records declarator shapes and discards
// the rest of the header as skipped tokens.
func (s *Snapshot) visibilityOf(entry hir.DefEntry) Visibility {
	tree := s.trees[entry.File]
	text := s.texts[entry.File]
	if tree == nil {
		return VisibilityInternal
	}

	var headerText string
	switch entry.Kind {
	case hir.Function, hir.Modifier:
		kind := parser.KindFunctionDef
		if entry.Kind == hir.Modifier {
			kind = parser.KindModifierDef
		}
		node, ok := tree.FindBySelection(kind, entry.SelectionRange)
		if !ok {
			return VisibilityInternal
		}
		headerText = sliceSpan(text, tree.HeaderSpan(node))
	case hir.Variable:
		node, ok := tree.FindBySelection(parser.KindStateVarDecl, entry.SelectionRange)
		if !ok {
			return VisibilityInternal
		}
		headerText = sliceSpan(text, tree.Span(node))
	default:
		return VisibilityInternal
	}

	for _, tok := range parser.Lex(headerText) {
		if tok.Kind != parser.TokIdent {
			continue
		}
		switch tok.Text {
		case "public":
			return VisibilityPublic
		case "external":
			return VisibilityExternal
		case "private":
			return VisibilityPrivate
		case "internal":
			return VisibilityInternal
		}
	}
	return VisibilityInternal
}

// sliceSpan returns the substring of text covered by sp, clamped to
// text's bounds.
func sliceSpan(text string, sp span.Span) string {
	lo, hi := sp.Start, sp.End
	if int(hi) > len(text) {
		hi = uint32(len(text))
	}
	if int(lo) > len(text) || lo > hi {
		return ""
	}
	return text[lo:hi]
}

// membersOf returns every definition directly declared inside contract
// (not inherited), in declaration order.
func (s *Snapshot) membersOf(contract hir.DefEntry) []hir.DefEntry {
	var out []hir.DefEntry
	for _, e := range s.prog.Defs.AllInFile(contract.File) {
		if e.Container == contract.Name {
			out = append(out, e)
		}
	}
	return out
}

func indexOfDef(ids []hir.DefId, target hir.DefId) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

// memberVisible applies spec.md §4.8's per-receiver-kind filter to a
// candidate member.
func memberVisible(receiver ReceiverKind, contractKind hir.ContractKind, m hir.DefEntry, vis Visibility) bool {
	if m.Kind == hir.Modifier {
		return false // never returned by value-context member access
	}
	switch receiver {
	case ReceiverThis:
		return vis == VisibilityPublic || vis == VisibilityExternal
	case ReceiverSuper:
		return vis == VisibilityPublic || vis == VisibilityInternal
	case ReceiverInstance:
		if m.Kind == hir.Variable {
			// public state vars yield a generated accessor; private/internal
			// ones are not reachable through an instance from outside.
			return vis == VisibilityPublic
		}
		return vis == VisibilityPublic || vis == VisibilityExternal
	case ReceiverContractType:
		if m.Kind == hir.Variable {
			return m.IsConstant || vis == VisibilityPublic || vis == VisibilityInternal
		}
		return vis == VisibilityPublic || vis == VisibilityExternal || vis == VisibilityInternal
	case ReceiverLibrary:
		return vis == VisibilityPublic || vis == VisibilityInternal
	case ReceiverInterface:
		return contractKind == hir.ContractKindInterface
	}
	return false
}

// ResolveMember implements spec.md §4.6's member-access dispatch for
// contract-rooted receivers: it walks contractID's C3 linearization
// (starting one past contractID itself for ReceiverSuper, matching
// "super.X" semantics) and returns the first member named name whose
// visibility is reachable from receiver's vantage point.
func (s *Snapshot) ResolveMember(contractID hir.DefId, receiver ReceiverKind, name string) (hir.DefEntry, bool) {
	lin := s.Linearization(contractID)
	if lin == nil {
		return hir.DefEntry{}, false
	}
	start := 0
	if receiver == ReceiverSuper {
		idx := indexOfDef(lin, contractID)
		if idx < 0 {
			return hir.DefEntry{}, false
		}
		start = idx + 1
	}
	for i := start; i < len(lin); i++ {
		entry, ok := s.prog.Defs.Get(lin[i])
		if !ok {
			continue
		}
		for _, m := range s.membersOf(entry) {
			if m.Name != name {
				continue
			}
			if memberVisible(receiver, entry.ContractKind, m, s.visibilityOf(m)) {
				return m, true
			}
		}
	}
	return hir.DefEntry{}, false
}

// ResolveModifierSlot looks up a modifier named name visible from
// contractID's linearization, for use in a function header's
// modifier-invocation position — the one context where Modifier-kind
// members are returned.
func (s *Snapshot) ResolveModifierSlot(contractID hir.DefId, name string) (hir.DefEntry, bool) {
	lin := s.Linearization(contractID)
	for _, cid := range lin {
		entry, ok := s.prog.Defs.Get(cid)
		if !ok {
			continue
		}
		for _, m := range s.membersOf(entry) {
			if m.Kind == hir.Modifier && m.Name == name {
				return m, true
			}
		}
	}
	return hir.DefEntry{}, false
}

// Members lists the full set of members reachable through receiver on
// contractID, one entry per distinct name (the first, most-derived
// definition wins, matching override shadowing), for completion-style
// callers that want the whole accessible surface rather than one lookup.
func (s *Snapshot) Members(contractID hir.DefId, receiver ReceiverKind) []hir.DefEntry {
	lin := s.Linearization(contractID)
	start := 0
	if receiver == ReceiverSuper {
		idx := indexOfDef(lin, contractID)
		if idx < 0 {
			return nil
		}
		start = idx + 1
	}
	seen := map[string]bool{}
	var out []hir.DefEntry
	for i := start; i < len(lin); i++ {
		entry, ok := s.prog.Defs.Get(lin[i])
		if !ok {
			continue
		}
		for _, m := range s.membersOf(entry) {
			if seen[m.Name] {
				continue
			}
			if !memberVisible(receiver, entry.ContractKind, m, s.visibilityOf(m)) {
				continue
			}
			seen[m.Name] = true
			out = append(out, m)
		}
	}
	return out
}
