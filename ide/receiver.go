package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/sema"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// receiverContext is the result of classifying a `qualifier.name` access
// at a cursor offset for member-aware queries (hover, completions,
// goto-definition): which contract's linearization to search, and from
// which vantage point (spec.md §4.6's receiver categories).
type receiverContext struct {
	kind        sema.ReceiverKind
	contractID  hir.DefId
	hasContract bool
}

// enclosingContractNode returns the smallest contract/library/interface
// node whose span contains offset. parser.Tree exposes no direct "node at
// offset" query, so this walks the whole tree and keeps the
// shortest-spanning match, mirroring the smallest-containing-scope
// approach scope.Scopes.Resolve already uses for locals.
func enclosingContractNode(tree *parser.Tree, offset uint32) (parser.NodeId, bool) {
	var best parser.NodeId
	var bestLen uint32 = ^uint32(0)
	tree.Walk(tree.Root(), func(id parser.NodeId) {
		switch tree.Kind(id) {
		case parser.KindContractDef, parser.KindLibraryDef, parser.KindInterfaceDef:
		default:
			return
		}
		sp := tree.Span(id)
		if !sp.ContainsInclusive(offset) {
			return
		}
		if l := sp.Len(); l < bestLen {
			best, bestLen = id, l
		}
	})
	return best, !best.IsZero()
}

// declaredTypeIdent recovers the leading type identifier of a
// KindStateVarDecl node's declaration text — e.g. "Counter" out of
// "Counter public counter;" — by re-lexing the span before the name
// token and taking its first identifier, the same span-slicing idiom
// sema.visibilityOf/paramTypeText use for the same reason (the parser
// does not retain a separate type-reference node).
func declaredTypeIdent(tree *parser.Tree, text string, node parser.NodeId) string {
	full := tree.Span(node)
	lo, hi := full.Start, full.End
	if int(hi) > len(text) {
		hi = uint32(len(text))
	}
	if int(lo) > len(text) || lo > hi {
		return ""
	}
	nameSpan := tree.NameSpan(node)
	if !nameSpan.IsZero() && nameSpan.Start >= lo && nameSpan.Start < hi {
		hi = nameSpan.Start
	}
	for _, t := range parser.Lex(text[lo:hi]) {
		if t.Kind == parser.TokIdent {
			return t.Text
		}
	}
	return ""
}

// classifyReceiver determines what kind of member-access receiver
// qualifier is at qualifierStart in file, and which contract's
// linearization a member lookup should search. It never fails outright:
// an unresolvable qualifier yields hasContract == false, and callers then
// fall back to unqualified name resolution.
//
// Recognized shapes: "this"/"super" (the enclosing contract); a bare
// contract/library/interface name; a state variable whose declared type
// is itself a known contract/library/interface name. Local-variable and
// parameter types are not tracked — spec.md's non-goal of full
// compiler-fidelity type inference stops short of that — so a qualifier
// that is a local variable of contract type falls through to "no
// contract", and the caller's plain-name fallback still offers something
// useful.
func classifyReceiver(prog *hir.Program, tree *parser.Tree, text string, file vfs.FileId, qualifier string, qualifierStart uint32) receiverContext {
	if qualifier == "this" || qualifier == "super" {
		node, ok := enclosingContractNode(tree, qualifierStart)
		if !ok {
			return receiverContext{}
		}
		name := tree.Name(node)
		for _, e := range prog.Defs.InFile(file, name) {
			if e.Kind == hir.Contract && e.SelectionRange == tree.NameSpan(node) {
				kind := sema.ReceiverThis
				if qualifier == "super" {
					kind = sema.ReceiverSuper
				}
				return receiverContext{kind: kind, contractID: e.ID, hasContract: true}
			}
		}
		return receiverContext{}
	}

	if candidates := prog.ResolveSymbolKindCandidates(file, hir.Contract, qualifier); len(candidates) == 1 {
		c := candidates[0]
		kind := sema.ReceiverContractType
		switch c.ContractKind {
		case hir.ContractKindLibrary:
			kind = sema.ReceiverLibrary
		case hir.ContractKindInterface:
			kind = sema.ReceiverInterface
		}
		return receiverContext{kind: kind, contractID: c.ID, hasContract: true}
	}

	for _, v := range prog.Defs.AllInFile(file) {
		if v.Kind != hir.Variable || v.Name != qualifier {
			continue
		}
		node, ok := tree.FindBySelection(parser.KindStateVarDecl, v.SelectionRange)
		if !ok {
			continue
		}
		typeName := declaredTypeIdent(tree, text, node)
		if typeName == "" {
			continue
		}
		if candidates := prog.ResolveSymbolKindCandidates(file, hir.Contract, typeName); len(candidates) == 1 {
			return receiverContext{kind: sema.ReceiverInstance, contractID: candidates[0].ID, hasContract: true}
		}
	}

	return receiverContext{}
}
