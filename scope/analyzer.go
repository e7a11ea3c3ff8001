package scope

import (
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/span"
)

// introducesScope reports whether k introduces a new lexical scope, per
// spec.md §4.4: a function body, a nested block, an unchecked block, each
// branch of if/for/while/do-while/try-catch, and a catch clause body.
func introducesScope(k parser.NodeKind) bool {
	switch k {
	case parser.KindBlock, parser.KindUncheckedBlock,
		parser.KindIfThenScope, parser.KindIfElseScope,
		parser.KindForScope, parser.KindWhileScope, parser.KindDoWhileScope,
		parser.KindTryScope, parser.KindCatchScope:
		return true
	}
	return false
}

// Scopes is the set of local-variable bindings for one Solidity file,
// derived from its parser.Tree. A Scopes value is immutable once built and
// intended to be cached per (file, parse revision) by the query database.
type Scopes struct {
	locals []LocalDefAt
}

// Build walks every function-like definition in tree (function, modifier,
// constructor, fallback, receive) and collects its parameter, named-return,
// and block-local bindings into a flat, file-wide scope set.
//
// A flat set is sound here even though scopes nest arbitrarily deep:
// EnclosingScopeRange disambiguates lookups, and two functions' ranges never
// overlap, so there is no need to key bindings by their owning function.
func Build(tree *parser.Tree) *Scopes {
	s := &Scopes{}
	tree.Walk(tree.Root(), func(id parser.NodeId) {
		switch tree.Kind(id) {
		case parser.KindFunctionDef, parser.KindModifierDef,
			parser.KindConstructorDef, parser.KindFallbackDef, parser.KindReceiveDef:
			s.collectFunction(tree, id)
		}
	})
	return s
}

// collectFunction records a function-like node's parameters and named
// returns (both visible across the full function range, including its
// header) and then recurses into its body for block-scoped locals.
func (s *Scopes) collectFunction(tree *parser.Tree, fn parser.NodeId) {
	full := tree.Span(fn)
	var body parser.NodeId
	seenParams := false
	for _, c := range tree.Children(fn) {
		switch tree.Kind(c) {
		case parser.KindParameterList:
			kind := Parameter
			if seenParams {
				kind = NamedReturn // the second KindParameterList child is "returns (...)"
			}
			seenParams = true
			for _, p := range tree.Children(c) {
				name := tree.Name(p)
				if name == "" {
					continue
				}
				s.locals = append(s.locals, LocalDefAt{LocalDef: LocalDef{
					Name: name, Kind: kind,
					DefinitionRange:     tree.NameSpan(p),
					EnclosingScopeRange: full,
				}})
			}
		case parser.KindBlock:
			body = c
		}
	}
	if !body.IsZero() {
		s.collectBlock(tree, body)
	}
}

// collectBlock recurses into a scope-introducing node, recording
// KindVarDeclStmt/KindTupleVarDeclStmt locals it directly contains (scoped
// to that node's own range) and try/catch binding lists, then descending
// into any nested scopes.
func (s *Scopes) collectBlock(tree *parser.Tree, scopeNode parser.NodeId) {
	scopeRange := tree.Span(scopeNode)

	// try/catch clauses bind their returns/error params directly on the
	// scope node itself (see parser.parseTryStmt), not via a child stmt.
	names, spans := tree.Names(scopeNode), tree.NameSpans(scopeNode)
	for i, n := range names {
		if n == "" {
			continue
		}
		s.locals = append(s.locals, LocalDefAt{LocalDef: LocalDef{
			Name: n, Kind: Local,
			DefinitionRange:     spans[i],
			EnclosingScopeRange: scopeRange,
		}})
	}

	var walk func(parser.NodeId)
	walk = func(id parser.NodeId) {
		for _, c := range tree.Children(id) {
			switch tree.Kind(c) {
			case parser.KindVarDeclStmt:
				if name := tree.Name(c); name != "" {
					s.locals = append(s.locals, LocalDefAt{LocalDef: LocalDef{
						Name: name, Kind: Local,
						DefinitionRange:     tree.NameSpan(c),
						EnclosingScopeRange: scopeRange,
					}})
				}
			case parser.KindTupleVarDeclStmt:
				tnames, tspans := tree.Names(c), tree.NameSpans(c)
				for i, n := range tnames {
					s.locals = append(s.locals, LocalDefAt{LocalDef: LocalDef{
						Name: n, Kind: Local,
						DefinitionRange:     tspans[i],
						EnclosingScopeRange: scopeRange,
					}})
				}
			default:
				if introducesScope(tree.Kind(c)) {
					s.collectBlock(tree, c)
					continue
				}
				walk(c)
			}
		}
	}
	walk(scopeNode)
}

// LocalDefAt pairs a LocalDef with itself; it exists so callers can compare
// two resolution results for identity (Go structs of identical fields
// compare equal by value, which is exactly what "same binding" means here
// since LocalDefs are never mutated after Build).
type LocalDefAt struct {
	LocalDef
}

// Resolve implements spec.md §4.4's resolution rule: among every LocalDef
// named name whose EnclosingScopeRange contains offset (or whose
// DefinitionRange itself contains offset — covering the declarator's own
// name token) and whose DefinitionRange starts at or before offset, return
// the one with the smallest EnclosingScopeRange. Ties (equal-width scopes)
// resolve to the last one collected, which is always the most recently
// opened nested scope for a well-formed tree.
func (s *Scopes) Resolve(offset uint32, name string) (LocalDef, bool) {
	var best LocalDef
	var bestLen uint32
	found := false
	for _, l := range s.locals {
		if l.Name != name {
			continue
		}
		if l.DefinitionRange.Start > offset {
			continue
		}
		if !l.EnclosingScopeRange.ContainsInclusive(offset) && !l.DefinitionRange.ContainsInclusive(offset) {
			continue
		}
		if !found || l.EnclosingScopeRange.Len() <= bestLen {
			best = l.LocalDef
			bestLen = l.EnclosingScopeRange.Len()
			found = true
		}
	}
	return best, found
}

// All returns every LocalDef in the file, in collection order.
func (s *Scopes) All() []LocalDef {
	out := make([]LocalDef, len(s.locals))
	for i, l := range s.locals {
		out[i] = l.LocalDef
	}
	return out
}

// References returns the byte ranges of every identifier token within
// def's EnclosingScopeRange, excluding its own declarator, that resolves
// (per Resolve) back to def, implementing the reference-collection half
// of §4.4: walk expressions, and at every identifier whose text matches,
// re-run the resolver.
func (s *Scopes) References(text string, def LocalDef) []span.Span {
	var out []span.Span
	lo, hi := def.EnclosingScopeRange.Start, def.EnclosingScopeRange.End
	if int(hi) > len(text) {
		hi = uint32(len(text))
	}
	for _, tok := range parser.Lex(text[lo:hi]) {
		if tok.Kind != parser.TokIdent || tok.Text != def.Name {
			continue
		}
		offset := tok.Span.Start + lo
		useRange := span.New(offset, tok.Span.End+lo)
		if useRange == def.DefinitionRange {
			continue
		}
		if resolved, ok := s.Resolve(offset, def.Name); ok && resolved == def {
			out = append(out, useRange)
		}
	}
	return out
}
