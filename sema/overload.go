package sema

import (
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
)

// argShape is the coarse classification assigned to one call-site argument
// token group, derived purely by re-lexing the argument's text (there is no
// expression AST to walk). It deliberately collapses Solidity's full type
// lattice down to the handful of shapes spec.md §4.6 asks overload
// resolution to distinguish.
type argShape uint8

const (
	shapeUnknown argShape = iota
	shapeNumber
	shapeAddress
	shapeString
	shapeBool
	shapeNamed // "{x: ...}" named-argument call; forces an ambiguous outcome
)

// classifyArg inspects the token text of a single call argument and
// returns its argShape.
func classifyArg(text string) argShape {
	text = strings.TrimSpace(text)
	if text == "" {
		return shapeUnknown
	}
	if strings.HasPrefix(text, "{") {
		return shapeNamed
	}
	toks := parser.Lex(text)
	if len(toks) == 0 {
		return shapeUnknown
	}
	first := toks[0]
	switch {
	case first.Kind == parser.TokString:
		return shapeString
	case first.Kind == parser.TokNumber:
		if strings.HasPrefix(first.Text, "0x") && len(first.Text) == 42 {
			return shapeAddress
		}
		return shapeNumber
	case first.Text == "true" || first.Text == "false":
		return shapeBool
	}
	return shapeUnknown
}

// paramShape maps a Solidity elementary type name (the first identifier of
// a parameter's type text) to the argShape a compatible call argument must
// have. Unrecognized or compound types (structs, mappings, arrays of
// non-elementary types) fall back to shapeUnknown, which matches anything
// -- overload resolution degrades to arity-only matching for those.
func paramShape(typeText string) argShape {
	typeText = strings.TrimSpace(typeText)
	first := strings.Fields(typeText)
	if len(first) == 0 {
		return shapeUnknown
	}
	switch {
	case strings.HasPrefix(first[0], "address"):
		return shapeAddress
	case first[0] == "bool":
		return shapeBool
	case first[0] == "string", strings.HasPrefix(first[0], "bytes"):
		return shapeString
	case strings.HasPrefix(first[0], "uint"), strings.HasPrefix(first[0], "int"):
		return shapeNumber
	}
	return shapeUnknown
}

// paramTypeText returns a KindParameter node's declared type, i.e. its
// full group text with the trailing name token (if any) stripped.
func paramTypeText(text string, tree *parser.Tree, param parser.NodeId) string {
	full := tree.Span(param)
	lo, hi := full.Start, full.End
	if int(hi) > len(text) {
		hi = uint32(len(text))
	}
	if int(lo) > len(text) {
		return ""
	}
	name := tree.NameSpan(param)
	if !name.IsZero() && name.Start >= full.Start && name.End <= full.End && name.Start < hi {
		hi = name.Start
	}
	return strings.TrimSpace(text[lo:hi])
}

// OverloadOutcome is the result of resolving one call expression's callee
// among the candidate functions sharing its name.
type OverloadOutcome struct {
	// Resolved is the single matching candidate, valid only if Ambiguous
	// and Unresolved are both false.
	Resolved hir.DefEntry
	// Ambiguous is true when more than one candidate matches equally well
	// (including when the call uses named arguments, which this analyzer
	// does not attempt to disambiguate positionally).
	Ambiguous bool
	// Unresolved is true when no candidate's arity and argument shapes are
	// compatible with the call.
	Unresolved bool
}

// ResolveOverload picks the best candidate in candidates (every DefEntry
// named funcName visible at the call site) for a call whose parenthesized
// argument list's raw text is argsText, using arity first and then
// elementary-type shape compatibility, per spec.md §4.6 rules 2-4.
func (s *Snapshot) ResolveOverload(candidates []hir.DefEntry, argsText string) OverloadOutcome {
	args := splitArgsTopLevel(argsText)
	for _, a := range args {
		if classifyArg(a) == shapeNamed {
			return OverloadOutcome{Ambiguous: true}
		}
	}
	shapes := make([]argShape, len(args))
	for i, a := range args {
		shapes[i] = classifyArg(a)
	}

	var byArity []hir.DefEntry
	for _, c := range candidates {
		params := s.functionParams(c)
		if len(params) == len(args) {
			byArity = append(byArity, c)
		}
	}
	if len(byArity) == 0 {
		return OverloadOutcome{Unresolved: true}
	}
	if len(byArity) == 1 {
		return OverloadOutcome{Resolved: byArity[0]}
	}

	var matches []hir.DefEntry
	for _, c := range byArity {
		params := s.functionParams(c)
		if paramShapesCompatible(s, c, params, shapes) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return OverloadOutcome{Unresolved: true}
	case 1:
		return OverloadOutcome{Resolved: matches[0]}
	default:
		return OverloadOutcome{Ambiguous: true}
	}
}

func paramShapesCompatible(s *Snapshot, fn hir.DefEntry, params []parser.NodeId, shapes []argShape) bool {
	tree := s.trees[fn.File]
	text := s.texts[fn.File]
	for i, p := range params {
		pshape := paramShape(paramTypeText(text, tree, p))
		ashape := shapes[i]
		if pshape == shapeUnknown || ashape == shapeUnknown {
			continue // no usable signal: treat as compatible
		}
		if pshape != ashape {
			return false
		}
	}
	return true
}

// functionParams returns fn's parameter-list children (not its "returns"
// list), or nil if fn's syntax cannot be recovered.
func (s *Snapshot) functionParams(fn hir.DefEntry) []parser.NodeId {
	tree := s.trees[fn.File]
	if tree == nil {
		return nil
	}
	node, ok := tree.FindBySelection(parser.KindFunctionDef, fn.SelectionRange)
	if !ok {
		return nil
	}
	for _, c := range tree.Children(node) {
		if tree.Kind(c) == parser.KindParameterList {
			return tree.Children(c)
		}
	}
	return nil
}

// splitArgsTopLevel splits a call's parenthesized argument text on
// top-level commas, ignoring commas nested inside (), [], or {}. An empty
// or whitespace-only argsText yields zero arguments.
func splitArgsTopLevel(argsText string) []string {
	argsText = strings.TrimSpace(argsText)
	if argsText == "" {
		return nil
	}
	var out []string
	depth := 0
	last := 0
	for i, r := range argsText {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, argsText[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, argsText[last:])
	return out
}
