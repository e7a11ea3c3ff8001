package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// resolveGlobalAt resolves the qualified or bare name at offset in file to
// a project-wide hir.DefEntry, trying a qualified chain (module alias,
// receiver-classified member, or contract-qualified static member) before
// falling back to a bare-name lookup. It deliberately does not consult
// local scopes — callers that care about shadowing check those first.
func resolveGlobalAt(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) (hir.DefEntry, span.Span, bool) {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return hir.DefEntry{}, span.Span{}, false
	}
	qualifier, qualifierStart, name, nameSpan, ok := identscan.ChainAt(text, offset)
	if !ok {
		return hir.DefEntry{}, span.Span{}, false
	}
	prog, ok := snap.HIRProgram(project)
	if !ok {
		return hir.DefEntry{}, span.Span{}, false
	}
	tree, _ := snap.Parse(file)

	if qualifier != "" {
		entry, ok := resolveQualified(prog, tree, text, snap, project, file, qualifier, qualifierStart, name)
		return entry, nameSpan, ok
	}

	if argsText, isCall := callArgsTextAt(text, nameSpan.End); isCall {
		if candidates := prog.ResolveSymbolKindCandidates(file, hir.Function, name); len(candidates) > 1 {
			if semaSnap, ok := snap.SemaSnapshot(project); ok {
				outcome := semaSnap.ResolveOverload(candidates, argsText)
				if outcome.Ambiguous || outcome.Unresolved {
					return hir.DefEntry{}, nameSpan, false
				}
				return outcome.Resolved, nameSpan, true
			}
		}
	}

	entry, ok := prog.ResolveSymbol(file, name)
	return entry, nameSpan, ok
}

// callArgsTextAt reports whether the first non-whitespace byte at or after
// nameEnd is a "(" opening a call's argument list, and if so returns the
// raw text between that "(" and its matching ")". Used to recover the
// argument shapes driving overload resolution (spec.md §4.6) the same way
// SignatureHelp recovers them for an in-progress call.
func callArgsTextAt(text string, nameEnd uint32) (string, bool) {
	i := int(nameEnd)
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	if i >= len(text) || text[i] != '(' {
		return "", false
	}
	depth := 0
	for j := i; j < len(text); j++ {
		switch text[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[i+1 : j], true
			}
		}
	}
	return "", false
}
