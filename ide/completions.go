package ide

import (
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

var soliditySnippetKeywords = []string{
	"contract", "library", "interface", "function", "modifier", "struct",
	"enum", "event", "error", "constructor", "mapping", "memory", "storage",
	"calldata", "public", "private", "internal", "external", "view", "pure",
	"payable", "override", "virtual", "returns", "import", "pragma",
}

// Completions returns context-sensitive completion candidates at offset
// in file (spec.md §6.2, supplemented per SPEC_FULL.md's "sa-ide-completion"
// note): member-filtered candidates after a ".", path/contract-shaped
// candidates after import/inheritance keywords, and the full visible-name
// set plus keywords otherwise.
func Completions(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) []CompletionItem {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return nil
	}

	qualifier, qualifierStart, prefix, _, ok := identscan.ChainAt(text, offset)
	if ok && qualifier != "" {
		return memberCompletions(snap, project, file, qualifier, qualifierStart, prefix)
	}

	if kw, ok := precedingKeyword(text, offset); ok {
		switch kw {
		case "import":
			return pathCompletions(snap, file)
		case "is", "new":
			return contractShapedCompletions(snap, project, file, prefix)
		}
	}

	return generalCompletions(snap, project, file, offset, prefix)
}

func memberCompletions(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, qualifier string, qualifierStart uint32, prefix string) []CompletionItem {
	text, _ := snap.VFS().Text(file)
	prog, ok := snap.HIRProgram(project)
	if !ok {
		return nil
	}
	tree, _ := snap.Parse(file)
	if tree == nil {
		return nil
	}

	rc := classifyReceiver(prog, tree, text, file, qualifier, qualifierStart)
	if !rc.hasContract {
		return moduleQualifierCompletions(prog, file, qualifier, prefix)
	}
	semaSnap, ok := snap.SemaSnapshot(project)
	if !ok {
		return nil
	}
	var out []CompletionItem
	for _, m := range semaSnap.Members(rc.contractID, rc.kind) {
		if !strings.HasPrefix(m.Name, prefix) {
			continue
		}
		out = append(out, CompletionItem{
			Label:      m.Name,
			Kind:       completionKindOf(m.Kind),
			Detail:     m.Container,
			InsertText: m.Name,
		})
	}
	return out
}

// moduleQualifierCompletions lists the exported names of a module-alias
// qualifier (`import * as Q from "..."` / `import "..." as Q`), since
// those do not participate in C3 linearization/member visibility.
func moduleQualifierCompletions(prog *hir.Program, file vfs.FileId, qualifier, prefix string) []CompletionItem {
	table := prog.Imports[file]
	if table == nil {
		return nil
	}
	for _, ma := range table.ModuleAliases {
		if ma.LocalName != qualifier || !ma.HasTarget {
			continue
		}
		var out []CompletionItem
		for _, e := range prog.Defs.AllInFile(ma.Target) {
			if !strings.HasPrefix(e.Name, prefix) {
				continue
			}
			out = append(out, CompletionItem{Label: e.Name, Kind: completionKindOf(e.Kind), InsertText: e.Name})
		}
		return out
	}
	return nil
}

func pathCompletions(snap *db.Snapshot, file vfs.FileId) []CompletionItem {
	currentPath, ok := snap.VFS().Path(file)
	if !ok {
		return nil
	}
	dir := currentPath.Dir()
	var out []CompletionItem
	for _, id := range snap.VFS().Files() {
		if id == file {
			continue
		}
		kind, ok := snap.VFS().Kind(id)
		if !ok || kind != vfs.LanguageSolidity {
			continue
		}
		p, ok := snap.VFS().Path(id)
		if !ok {
			continue
		}
		rel, ok := p.RelativeTo(dir)
		if !ok {
			rel = p.String()
		} else {
			rel = "./" + rel
		}
		out = append(out, CompletionItem{Label: rel, Kind: CompletionPath, InsertText: rel})
	}
	return out
}

func contractShapedCompletions(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, prefix string) []CompletionItem {
	prog, ok := snap.HIRProgram(project)
	if !ok {
		return nil
	}
	var out []CompletionItem
	for _, e := range prog.VisibleDefinitions(file) {
		if e.Kind != hir.Contract || !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		out = append(out, CompletionItem{Label: e.Name, Kind: completionKindOf(e.Kind), InsertText: e.Name})
	}
	return out
}

func generalCompletions(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32, prefix string) []CompletionItem {
	var out []CompletionItem
	seen := map[string]bool{}

	if scopes := snap.LocalScopes(file); scopes != nil {
		for _, l := range scopes.All() {
			if !l.EnclosingScopeRange.ContainsInclusive(offset) || offset < l.DefinitionRange.Start {
				continue
			}
			if !strings.HasPrefix(l.Name, prefix) || seen[l.Name] {
				continue
			}
			seen[l.Name] = true
			out = append(out, CompletionItem{Label: l.Name, Kind: CompletionVariable, Detail: l.Kind.String(), InsertText: l.Name})
		}
	}

	if prog, ok := snap.HIRProgram(project); ok {
		for _, e := range prog.VisibleDefinitions(file) {
			if !strings.HasPrefix(e.Name, prefix) || seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			out = append(out, CompletionItem{Label: e.Name, Kind: completionKindOf(e.Kind), Detail: e.Container, InsertText: e.Name})
		}
	}

	for _, kw := range soliditySnippetKeywords {
		if strings.HasPrefix(kw, prefix) && !seen[kw] {
			seen[kw] = true
			out = append(out, CompletionItem{Label: kw, Kind: CompletionKeyword, InsertText: kw})
		}
	}

	return out
}

// precedingKeyword returns the nearest preceding identifier-shaped token
// before offset if it immediately precedes (modulo whitespace) the
// in-progress word at offset, used to detect import/inheritance contexts
// ("import <cursor>", "contract X is <cursor>").
func precedingKeyword(text string, offset uint32) (string, bool) {
	if int(offset) > len(text) {
		return "", false
	}
	toks := parser.Lex(text[:offset])
	i := len(toks) - 1
	for i >= 0 && (toks[i].Kind == parser.TokComment || toks[i].Kind == parser.TokEOF) {
		i--
	}
	if i < 0 {
		return "", false
	}
	if toks[i].Kind == parser.TokIdent && toks[i].Span.End == offset {
		// The in-progress word itself ("contract X is Fo<cursor>"): the
		// keyword, if any, is the token before it.
		i--
		for i >= 0 && toks[i].Kind == parser.TokComment {
			i--
		}
	}
	if i >= 0 && toks[i].Kind == parser.TokString {
		// Typing inside an in-progress import path's string literal: the
		// keyword that matters is the one before the string started.
		i--
		for i >= 0 && (toks[i].Kind == parser.TokComment || toks[i].Kind == parser.TokEOF) {
			i--
		}
	}
	if i < 0 || toks[i].Kind != parser.TokIdent {
		return "", false
	}
	switch toks[i].Text {
	case "import", "is", "new":
		return toks[i].Text, true
	}
	return "", false
}
