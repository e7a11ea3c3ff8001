package refindex

import (
	"sort"

	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/scope"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Reference is one usage site of a definition.
type Reference struct {
	File  vfs.FileId
	Range span.Span
}

// FindReferences returns every reference to def across every file in
// files/texts, deduplicated and sorted by (File, Range.Start). It always
// includes def's own declaration (spec.md §8 invariant 8), since the
// declarator's own name token is itself an identifier occurrence that
// resolves back to def.
func FindReferences(prog *hir.Program, files map[vfs.FileId]*parser.Tree, texts map[vfs.FileId]string, def hir.DefEntry) []Reference {
	seen := make(map[Reference]bool)
	var out []Reference
	add := func(r Reference) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	for file, tree := range files {
		if tree == nil {
			continue
		}
		text := texts[file]
		scopes := scope.Build(tree)
		dotQualified := identscan.DotQualifiedRanges(text)

		for _, name := range candidateNames(prog, file, def) {
			for _, r := range identscan.IdentifierRanges(text, name) {
				if dotQualified[r] {
					continue
				}
				if _, shadowed := scopes.Resolve(r.Start, name); shadowed {
					continue
				}
				add(Reference{File: file, Range: r})
			}
		}

		for _, r := range qualifierPassRanges(prog, file, text, scopes, def) {
			add(Reference{File: file, Range: r})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// candidateNames returns every bare identifier spelling that resolves
// unambiguously to def from file: def's own name (if file is file itself,
// plain-imports def's file, or holds an Aliases binding chasing to def),
// per spec.md §4.7.2. Ambiguous imports (spec.md E2E-4) naturally drop out
// here because hir.Program.ResolveSymbol itself returns false for them.
func candidateNames(prog *hir.Program, file vfs.FileId, def hir.DefEntry) []string {
	names := map[string]bool{def.Name: true}
	if table := prog.Imports[file]; table != nil {
		for _, a := range table.Aliases {
			names[a.LocalName] = true
		}
	}
	var out []string
	for n := range names {
		resolved, ok := prog.ResolveSymbol(file, n)
		if ok && resolved.ID == def.ID {
			out = append(out, n)
		}
	}
	return out
}

// qualifierPassRanges implements spec.md §4.7 step 3: `Q.name` chains
// where Q is a module alias or the definition's containing contract name,
// both reachable from file and both resolving to def.
func qualifierPassRanges(prog *hir.Program, file vfs.FileId, text string, scopes *scope.Scopes, def hir.DefEntry) []span.Span {
	var out []span.Span
	chains := identscan.Chains(text)

	table := prog.Imports[file]
	if table != nil {
		for _, ma := range table.ModuleAliases {
			if !ma.HasTarget {
				continue
			}
			resolved, ok := prog.ResolveQualifiedSymbol(file, ma.LocalName, def.Name)
			if !ok || resolved.ID != def.ID {
				continue
			}
			out = append(out, matchingChains(chains, ma.LocalName, def.Name, scopes)...)
		}
	}

	if def.Container != "" {
		resolved, ok := prog.ResolveContractQualifiedSymbol(file, def.Container, def.Name)
		if ok && resolved.ID == def.ID {
			out = append(out, matchingChains(chains, def.Container, def.Name, scopes)...)
		}
	}

	return out
}

// matchingChains filters chains to those whose immediate qualifier and
// final name match, skipping any whose qualifier is shadowed by a local
// binding at the qualifier's offset (spec.md §4.7 step 3's "skip if Q is
// shadowed locally... or is itself a local def").
func matchingChains(chains []identscan.Chain, qualifier, name string, scopes *scope.Scopes) []span.Span {
	var out []span.Span
	for _, c := range chains {
		imm, ok := c.ImmediateQualifier()
		if !ok || imm != qualifier || c.Name != name {
			continue
		}
		if _, shadowed := scopes.Resolve(c.QualifierStart, qualifier); shadowed {
			continue
		}
		out = append(out, c.NameSpan)
	}
	return out
}
