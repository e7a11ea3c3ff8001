package hir

import "github.com/solidity-analyzer/solidity-analyzer/vfs"

type fileName struct {
	file vfs.FileId
	name string
}

// resolveExport follows an Aliases re-export chain starting at (file,
// name): if file declares name directly, that definition is the answer;
// otherwise, if file imports name as an alias of something from another
// file, the chain is followed there. visited guards against import
// cycles.
func (p *Program) resolveExport(file vfs.FileId, name string, visited map[fileName]bool) (DefEntry, bool) {
	key := fileName{file, name}
	if visited[key] {
		return DefEntry{}, false
	}
	visited[key] = true

	if direct := p.Defs.InFile(file, name); len(direct) == 1 {
		return direct[0], true
	} else if len(direct) > 1 {
		return DefEntry{}, false // ambiguous: multiple same-named local defs
	}

	table := p.Imports[file]
	if table == nil {
		return DefEntry{}, false
	}
	for _, a := range table.Aliases {
		if a.LocalName == name && a.HasTarget {
			if found, ok := p.resolveExport(a.Target, a.OriginalName, visited); ok {
				return found, true
			}
		}
	}
	return DefEntry{}, false
}

// VisibleDefinitions returns every definition visible by simple (unqualified)
// name from file: its own declarations, the direct declarations of files it
// plain-imports, and the resolved targets of its aliased imports.
func (p *Program) VisibleDefinitions(file vfs.FileId) []DefEntry {
	out := p.Defs.AllInFile(file)

	table := p.Imports[file]
	if table == nil {
		return out
	}
	for _, target := range table.PlainTargets {
		out = append(out, p.Defs.AllInFile(target)...)
	}
	for _, a := range table.Aliases {
		if entry, ok := p.resolveExport(file, a.LocalName, map[fileName]bool{}); ok {
			out = append(out, entry)
		}
	}
	return out
}

// ResolveSymbol resolves a simple name referenced in file to a single
// definition, per the visibility rule used by VisibleDefinitions. It
// returns false if name is undefined or ambiguous (more than one
// candidate of possibly-different origin shares the name).
func (p *Program) ResolveSymbol(file vfs.FileId, name string) (DefEntry, bool) {
	candidates := p.candidatesForName(file, name)
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return DefEntry{}, false
}

// ResolveSymbolKindCandidates returns every definition of the given kind
// visible under name from file, without collapsing ambiguity — used by
// callers (overload resolution, completions) that disambiguate using
// additional context this package does not have.
func (p *Program) ResolveSymbolKindCandidates(file vfs.FileId, kind DefKind, name string) []DefEntry {
	var out []DefEntry
	for _, e := range p.candidatesForName(file, name) {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (p *Program) candidatesForName(file vfs.FileId, name string) []DefEntry {
	var out []DefEntry
	if direct := p.Defs.InFile(file, name); len(direct) > 0 {
		out = append(out, direct...)
	}

	table := p.Imports[file]
	if table == nil {
		return out
	}
	for _, target := range table.PlainTargets {
		out = append(out, p.Defs.InFile(target, name)...)
	}
	for _, a := range table.Aliases {
		if a.LocalName == name {
			if entry, ok := p.resolveExport(file, a.LocalName, map[fileName]bool{}); ok {
				out = append(out, entry)
			}
		}
	}
	return out
}

// ResolveQualifiedSymbol resolves `qualifier.name`, where qualifier is a
// module alias bound in file (`import * as qualifier from "..."` or
// `import "..." as qualifier`), to the named export of the aliased file.
func (p *Program) ResolveQualifiedSymbol(file vfs.FileId, qualifier, name string) (DefEntry, bool) {
	table := p.Imports[file]
	if table == nil {
		return DefEntry{}, false
	}
	for _, ma := range table.ModuleAliases {
		if ma.LocalName == qualifier && ma.HasTarget {
			return p.resolveExport(ma.Target, name, map[fileName]bool{})
		}
	}
	return DefEntry{}, false
}

// ResolveContractQualifiedSymbol resolves `contractName.memberName`: it
// finds a visible Contract-kind definition named contractName, then looks
// up memberName among definitions declared inside it.
func (p *Program) ResolveContractQualifiedSymbol(file vfs.FileId, contractName, memberName string) (DefEntry, bool) {
	contract, ok := DefEntry{}, false
	for _, c := range p.candidatesForName(file, contractName) {
		if c.Kind == Contract {
			contract, ok = c, true
			break
		}
	}
	if !ok {
		return DefEntry{}, false
	}

	for _, e := range p.Defs.AllInFile(contract.File) {
		if e.Container == contractName && e.Name == memberName {
			return e, true
		}
	}
	return DefEntry{}, false
}
