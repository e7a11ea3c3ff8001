package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// DocumentSymbols returns file's definitions as a two-level outline tree:
// top-level contracts/libraries/interfaces/structs/enums/etc. with their
// members nested underneath, per spec.md §6.2's document_symbols.
func DocumentSymbols(snap *db.Snapshot, project db.ProjectId, file vfs.FileId) []SymbolInfo {
	prog, ok := snap.HIRProgram(project)
	if !ok {
		return nil
	}
	entries := prog.Defs.AllInFile(file)

	byContainer := make(map[string][]hir.DefEntry)
	var top []hir.DefEntry
	for _, e := range entries {
		if e.Container == "" {
			top = append(top, e)
		} else {
			byContainer[e.Container] = append(byContainer[e.Container], e)
		}
	}

	var out []SymbolInfo
	for _, e := range top {
		sym := symbolOf(e)
		for _, m := range byContainer[e.Name] {
			sym.Children = append(sym.Children, symbolOf(m))
		}
		out = append(out, sym)
	}
	return out
}

// WorkspaceSymbols returns every project-wide definition whose name
// contains query, per spec.md §6.2's workspace_symbols.
func WorkspaceSymbols(snap *db.Snapshot, project db.ProjectId, query string) []SymbolInfo {
	var out []SymbolInfo
	for _, e := range snap.SymbolSearch(project, query) {
		out = append(out, symbolOf(e))
	}
	return out
}

func symbolOf(e hir.DefEntry) SymbolInfo {
	return SymbolInfo{
		Name:           e.Name,
		Kind:           e.Kind,
		File:           e.File,
		Range:          e.FullRange,
		SelectionRange: e.SelectionRange,
		Container:      e.Container,
	}
}
