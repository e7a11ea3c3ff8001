package ide

import (
	"sort"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/refindex"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// FindReferences resolves the symbol at offset in file (a local binding or
// a global definition) and returns every reference to it, per spec.md
// §6.2's find_references. A local binding never escapes its declaring
// function, so its references are gathered directly via the scope's own
// function-local search rather than refindex, which is HIR/project-scoped.
func FindReferences(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) []refindex.Reference {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return nil
	}

	if scopes := snap.LocalScopes(file); scopes != nil {
		if qualifier, _, name, _, ok := identscan.ChainAt(text, offset); ok && qualifier == "" {
			if local, ok := scopes.Resolve(offset, name); ok {
				out := []refindex.Reference{{File: file, Range: local.DefinitionRange}}
				for _, sp := range scopes.References(text, local) {
					out = append(out, refindex.Reference{File: file, Range: sp})
				}
				sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
				return out
			}
		}
	}

	entry, _, ok := resolveGlobalAt(snap, project, file, offset)
	if !ok {
		return nil
	}
	refs, ok := snap.FindReferences(project, entry.ID)
	if !ok {
		return nil
	}
	return refs
}
