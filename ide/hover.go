package ide

import (
	"fmt"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/scope"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Hover returns markdown-formatted information about the symbol at
// offset in file, per spec.md §6.2's hover.
func Hover(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) (Hover, bool) {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return Hover{}, false
	}

	if scopes := snap.LocalScopes(file); scopes != nil {
		if qualifier, _, name, nameSpan, ok := identscan.ChainAt(text, offset); ok && qualifier == "" {
			if local, ok := scopes.Resolve(offset, name); ok {
				return Hover{Range: nameSpan, Contents: localHoverText(local)}, true
			}
		}
	}

	entry, originRange, ok := resolveGlobalAt(snap, project, file, offset)
	if !ok {
		return Hover{}, false
	}
	contents := fmt.Sprintf("```solidity\n%s %s\n```", entry.Kind.String(), entry.Name)
	if entry.Container != "" {
		contents += fmt.Sprintf("\n\nmember of `%s`", entry.Container)
	}
	return Hover{Range: originRange, Contents: contents}, true
}

func localHoverText(local scope.LocalDef) string {
	return fmt.Sprintf("```solidity\n%s %s\n```", local.Kind.String(), local.Name)
}
