package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Rename computes the multi-file edit that renames the symbol at offset
// in file to newName, per spec.md §6.2's rename. It is built directly on
// top of FindReferences: every reference (including the declaration
// itself) becomes a TextEdit replacing that occurrence's bytes with
// newName.
func Rename(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32, newName string) (SourceChange, bool) {
	refs := FindReferences(snap, project, file, offset)
	if len(refs) == 0 {
		return SourceChange{}, false
	}
	edits := make(map[vfs.FileId][]TextEdit)
	for _, r := range refs {
		edits[r.File] = append(edits[r.File], TextEdit{Range: r.Range, NewText: newName})
	}
	return SourceChange{Edits: edits}, true
}
