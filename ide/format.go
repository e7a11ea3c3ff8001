package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// FormatDocument is a documented no-op: spec.md §1 scopes a Solidity
// formatter out of the core entirely (it is an external collaborator
// concern, like the type checker), so this always reports "no edit"
// rather than reformatting anything itself.
func FormatDocument(snap *db.Snapshot, file vfs.FileId) (TextEdit, bool) {
	return TextEdit{}, false
}
