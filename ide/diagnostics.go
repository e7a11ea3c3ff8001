package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/diag"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Diagnostics returns every diagnostic known for file at this snapshot's
// revision, merging the parser's output with whatever the (currently
// diagnostic-free) sema layer contributes in the future, so a caller
// always has one place to pull a file's diagnostics from rather than
// reading parse and sema results separately — mirroring how diag.Collector
// merges issues contributed by multiple phases within a single pass.
func Diagnostics(snap *db.Snapshot, file vfs.FileId) []diag.Diagnostic {
	_, parseDiags := snap.Parse(file)
	out := make([]diag.Diagnostic, len(parseDiags))
	copy(out, parseDiags)
	return out
}
