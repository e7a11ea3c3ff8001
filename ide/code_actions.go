package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/diag"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// CodeActions offers quick fixes for diagnostics it recognizes, per
// spec.md §6.2's code_actions. Per SPEC_FULL.md's supplemented-features
// note, this stays bounded to what HIR/sema can derive on their own —
// sa-flycheck-style external-compiler code actions remain out of scope
// (spec.md §1's Non-goals).
func CodeActions(snap *db.Snapshot, file vfs.FileId, diagnostics []diag.Diagnostic) []CodeAction {
	var out []CodeAction
	for _, d := range diagnostics {
		switch d.Code() {
		case "missing-override":
			out = append(out, CodeAction{
				Title: "Add override specifier",
				Edit: &SourceChange{Edits: map[vfs.FileId][]TextEdit{
					file: {{Range: d.Span(), NewText: "override "}},
				}},
			})
		}
	}
	return out
}
