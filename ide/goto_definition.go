package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/identscan"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// GotoDefinition resolves the identifier or qualified chain at offset in
// file to the definition it refers to, per spec.md §6.2's
// goto_definition. It tries, in order: a local (parameter/named-return/
// variable) binding, a qualified `Q.name` chain, then a bare name.
func GotoDefinition(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) (Definition, bool) {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return Definition{}, false
	}

	if scopes := snap.LocalScopes(file); scopes != nil {
		if qualifier, _, name, nameSpan, ok := identscan.ChainAt(text, offset); ok && qualifier == "" {
			if local, ok := scopes.Resolve(offset, name); ok {
				return Definition{
					Location:    Location{File: file, Range: local.DefinitionRange},
					OriginRange: nameSpan,
				}, true
			}
		}
	}

	entry, originRange, ok := resolveGlobalAt(snap, project, file, offset)
	if !ok {
		return Definition{}, false
	}
	return Definition{
		Location:    Location{File: entry.File, Range: entry.SelectionRange},
		OriginRange: originRange,
	}, true
}

// resolveQualified resolves a `qualifier.name` chain: a module alias, the
// receiver-classified contract's member set (via sema, when available),
// or a `contractName.memberName` static reference.
func resolveQualified(prog *hir.Program, tree *parser.Tree, text string, snap *db.Snapshot, project db.ProjectId, file vfs.FileId, qualifier string, qualifierStart uint32, name string) (hir.DefEntry, bool) {
	if entry, ok := prog.ResolveQualifiedSymbol(file, qualifier, name); ok {
		return entry, true
	}

	if tree != nil {
		rc := classifyReceiver(prog, tree, text, file, qualifier, qualifierStart)
		if rc.hasContract {
			if semaSnap, ok := snap.SemaSnapshot(project); ok {
				if entry, ok := semaSnap.ResolveMember(rc.contractID, rc.kind, name); ok {
					return entry, true
				}
			}
		}
	}

	return prog.ResolveContractQualifiedSymbol(file, qualifier, name)
}
