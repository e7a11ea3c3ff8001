package hir

import (
	"sort"

	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Program is the project-wide HIR: every global definition plus each
// file's import table. A Program is immutable once BuildProgram returns
// it; a new Program is built whenever a file's parse tree or the
// project's import configuration changes.
type Program struct {
	Defs    *DefMap
	Imports map[vfs.FileId]*ImportTable
}

// Resolve looks up the target file for a Solidity import string written
// in importer. It is supplied by the caller (see importresolver.Resolver)
// so this package stays free of filesystem and remapping concerns.
type Resolve func(importer vfs.FileId, importString string) (vfs.FileId, bool)

// BuildProgram lowers every parsed file into the project-wide DefMap and
// import tables. files must contain only Solidity trees.
func BuildProgram(files map[vfs.FileId]*parser.Tree, resolve Resolve) *Program {
	prog := &Program{Defs: newDefMap(), Imports: make(map[vfs.FileId]*ImportTable, len(files))}

	// Iterate files in stable order so DefId assignment is deterministic
	// for identical input, independent of map iteration order.
	ids := make([]vfs.FileId, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var nextID uint32 = 1
	for _, fileID := range ids {
		tree := files[fileID]
		tree.Walk(tree.Root(), func(n parser.NodeId) {
			kind := tree.Kind(n)
			if !kind.IsDefItem() {
				return
			}
			entry := DefEntry{
				ID:             DefId(nextID),
				Kind:           defKindOf(kind),
				ContractKind:   contractKindOf(kind),
				File:           fileID,
				SelectionRange: tree.NameSpan(n),
				FullRange:      tree.Span(n),
				Name:           tree.Name(n),
				Container:      tree.ContainerName(n),
				IsConstant:     tree.IsConstant(n),
			}
			if entry.Name == "" {
				return // unnamed declarator; nothing to resolve it by
			}
			nextID++
			prog.Defs.insert(entry)
		})

		prog.Imports[fileID] = buildImportTable(fileID, tree, func(importString string) (vfs.FileId, bool) {
			return resolve(fileID, importString)
		})
	}

	return prog
}

func defKindOf(k parser.NodeKind) DefKind {
	switch k {
	case parser.KindContractDef, parser.KindLibraryDef, parser.KindInterfaceDef:
		return Contract
	case parser.KindFunctionDef:
		return Function
	case parser.KindModifierDef:
		return Modifier
	case parser.KindStructDef:
		return Struct
	case parser.KindEnumDef:
		return Enum
	case parser.KindEventDef:
		return Event
	case parser.KindErrorDef:
		return Error
	case parser.KindUdvtDef:
		return Udvt
	case parser.KindStateVarDecl:
		return Variable
	default:
		return KindInvalid
	}
}

func contractKindOf(k parser.NodeKind) ContractKind {
	switch k {
	case parser.KindLibraryDef:
		return ContractKindLibrary
	case parser.KindInterfaceDef:
		return ContractKindInterface
	default:
		return ContractKindPlain
	}
}
