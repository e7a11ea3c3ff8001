package hir

import (
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// ImportEntry is one resolved import directive: the parsed ImportInfo plus
// the file it was resolved to, if resolution succeeded.
type ImportEntry struct {
	Info      *parser.ImportInfo
	Target    vfs.FileId
	HasTarget bool
}

// ModuleAlias is the binding introduced by `import * as X from "..."` or
// `import "..." as X`: a name that stands for an entire imported file.
type ModuleAlias struct {
	LocalName string
	NameSpan  span.Span
	Target    vfs.FileId
	HasTarget bool
}

// ImportTable indexes one file's import directives for symbol resolution:
// plain imports (which make their target's exports ambiently visible),
// module aliases, and per-name aliased re-exports.
type ImportTable struct {
	File    vfs.FileId
	Entries []ImportEntry

	// PlainTargets are files made visible as a whole by a bare
	// `import "path";` or `import "path" as X` directive's unaliased form.
	PlainTargets []vfs.FileId

	// ModuleAliases maps a local alias name to the file it stands for.
	ModuleAliases []ModuleAlias

	// Aliases maps a locally-bound name to the (target file, original
	// name) it was imported as, from `import {A, B as C} from "path"`.
	Aliases []AliasBinding
}

// AliasBinding is one `{original [as local]}` import-list entry, resolved
// against its import directive's target file.
type AliasBinding struct {
	LocalName    string
	OriginalName string
	LocalSpan    span.Span
	Target       vfs.FileId
	HasTarget    bool
}

func buildImportTable(file vfs.FileId, tree *parser.Tree, resolve func(importString string) (vfs.FileId, bool)) *ImportTable {
	table := &ImportTable{File: file}

	for _, child := range tree.Children(tree.Root()) {
		if tree.Kind(child) != parser.KindImportDirective {
			continue
		}
		info := tree.ImportInfo(child)
		if info == nil {
			continue
		}
		target, ok := resolve(info.ImportPath)
		table.Entries = append(table.Entries, ImportEntry{Info: info, Target: target, HasTarget: ok})

		switch info.Variant {
		case parser.ImportPlain:
			if info.Alias != "" {
				table.ModuleAliases = append(table.ModuleAliases, ModuleAlias{
					LocalName: info.Alias, NameSpan: info.AliasSpan, Target: target, HasTarget: ok,
				})
			} else if ok {
				table.PlainTargets = append(table.PlainTargets, target)
			}
		case parser.ImportSourceAlias, parser.ImportGlob:
			table.ModuleAliases = append(table.ModuleAliases, ModuleAlias{
				LocalName: info.Alias, NameSpan: info.AliasSpan, Target: target, HasTarget: ok,
			})
		case parser.ImportAliases:
			for _, a := range info.Aliases {
				table.Aliases = append(table.Aliases, AliasBinding{
					LocalName: a.LocalName, OriginalName: a.OriginalName, LocalSpan: a.LocalSpan,
					Target: target, HasTarget: ok,
				})
			}
		}
	}

	return table
}
