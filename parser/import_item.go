package parser

import "github.com/solidity-analyzer/solidity-analyzer/span"

// ImportVariant distinguishes the four shapes an import directive can take.
type ImportVariant uint8

const (
	// ImportPlain is `import "path";` — the target file's whole visible-name
	// set is folded wildcard-style into the importer.
	ImportPlain ImportVariant = iota
	// ImportSourceAlias is `import "path" as Alias;` — a module alias.
	ImportSourceAlias
	// ImportGlob is `import * as Alias from "path";` — also a module alias.
	ImportGlob
	// ImportAliases is `import {A, B as C} from "path";` — explicit named
	// imports, each optionally renamed.
	ImportAliases
)

// AliasItem is one entry of an ImportAliases directive: a local name bound
// to an original name declared in the imported file.
type AliasItem struct {
	LocalName    string
	OriginalName string
	LocalSpan    span.Span
}

// ImportInfo is the parsed shape of one import directive, before resolution
// to a concrete file (resolution is the importresolver package's job).
type ImportInfo struct {
	Variant    ImportVariant
	ImportPath string // the raw string literal content, unresolved
	PathSpan   span.Span
	Alias      string // for ImportSourceAlias / ImportGlob
	AliasSpan  span.Span
	Aliases    []AliasItem // for ImportAliases
}
