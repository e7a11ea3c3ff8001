package ide

import (
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Location is a byte-range span inside a specific tracked file.
type Location struct {
	File  vfs.FileId
	Range span.Span
}

// Definition is the result of goto_definition: the target location plus
// the origin range (the span of the identifier the query was issued on,
// which an editor highlights while navigating).
type Definition struct {
	Location
	OriginRange span.Span
}

// Hover is the result of a hover query.
type Hover struct {
	Range    span.Span
	Contents string // markdown
}

// Signature describes one callable candidate for signature help.
type Signature struct {
	Label           string
	Parameters      []string
	ActiveParameter int
}

// CompletionKind loosely mirrors the LSP CompletionItemKind vocabulary,
// narrowed to what this analyzer can distinguish from hir.DefKind plus a
// couple of syntactic categories (keywords, paths) spec.md §6.4 expects a
// completions consumer to render distinctly.
type CompletionKind uint8

const (
	CompletionOther CompletionKind = iota
	CompletionContract
	CompletionFunction
	CompletionStruct
	CompletionEnum
	CompletionEvent
	CompletionError
	CompletionModifier
	CompletionVariable
	CompletionUdvt
	CompletionKeyword
	CompletionPath
)

func completionKindOf(k hir.DefKind) CompletionKind {
	switch k {
	case hir.Contract:
		return CompletionContract
	case hir.Function:
		return CompletionFunction
	case hir.Struct:
		return CompletionStruct
	case hir.Enum:
		return CompletionEnum
	case hir.Event:
		return CompletionEvent
	case hir.Error:
		return CompletionError
	case hir.Modifier:
		return CompletionModifier
	case hir.Variable:
		return CompletionVariable
	case hir.Udvt:
		return CompletionUdvt
	default:
		return CompletionOther
	}
}

// CompletionItem is one completion candidate. InsertText may be a plain
// literal or an LSP snippet (IsSnippet true) per spec.md §6.4.
type CompletionItem struct {
	Label       string
	Kind        CompletionKind
	Detail      string
	InsertText  string
	IsSnippet   bool
}

// TextEdit replaces the bytes covered by Range with NewText.
type TextEdit struct {
	Range   span.Span
	NewText string
}

// SourceChange is a multi-file edit, keyed by file so a caller (the LSP
// transport) can translate each file's byte-range edits into its own
// URI-keyed WorkspaceEdit, per spec.md §6.4.
type SourceChange struct {
	Edits map[vfs.FileId][]TextEdit
}

// SymbolInfo is one entry of a document/workspace symbol tree.
type SymbolInfo struct {
	Name           string
	Kind           hir.DefKind
	File           vfs.FileId
	Range          span.Span // the whole declaration
	SelectionRange span.Span // just the name token
	Container      string
	Children       []SymbolInfo
}

// CodeAction is one quick-fix/refactor offer tied to a diagnostic code.
type CodeAction struct {
	Title string
	Edit  *SourceChange
}
