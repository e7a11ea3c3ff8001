package lspserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/ide"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

//nolint:nilnil // LSP protocol: nil result means "nothing found" across these handlers.

func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	def, ok := ide.GotoDefinition(snap, project, id, offset)
	if !ok {
		return nil, nil
	}
	return &protocol.Location{
		URI:   s.uriFor(snap, def.Location.File),
		Range: toLSPRange(snap, def.Location.File, def.Location.Range),
	}, nil
}

func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	refs := ide.FindReferences(snap, project, id, offset)
	out := make([]protocol.Location, 0, len(refs))
	for _, r := range refs {
		out = append(out, protocol.Location{
			URI:   s.uriFor(snap, r.File),
			Range: toLSPRange(snap, r.File, r.Range),
		})
	}
	return out, nil
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	h, ok := ide.Hover(snap, project, id, offset)
	if !ok {
		return nil, nil
	}
	r := toLSPRange(snap, id, h.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: h.Contents},
		Range:    &r,
	}, nil
}

func (s *Server) textDocumentSignatureHelp(_ *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	sigs, ok := ide.SignatureHelp(snap, project, id, offset)
	if !ok || len(sigs) == 0 {
		return nil, nil
	}
	infos := make([]protocol.SignatureInformation, len(sigs))
	for i, sig := range sigs {
		params := make([]protocol.ParameterInformation, len(sig.Parameters))
		for j, p := range sig.Parameters {
			params[j] = protocol.ParameterInformation{Label: p}
		}
		infos[i] = protocol.SignatureInformation{Label: sig.Label, Parameters: params}
	}
	activeSig := protocol.UInteger(0)
	activeParam := protocol.UInteger(sigs[0].ActiveParameter)
	return &protocol.SignatureHelp{
		Signatures:      infos,
		ActiveSignature: &activeSig,
		ActiveParameter: &activeParam,
	}, nil
}

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	items := ide.Completions(snap, project, id, offset)
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		kind := completionItemKind(it.Kind)
		format := protocol.InsertTextFormatPlainText
		if it.IsSnippet {
			format = protocol.InsertTextFormatSnippet
		}
		item := protocol.CompletionItem{
			Label:            it.Label,
			Kind:             &kind,
			InsertText:       strPtr(it.InsertText),
			InsertTextFormat: &format,
		}
		if it.Detail != "" {
			item.Detail = strPtr(it.Detail)
		}
		out = append(out, item)
	}
	return out, nil
}

func completionItemKind(k ide.CompletionKind) protocol.CompletionItemKind {
	switch k {
	case ide.CompletionContract:
		return protocol.CompletionItemKindClass
	case ide.CompletionFunction:
		return protocol.CompletionItemKindFunction
	case ide.CompletionStruct:
		return protocol.CompletionItemKindStruct
	case ide.CompletionEnum:
		return protocol.CompletionItemKindEnum
	case ide.CompletionEvent:
		return protocol.CompletionItemKindEvent
	case ide.CompletionError:
		return protocol.CompletionItemKindConstructor
	case ide.CompletionModifier:
		return protocol.CompletionItemKindOperator
	case ide.CompletionVariable:
		return protocol.CompletionItemKindVariable
	case ide.CompletionUdvt:
		return protocol.CompletionItemKindTypeParameter
	case ide.CompletionKeyword:
		return protocol.CompletionItemKindKeyword
	case ide.CompletionPath:
		return protocol.CompletionItemKindFile
	default:
		return protocol.CompletionItemKindText
	}
}

func (s *Server) textDocumentRename(_ *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset, ok := offsetAt(snap, id, params.Position)
	if !ok {
		return nil, nil
	}
	change, ok := ide.Rename(snap, project, id, offset, params.NewName)
	if !ok {
		return nil, nil
	}
	changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(change.Edits))
	for file, edits := range change.Edits {
		uri := s.uriFor(snap, file)
		out := make([]protocol.TextEdit, len(edits))
		for i, e := range edits {
			out[i] = protocol.TextEdit{Range: toLSPRange(snap, file, e.Range), NewText: e.NewText}
		}
		changes[uri] = out
	}
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}

func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	snap, project := s.snapshot()
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	symbols := ide.DocumentSymbols(snap, project, id)
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, toDocumentSymbol(snap, sym))
	}
	return out, nil
}

func toDocumentSymbol(snap *db.Snapshot, sym ide.SymbolInfo) protocol.DocumentSymbol {
	children := make([]protocol.DocumentSymbol, 0, len(sym.Children))
	for _, c := range sym.Children {
		children = append(children, toDocumentSymbol(snap, c))
	}
	return protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           symbolKind(sym.Kind),
		Range:          toLSPRange(snap, sym.File, sym.Range),
		SelectionRange: toLSPRange(snap, sym.File, sym.SelectionRange),
		Children:       children,
	}
}

func (s *Server) workspaceSymbol(_ *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	snap, project := s.snapshot()
	symbols := ide.WorkspaceSymbols(snap, project, params.Query)
	out := make([]protocol.SymbolInformation, 0, len(symbols))
	for _, sym := range symbols {
		info := protocol.SymbolInformation{
			Name: sym.Name,
			Kind: symbolKind(sym.Kind),
			Location: protocol.Location{
				URI:   s.uriFor(snap, sym.File),
				Range: toLSPRange(snap, sym.File, sym.SelectionRange),
			},
		}
		if sym.Container != "" {
			info.ContainerName = strPtr(sym.Container)
		}
		out = append(out, info)
	}
	return out, nil
}

func symbolKind(k hir.DefKind) protocol.SymbolKind {
	switch k {
	case hir.Contract:
		return protocol.SymbolKindClass
	case hir.Function:
		return protocol.SymbolKindMethod
	case hir.Struct:
		return protocol.SymbolKindStruct
	case hir.Enum:
		return protocol.SymbolKindEnum
	case hir.Event:
		return protocol.SymbolKindEvent
	case hir.Error:
		return protocol.SymbolKindConstructor
	case hir.Modifier:
		return protocol.SymbolKindOperator
	case hir.Variable:
		return protocol.SymbolKindField
	case hir.Udvt:
		return protocol.SymbolKindTypeParameter
	default:
		return protocol.SymbolKindNull
	}
}

// textDocumentFormatting always returns no edits: a Solidity formatter is
// an external collaborator per spec.md §1's scope, not the core's job.
func (s *Server) textDocumentFormatting(_ *glsp.Context, _ *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}

func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	id, _, ok := s.fileForURI(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	snap, _ := s.snapshot()
	issues := ide.Diagnostics(snap, id)
	actions := ide.CodeActions(snap, id, issues)
	out := make([]protocol.CodeAction, 0, len(actions))
	for _, a := range actions {
		action := protocol.CodeAction{Title: a.Title}
		if a.Edit != nil {
			changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(a.Edit.Edits))
			for file, edits := range a.Edit.Edits {
				uri := s.uriFor(snap, file)
				te := make([]protocol.TextEdit, len(edits))
				for i, e := range edits {
					te[i] = protocol.TextEdit{Range: toLSPRange(snap, file, e.Range), NewText: e.NewText}
				}
				changes[uri] = te
			}
			action.Edit = &protocol.WorkspaceEdit{Changes: changes}
		}
		out = append(out, action)
	}
	return out, nil
}

// uriFor returns the client-facing URI for file, preferring the URI the
// client itself opened it under (important when the same file is
// reachable via more than one path, e.g. a symlinked dependency).
func (s *Server) uriFor(snap *db.Snapshot, file vfs.FileId) string {
	s.mu.Lock()
	uri, ok := s.byFile[file]
	s.mu.Unlock()
	if ok {
		return uri
	}
	p, ok := snap.VFS().Path(file)
	if !ok {
		return ""
	}
	return pathToURI(p)
}
