package lspserver

import (
	"log/slog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/solidity-analyzer/solidity-analyzer/diag"
	"github.com/solidity-analyzer/solidity-analyzer/ide"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.logger.Debug("textDocument/didOpen", slog.String("uri", uri))

	p, err := uriToPath(uri)
	if err != nil {
		s.logger.Warn("didOpen: invalid uri", slog.String("uri", uri), slog.String("error", err.Error()))
		return nil
	}
	s.applyChange(uri, p, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	p, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	// Full document sync only (TextDocumentSyncKindFull, set in initialize):
	// the last content change event carries the entire new text.
	for _, raw := range params.ContentChanges {
		if whole, ok := raw.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.applyChange(uri, p, whole.Text)
		}
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.logger.Debug("textDocument/didClose", slog.String("uri", uri))
	s.mu.Lock()
	delete(s.byURI, uri)
	s.mu.Unlock()
	return nil
}

func (s *Server) applyChange(uri string, p paths.NormalizedPath, text string) {
	s.dbase.ApplyFileChanges([]vfs.Change{{Path: p, Text: text}})

	snap := s.dbase.Snapshot()
	id, ok := snap.VFS().FileID(p)
	if !ok {
		return
	}
	s.mu.Lock()
	s.byURI[uri] = id
	s.byFile[id] = uri
	s.mu.Unlock()
}

// publishDiagnostics re-runs parsing for uri and sends the result as a
// textDocument/publishDiagnostics notification, the one place this
// server pushes rather than answers a request.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	if ctx == nil {
		return
	}
	id, _, ok := s.fileForURI(uri)
	if !ok {
		return
	}
	snap, _ := s.snapshot()
	issues := ide.Diagnostics(snap, id)

	out := make([]protocol.Diagnostic, 0, len(issues))
	for _, d := range issues {
		sev := toSeverity(d.Severity())
		out = append(out, protocol.Diagnostic{
			Range:    toLSPRange(snap, id, d.Span()),
			Severity: &sev,
			Code:     d.Code(),
			Message:  d.Message(),
			Source:   strPtr(serverName),
		})
	}
	ctx.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: out,
	})
}

func toSeverity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	case diag.Information:
		return protocol.DiagnosticSeverityInformation
	case diag.Hint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func strPtr(s string) *string { return &s }
