package lspserver

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func openDoc(t *testing.T, s *Server, uri, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "solidity", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func posParams(uri string, line, character uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Position:     protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)},
	}
}

func TestNewServerWiresHandlers(t *testing.T) {
	s := NewServer(testLogger(), Config{})
	require.NotNil(t, s)
	require.NotNil(t, s.Handler())
	require.NotNil(t, s.Handler().TextDocumentDefinition)
	require.NotNil(t, s.Handler().TextDocumentHover)
	require.NotNil(t, s.Handler().TextDocumentReferences)
	require.NotNil(t, s.Handler().TextDocumentRename)
	require.NotNil(t, s.Handler().WorkspaceSymbol)
}

func TestGotoDefinitionAcrossOpenDocuments(t *testing.T) {
	s := NewServer(testLogger(), Config{})
	s.loadProject(paths.New("/w"))

	openDoc(t, s, "file:///w/src/Lib.sol", "contract Lib {}")
	mainText := "import \"./Lib.sol\";\ncontract Main { Lib x; }"
	openDoc(t, s, "file:///w/src/Main.sol", mainText)

	line := uint32(strings.Count(mainText[:strings.Index(mainText, "Lib x;")], "\n"))
	col := uint32(len("contract Main { "))
	params := &protocol.DefinitionParams{TextDocumentPositionParams: posParams("file:///w/src/Main.sol", line, col)}

	result, err := s.textDocumentDefinition(nil, params)
	require.NoError(t, err)
	loc, ok := result.(*protocol.Location)
	require.True(t, ok)
	require.NotNil(t, loc)
	assert.Equal(t, "file:///w/src/Lib.sol", loc.URI)
}

func TestHoverReturnsMarkdown(t *testing.T) {
	s := NewServer(testLogger(), Config{})
	s.loadProject(paths.New("/w"))

	text := "contract Counter { function increment() public {} }"
	openDoc(t, s, "file:///w/src/Counter.sol", text)

	col := uint32(strings.Index(text, "increment"))
	params := &protocol.HoverParams{TextDocumentPositionParams: posParams("file:///w/src/Counter.sol", 0, col)}

	hover, err := s.textDocumentHover(nil, params)
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "increment")
}

func TestDocumentSymbolsNestsMembers(t *testing.T) {
	s := NewServer(testLogger(), Config{})
	s.loadProject(paths.New("/w"))

	text := "contract Counter { uint256 public value; function increment() public {} }"
	openDoc(t, s, "file:///w/src/Counter.sol", text)

	result, err := s.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/src/Counter.sol"},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Counter", symbols[0].Name)
	assert.Len(t, symbols[0].Children, 2)
}

func TestWorkspaceSymbolSearchesAcrossFiles(t *testing.T) {
	s := NewServer(testLogger(), Config{})
	s.loadProject(paths.New("/w"))

	openDoc(t, s, "file:///w/src/Counter.sol", "contract Counter {}")
	openDoc(t, s, "file:///w/src/Token.sol", "contract Token {}")

	results, err := s.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "count"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Counter", results[0].Name)
}
