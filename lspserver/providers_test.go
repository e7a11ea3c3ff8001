package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFindReferencesAcrossFiles(t *testing.T) {
	s := newTestServer(t)
	openDoc(t, s, "file:///w/src/Lib.sol", "contract Lib {}")
	mainText := "import \"./Lib.sol\";\ncontract Main { Lib x; }"
	openDoc(t, s, "file:///w/src/Main.sol", mainText)

	col := uint32(len("contract Lib "))
	params := &protocol.ReferenceParams{
		TextDocumentPositionParams: posParams("file:///w/src/Lib.sol", 0, col),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: true},
	}

	refs, err := s.textDocumentReferences(nil, params)
	require.NoError(t, err)
	assert.NotEmpty(t, refs)
}

func TestRenameProducesWorkspaceEditAcrossFiles(t *testing.T) {
	s := newTestServer(t)
	openDoc(t, s, "file:///w/src/Lib.sol", "contract Lib {}")
	mainText := "import \"./Lib.sol\";\ncontract Main { Lib x; }"
	openDoc(t, s, "file:///w/src/Main.sol", mainText)

	col := uint32(len("contract Lib "))
	params := &protocol.RenameParams{
		TextDocumentPositionParams: posParams("file:///w/src/Lib.sol", 0, col),
		NewName:                    "Renamed",
	}

	edit, err := s.textDocumentRename(nil, params)
	require.NoError(t, err)
	require.NotNil(t, edit)
	assert.NotEmpty(t, edit.Changes)
}

func TestCompletionListsContractMembers(t *testing.T) {
	s := newTestServer(t)
	text := "contract Counter { uint256 public value; function increment() public {} }"
	openDoc(t, s, "file:///w/src/Counter.sol", text)

	col := uint32(len(text))
	result, err := s.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: posParams("file:///w/src/Counter.sol", 0, col),
	})
	require.NoError(t, err)
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok)
	assert.NotNil(t, items)
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "value")
	assert.Contains(t, labels, "increment")
}

func TestCodeActionEmptyWithoutDiagnostics(t *testing.T) {
	s := newTestServer(t)
	openDoc(t, s, "file:///w/src/Counter.sol", "contract Counter {}")

	result, err := s.textDocumentCodeAction(nil, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/src/Counter.sol"},
	})
	require.NoError(t, err)
	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok)
	assert.Empty(t, actions)
}
