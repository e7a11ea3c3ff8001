package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

func snapshotWithFile(t *testing.T, path, text string) (*db.Snapshot, vfs.FileId) {
	t.Helper()
	dbase := db.New()
	dbase.ApplyFileChanges([]vfs.Change{{Path: paths.New(path), Text: text}})
	snap := dbase.Snapshot()
	id, ok := snap.VFS().FileID(paths.New(path))
	require.True(t, ok)
	return snap, id
}

func TestOffsetAtFindsSecondLine(t *testing.T) {
	snap, id := snapshotWithFile(t, "/w/src/Main.sol", "contract Main {\n  uint256 x;\n}")

	offset, ok := offsetAt(snap, id, protocol.Position{Line: 1, Character: 2})
	require.True(t, ok)
	assert.Equal(t, uint32(18), offset)
}

func TestToLSPRangeRoundTripsThroughOffsetAt(t *testing.T) {
	text := "contract Main {\n  uint256 x;\n}"
	snap, id := snapshotWithFile(t, "/w/src/Main.sol", text)

	sp := span.Span{Start: 18, End: 27}
	r := toLSPRange(snap, id, sp)
	assert.Equal(t, uint32(1), uint32(r.Start.Line))
	assert.Equal(t, uint32(2), uint32(r.Start.Character))

	back, ok := offsetAt(snap, id, r.Start)
	require.True(t, ok)
	assert.Equal(t, sp.Start, back)
}

func TestOffsetAtMissingFileReturnsFalse(t *testing.T) {
	dbase := db.New()
	snap := dbase.Snapshot()
	_, ok := offsetAt(snap, vfs.FileId(999), protocol.Position{})
	assert.False(t, ok)
}
