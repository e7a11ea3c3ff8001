package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

func TestSnapshotObservesWritesAtOrBeforeItWasTaken(t *testing.T) {
	pathA := paths.New("/proj/src/A.sol")
	pathB := paths.New("/proj/src/B.sol")

	database := New()
	database.ApplyFileChanges([]vfs.Change{
		{Path: pathA, Text: "contract A {}"},
	})

	snap1 := database.Snapshot()
	id, ok := snap1.VFS().FileID(pathA)
	require.True(t, ok)
	text, ok := snap1.VFS().Text(id)
	require.True(t, ok)
	require.Equal(t, "contract A {}", text)

	database.ApplyFileChanges([]vfs.Change{
		{Path: pathB, Text: "contract B {}"},
	})

	// snap1 must not observe the later write.
	_, ok = snap1.VFS().FileID(pathB)
	require.False(t, ok)

	snap2 := database.Snapshot()
	_, ok = snap2.VFS().FileID(pathB)
	require.True(t, ok)
	require.Greater(t, snap2.Revision(), snap1.Revision())
}

func TestSetProjectIsVisibleInNextSnapshot(t *testing.T) {
	database := New()
	id := database.NewProjectID()
	database.SetProject(id, ProjectInput{Workspace: Workspace{Root: paths.New("/proj")}})

	snap := database.Snapshot()
	input, ok := snap.Project(id)
	require.True(t, ok)
	require.Equal(t, "/proj", input.Workspace.Root.String())
}
