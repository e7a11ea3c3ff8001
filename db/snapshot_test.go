package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

func setupProject(t *testing.T) (*Database, *Snapshot, ProjectId) {
	t.Helper()
	database := New()
	database.ApplyFileChanges([]vfs.Change{
		{Path: paths.New("/proj/src/Lib.sol"), Text: "contract Lib {}"},
		{Path: paths.New("/proj/src/Main.sol"), Text: "import \"./Lib.sol\";\ncontract Main { Lib x; }"},
	})
	id := database.NewProjectID()
	database.SetProject(id, ProjectInput{Workspace: Workspace{Root: paths.New("/proj")}})
	snap := database.Snapshot()
	return database, snap, id
}

func TestSnapshotParseIsMemoized(t *testing.T) {
	_, snap, _ := setupProject(t)
	fileID, ok := snap.VFS().FileID(paths.New("/proj/src/Lib.sol"))
	require.True(t, ok)

	tree1, diags1 := snap.Parse(fileID)
	require.Empty(t, diags1)
	tree2, _ := snap.Parse(fileID)
	require.Same(t, tree1, tree2, "Parse must return the memoized tree on the second call")
}

func TestSnapshotHIRProgramResolvesCrossFile(t *testing.T) {
	_, snap, projectID := setupProject(t)
	prog, ok := snap.HIRProgram(projectID)
	require.True(t, ok)

	mainID, ok := snap.VFS().FileID(paths.New("/proj/src/Main.sol"))
	require.True(t, ok)

	entry, ok := prog.ResolveSymbol(mainID, "Lib")
	require.True(t, ok)
	require.Equal(t, "Lib", entry.Name)
}

func TestSnapshotFindReferencesAcrossFiles(t *testing.T) {
	_, snap, projectID := setupProject(t)
	prog, ok := snap.HIRProgram(projectID)
	require.True(t, ok)

	libID, ok := snap.VFS().FileID(paths.New("/proj/src/Lib.sol"))
	require.True(t, ok)
	defs := prog.Defs.InFile(libID, "Lib")
	require.Len(t, defs, 1)

	refs, ok := snap.FindReferences(projectID, defs[0].ID)
	require.True(t, ok)
	require.Len(t, refs, 2)
}

func TestSnapshotSymbolSearchIsCaseInsensitive(t *testing.T) {
	_, snap, projectID := setupProject(t)
	results := snap.SymbolSearch(projectID, "lib")
	require.NotEmpty(t, results)
	for _, r := range results {
		require.Contains(t, r.Name, "Lib")
	}
}
