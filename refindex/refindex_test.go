package refindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// buildFixture parses each of texts (keyed by an arbitrary file name) and
// assigns it a deterministic FileId in map iteration order over the given
// slice of names, returning the file/text maps BuildProgram needs plus a
// resolve function driven by the literal importsByFile table (bypassing
// importresolver entirely, since that package has its own tests).
func buildFixture(t *testing.T, order []string, texts map[string]string, imports map[string]map[string]string) (
	map[vfs.FileId]*parser.Tree, map[vfs.FileId]string, *hir.Program, map[string]vfs.FileId,
) {
	t.Helper()
	ids := make(map[string]vfs.FileId, len(order))
	files := make(map[vfs.FileId]*parser.Tree, len(order))
	fileTexts := make(map[vfs.FileId]string, len(order))

	for i, name := range order {
		id := vfs.FileId(i + 1)
		ids[name] = id
		tree, diags := parser.Parse(texts[name])
		require.Empty(t, diags, "unexpected parse diagnostics for %s", name)
		files[id] = tree
		fileTexts[id] = texts[name]
	}

	resolve := func(importer vfs.FileId, importString string) (vfs.FileId, bool) {
		for name, id := range ids {
			if id != importer {
				continue
			}
			target, ok := imports[name][importString]
			if !ok {
				return 0, false
			}
			targetID, ok := ids[target]
			return targetID, ok
		}
		return 0, false
	}

	prog := hir.BuildProgram(files, resolve)
	return files, fileTexts, prog, ids
}

func TestFindReferences_PlainImportCrossFile(t *testing.T) {
	order := []string{"Lib.sol", "Main.sol"}
	texts := map[string]string{
		"Lib.sol":  `contract Lib {}`,
		"Main.sol": "import \"./Lib.sol\";\ncontract Main { Lib x; }",
	}
	imports := map[string]map[string]string{
		"Main.sol": {"./Lib.sol": "Lib.sol"},
	}
	files, fileTexts, prog, ids := buildFixture(t, order, texts, imports)

	libDefs := prog.Defs.InFile(ids["Lib.sol"], "Lib")
	require.Len(t, libDefs, 1)

	refs := FindReferences(prog, files, fileTexts, libDefs[0])
	require.Len(t, refs, 2)
	require.Equal(t, ids["Lib.sol"], refs[0].File) // declaration sorts first (smaller FileId)
	require.Equal(t, ids["Main.sol"], refs[1].File)
}

func TestFindReferences_AmbiguousPlainImportsSkipped(t *testing.T) {
	order := []string{"LibA.sol", "LibB.sol", "Main.sol"}
	texts := map[string]string{
		"LibA.sol": `contract Lib {}`,
		"LibB.sol": `contract Lib {}`,
		"Main.sol": "import \"./LibA.sol\";\nimport \"./LibB.sol\";\ncontract Main { Lib lib; }",
	}
	imports := map[string]map[string]string{
		"Main.sol": {"./LibA.sol": "LibA.sol", "./LibB.sol": "LibB.sol"},
	}
	files, fileTexts, prog, ids := buildFixture(t, order, texts, imports)

	libADefs := prog.Defs.InFile(ids["LibA.sol"], "Lib")
	require.Len(t, libADefs, 1)

	_, resolved := prog.ResolveSymbol(ids["Main.sol"], "Lib")
	require.False(t, resolved) // ambiguous: both plain imports declare Lib

	refs := FindReferences(prog, files, fileTexts, libADefs[0])
	require.Len(t, refs, 1)
	require.Equal(t, ids["LibA.sol"], refs[0].File)
}

func TestFindReferences_ReExportedAlias(t *testing.T) {
	order := []string{"Base.sol", "Intermediate.sol", "Main.sol"}
	texts := map[string]string{
		"Base.sol":         `contract Base {}`,
		"Intermediate.sol": "import {Base as AliasBase} from \"./Base.sol\";\ncontract Intermediate is AliasBase {}",
		"Main.sol":         "import {Intermediate, AliasBase} from \"./Intermediate.sol\";\ncontract Main is Intermediate { AliasBase value; }",
	}
	imports := map[string]map[string]string{
		"Intermediate.sol": {"./Base.sol": "Base.sol"},
		"Main.sol":         {"./Intermediate.sol": "Intermediate.sol"},
	}
	files, fileTexts, prog, ids := buildFixture(t, order, texts, imports)

	baseDefs := prog.Defs.InFile(ids["Base.sol"], "Base")
	require.Len(t, baseDefs, 1)

	refs := FindReferences(prog, files, fileTexts, baseDefs[0])

	var sawDeclaration, sawMainUsage bool
	for _, r := range refs {
		if r.File == ids["Base.sol"] {
			sawDeclaration = true
		}
		if r.File == ids["Main.sol"] {
			sawMainUsage = true
		}
	}
	require.True(t, sawDeclaration)
	require.True(t, sawMainUsage)
}
