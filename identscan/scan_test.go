package identscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierRangesSkipsCommentsAndStrings(t *testing.T) {
	text := `// Lib lib
contract Main { Lib lib = "Lib"; }`
	ranges := IdentifierRanges(text, "Lib")
	require.Len(t, ranges, 1)
	require.Equal(t, "Lib", text[ranges[0].Start:ranges[0].End])
	require.Greater(t, int(ranges[0].Start), len("// Lib lib\n")-1)
}

func TestDotQualifiedRanges(t *testing.T) {
	text := `a.b; c;`
	dq := DotQualifiedRanges(text)
	ranges := IdentifierRanges(text, "b")
	require.Len(t, ranges, 1)
	require.True(t, dq[ranges[0]])

	cRanges := IdentifierRanges(text, "c")
	require.Len(t, cRanges, 1)
	require.False(t, dq[cRanges[0]])
}

func TestChains(t *testing.T) {
	text := `Mod.Contract.member;`
	chains := Chains(text)
	require.Len(t, chains, 1)
	require.Equal(t, []string{"Mod", "Contract"}, chains[0].Qualifiers)
	require.Equal(t, "member", chains[0].Name)
}

func TestChainAtBareIdentifier(t *testing.T) {
	text := `foo(1);`
	qualifier, _, name, _, ok := ChainAt(text, 1)
	require.True(t, ok)
	require.Empty(t, qualifier)
	require.Equal(t, "foo", name)
}

func TestChainAtQualified(t *testing.T) {
	text := `A.B.target();`
	offset := uint32(len("A.B."))
	qualifier, start, name, _, ok := ChainAt(text, offset)
	require.True(t, ok)
	require.Equal(t, "A.B", qualifier)
	require.Equal(t, "target", name)
	require.Equal(t, uint32(0), start)
}

func TestIdentifierAtOnePastEnd(t *testing.T) {
	text := `value`
	sp, ok := IdentifierAt(text, uint32(len(text)))
	require.True(t, ok)
	require.Equal(t, text, text[sp.Start:sp.End])
}
