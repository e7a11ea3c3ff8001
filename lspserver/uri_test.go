package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

func TestURIToPathRoundTrip(t *testing.T) {
	p, err := uriToPath("file:///w/src/Main.sol")
	require.NoError(t, err)
	assert.Equal(t, paths.New("/w/src/Main.sol"), p)

	assert.Equal(t, "file:///w/src/Main.sol", pathToURI(p))
}

func TestURIToPathRejectsNonFileScheme(t *testing.T) {
	_, err := uriToPath("http://example.com/Main.sol")
	require.Error(t, err)
}
