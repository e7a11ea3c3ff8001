package importresolver

import "github.com/solidity-analyzer/solidity-analyzer/paths"

// Remapping is one entry of a project's ordered import remapping list
// (the Foundry/Hardhat `context:from=to` shape). Context may be empty,
// meaning the remapping applies regardless of which file is importing.
type Remapping struct {
	Context string
	From    string
	To      string
}

// ProjectPaths is the set of directories import resolution searches: the
// project root plus any additional include paths, tried in order after the
// project root.
type ProjectPaths struct {
	Root         paths.NormalizedPath
	IncludePaths []paths.NormalizedPath
}
