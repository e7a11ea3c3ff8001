package db

import (
	"github.com/solidity-analyzer/solidity-analyzer/importresolver"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

// ProjectId identifies one tracked project. The basic case (spec.md §3)
// has exactly one; the data model does not preclude more.
type ProjectId uint32

// IsZero reports whether id is the sentinel "no project" value.
func (id ProjectId) IsZero() bool { return id == 0 }

// Workspace bundles the directory layout of a Foundry-style project.
type Workspace struct {
	Root   paths.NormalizedPath
	Src    paths.NormalizedPath
	Lib    paths.NormalizedPath
	Test   paths.NormalizedPath
	Script paths.NormalizedPath
}

// Profile is one named Foundry configuration profile: its solc version
// spec (if pinned), its ordered remapping list, and the raw compiler
// settings overlay (solc "standard JSON" input settings) that do not
// otherwise affect name resolution but are carried through for callers
// that need them (e.g. a future flycheck integration).
type Profile struct {
	Name        string
	SolcVersion string
	Remappings  []importresolver.Remapping
	RawSettings map[string]any
}

// ResolvedConfig is the config half of a ProjectInput: the active
// profile, fully resolved (no more TOML/env to consult). Producing one is
// foundrycfg's job (spec.md §6.1) — the core only ever consumes it.
type ResolvedConfig struct {
	ActiveProfile Profile
}

// ProjectInput is the database input identifying one project: its
// workspace layout and resolved configuration.
type ProjectInput struct {
	Workspace Workspace
	Config    ResolvedConfig
}

// includePaths returns the directories import resolution searches beyond
// the project root, derived from the workspace layout.
func (w Workspace) includePaths() []paths.NormalizedPath {
	var out []paths.NormalizedPath
	if !w.Lib.IsZero() {
		out = append(out, w.Lib)
	}
	return out
}
