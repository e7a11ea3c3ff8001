package hir

import (
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// DefId is an interned, project-wide identifier of a global definition.
// DefIds are assigned during BuildProgram and are only stable for the
// lifetime of the Program that produced them — a new Program built after
// an edit assigns fresh ids.
type DefId uint32

func (id DefId) IsZero() bool { return id == 0 }

// DefEntry describes one global Solidity definition: its kind, where it
// is declared, and (for members) the contract-like type that contains it.
type DefEntry struct {
	ID   DefId
	Kind DefKind

	// ContractKind distinguishes contract/library/interface for
	// Kind == Contract entries; it is ContractKindPlain otherwise.
	ContractKind ContractKind

	File vfs.FileId

	// SelectionRange covers just the name token; FullRange covers the
	// whole declaration, used for outline/hover ranges.
	SelectionRange span.Span
	FullRange      span.Span

	Name string

	// Container is the name of the enclosing contract-like type, or ""
	// for file-level definitions.
	Container string

	// IsConstant marks Variable entries declared constant; it is always
	// false for every other kind.
	IsConstant bool
}

func (e DefEntry) IsZero() bool { return e.ID.IsZero() }
