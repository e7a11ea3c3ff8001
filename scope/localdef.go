package scope

import "github.com/solidity-analyzer/solidity-analyzer/span"

// LocalKind classifies a LocalDef.
type LocalKind uint8

const (
	Parameter LocalKind = iota
	NamedReturn
	Local
)

func (k LocalKind) String() string {
	switch k {
	case Parameter:
		return "parameter"
	case NamedReturn:
		return "named-return"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// LocalDef is one name binding inside a function: a parameter, a named
// return, or a variable declared by a statement.
type LocalDef struct {
	Name string
	Kind LocalKind

	// DefinitionRange covers just the declared name.
	DefinitionRange span.Span

	// EnclosingScopeRange is the span within which this binding is
	// visible: resolution at offset O considers a LocalDef only if O
	// falls inside EnclosingScopeRange and O is at or after
	// DefinitionRange.Start (forward-only visibility).
	EnclosingScopeRange span.Span
}
