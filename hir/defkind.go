package hir

// DefKind classifies a global Solidity definition.
type DefKind uint8

const (
	KindInvalid DefKind = iota
	Contract
	Function
	Struct
	Enum
	Event
	Error
	Modifier
	Variable // state-level variable, including constants
	Udvt
)

func (k DefKind) String() string {
	switch k {
	case Contract:
		return "contract"
	case Function:
		return "function"
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Event:
		return "event"
	case Error:
		return "error"
	case Modifier:
		return "modifier"
	case Variable:
		return "variable"
	case Udvt:
		return "udvt"
	default:
		return "invalid"
	}
}

// ContractKind further classifies a Contract-kind DefEntry; it is the zero
// value (ContractKindPlain) for every other DefKind.
type ContractKind uint8

const (
	ContractKindPlain ContractKind = iota
	ContractKindLibrary
	ContractKindInterface
)
