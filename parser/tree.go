package parser

import "github.com/solidity-analyzer/solidity-analyzer/span"

// NodeId indexes into a Tree's arena. The zero value means "no node".
type NodeId int32

// IsZero reports whether id is the sentinel "no node" value.
func (id NodeId) IsZero() bool { return id == 0 }

// NodeKind classifies a parse tree node.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindSourceUnit
	KindPragma
	KindImportDirective
	KindUsingFor
	KindContractDef
	KindLibraryDef
	KindInterfaceDef
	KindFunctionDef
	KindConstructorDef
	KindFallbackDef
	KindReceiveDef
	KindModifierDef
	KindStructDef
	KindStructField
	KindEnumDef
	KindEnumValue
	KindEventDef
	KindErrorDef
	KindUdvtDef
	KindStateVarDecl
	KindParameterList
	KindParameter

	// Statement/scope nodes, used by the scope package.
	KindBlock
	KindUncheckedBlock
	KindIfThenScope
	KindIfElseScope
	KindForScope
	KindWhileScope
	KindDoWhileScope
	KindTryScope
	KindCatchScope
	KindVarDeclStmt
	KindTupleVarDeclStmt
	KindOtherStmt
)

// IsDefItem reports whether k is one of the NodeKinds that HIR lowering
// treats as definitions, matching the DefKind vocabulary in the hir package.
func (k NodeKind) IsDefItem() bool {
	switch k {
	case KindContractDef, KindLibraryDef, KindInterfaceDef, KindFunctionDef,
		KindStructDef, KindEnumDef, KindEventDef, KindErrorDef, KindModifierDef,
		KindUdvtDef, KindStateVarDecl:
		return true
	}
	return false
}

// node is the concrete arena element (unexported; accessed via Tree methods
// so callers cannot mutate the arena after Parse returns).
type node struct {
	kind       NodeKind
	fullSpan   span.Span
	nameSpan   span.Span // zero if the node has no single name token
	name       string
	names      []string     // enum values, tuple var decl names, parameter names
	nameSpans  []span.Span
	children   []NodeId
	parent     NodeId
	headerSpan span.Span // function-only: between ")" and the body/";"
	importInfo *ImportInfo
	isConstant bool
}

// Tree is an immutable parse tree arena. Node 0 is reserved ("no node");
// the real root is always NodeId(1) once Parse has run.
type Tree struct {
	nodes []node
}

func newTree() *Tree {
	return &Tree{nodes: []node{{}}} // index 0 reserved
}

func (t *Tree) alloc(n node) NodeId {
	t.nodes = append(t.nodes, n)
	return NodeId(len(t.nodes) - 1)
}

func (t *Tree) appendChild(parent, child NodeId) {
	if parent.IsZero() {
		return
	}
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

// Root returns the tree's KindSourceUnit node.
func (t *Tree) Root() NodeId { return NodeId(1) }

func (t *Tree) get(id NodeId) *node {
	if int(id) <= 0 || int(id) >= len(t.nodes) {
		return &node{}
	}
	return &t.nodes[id]
}

// Kind returns a node's kind.
func (t *Tree) Kind(id NodeId) NodeKind { return t.get(id).kind }

// Span returns a node's full range.
func (t *Tree) Span(id NodeId) span.Span { return t.get(id).fullSpan }

// NameSpan returns a node's selection range (the name token), or a zero
// Span if the node has no single name.
func (t *Tree) NameSpan(id NodeId) span.Span { return t.get(id).nameSpan }

// Name returns a node's name, or "" if it has none.
func (t *Tree) Name(id NodeId) string { return t.get(id).name }

// Names returns a multi-name node's names (enum values, tuple targets,
// parameter names).
func (t *Tree) Names(id NodeId) []string { return t.get(id).names }

// NameSpans returns the spans paired positionally with Names.
func (t *Tree) NameSpans(id NodeId) []span.Span { return t.get(id).nameSpans }

// Children returns a node's direct children, in source order.
func (t *Tree) Children(id NodeId) []NodeId { return t.get(id).children }

// Parent returns a node's parent, or the zero NodeId for the root.
func (t *Tree) Parent(id NodeId) NodeId { return t.get(id).parent }

// HeaderSpan returns a KindFunctionDef/KindModifierDef node's span between
// the end of its parameter list and the start of its body (or ";").
func (t *Tree) HeaderSpan(id NodeId) span.Span { return t.get(id).headerSpan }

// ImportInfo returns the parsed (unresolved) import shape of a
// KindImportDirective node.
func (t *Tree) ImportInfo(id NodeId) *ImportInfo { return t.get(id).importInfo }

// IsConstant reports whether a KindStateVarDecl node was declared constant.
func (t *Tree) IsConstant(id NodeId) bool { return t.get(id).isConstant }

// ContainerName walks up from id to the nearest enclosing contract-like
// definition (contract, library, or interface) and returns its name, or ""
// if id is at file scope.
func (t *Tree) ContainerName(id NodeId) string {
	for p := t.get(id).parent; !p.IsZero(); p = t.get(p).parent {
		switch t.get(p).kind {
		case KindContractDef, KindLibraryDef, KindInterfaceDef:
			return t.get(p).name
		}
	}
	return ""
}

// Walk calls visit for id and every descendant, pre-order.
func (t *Tree) Walk(id NodeId, visit func(NodeId)) {
	if id.IsZero() {
		return
	}
	visit(id)
	for _, c := range t.get(id).children {
		t.Walk(c, visit)
	}
}

// Bases returns a KindContractDef/KindLibraryDef/KindInterfaceDef node's
// declared base-contract names, in "is A, B" order. Empty for every other
// node kind.
func (t *Tree) Bases(id NodeId) []string { return t.get(id).names }

// BaseSpans returns the name-token spans paired positionally with Bases.
func (t *Tree) BaseSpans(id NodeId) []span.Span { return t.get(id).nameSpans }

// FindBySelection walks the tree for the first node of the given kind whose
// NameSpan equals sel. Used to recover a parser.NodeId from a hir.DefEntry's
// SelectionRange when a later pass (scope, sema) needs to re-examine a
// definition's syntax, since hir.Program does not retain tree references.
func (t *Tree) FindBySelection(kind NodeKind, sel span.Span) (NodeId, bool) {
	var found NodeId
	t.Walk(t.Root(), func(id NodeId) {
		if !found.IsZero() {
			return
		}
		n := t.get(id)
		if n.kind == kind && n.nameSpan == sel {
			found = id
		}
	})
	return found, !found.IsZero()
}
