package scope

import (
	"testing"

	"github.com/solidity-analyzer/solidity-analyzer/parser"
)

func TestBuild_ParametersAndNamedReturns(t *testing.T) {
	src := `contract C {
    function f(uint256 a, address b) public returns (uint256 total) {
        total = a;
    }
}
`
	tree, diags := parser.Parse(src)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message())
	}

	scopes := Build(tree)
	all := scopes.All()
	names := map[string]LocalKind{}
	for _, l := range all {
		names[l.Name] = l.Kind
	}

	if names["a"] != Parameter {
		t.Errorf("a: kind = %v; want Parameter", names["a"])
	}
	if names["b"] != Parameter {
		t.Errorf("b: kind = %v; want Parameter", names["b"])
	}
	if names["total"] != NamedReturn {
		t.Errorf("total: kind = %v; want NamedReturn", names["total"])
	}
}

func TestResolve_ShadowingInNestedBlock(t *testing.T) {
	src := `contract C {
    function f(uint256 x) public {
        {
            uint256 x = 2;
            x;
        }
        x;
    }
}
`
	tree, diags := parser.Parse(src)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message())
	}
	scopes := Build(tree)

	innerUse := indexOf(src, "x;\n        }") // first "x;" is inside the block
	outerUse := lastIndexOf(src, "x;\n    }\n}")

	inner, ok := scopes.Resolve(uint32(innerUse), "x")
	if !ok {
		t.Fatal("expected inner x to resolve")
	}
	if inner.Kind != Local {
		t.Errorf("inner x kind = %v; want Local", inner.Kind)
	}

	outer, ok := scopes.Resolve(uint32(outerUse), "x")
	if !ok {
		t.Fatal("expected outer x to resolve")
	}
	if outer.Kind != Parameter {
		t.Errorf("outer x kind = %v; want Parameter", outer.Kind)
	}
	if inner == outer {
		t.Error("inner and outer x should resolve to distinct bindings")
	}
}

func TestReferences_CollectsAllUsesWithinScope(t *testing.T) {
	src := `contract C {
    function f(uint256 x) public returns (uint256) {
        uint256 y = x + x;
        return y;
    }
}
`
	tree, diags := parser.Parse(src)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message())
	}
	scopes := Build(tree)

	var xDef LocalDef
	for _, l := range scopes.All() {
		if l.Name == "x" {
			xDef = l
		}
	}
	if xDef.Name == "" {
		t.Fatal("expected to find local def for x")
	}

	refs := scopes.References(src, xDef)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references to x, got %d", len(refs))
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func lastIndexOf(s, sub string) int {
	last := -1
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			last = i
		}
	}
	return last
}
