package parser

import "testing"

func findFirst(t *testing.T, tree *Tree, kind NodeKind) NodeId {
	t.Helper()
	var found NodeId
	tree.Walk(tree.Root(), func(id NodeId) {
		if found.IsZero() && tree.Kind(id) == kind {
			found = id
		}
	})
	return found
}

func TestParse_ContractWithFunction(t *testing.T) {
	src := `pragma solidity ^0.8.0;

contract Token {
    uint256 public totalSupply;

    function mint(address to, uint256 amount) public {
        totalSupply += amount;
    }
}
`
	tree, diags := Parse(src)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s %s", d.Code(), d.Message())
	}

	contract := findFirst(t, tree, KindContractDef)
	if contract.IsZero() {
		t.Fatal("expected a contract definition")
	}
	if tree.Name(contract) != "Token" {
		t.Errorf("contract name = %q; want Token", tree.Name(contract))
	}

	fn := findFirst(t, tree, KindFunctionDef)
	if fn.IsZero() {
		t.Fatal("expected a function definition")
	}
	if tree.Name(fn) != "mint" {
		t.Errorf("function name = %q; want mint", tree.Name(fn))
	}
	if tree.ContainerName(fn) != "Token" {
		t.Errorf("ContainerName(fn) = %q; want Token", tree.ContainerName(fn))
	}

	stateVar := findFirst(t, tree, KindStateVarDecl)
	if stateVar.IsZero() {
		t.Fatal("expected a state variable declaration")
	}
	if tree.Name(stateVar) != "totalSupply" {
		t.Errorf("state var name = %q; want totalSupply", tree.Name(stateVar))
	}
}

func TestParse_ParameterNames(t *testing.T) {
	src := `contract C {
    function f(address to, uint256 amount) public returns (bool ok) {}
}`
	tree, _ := Parse(src)
	fn := findFirst(t, tree, KindFunctionDef)
	if fn.IsZero() {
		t.Fatal("expected function")
	}
	paramList := findFirst(t, tree, KindParameterList)
	if paramList.IsZero() {
		t.Fatal("expected parameter list")
	}
	params := tree.Children(paramList)
	if len(params) != 2 {
		t.Fatalf("got %d params; want 2", len(params))
	}
	if tree.Name(params[0]) != "to" || tree.Name(params[1]) != "amount" {
		t.Errorf("param names = %q, %q; want to, amount", tree.Name(params[0]), tree.Name(params[1]))
	}
}

func TestParse_ImportVariants(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		variant ImportVariant
		path    string
	}{
		{"plain", `import "./Token.sol";`, ImportPlain, "./Token.sol"},
		{"source alias", `import "./Token.sol" as T;`, ImportSourceAlias, "./Token.sol"},
		{"glob", `import * as T from "./Token.sol";`, ImportGlob, "./Token.sol"},
		{"aliases", `import {A, B as C} from "./Token.sol";`, ImportAliases, "./Token.sol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := Parse(tt.src)
			imp := findFirst(t, tree, KindImportDirective)
			if imp.IsZero() {
				t.Fatal("expected an import directive")
			}
			info := tree.ImportInfo(imp)
			if info.Variant != tt.variant {
				t.Errorf("variant = %v; want %v", info.Variant, tt.variant)
			}
			if info.ImportPath != tt.path {
				t.Errorf("path = %q; want %q", info.ImportPath, tt.path)
			}
		})
	}
}

func TestParse_AliasesCaptured(t *testing.T) {
	tree, _ := Parse(`import {A, B as C} from "./Token.sol";`)
	imp := findFirst(t, tree, KindImportDirective)
	info := tree.ImportInfo(imp)
	if len(info.Aliases) != 2 {
		t.Fatalf("got %d aliases; want 2", len(info.Aliases))
	}
	if info.Aliases[0].LocalName != "A" || info.Aliases[0].OriginalName != "A" {
		t.Errorf("aliases[0] = %+v", info.Aliases[0])
	}
	if info.Aliases[1].LocalName != "C" || info.Aliases[1].OriginalName != "B" {
		t.Errorf("aliases[1] = %+v", info.Aliases[1])
	}
}

func TestParse_LocalVarDeclVsAssignment(t *testing.T) {
	src := `contract C {
    function f() public {
        uint256 x = 1;
        x = 2;
    }
}`
	tree, _ := Parse(src)
	var decls []NodeId
	tree.Walk(tree.Root(), func(id NodeId) {
		if tree.Kind(id) == KindVarDeclStmt {
			decls = append(decls, id)
		}
	})
	if len(decls) != 1 {
		t.Fatalf("got %d var decl statements; want 1 (the plain assignment must not count)", len(decls))
	}
	if tree.Name(decls[0]) != "x" {
		t.Errorf("decl name = %q; want x", tree.Name(decls[0]))
	}
}

func TestParse_TupleVarDecl(t *testing.T) {
	src := `contract C {
    function f() public {
        (uint256 a, uint256 b) = (1, 2);
    }
}`
	tree, _ := Parse(src)
	tuple := findFirst(t, tree, KindTupleVarDeclStmt)
	if tuple.IsZero() {
		t.Fatal("expected a tuple var decl statement")
	}
	names := tree.Names(tuple)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("tuple names = %v; want [a b]", names)
	}
}

func TestParse_EnumValues(t *testing.T) {
	tree, _ := Parse(`enum Status { Pending, Active, Closed }`)
	e := findFirst(t, tree, KindEnumDef)
	if e.IsZero() {
		t.Fatal("expected an enum definition")
	}
	names := tree.Names(e)
	want := []string{"Pending", "Active", "Closed"}
	if len(names) != len(want) {
		t.Fatalf("got %v; want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q; want %q", i, names[i], want[i])
		}
	}
}

func TestParse_NestedScopes(t *testing.T) {
	src := `contract C {
    function f(uint256 n) public {
        if (n > 0) {
            uint256 y = n;
        } else {
            uint256 z = 0;
        }
    }
}`
	tree, _ := Parse(src)
	thenScope := findFirst(t, tree, KindIfThenScope)
	elseScope := findFirst(t, tree, KindIfElseScope)
	if thenScope.IsZero() || elseScope.IsZero() {
		t.Fatal("expected both an if-then and if-else scope")
	}
}

func TestParse_NeverPanicsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"contract",
		"contract C {",
		"function f(",
		"}}}{{{",
		"import ",
		"struct S { uint",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse(%q) panicked: %v", in, r)
				}
			}()
			Parse(in)
		}()
	}
}
