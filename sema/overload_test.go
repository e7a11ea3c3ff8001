package sema

import "testing"

func TestResolveOverload_PicksByArity(t *testing.T) {
	src := `
contract C {
    function set(uint256 a) public {}
    function set(uint256 a, uint256 b) public {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	candidates := prog.Defs.InFile(file, "set")
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	outcome := snap.ResolveOverload(candidates, "1, 2")
	if outcome.Unresolved || outcome.Ambiguous {
		t.Fatalf("expected a resolved outcome, got %+v", outcome)
	}
	params := snap.functionParams(outcome.Resolved)
	if len(params) != 2 {
		t.Errorf("resolved candidate has %d params; want 2", len(params))
	}
}

func TestResolveOverload_DistinguishesByLiteralShape(t *testing.T) {
	src := `
contract C {
    function set(uint256 a) public {}
    function set(address a) public {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	candidates := prog.Defs.InFile(file, "set")

	numOutcome := snap.ResolveOverload(candidates, "42")
	if numOutcome.Unresolved || numOutcome.Ambiguous {
		t.Fatalf("expected resolved outcome for numeric literal, got %+v", numOutcome)
	}
	if paramTypeText(snap.texts[file], snap.trees[file], snap.functionParams(numOutcome.Resolved)[0]) != "uint256" {
		t.Errorf("expected numeric literal to resolve to the uint256 overload")
	}

	addrOutcome := snap.ResolveOverload(candidates, "0x1111111111111111111111111111111111111111")
	if addrOutcome.Unresolved || addrOutcome.Ambiguous {
		t.Fatalf("expected resolved outcome for address literal, got %+v", addrOutcome)
	}
	if paramTypeText(snap.texts[file], snap.trees[file], snap.functionParams(addrOutcome.Resolved)[0]) != "address" {
		t.Errorf("expected address literal to resolve to the address overload")
	}
}

func TestResolveOverload_NamedArgumentsAreAmbiguous(t *testing.T) {
	src := `
contract C {
    function set(uint256 a) public {}
    function set(uint256 a, uint256 b) public {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	candidates := prog.Defs.InFile(file, "set")

	outcome := snap.ResolveOverload(candidates, "{a: 1}")
	if !outcome.Ambiguous {
		t.Errorf("expected named-argument call to be ambiguous, got %+v", outcome)
	}
}

func TestResolveOverload_Unresolved(t *testing.T) {
	src := `contract C { function set(uint256 a) public {} }`
	snap, prog, file := buildSnapshot(t, src)
	candidates := prog.Defs.InFile(file, "set")

	outcome := snap.ResolveOverload(candidates, "1, 2, 3")
	if !outcome.Unresolved {
		t.Errorf("expected unresolved outcome for mismatched arity, got %+v", outcome)
	}
}

func TestSplitArgsTopLevel(t *testing.T) {
	got := splitArgsTopLevel("1, foo(2, 3), {x: 1}")
	want := []string{"1", " foo(2, 3)", " {x: 1}"}
	if len(got) != len(want) {
		t.Fatalf("splitArgsTopLevel = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %q; want %q", i, got[i], want[i])
		}
	}
}
