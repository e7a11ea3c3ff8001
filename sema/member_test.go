package sema

import (
	"testing"

	"github.com/solidity-analyzer/solidity-analyzer/hir"
)

func TestResolveMember_InstanceSeesOnlyPublicExternal(t *testing.T) {
	src := `
contract C {
    uint256 public total;
    uint256 private secret;
    function pub() public {}
    function ext() external {}
    function priv() private {}
    function intl() internal {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	c := contractID(t, prog, file, "C")

	for _, tt := range []struct {
		name string
		want bool
	}{
		{"pub", true},
		{"ext", true},
		{"priv", false},
		{"intl", false},
		{"total", true},
		{"secret", false},
	} {
		_, ok := snap.ResolveMember(c, ReceiverInstance, tt.name)
		if ok != tt.want {
			t.Errorf("ResolveMember(instance, %q) ok = %v; want %v", tt.name, ok, tt.want)
		}
	}
}

func TestResolveMember_ContractTypeAddsInternalAndConstants(t *testing.T) {
	src := `
contract C {
    uint256 constant LIMIT = 10;
    function intl() internal {}
    function priv() private {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	c := contractID(t, prog, file, "C")

	if _, ok := snap.ResolveMember(c, ReceiverContractType, "LIMIT"); !ok {
		t.Error("expected contract-type access to see internal constant LIMIT")
	}
	if _, ok := snap.ResolveMember(c, ReceiverContractType, "intl"); !ok {
		t.Error("expected contract-type access to see internal function intl")
	}
	if _, ok := snap.ResolveMember(c, ReceiverContractType, "priv"); ok {
		t.Error("did not expect contract-type access to see private function priv")
	}
}

func TestResolveMember_SuperExcludesModifiers(t *testing.T) {
	src := `
contract A {
    modifier onlyOwner() { _; }
    function foo() public virtual {}
}
contract B is A {
    function foo() public override {
        super.foo();
    }
}
`
	snap, prog, file := buildSnapshot(t, src)
	b := contractID(t, prog, file, "B")

	if _, ok := snap.ResolveMember(b, ReceiverSuper, "onlyOwner"); ok {
		t.Error("expected super member access to exclude modifiers")
	}
	if _, ok := snap.ResolveModifierSlot(b, "onlyOwner"); !ok {
		t.Error("expected modifier-slot lookup to find onlyOwner via inheritance")
	}
}

func TestResolveMember_LibraryIncludesPublicAndInternal(t *testing.T) {
	src := `
library L {
    function helper() internal pure returns (uint256) {}
    function util() public pure returns (uint256) {}
    function hidden() private pure returns (uint256) {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	l := contractID(t, prog, file, "L")

	if _, ok := snap.ResolveMember(l, ReceiverLibrary, "helper"); !ok {
		t.Error("expected library access to see internal helper")
	}
	if _, ok := snap.ResolveMember(l, ReceiverLibrary, "util"); !ok {
		t.Error("expected library access to see public util")
	}
	if _, ok := snap.ResolveMember(l, ReceiverLibrary, "hidden"); ok {
		t.Error("did not expect library access to see private hidden")
	}
}

func TestMembers_DedupesByMostDerived(t *testing.T) {
	src := `
contract A {
    function foo() public virtual {}
}
contract B is A {
    function foo() public override {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	b := contractID(t, prog, file, "B")

	var foo hir.DefEntry
	count := 0
	for _, m := range snap.Members(b, ReceiverInstance) {
		if m.Name == "foo" {
			foo = m
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one foo in Members(), got %d", count)
	}
	if foo.Container != "B" {
		t.Errorf("Members() foo container = %q; want B (most-derived wins)", foo.Container)
	}
}
