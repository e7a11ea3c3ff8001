package sema

import (
	"testing"

	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

func buildSnapshot(t *testing.T, src string) (*Snapshot, *hir.Program, vfs.FileId) {
	t.Helper()
	const file = vfs.FileId(1)
	tree, diags := parser.Parse(src)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message())
	}
	trees := map[vfs.FileId]*parser.Tree{file: tree}
	texts := map[vfs.FileId]string{file: src}
	prog := hir.BuildProgram(trees, func(vfs.FileId, string) (vfs.FileId, bool) { return 0, false })
	return Analyze(prog, trees, texts), prog, file
}

func contractID(t *testing.T, prog *hir.Program, file vfs.FileId, name string) hir.DefId {
	t.Helper()
	for _, e := range prog.Defs.InFile(file, name) {
		if e.Kind == hir.Contract {
			return e.ID
		}
	}
	t.Fatalf("no contract named %q", name)
	return 0
}

// TestLinearization_DiamondReversesDeclarationOrder reproduces spec.md's
// "contract D is B, C" diamond scenario: both B and C override A's foo,
// and super.foo() inside D's own override must resolve to C, not B,
// because Solidity's C3 merge favors the last-listed base.
func TestLinearization_DiamondReversesDeclarationOrder(t *testing.T) {
	src := `
contract A {
    function foo() public virtual {}
}
contract B is A {
    function foo() public virtual override {}
}
contract C is A {
    function foo() public virtual override {}
}
contract D is B, C {
    function foo() public override(B, C) {
        super.foo();
    }
}
`
	snap, prog, file := buildSnapshot(t, src)
	d := contractID(t, prog, file, "D")

	lin := snap.Linearization(d)
	names := make([]string, len(lin))
	for i, id := range lin {
		e, _ := prog.Defs.Get(id)
		names[i] = e.Name
	}
	want := []string{"D", "C", "B", "A"}
	if len(names) != len(want) {
		t.Fatalf("linearization = %v; want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("linearization[%d] = %q; want %q (full: %v)", i, names[i], want[i], names)
		}
	}

	super, ok := snap.ResolveMember(d, ReceiverSuper, "foo")
	if !ok {
		t.Fatal("expected super.foo() to resolve")
	}
	if super.Container != "C" {
		t.Errorf("super.foo() resolved to container %q; want C", super.Container)
	}
}

func TestLinearization_SingleInheritance(t *testing.T) {
	src := `
contract A {
    function foo() public virtual {}
}
contract B is A {
    function bar() public {}
}
`
	snap, prog, file := buildSnapshot(t, src)
	b := contractID(t, prog, file, "B")
	lin := snap.Linearization(b)
	if len(lin) != 2 {
		t.Fatalf("linearization len = %d; want 2", len(lin))
	}
	aEntry, _ := prog.Defs.Get(lin[1])
	if aEntry.Name != "A" {
		t.Errorf("linearization[1] = %q; want A", aEntry.Name)
	}
}

func TestLinearization_NoBases(t *testing.T) {
	src := `contract A { function foo() public {} }`
	snap, prog, file := buildSnapshot(t, src)
	a := contractID(t, prog, file, "A")
	lin := snap.Linearization(a)
	if len(lin) != 1 || lin[0] != a {
		t.Errorf("linearization of base-less contract = %v; want [A]", lin)
	}
}
