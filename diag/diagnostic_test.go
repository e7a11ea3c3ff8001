package diag

import (
	"testing"

	"github.com/solidity-analyzer/solidity-analyzer/span"
)

func TestDiagnostic_Accessors(t *testing.T) {
	sp := span.New(3, 9)
	d := New(sp, Warning, "unused-variable", "variable 'x' is never read")

	if d.Span() != sp {
		t.Errorf("Span() = %v; want %v", d.Span(), sp)
	}
	if d.Severity() != Warning {
		t.Errorf("Severity() = %v; want Warning", d.Severity())
	}
	if d.Code() != "unused-variable" {
		t.Errorf("Code() = %q; want unused-variable", d.Code())
	}
	if d.Message() != "variable 'x' is never read" {
		t.Errorf("Message() = %q", d.Message())
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{Error, "error"},
		{Warning, "warning"},
		{Information, "information"},
		{Hint, "hint"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q; want %q", tt.s, got, tt.want)
		}
	}
}
