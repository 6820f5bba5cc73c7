package types

import (
	"strings"
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "error with located primary label",
			d:    NewError(NewSpan(0, 3, 4), "undeclared variable 'foo'"),
			want: "error: undeclared variable 'foo' (line 4)",
		},
		{
			name: "synthetic primary label omits line",
			d:    NewError(Synthetic, "internal constructor mismatch"),
			want: "error: internal constructor mismatch",
		},
		{
			name: "warning severity",
			d: Diagnostic{
				Severity: SeverityWarning,
				Message:  "unused variable 'bar'",
				Labels:   []Label{{Kind: LabelPrimary, Span: NewSpan(0, 3, 7), Message: "unused variable 'bar'"}},
			},
			want: "warning: unused variable 'bar' (line 7)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticWithSecondary(t *testing.T) {
	d := NewError(NewSpan(10, 13, 5), "duplicate symbol 'x'").
		WithSecondary(NewSpan(2, 3, 1), "first declared here")

	if len(d.Labels) != 2 {
		t.Fatalf("len(Labels) = %d, want 2", len(d.Labels))
	}
	if d.Labels[1].Kind != LabelSecondary {
		t.Errorf("Labels[1].Kind = %v, want LabelSecondary", d.Labels[1].Kind)
	}

	got := d.String()
	if !strings.Contains(got, "note: first declared here (line 1)") {
		t.Errorf("String() = %q, want it to contain the secondary note", got)
	}
}

func TestDiagnosticPrimary(t *testing.T) {
	d := Diagnostic{Message: "no labels"}
	if _, ok := d.Primary(); ok {
		t.Error("Primary() on a label-less diagnostic should return ok=false")
	}

	d = NewError(NewSpan(0, 1, 1), "has a primary")
	p, ok := d.Primary()
	if !ok {
		t.Fatal("Primary() should find the label added by NewError")
	}
	if p.Kind != LabelPrimary {
		t.Errorf("Primary().Kind = %v, want LabelPrimary", p.Kind)
	}
}
