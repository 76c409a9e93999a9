package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func described(name, description string) Variable {
	return Variable{Name: name, Description: description}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		prev     string
		prevVars []Variable
		next     string
		want     []Variable
	}{
		{
			name:     "rename keeps metadata by position",
			prev:     "cp {{src}} {{dst}}",
			prevVars: []Variable{described("src", "source file"), described("dst", "dest file")},
			next:     "cp {{from}} {{to}}",
			want:     []Variable{described("from", "source file"), described("to", "dest file")},
		},
		{
			name:     "swapped names follow position",
			prev:     "cp {{src}} {{dst}}",
			prevVars: []Variable{described("src", "source file"), described("dst", "dest file")},
			next:     "cp {{dst}} {{src}}",
			want:     []Variable{described("dst", "source file"), described("src", "dest file")},
		},
		{
			name:     "text edit matches by name",
			prev:     "{{a}} then {{b}}",
			prevVars: []Variable{described("a", "first"), described("b", "second")},
			next:     "now {{b}} and {{a}}!",
			want:     []Variable{described("b", "second"), described("a", "first")},
		},
		{
			name:     "new variable is blank",
			prev:     "{{a}}",
			prevVars: []Variable{described("a", "first")},
			next:     "{{a}} {{c}}",
			want:     []Variable{described("a", "first"), {Name: "c"}},
		},
		{
			name:     "removed variable is dropped",
			prev:     "echo {{a}} {{b}}",
			prevVars: []Variable{described("a", "first"), described("b", "second")},
			next:     "echo {{b}}",
			want:     []Variable{described("b", "second")},
		},
		{
			name:     "text edit with rename loses renamed metadata",
			prev:     "cp {{src}} {{dst}}",
			prevVars: []Variable{described("src", "source file"), described("dst", "dest file")},
			next:     "cp -r {{from}} {{dst}}",
			want:     []Variable{{Name: "from"}, described("dst", "dest file")},
		},
		{
			name:     "placeholder count change uses names",
			prev:     "{{a}}{{b}}",
			prevVars: []Variable{described("a", "first"), described("b", "second")},
			next:     "{{b}}",
			want:     []Variable{described("b", "second")},
		},
		{
			name:     "rename onto an existing name collapses slots",
			prev:     "{{a}} {{b}}",
			prevVars: []Variable{described("a", "first"), described("b", "second")},
			next:     "{{a}} {{a}}",
			want:     []Variable{described("a", "first")},
		},
		{
			name:     "rename of one repeat adds a blank variable",
			prev:     "{{x}} {{x}}",
			prevVars: []Variable{described("x", "only")},
			next:     "{{x}} {{y}}",
			want:     []Variable{described("x", "only"), {Name: "y"}},
		},
		{
			name:     "all placeholders removed",
			prev:     "echo {{a}}",
			prevVars: []Variable{described("a", "first")},
			next:     "echo done",
			want:     []Variable{},
		},
		{
			name:     "stale metadata falls back to slot index",
			prev:     "cp {{src}} {{dst}}",
			prevVars: []Variable{described("source", "source file"), described("dst", "dest file")},
			next:     "cp {{from}} {{to}}",
			want:     []Variable{described("from", "source file"), described("to", "dest file")},
		},
		{
			name: "defaults travel with descriptions",
			prev: "ping -c {{count}} {{host}}",
			prevVars: []Variable{
				{Name: "count", Description: "packets", Default: DefaultValue("3")},
				described("host", "target"),
			},
			next: "ping -c {{n}} {{host}}",
			want: []Variable{
				{Name: "n", Description: "packets", Default: DefaultValue("3")},
				described("host", "target"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(Parse(tt.prev), tt.prevVars, Parse(tt.next))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Reconcile() mismatch (-want +got):\n%s", diff)
			}
			if !Aligned(Parse(tt.next), got) {
				t.Fatalf("Reconcile() result not aligned with %q: %v", tt.next, Names(got))
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	tpl := Parse("rsync -av {{src}} {{user}}@{{host}}:{{src}}")
	vars := []Variable{
		described("src", "local path"),
		{Name: "user", Description: "remote user", Default: DefaultValue("root")},
		described("host", "remote host"),
	}

	got := Reconcile(tpl, vars, tpl)
	if diff := cmp.Diff(vars, got); diff != "" {
		t.Fatalf("Reconcile(tpl, vars, tpl) mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileDoesNotAliasInput(t *testing.T) {
	prev := Parse("echo {{a}}")
	vars := []Variable{{Name: "a", Description: "first", Default: DefaultValue("x")}}

	got := Reconcile(prev, vars, Parse("echo {{b}}"))
	*got[0].Default = "changed"
	got[0].Description = "changed"

	if *vars[0].Default != "x" || vars[0].Description != "first" {
		t.Fatalf("reconciled metadata aliases the input: %+v", vars[0])
	}
}

func TestMatchByName(t *testing.T) {
	vars := []Variable{described("b", "second"), described("a", "first"), described("a", "duplicate")}

	got := MatchByName(vars, Parse("{{a}} {{c}} {{b}}"))
	want := []Variable{described("a", "first"), {Name: "c"}, described("b", "second")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MatchByName() mismatch (-want +got):\n%s", diff)
	}
}

func TestAligned(t *testing.T) {
	tpl := Parse("{{x}} {{y}} {{x}}")

	if !Aligned(tpl, Blank([]string{"x", "y"})) {
		t.Fatalf("expected aligned")
	}
	if Aligned(tpl, Blank([]string{"y", "x"})) {
		t.Fatalf("order mismatch reported as aligned")
	}
	if Aligned(tpl, Blank([]string{"x"})) {
		t.Fatalf("missing entry reported as aligned")
	}
}
