package gadget

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opencode-ai/gogo/internal/command"
	"github.com/stretchr/testify/require"
)

func TestDraftTypingKeepsMetadata(t *testing.T) {
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	// Retype the first placeholder one keystroke at a time.
	for _, raw := range []string{
		"cp {{sr}} {{dst}}",
		"cp {{s}} {{dst}}",
		"cp {{source}} {{dst}}",
	} {
		d.SetCommand(raw)
	}

	want := []command.Variable{
		{Name: "source", Description: "source file"},
		{Name: "dst", Description: "dest file"},
	}
	if diff := cmp.Diff(want, d.Variables()); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftBrokenPlaceholderFallsBackToNames(t *testing.T) {
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.SetCommand("cp {{src} {{dst}}")
	require.Equal(t, []string{"dst"}, command.Names(d.Variables()))

	d.SetCommand("cp {{src}} {{dst}}")
	vars := d.Variables()
	require.Equal(t, []string{"src", "dst"}, command.Names(vars))
	require.Equal(t, "", vars[0].Description, "dropped metadata is not resurrected")
	require.Equal(t, "dest file", vars[1].Description)
}

func TestDraftVariableRenameFollowsCommand(t *testing.T) {
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.SetVariableName(0, "")
	require.True(t, d.NameError(0))
	require.Equal(t, "cp {{src}} {{dst}}", d.Command(), "empty names leave the command alone")

	d.SetVariableName(0, "f")
	d.SetVariableName(0, "from")
	require.False(t, d.NameError(0))
	require.Equal(t, "cp {{from}} {{dst}}", d.Command())
	require.Equal(t, "source file", d.Variables()[0].Description)
}

func TestDraftSaveFailureFlagsAndKeepsStore(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.SetVariableName(1, "to dir")
	_, err := d.Save(ctx)
	require.Error(t, err)
	require.True(t, d.NameError(1))
	require.NotEmpty(t, d.Message())

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, []string{"src", "dst"}, command.Names(stored.Variables))
}

func TestDraftSaveCommits(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.Name = "copy-file"
	d.SetCommand("cp -v {{src}} {{dst}}")
	d.SetVariableDefault(1, "/tmp")

	saved, err := d.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, "copy-file", saved.Name)
	require.Empty(t, d.Message())

	stored, err := svc.Get(ctx, "copy-file")
	require.NoError(t, err)
	require.Equal(t, "cp -v {{src}} {{dst}}", stored.Command)
	require.Equal(t, "/tmp", stored.Variables[1].DefaultOr(""))

	// A second save edits the renamed gadget in place.
	d.Description = "copy with progress"
	_, err = d.Save(ctx)
	require.NoError(t, err)
	names, err := svc.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"copy-file"}, names)
}

func TestDraftReset(t *testing.T) {
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.SetCommand("mv {{a}}")
	d.Description = "changed"
	d.Reset()

	require.Equal(t, "cp {{src}} {{dst}}", d.Command())
	require.Equal(t, "copy a file", d.Description)
	require.Equal(t, []string{"src", "dst"}, command.Names(d.Variables()))
}

func TestNewDraftCreatesGadget(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	d := svc.NewDraft(nil)
	require.True(t, d.IsNew())

	d.Name = "hello"
	d.SetCommand("echo {{msg}}")
	d.SetVariableDescription(0, "message")

	_, err := d.Save(ctx)
	require.NoError(t, err)
	require.False(t, d.IsNew())

	g, err := svc.Get(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, "message", g.Variables[0].Description)
}

func TestDraftVariableRenameSkipsSiblingNames(t *testing.T) {
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	for _, name := range []string{"s", "sr", "src"} {
		d.SetVariableName(1, name)
	}
	require.True(t, d.NameError(1))
	require.Equal(t, "cp {{src}} {{sr}}", d.Command(), "a taken name leaves the command alone")

	d.SetVariableName(1, "src2")
	require.False(t, d.NameError(1))
	require.Equal(t, "cp {{src}} {{src2}}", d.Command())
	require.Equal(t, []string{"src", "src2"}, command.Names(d.Variables()))
	require.Equal(t, "source file", d.Variables()[0].Description)
	require.Equal(t, "dest file", d.Variables()[1].Description)
}

func TestDraftSaveFlagsDuplicateNames(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	d := svc.NewDraft(addCopy(t, svc))

	d.SetVariableName(1, "src")
	_, err := d.Save(ctx)
	var mismatch *command.VariableCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.False(t, d.NameError(0))
	require.True(t, d.NameError(1))

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "cp {{src}} {{dst}}", stored.Command)
}
