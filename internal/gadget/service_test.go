package gadget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	s, err := store.NewFileStore(afero.NewMemMapFs(), "/gadgets.json")
	require.NoError(t, err)
	return NewService(s)
}

func strPtr(s string) *string {
	return &s
}

func addCopy(t *testing.T, svc *Service) *models.Gadget {
	t.Helper()

	g, err := svc.Add(context.Background(), AddInput{
		Name:         "copy",
		Command:      "cp {{src}} {{dst}}",
		Description:  "copy a file",
		Descriptions: []string{"source file", "dest file"},
	})
	require.NoError(t, err)
	return g
}

func TestAddPairsDescriptions(t *testing.T) {
	svc := newService(t)
	g := addCopy(t, svc)

	want := []command.Variable{
		{Name: "src", Description: "source file"},
		{Name: "dst", Description: "dest file"},
	}
	if diff := cmp.Diff(want, g.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestAddWithoutDescriptionsUsesBlankMetadata(t *testing.T) {
	svc := newService(t)

	g, err := svc.Add(context.Background(), AddInput{Name: "echo", Command: "echo {{a}} {{b}} {{a}}"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, command.Names(g.Variables))
}

func TestAddErrors(t *testing.T) {
	tests := []struct {
		name  string
		input AddInput
		check func(t *testing.T, err error)
	}{
		{
			name:  "invalid gadget name",
			input: AddInput{Name: "my gadget", Command: "ls"},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidGadgetName)
				var invalid *InvalidNameError
				require.ErrorAs(t, err, &invalid)
				require.Equal(t, "my-gadget", invalid.Suggestion)
			},
		},
		{
			name:  "empty command",
			input: AddInput{Name: "blank", Command: "   "},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrEmptyCommand)
			},
		},
		{
			name:  "descriptions without variables",
			input: AddInput{Name: "plain", Command: "ls", Descriptions: []string{"extra"}},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, command.ErrUnusedDescriptions)
			},
		},
		{
			name:  "description count mismatch",
			input: AddInput{Name: "cp", Command: "cp {{a}} {{b}}", Descriptions: []string{"only one"}},
			check: func(t *testing.T, err error) {
				var mismatch *command.VariableCountMismatchError
				require.ErrorAs(t, err, &mismatch)
			},
		},
		{
			name: "invalid variable name",
			input: AddInput{Name: "bad", Command: "echo {{a}}", Variables: []command.Variable{
				{Name: "a b"},
			}},
			check: func(t *testing.T, err error) {
				var invalid *command.InvalidVariableNameError
				require.ErrorAs(t, err, &invalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			_, err := svc.Add(context.Background(), tt.input)
			require.Error(t, err)
			tt.check(t, err)

			names, err := svc.Names(context.Background())
			require.NoError(t, err)
			require.Empty(t, names, "failed add must not store anything")
		})
	}
}

func TestAddDuplicate(t *testing.T) {
	svc := newService(t)
	addCopy(t, svc)

	_, err := svc.Add(context.Background(), AddInput{Name: "copy", Command: "ls"})
	require.ErrorIs(t, err, ErrGadgetExists)
}

func TestGetSuggestsNames(t *testing.T) {
	svc := newService(t)
	addCopy(t, svc)

	_, err := svc.Get(context.Background(), "cpoy")
	require.ErrorIs(t, err, ErrGadgetNotFound)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, []string{"copy"}, notFound.Suggestions)
}

func TestEditRenamesPlaceholders(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	g, err := svc.Edit(ctx, "copy", EditInput{Command: strPtr("cp {{from}} {{to}}")})
	require.NoError(t, err)

	want := []command.Variable{
		{Name: "from", Description: "source file"},
		{Name: "to", Description: "dest file"},
	}
	if diff := cmp.Diff(want, g.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "cp {{from}} {{to}}", stored.Command)
}

func TestEditMatchesByName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	g, err := svc.Edit(ctx, "copy", EditInput{Command: strPtr("rsync -a {{dst}} {{src}} {{extra}}")})
	require.NoError(t, err)

	want := []command.Variable{
		{Name: "dst", Description: "dest file"},
		{Name: "src", Description: "source file"},
		{Name: "extra"},
	}
	if diff := cmp.Diff(want, g.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestEditFailureKeepsStoredPair(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	original := addCopy(t, svc)

	_, err := svc.Edit(ctx, "copy", EditInput{Command: strPtr("")})
	require.ErrorIs(t, err, ErrEmptyCommand)

	_, err = svc.Edit(ctx, "copy", EditInput{Name: strPtr("bad name")})
	require.ErrorIs(t, err, ErrInvalidGadgetName)

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, original.Command, stored.Command)
	if diff := cmp.Diff(original.Variables, stored.Variables); diff != "" {
		t.Fatalf("stored variables changed (-want +got):\n%s", diff)
	}
}

func TestEditRenameGadget(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)
	_, err := svc.Add(ctx, AddInput{Name: "other", Command: "ls"})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, "copy", EditInput{Name: strPtr("other")})
	require.ErrorIs(t, err, ErrGadgetExists)

	_, err = svc.Edit(ctx, "copy", EditInput{Name: strPtr("cp"), Description: strPtr("renamed")})
	require.NoError(t, err)

	g, err := svc.Get(ctx, "cp")
	require.NoError(t, err)
	require.Equal(t, "renamed", g.Description)

	_, err = svc.Get(ctx, "copy")
	require.ErrorIs(t, err, ErrGadgetNotFound)
}

func TestUpdateVariableRenameRewritesCommand(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Add(ctx, AddInput{
		Name:         "greet",
		Command:      "echo {{who}}, hello {{who}}",
		Descriptions: []string{"person"},
	})
	require.NoError(t, err)

	g, err := svc.UpdateVariable(ctx, "greet", VariableUpdate{
		Variable: "who",
		Name:     strPtr("name"),
		Default:  strPtr("world"),
	})
	require.NoError(t, err)
	require.Equal(t, "echo {{name}}, hello {{name}}", g.Command)
	require.Equal(t, "person", g.Variables[0].Description)
	require.Equal(t, "world", g.Variables[0].DefaultOr(""))

	g, err = svc.UpdateVariable(ctx, "greet", VariableUpdate{Variable: "name", ClearDefault: true})
	require.NoError(t, err)
	require.False(t, g.Variables[0].HasDefault())
}

func TestUpdateVariableErrors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	_, err := svc.UpdateVariable(ctx, "copy", VariableUpdate{Variable: "missing"})
	require.ErrorIs(t, err, ErrVariableNotFound)

	_, err = svc.UpdateVariable(ctx, "copy", VariableUpdate{Variable: "src", Name: strPtr("dst")})
	require.ErrorIs(t, err, ErrVariableExists)

	_, err = svc.UpdateVariable(ctx, "copy", VariableUpdate{Variable: "src", Name: strPtr("has space")})
	var invalid *command.InvalidVariableNameError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.UpdateVariable(ctx, "copy", VariableUpdate{Variable: "src", Name: strPtr("with-dash")})
	require.ErrorIs(t, err, ErrPlaceholderName)
	require.Contains(t, err.Error(), `"with-dash"`)

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "cp {{src}} {{dst}}", stored.Command)
}

func TestEditWithVariableUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	g, err := svc.Edit(ctx, "copy", EditInput{
		Command:  strPtr("cp -r {{src}} {{dst}}"),
		Variable: &VariableUpdate{Variable: "src", Name: strPtr("from"), Default: strPtr(".")},
	})
	require.NoError(t, err)
	require.Equal(t, "cp -r {{from}} {{dst}}", g.Command)
	require.Equal(t, "source file", g.Variables[0].Description)
	require.Equal(t, ".", g.Variables[0].DefaultOr(""))
}

func TestEditWithInvalidVariableUpdateStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	_, err := svc.Edit(ctx, "copy", EditInput{
		Command:  strPtr("cp -r {{src}} {{dst}}"),
		Variable: &VariableUpdate{Variable: "src", Name: strPtr("bad name")},
	})
	var invalid *command.InvalidVariableNameError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.Edit(ctx, "copy", EditInput{
		Description: strPtr("changed"),
		Variable:    &VariableUpdate{Variable: "missing"},
	})
	require.ErrorIs(t, err, ErrVariableNotFound)

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "cp {{src}} {{dst}}", stored.Command)
	require.Equal(t, "copy a file", stored.Description)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	require.NoError(t, svc.Delete(ctx, "copy"))
	require.ErrorIs(t, svc.Delete(ctx, "copy"), ErrGadgetNotFound)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	addCopy(t, svc)

	incoming := []*models.Gadget{
		{Name: "copy", Command: "cp -r {{src}} {{dst}}"},
		{Name: "ping", Command: "ping -c {{count}} {{host}}"},
	}

	result, err := svc.Import(ctx, incoming, false)
	require.NoError(t, err)
	require.Equal(t, []string{"ping"}, result.Created)
	require.Equal(t, []string{"copy"}, result.Skipped)

	ping, err := svc.Get(ctx, "ping")
	require.NoError(t, err)
	require.Equal(t, []string{"count", "host"}, command.Names(ping.Variables))

	result, err = svc.Import(ctx, incoming[:1], true)
	require.NoError(t, err)
	require.Equal(t, []string{"copy"}, result.Updated)

	copyGadget, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "cp -r {{src}} {{dst}}", copyGadget.Command)
}

func TestImportRejectsInvalid(t *testing.T) {
	svc := newService(t)

	_, err := svc.Import(context.Background(), []*models.Gadget{{Name: "bad name", Command: "ls"}}, false)
	require.True(t, errors.Is(err, ErrInvalidGadgetName))
}
