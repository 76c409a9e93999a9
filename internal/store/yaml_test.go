package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/stretchr/testify/require"
)

func TestExportImport(t *testing.T) {
	gadgets := []*models.Gadget{
		newGadget("ls"),
		{
			Name:      "greet",
			Command:   "echo {{who}}",
			Variables: []command.Variable{{Name: "who", Default: command.DefaultValue("")}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, gadgets))
	require.Contains(t, buf.String(), "gadgets:")
	require.NotContains(t, buf.String(), "created_at")

	imported, err := Import(&buf)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	require.Equal(t, "ls {{dir}}", imported[0].Command)
	require.Equal(t, ".", imported[0].Variables[0].DefaultOr(""))
	require.True(t, imported[1].Variables[0].HasDefault(), "empty defaults must survive")
}

func TestImportEmpty(t *testing.T) {
	gadgets, err := Import(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, gadgets)
}

func TestImportInvalid(t *testing.T) {
	_, err := Import(strings.NewReader("gadgets: [\n"))
	require.Error(t, err)
}
