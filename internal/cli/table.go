// Package cli provides table helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

const tablePadding = 2

// table collects rows and renders them as aligned columns. Cells in a
// column with a width limit are truncated before rendering.
type table struct {
	headers []string
	limits  map[int]int
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers, limits: make(map[int]int)}
}

// limit caps the width of column col.
func (t *table) limit(col, width int) *table {
	t.limits[col] = width
	return t
}

func (t *table) add(cells ...string) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.ReplaceAll(cell, "\t", " ")
		if width, ok := t.limits[i]; ok {
			cell = truncate(cell, width)
		}
		row[i] = cell
	}
	t.rows = append(t.rows, row)
}

func (t *table) render(out io.Writer) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(t.headers) > 0 {
		fmt.Fprintln(writer, strings.Join(t.headers, "\t"))
	}
	for _, row := range t.rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

// gadgetTable lists gadgets one per row.
func gadgetTable(gadgets []*models.Gadget) *table {
	t := newTable("NAME", "VARS", "DESCRIPTION", "COMMAND").limit(2, 40).limit(3, 50)
	for _, g := range gadgets {
		t.add(g.Name, strconv.Itoa(len(g.Variables)), valueOrDash(g.Description), g.Command)
	}
	return t
}

// variableTable lists a gadget's variables. A variable without a default
// must be given a value on every run.
func variableTable(vars []command.Variable) *table {
	t := newTable("VARIABLE", "DESCRIPTION", "DEFAULT", "REQUIRED").limit(1, 50).limit(2, 30)
	for _, v := range vars {
		t.add(v.Name, valueOrDash(v.Description), formatDefault(v), formatYesNo(!v.HasDefault()))
	}
	return t
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
