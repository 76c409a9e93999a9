// Package builtin bundles starter gadgets offered by gogo init.
package builtin

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/opencode-ai/gogo/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed gadgets/*.yaml
var gadgetsFS embed.FS

// Gadgets returns the bundled gadgets ordered by name.
func Gadgets() ([]*models.Gadget, error) {
	entries, err := fs.ReadDir(gadgetsFS, "gadgets")
	if err != nil {
		return nil, fmt.Errorf("read builtin gadgets: %w", err)
	}

	gadgets := make([]*models.Gadget, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := gadgetsFS.ReadFile("gadgets/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin gadget %s: %w", entry.Name(), err)
		}
		g, err := parseGadget(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin gadget %s: %w", entry.Name(), err)
		}
		if g.Name == "" {
			g.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		gadgets = append(gadgets, g)
	}

	sort.Slice(gadgets, func(i, j int) bool {
		return gadgets[i].Name < gadgets[j].Name
	})
	return gadgets, nil
}

func parseGadget(data []byte) (*models.Gadget, error) {
	var g models.Gadget
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}
