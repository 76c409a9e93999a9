package store

import (
	"fmt"
	"io"

	"github.com/opencode-ai/gogo/internal/models"
	"gopkg.in/yaml.v3"
)

// Document is the YAML import/export format.
type Document struct {
	Gadgets []*models.Gadget `yaml:"gadgets"`
}

// Export writes gadgets as a YAML document.
func Export(w io.Writer, gadgets []*models.Gadget) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Gadgets: gadgets}); err != nil {
		return fmt.Errorf("encode gadgets: %w", err)
	}
	return enc.Close()
}

// Import reads a YAML document written by Export.
func Import(r io.Reader) ([]*models.Gadget, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode gadgets: %w", err)
	}

	for i, gadget := range doc.Gadgets {
		if gadget == nil {
			return nil, fmt.Errorf("decode gadgets: entry %d is empty", i)
		}
	}
	return doc.Gadgets, nil
}
