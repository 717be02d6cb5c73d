// Package yaml renders the formatted tables as a YAML document.
package yaml

import (
	"fmt"
	"io"

	"mancova/domain/report"

	"gopkg.in/yaml.v3"
)

// Document is the rendered YAML shape
type Document struct {
	Title    string         `yaml:"title"`
	Sections []report.Table `yaml:"sections"`
}

// Renderer writes YAML
type Renderer struct{}

// NewRenderer creates a YAML renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format returns "yaml"
func (r *Renderer) Format() string {
	return "yaml"
}

// Render encodes the tables; cells stay strings so precision is preserved
func (r *Renderer) Render(w io.Writer, tables []report.Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Title: report.Title, Sections: tables}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}
