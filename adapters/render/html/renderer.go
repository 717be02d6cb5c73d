// Package html renders the report as a standalone HTML page, built from a
// markdown table document.
package html

import (
	"fmt"
	"io"
	"strings"

	"mancova/domain/report"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer writes a complete HTML page
type Renderer struct{}

// NewRenderer creates an HTML renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format returns "html"
func (r *Renderer) Format() string {
	return "html"
}

// Render converts Markdown(tables) to HTML
func (r *Renderer) Render(w io.Writer, tables []report.Table) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: report.Title,
	})
	out := markdown.ToHTML([]byte(Markdown(tables)), p, renderer)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// Markdown lays the tables out as a markdown document. Numeric columns are
// right-aligned; the first column is the row label.
func Markdown(tables []report.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", report.Title)
	for _, t := range tables {
		fmt.Fprintf(&b, "\n## %s\n\n", t.Title)
		b.WriteString(row(t.Headers))
		align := make([]string, len(t.Headers))
		for i := range align {
			align[i] = "---:"
		}
		if len(align) > 0 {
			align[0] = ":---"
		}
		b.WriteString(row(align))
		for _, r := range t.Rows {
			b.WriteString(row(r))
		}
	}
	return b.String()
}

func row(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}
