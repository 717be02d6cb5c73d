// Package docx renders the report as a Word document: a Heading 1 title and
// one Heading 2 plus table per section.
package docx

import (
	"fmt"
	"io"

	"mancova/domain/report"

	"github.com/gomutex/godocx"
)

// Style IDs of the default template used by the document
const (
	StyleTableGrid = "TableGrid"

	titleLevel   = 1
	sectionLevel = 2
)

// Package part names
const (
	DocumentPart = "word/document.xml"
	StylesPart   = "word/styles.xml"
)

// Renderer writes .docx packages
type Renderer struct {
	// GridSections lists the sections drawn with the Table Grid style; the
	// others use the default table style
	GridSections map[string]bool
}

// NewRenderer creates a renderer that grids the univariate and residual tables
func NewRenderer() *Renderer {
	return &Renderer{GridSections: map[string]bool{
		report.UnivariateSection: true,
		report.ResidualSection:   true,
	}}
}

// Format returns "docx"
func (r *Renderer) Format() string {
	return "docx"
}

// Render writes the complete package to w. Parts are written in sorted order
// with no timestamps, so equal tables give equal bytes.
func (r *Renderer) Render(w io.Writer, tables []report.Table) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("open docx template: %w", err)
	}

	if _, err := doc.AddHeading(report.Title, titleLevel); err != nil {
		return fmt.Errorf("add title: %w", err)
	}
	for _, t := range tables {
		if _, err := doc.AddHeading(t.Title, sectionLevel); err != nil {
			return fmt.Errorf("add heading %q: %w", t.Title, err)
		}

		tbl := doc.AddTable()
		if r.GridSections[t.Title] {
			tbl.Style(StyleTableGrid)
		}
		for _, cells := range append([][]string{t.Headers}, t.Rows...) {
			row := tbl.AddRow()
			for _, c := range cells {
				row.AddCell().AddParagraph(c)
			}
		}
	}

	if err := doc.Write(w); err != nil {
		return fmt.Errorf("write docx package: %w", err)
	}
	return nil
}
