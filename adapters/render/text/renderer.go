// Package text renders the report as the fixed-width console block.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mancova/domain/report"
)

// RuleWidth is the length of the rule lines framing the report
const RuleWidth = 70

// Column widths per section; negative widths are left-aligned
var sectionWidths = map[string][]int{
	report.MultivariateSection: {-25, 7, 6, 4, 4, 6},
	report.UnivariateSection:   {-18, 15, 4, 13, 6, 6},
	report.ResidualSection:     {-18, 15, 4, 13},
}

// Renderer writes the console report
type Renderer struct{}

// NewRenderer creates a text renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format returns "text"
func (r *Renderer) Format() string {
	return "text"
}

// Render writes a leading blank line, a rule, the title, every section and
// the closing rule
func (r *Renderer) Render(w io.Writer, tables []report.Table) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", RuleWidth)

	fmt.Fprintf(bw, "\n%s\n%s\n\n", rule, report.Title)
	for i, t := range tables {
		if i > 0 {
			bw.WriteString("\n")
		}
		widths := sectionWidths[t.Title]
		if widths == nil {
			widths = fitWidths(t)
		}
		bw.WriteString(t.Title)
		bw.WriteString("\n")
		bw.WriteString(Line(widths, t.Headers))
		for _, row := range t.Rows {
			bw.WriteString(Line(widths, row))
		}
	}
	fmt.Fprintf(bw, "%s\n\n", rule)
	return bw.Flush()
}

// Line pads cells to widths, separated by single spaces
func Line(widths []int, cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		fmt.Fprintf(&b, "%*s", w, cell)
	}
	b.WriteByte('\n')
	return b.String()
}

// fitWidths sizes an unknown section to its widest cells, first column left
func fitWidths(t report.Table) []int {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	if len(widths) > 0 {
		widths[0] = -widths[0]
	}
	return widths
}
