// Package xlsx renders the report as a workbook with one sheet per section.
package xlsx

import (
	"fmt"
	"io"

	"mancova/domain/report"

	"github.com/xuri/excelize/v2"
)

// Renderer writes .xlsx workbooks. Cells hold the formatted strings so the
// workbook shows exactly the text report's numbers.
type Renderer struct{}

// NewRenderer creates a workbook renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format returns "xlsx"
func (r *Renderer) Format() string {
	return "xlsx"
}

// Render writes the workbook to w
func (r *Renderer) Render(w io.Writer, tables []report.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Title); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Title); err != nil {
			return fmt.Errorf("add sheet %s: %w", t.Title, err)
		}
		if err := writeTable(f, t, bold); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Title, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t report.Table, headerStyle int) error {
	widths := make([]int, len(t.Headers))
	rows := append([][]string{t.Headers}, t.Rows...)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(t.Title, cell, v); err != nil {
				return err
			}
			if c < len(widths) && len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Title, "A1", last, headerStyle); err != nil {
		return err
	}
	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Title, col, col, float64(w+2)); err != nil {
			return err
		}
	}
	return nil
}
