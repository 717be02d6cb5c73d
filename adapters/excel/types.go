package excel

// RawRowData represents a row of raw sheet data as header-keyed strings
type RawRowData map[string]string

// SheetData represents the complete tabular source
type SheetData struct {
	Headers []string     // Column headers, trimmed
	Rows    []RawRowData // Data rows
	Lines   []int        // 1-based source line of each row in Rows
	Source  string       // file path and, for workbooks, sheet name
}

// Column returns the raw values of one header in row order
func (d *SheetData) Column(header string) []string {
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[header]
	}
	return out
}
