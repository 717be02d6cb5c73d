// Package summary recovers the grouping-effect multivariate test rows from a
// model's human-readable summary text.
package summary

import (
	"strconv"
	"strings"

	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/domain/stats"
	"mancova/internal"
)

const (
	// BlockRows is the number of statistic rows following the effect header
	BlockRows = 4
	// NumericTokens is the number of trailing tokens on a statistic row
	NumericTokens = 5
	// MinRowTokens requires at least one name token before the numbers
	MinRowTokens = NumericTokens + 1

	headerLabel = "Value"
)

// Extractor locates the effect block in summary text
type Extractor struct {
	effect string
	logger *internal.Logger
}

// NewExtractor creates an extractor for the grouping factor
func NewExtractor(logger *internal.Logger) *Extractor {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Extractor{effect: dataset.IVColumn, logger: logger}
}

// FindBlock returns the four lines following the first line mentioning both
// the effect name and the value column. Blocks cut short by the end of text
// return the lines that exist.
func (e *Extractor) FindBlock(text string) ([]string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, e.effect) || !strings.Contains(line, headerLabel) {
			continue
		}
		end := min(i+1+BlockRows, len(lines))
		return lines[i+1 : end], nil
	}
	return nil, core.NewSummaryFormatError("no " + e.effect + " header line")
}

// ParseRow splits a statistic row on whitespace. The rightmost five tokens
// are value, F, df1, df2 and p; everything before them is the test name.
func ParseRow(line string) (stats.MultivariateTestRow, error) {
	tokens := strings.Fields(line)
	if len(tokens) < MinRowTokens {
		return stats.MultivariateTestRow{}, core.NewRowShapeError(line, len(tokens))
	}
	cut := len(tokens) - NumericTokens
	nums := make([]float64, NumericTokens)
	for i, tok := range tokens[cut:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return stats.MultivariateTestRow{}, core.NewRowShapeError(line, len(tokens))
		}
		nums[i] = v
	}
	return stats.MultivariateTestRow{
		TestName: stats.TestName(strings.Join(tokens[:cut], " ")),
		Value:    nums[0],
		F:        nums[1],
		DF1:      stats.WholeDF(nums[2]),
		DF2:      stats.WholeDF(nums[3]),
		P:        nums[4],
	}, nil
}

// ParseBlock parses every well-formed row of the effect block, skipping rows
// that do not parse.
func (e *Extractor) ParseBlock(text string) ([]stats.MultivariateTestRow, error) {
	block, err := e.FindBlock(text)
	if err != nil {
		return nil, err
	}
	rows := make([]stats.MultivariateTestRow, 0, len(block))
	for _, line := range block {
		row, err := ParseRow(line)
		if err != nil {
			e.logger.Warn("skipping summary row: %v", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Extract returns exactly the four canonical statistics in canonical order.
// Short blocks, unknown names and repeated names are format errors.
func (e *Extractor) Extract(text string) ([]stats.MultivariateTestRow, error) {
	rows, err := e.ParseBlock(text)
	if err != nil {
		return nil, err
	}
	if len(rows) != BlockRows {
		return nil, core.NewSummaryFormatError("expected " + strconv.Itoa(BlockRows) + " statistic rows, parsed " + strconv.Itoa(len(rows)))
	}

	byName := make(map[stats.TestName]stats.MultivariateTestRow, len(rows))
	for _, row := range rows {
		if !stats.IsCanonical(row.TestName) {
			return nil, core.NewSummaryFormatError("unknown statistic " + strconv.Quote(string(row.TestName)))
		}
		if _, dup := byName[row.TestName]; dup {
			return nil, core.NewSummaryFormatError("repeated statistic " + strconv.Quote(string(row.TestName)))
		}
		byName[row.TestName] = row
	}

	out := make([]stats.MultivariateTestRow, 0, len(stats.CanonicalTests))
	for _, name := range stats.CanonicalTests {
		out = append(out, byName[name])
	}
	return out, nil
}
