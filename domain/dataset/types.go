package dataset

import (
	"fmt"
	"sort"

	"mancova/domain/core"
)

// Column names used by the pipeline. They are fixed; the source file's
// "Type of test" header is aliased to IVColumn on load.
const (
	IVColumn      = "IV"
	SourceIVLabel = "Type of test"

	Anxiety      = "Anxiety"
	Stress       = "Stress"
	Spirituality = "Spirituality"
)

// ModelVariables is the dependent-variable order of the multivariate model
var ModelVariables = []string{Anxiety, Stress, Spirituality}

// ReportVariables is the order univariate and residual rows are reported in
var ReportVariables = []string{Anxiety, Spirituality, Stress}

// Record is one observation: a grouping level and its numeric measurements
type Record struct {
	Level  string             `json:"iv"`
	Values map[string]float64 `json:"values"`
}

// Dataset is an ordered, read-only collection of records
type Dataset struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"` // numeric columns present on every record
	Records []Record `json:"records"`
}

// New builds a dataset and checks that every record carries every numeric column
func New(name string, columns []string, records []Record) (*Dataset, error) {
	for i, rec := range records {
		if rec.Level == "" {
			return nil, fmt.Errorf("%w: record %d has empty %s", core.ErrDataLoad, i, IVColumn)
		}
		for _, col := range columns {
			if _, ok := rec.Values[col]; !ok {
				return nil, fmt.Errorf("%w: record %d lacks %q", core.ErrDataLoad, i, col)
			}
		}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Name: name, Columns: cols, Records: records}, nil
}

// Len returns the number of observations
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether a numeric column is present
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the numeric values of one column in record order
func (d *Dataset) Column(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, core.NewMissingColumnError(name)
	}
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Values[name]
	}
	return out, nil
}

// Groups returns the grouping level of each record in record order
func (d *Dataset) Groups() []string {
	out := make([]string, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Level
	}
	return out
}

// Levels returns the distinct grouping levels, sorted. The first level is the
// reference level of the treatment coding.
func (d *Dataset) Levels() []string {
	seen := make(map[string]bool)
	var levels []string
	for _, rec := range d.Records {
		if !seen[rec.Level] {
			seen[rec.Level] = true
			levels = append(levels, rec.Level)
		}
	}
	sort.Strings(levels)
	return levels
}

// GroupColumn splits a numeric column by grouping level
func (d *Dataset) GroupColumn(name string) (map[string][]float64, error) {
	values, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64)
	for i, rec := range d.Records {
		out[rec.Level] = append(out[rec.Level], values[i])
	}
	return out, nil
}
