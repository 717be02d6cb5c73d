// Package report shapes computed rows into display tables. Every renderer goes
// through Tables, so text and document outputs carry identical numbers.
package report

import (
	"strconv"

	"mancova/domain/stats"
)

// Title is the report heading
const Title = "MANCOVA"

// Section titles in rendering order
const (
	MultivariateSection = "Multivariate Tests"
	UnivariateSection   = "Univariate Tests"
	ResidualSection     = "Residuals"
)

// Decimal places per column kind
const (
	ValuePlaces        = 4
	FPlaces            = 2
	PPlaces            = 3
	SumOfSquaresPlaces = 0
	MeanSquarePlaces   = 1
)

var (
	MultivariateHeaders = []string{"Type of Test", "value", "F", "df1", "df2", "p"}
	UnivariateHeaders   = []string{"Dependent Variable", "Sum of Squares", "df", "Mean Square", "F", "p"}
	ResidualHeaders     = []string{"Dependent Variable", "Sum of Squares", "df", "Mean Square"}
)

// Table is one titled section of formatted cells
type Table struct {
	Title   string     `yaml:"title"`
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
}

// Fixed formats v with exactly places decimal places
func Fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// Int formats a degrees-of-freedom count
func Int(v int) string {
	return strconv.Itoa(v)
}

// MultivariateCells formats one multivariate row
func MultivariateCells(row stats.MultivariateTestRow) []string {
	return []string{
		string(row.TestName),
		Fixed(row.Value, ValuePlaces),
		Fixed(row.F, FPlaces),
		Int(row.DF1),
		Int(row.DF2),
		Fixed(row.P, PPlaces),
	}
}

// UnivariateCells formats one univariate effect row
func UnivariateCells(row stats.UnivariateEffectRow) []string {
	return []string{
		row.DependentVariable,
		Fixed(row.SumOfSquares, SumOfSquaresPlaces),
		Int(row.DF),
		Fixed(row.MeanSquare, MeanSquarePlaces),
		Fixed(row.F, FPlaces),
		Fixed(row.P, PPlaces),
	}
}

// ResidualCells formats one residual row
func ResidualCells(row stats.ResidualRow) []string {
	return []string{
		row.DependentVariable,
		Fixed(row.SumOfSquares, SumOfSquaresPlaces),
		Int(row.DF),
		Fixed(row.MeanSquare, MeanSquarePlaces),
	}
}

// Tables returns the three report sections in rendering order
func Tables(r *stats.Report) []Table {
	mv := Table{Title: MultivariateSection, Headers: MultivariateHeaders}
	for _, row := range r.Multivariate {
		mv.Rows = append(mv.Rows, MultivariateCells(row))
	}

	uni := Table{Title: UnivariateSection, Headers: UnivariateHeaders}
	for _, row := range r.Univariate {
		uni.Rows = append(uni.Rows, UnivariateCells(row))
	}

	res := Table{Title: ResidualSection, Headers: ResidualHeaders}
	for _, row := range r.Residuals {
		res.Rows = append(res.Rows, ResidualCells(row))
	}

	return []Table{mv, uni, res}
}

// Cells flattens tables into one row list, headers included, for fingerprinting
func Cells(tables []Table) [][]string {
	var out [][]string
	for _, t := range tables {
		out = append(out, []string{t.Title})
		out = append(out, t.Headers)
		out = append(out, t.Rows...)
	}
	return out
}
