package stats

import (
	"fmt"
	"math"
)

// ============================================================================
// MULTIVARIATE TESTS
// ============================================================================

// TestName names one of the four multivariate test statistics
type TestName string

const (
	PillaiTrace          TestName = "Pillai's trace"
	WilksLambda          TestName = "Wilks' lambda"
	HotellingLawleyTrace TestName = "Hotelling-Lawley trace"
	RoysLargestRoot      TestName = "Roy's largest root"
)

// CanonicalTests is the fixed order multivariate rows are produced and reported in
var CanonicalTests = []TestName{PillaiTrace, WilksLambda, HotellingLawleyTrace, RoysLargestRoot}

// IsCanonical reports whether name is one of the four recognised statistics
func IsCanonical(name TestName) bool {
	for _, t := range CanonicalTests {
		if t == name {
			return true
		}
	}
	return false
}

// WholeDF truncates a fractional degree of freedom to the printed integer.
// The value is rounded to four decimals first, so 55.99999999999994 is 56.
func WholeDF(df float64) int {
	return int(math.Round(df*1e4) / 1e4)
}

// MultivariateTestRow is one statistic of the grouping effect
type MultivariateTestRow struct {
	TestName TestName `json:"test_name"`
	Value    float64  `json:"value"`
	F        float64  `json:"f"`
	DF1      int      `json:"df1"`
	DF2      int      `json:"df2"`
	P        float64  `json:"p"`
}

// ============================================================================
// UNIVARIATE TESTS
// ============================================================================

// UnivariateEffectRow is the grouping-effect row of one dependent variable's ANOVA
// INVARIANTS:
// - DF = levels - 1
// - MeanSquare = SumOfSquares / DF
type UnivariateEffectRow struct {
	DependentVariable string  `json:"dependent_variable"`
	SumOfSquares      float64 `json:"sum_of_squares"`
	DF                int     `json:"df"`
	MeanSquare        float64 `json:"mean_square"`
	F                 float64 `json:"f"`
	P                 float64 `json:"p"`
}

// ResidualRow is the residual row of one dependent variable's ANOVA
// INVARIANTS:
// - DF = observations - levels
// - MeanSquare = SumOfSquares / DF
type ResidualRow struct {
	DependentVariable string  `json:"dependent_variable"`
	SumOfSquares      float64 `json:"sum_of_squares"`
	DF                int     `json:"df"`
	MeanSquare        float64 `json:"mean_square"`
}

// NewUnivariateEffectRow derives the mean square from the sum of squares and df
func NewUnivariateEffectRow(dv string, ss float64, df int, f, p float64) (UnivariateEffectRow, error) {
	ms, err := meanSquare(ss, df)
	if err != nil {
		return UnivariateEffectRow{}, fmt.Errorf("effect row for %s: %w", dv, err)
	}
	return UnivariateEffectRow{DependentVariable: dv, SumOfSquares: ss, DF: df, MeanSquare: ms, F: f, P: p}, nil
}

// NewResidualRow derives the mean square from the sum of squares and df
func NewResidualRow(dv string, ss float64, df int) (ResidualRow, error) {
	ms, err := meanSquare(ss, df)
	if err != nil {
		return ResidualRow{}, fmt.Errorf("residual row for %s: %w", dv, err)
	}
	return ResidualRow{DependentVariable: dv, SumOfSquares: ss, DF: df, MeanSquare: ms}, nil
}

func meanSquare(ss float64, df int) (float64, error) {
	if df <= 0 {
		return 0, fmt.Errorf("degrees of freedom must be positive, got %d", df)
	}
	if math.IsNaN(ss) || math.IsInf(ss, 0) {
		return 0, fmt.Errorf("sum of squares is not finite")
	}
	return ss / float64(df), nil
}

// ============================================================================
// REPORT
// ============================================================================

// Report is the complete computed result handed to renderers. It is built once
// per run and never mutated afterwards.
type Report struct {
	Observations int                   `json:"observations"`
	Levels       []string              `json:"levels"`
	Multivariate []MultivariateTestRow `json:"multivariate"`
	Univariate   []UnivariateEffectRow `json:"univariate"`
	Residuals    []ResidualRow         `json:"residuals"`
}

// Validate checks the shape invariants a renderer relies on
func (r *Report) Validate() error {
	if len(r.Multivariate) != len(CanonicalTests) {
		return fmt.Errorf("expected %d multivariate rows, got %d", len(CanonicalTests), len(r.Multivariate))
	}
	for i, row := range r.Multivariate {
		if row.TestName != CanonicalTests[i] {
			return fmt.Errorf("multivariate row %d is %q, want %q", i, row.TestName, CanonicalTests[i])
		}
	}
	if len(r.Univariate) != len(r.Residuals) {
		return fmt.Errorf("%d univariate rows but %d residual rows", len(r.Univariate), len(r.Residuals))
	}
	for i := range r.Univariate {
		if r.Univariate[i].DependentVariable != r.Residuals[i].DependentVariable {
			return fmt.Errorf("row %d: univariate %s does not match residual %s",
				i, r.Univariate[i].DependentVariable, r.Residuals[i].DependentVariable)
		}
	}
	return nil
}
