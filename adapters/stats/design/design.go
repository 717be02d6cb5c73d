// Package design builds treatment-coded design matrices for a single
// categorical factor.
package design

import (
	"fmt"
	"math"

	"mancova/domain/core"
	"mancova/domain/dataset"

	"gonum.org/v1/gonum/mat"
)

// InterceptTerm is the column name of the constant term
const InterceptTerm = "Intercept"

// Matrix is an n x k design: an intercept column followed by one 0/1 dummy
// per non-reference level
type Matrix struct {
	X         *mat.Dense
	Terms     []string // column names, e.g. "Intercept", "IV[T.paper]"
	Levels    []string
	Reference string
	Rank      int
}

// Treatment builds the design for groups. levels must be the sorted distinct
// values of groups; the first one is the reference.
func Treatment(factor string, groups, levels []string) (*Matrix, error) {
	if len(levels) == 0 || len(groups) == 0 {
		return nil, fmt.Errorf("%w: factor %s has no observations", core.ErrInsufficientData, factor)
	}
	col := make(map[string]int, len(levels))
	for i, lv := range levels {
		col[lv] = i
	}

	n, k := len(groups), len(levels)
	x := mat.NewDense(n, k, nil)
	for i, g := range groups {
		j, ok := col[g]
		if !ok {
			return nil, fmt.Errorf("level %q of row %d not among factor levels", g, i)
		}
		x.Set(i, 0, 1)
		if j > 0 {
			x.Set(i, j, 1)
		}
	}

	terms := make([]string, k)
	terms[0] = InterceptTerm
	for j := 1; j < k; j++ {
		terms[j] = fmt.Sprintf("%s[T.%s]", factor, levels[j])
	}

	return &Matrix{X: x, Terms: terms, Levels: levels, Reference: levels[0], Rank: Rank(x)}, nil
}

// ForDataset builds the grouping design of ds
func ForDataset(ds *dataset.Dataset) (*Matrix, error) {
	return Treatment(dataset.IVColumn, ds.Groups(), ds.Levels())
}

// Rows returns the number of observations
func (m *Matrix) Rows() int {
	r, _ := m.X.Dims()
	return r
}

// Cols returns the number of design columns
func (m *Matrix) Cols() int {
	_, c := m.X.Dims()
	return c
}

// FullRank reports whether every design column is estimable
func (m *Matrix) FullRank() bool {
	return m.Rank == m.Cols()
}

// FactorContrast selects every dummy column, testing the factor as a whole.
// It is nil when the factor has a single level.
func (m *Matrix) FactorContrast() *mat.Dense {
	k := m.Cols()
	if k < 2 {
		return nil
	}
	l := mat.NewDense(k-1, k, nil)
	for i := 0; i < k-1; i++ {
		l.Set(i, i+1, 1)
	}
	return l
}

// InterceptContrast selects the constant term
func (m *Matrix) InterceptContrast() *mat.Dense {
	l := mat.NewDense(1, m.Cols(), nil)
	l.Set(0, 0, 1)
	return l
}

// Response stacks the named dataset columns into an n x p matrix
func Response(ds *dataset.Dataset, dvs []string) (*mat.Dense, error) {
	if len(dvs) == 0 {
		return nil, fmt.Errorf("no dependent variables given")
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: dataset is empty", core.ErrInsufficientData)
	}
	y := mat.NewDense(ds.Len(), len(dvs), nil)
	for j, dv := range dvs {
		col, err := ds.Column(dv)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, core.NewNonNumericError(dv, i, fmt.Sprint(v))
			}
			y.Set(i, j, v)
		}
	}
	return y, nil
}

// Rank is the numerical rank of a, using the same singular value cutoff as
// numpy's matrix_rank: max(dims) * eps * largest singular value.
func Rank(a mat.Matrix) int {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return 0
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0
	}
	tol := values[0] * float64(max(r, c)) * machineEpsilon
	rank := 0
	for _, s := range values {
		if s > tol {
			rank++
		}
	}
	return rank
}

const machineEpsilon = 2.220446049250313e-16
