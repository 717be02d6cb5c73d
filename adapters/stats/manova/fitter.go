// Package manova fits a multivariate linear model of several dependent
// variables against the grouping factor and computes the four classical
// multivariate test statistics for each model term.
package manova

import (
	"context"
	"fmt"
	"sort"

	"mancova/adapters/stats/design"
	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/internal"
	"mancova/ports"

	"gonum.org/v1/gonum/mat"
)

// DefaultTolerance drops eigenvalues that are numerically zero
const DefaultTolerance = 1e-8

// Fitter implements ports.MultivariateFitterPort
type Fitter struct {
	logger    *internal.Logger
	tolerance float64
}

// NewFitter creates a multivariate fitter
func NewFitter(logger *internal.Logger) *Fitter {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Fitter{logger: logger, tolerance: DefaultTolerance}
}

// Fit satisfies ports.MultivariateFitterPort
func (f *Fitter) Fit(ctx context.Context, ds *dataset.Dataset, dvs []string) (ports.MultivariateResult, error) {
	res, err := f.FitModel(ctx, ds, dvs)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FitModel fits Y = XB + E with X the treatment-coded IV design and tests the
// Intercept and IV terms
func (f *Fitter) FitModel(ctx context.Context, ds *dataset.Dataset, dvs []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := fmt.Sprintf("multivariate model of %d variables", len(dvs))

	y, err := design.Response(ds, dvs)
	if err != nil {
		return nil, core.NewModelFitError(target, err)
	}
	dm, err := design.ForDataset(ds)
	if err != nil {
		return nil, core.NewModelFitError(target, err)
	}

	n, k, p := dm.Rows(), dm.Cols(), len(dvs)
	if k < 2 {
		return nil, core.NewModelFitError(target, fmt.Errorf("%w: factor %s has a single level", core.ErrRankDeficient, dataset.IVColumn))
	}
	if !dm.FullRank() {
		return nil, core.NewModelFitError(target, fmt.Errorf("%w: rank %d of %d columns", core.ErrRankDeficient, dm.Rank, k))
	}
	dfResid := n - dm.Rank
	if dfResid < p {
		return nil, core.NewModelFitError(target, fmt.Errorf("%w: %d residual df for %d variables", core.ErrInsufficientData, dfResid, p))
	}

	var xtx mat.Dense
	xtx.Mul(dm.X.T(), dm.X)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, core.NewModelFitError(target, fmt.Errorf("%w: X'X: %v", core.ErrSingular, err))
	}

	var b mat.Dense
	if err := b.Solve(dm.X, y); err != nil {
		return nil, core.NewModelFitError(target, fmt.Errorf("%w: least squares: %v", core.ErrSingular, err))
	}

	var fitted, resid, e mat.Dense
	fitted.Mul(dm.X, &b)
	resid.Sub(y, &fitted)
	e.Mul(resid.T(), &resid)
	errRank := design.Rank(&e)

	res := &Result{
		DependentVariables: append([]string(nil), dvs...),
		Observations:       n,
		DFResid:            dfResid,
	}

	terms := []struct {
		name     string
		contrast *mat.Dense
	}{
		{design.InterceptTerm, dm.InterceptContrast()},
		{dataset.IVColumn, dm.FactorContrast()},
	}
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h, err := hypothesisSSCP(term.contrast, &b, &xtxInv)
		if err != nil {
			return nil, core.NewModelFitError(target, fmt.Errorf("%s hypothesis: %w", term.name, err))
		}
		roots, err := eigenvalues(&e, h)
		if err != nil {
			return nil, core.NewModelFitError(target, fmt.Errorf("%s eigenvalues: %w", term.name, err))
		}
		q := design.Rank(term.contrast)
		test := EffectTest{
			Effect:      term.name,
			Eigenvalues: roots,
			Statistics:  testStatistics(roots, errRank, q, dfResid, f.tolerance),
		}
		res.Tests = append(res.Tests, test)

		f.logger.Debug("manova %s: q=%d p=%d v=%d eigenvalues=%v", term.name, q, errRank, dfResid, roots)
	}

	return res, nil
}

// hypothesisSSCP computes H = (LB)' [L (X'X)^-1 L']^-1 (LB)
func hypothesisSSCP(l, b, xtxInv *mat.Dense) (*mat.Dense, error) {
	var lb mat.Dense
	lb.Mul(l, b)

	var lx, middle mat.Dense
	lx.Mul(l, xtxInv)
	middle.Mul(&lx, l.T())

	var middleInv mat.Dense
	if err := middleInv.Inverse(&middle); err != nil {
		return nil, fmt.Errorf("%w: L(X'X)^-1L': %v", core.ErrSingular, err)
	}

	var left, h mat.Dense
	left.Mul(lb.T(), &middleInv)
	h.Mul(&left, &lb)
	return &h, nil
}

// eigenvalues returns the sorted real eigenvalues of (E + H)^-1 H. They lie
// in [0, 1); imaginary parts are rounding noise and are dropped.
func eigenvalues(e, h *mat.Dense) ([]float64, error) {
	var eh mat.Dense
	eh.Add(e, h)

	var sol mat.Dense
	if err := sol.Solve(&eh, h); err != nil {
		return nil, fmt.Errorf("%w: E+H: %v", core.ErrSingular, err)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(&sol, mat.EigenNone); !ok {
		return nil, fmt.Errorf("%w: eigen decomposition did not converge", core.ErrModelFit)
	}
	values := eig.Values(nil)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = real(v)
	}
	sort.Float64s(out)
	return out, nil
}
