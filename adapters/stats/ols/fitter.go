// Package ols fits one dependent variable against the grouping factor by
// ordinary least squares and decomposes the fit into a Type-II ANOVA table.
package ols

import (
	"context"
	"fmt"
	"math"

	"mancova/adapters/stats/design"
	"mancova/adapters/stats/dist"
	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/domain/stats"
	"mancova/internal"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ResidualTerm labels the error row of the ANOVA table
const ResidualTerm = "Residual"

// ANOVARow is one row of an analysis-of-variance table. F and P are NaN on
// the residual row.
type ANOVARow struct {
	Term  string
	SumSq float64
	DF    int
	F     float64
	P     float64
}

// ANOVATable is the two-row decomposition of DV ~ C(IV)
type ANOVATable struct {
	DependentVariable string
	Effect            ANOVARow
	Residual          ANOVARow
	TotalSumSq        float64
	Coefficients      []float64 // in design.Matrix.Terms order
}

// Fitter implements ports.UnivariateFitterPort
type Fitter struct {
	logger *internal.Logger
}

// NewFitter creates an OLS fitter
func NewFitter(logger *internal.Logger) *Fitter {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Fitter{logger: logger}
}

// Fit returns the effect and residual rows for dv
func (f *Fitter) Fit(ctx context.Context, ds *dataset.Dataset, dv string) (stats.UnivariateEffectRow, stats.ResidualRow, error) {
	table, err := f.ANOVA(ctx, ds, dv)
	if err != nil {
		return stats.UnivariateEffectRow{}, stats.ResidualRow{}, err
	}

	effect, err := stats.NewUnivariateEffectRow(dv, table.Effect.SumSq, table.Effect.DF, table.Effect.F, table.Effect.P)
	if err != nil {
		return stats.UnivariateEffectRow{}, stats.ResidualRow{}, core.NewModelFitError(dv, err)
	}
	residual, err := stats.NewResidualRow(dv, table.Residual.SumSq, table.Residual.DF)
	if err != nil {
		return stats.UnivariateEffectRow{}, stats.ResidualRow{}, core.NewModelFitError(dv, err)
	}
	return effect, residual, nil
}

// ANOVA fits dv ~ C(IV) and returns its Type-II table. With a single factor
// the Type-II effect sum of squares is the drop in residual sum of squares from
// the intercept-only model to the full model.
func (f *Fitter) ANOVA(ctx context.Context, ds *dataset.Dataset, dv string) (*ANOVATable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	y, err := ds.Column(dv)
	if err != nil {
		return nil, core.NewModelFitError(dv, err)
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.NewModelFitError(dv, core.NewNonNumericError(dv, i, fmt.Sprint(v)))
		}
	}

	dm, err := design.ForDataset(ds)
	if err != nil {
		return nil, core.NewModelFitError(dv, err)
	}
	n, k := dm.Rows(), dm.Cols()
	if n < k+1 {
		return nil, core.NewModelFitError(dv, fmt.Errorf("%w: %d observations for %d levels", core.ErrInsufficientData, n, k))
	}
	if !dm.FullRank() {
		return nil, core.NewModelFitError(dv, fmt.Errorf("%w: rank %d of %d columns", core.ErrRankDeficient, dm.Rank, k))
	}

	if k < 2 {
		return nil, core.NewModelFitError(dv, fmt.Errorf("%w: factor %s has a single level", core.ErrRankDeficient, dataset.IVColumn))
	}

	yv := mat.NewVecDense(n, y)
	var beta mat.VecDense
	if err := beta.SolveVec(dm.X, yv); err != nil {
		return nil, core.NewModelFitError(dv, fmt.Errorf("%w: %v", core.ErrSingular, err))
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(dm.X, &beta)
	resid.SubVec(yv, &fitted)
	rss := mat.Dot(&resid, &resid)

	mean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		d := v - mean
		tss += d * d
	}

	ssEffect := tss - rss
	if ssEffect < 0 {
		// Rounding only; the full model can never fit worse than its submodel.
		ssEffect = 0
	}

	dfEffect := dm.Rank - 1
	dfResid := n - dm.Rank

	fStat, p := fTest(ssEffect, dfEffect, rss, dfResid)

	f.logger.Debug("ols %s: n=%d levels=%d ss_effect=%.6g ss_resid=%.6g F=%.6g p=%.6g",
		dv, n, k, ssEffect, rss, fStat, p)

	coeffs := make([]float64, k)
	for i := range coeffs {
		coeffs[i] = beta.AtVec(i)
	}

	return &ANOVATable{
		DependentVariable: dv,
		Effect:            ANOVARow{Term: dataset.IVColumn, SumSq: ssEffect, DF: dfEffect, F: fStat, P: p},
		Residual:          ANOVARow{Term: ResidualTerm, SumSq: rss, DF: dfResid, F: math.NaN(), P: math.NaN()},
		TotalSumSq:        tss,
		Coefficients:      coeffs,
	}, nil
}

// fTest returns F = (ssEffect/df1) / (ssResid/df2) and its upper-tail p-value
func fTest(ssEffect float64, df1 int, ssResid float64, df2 int) (float64, float64) {
	msEffect := ssEffect / float64(df1)
	msResid := ssResid / float64(df2)
	if msResid == 0 {
		if msEffect == 0 {
			return math.NaN(), math.NaN()
		}
		return math.Inf(1), 0
	}
	fStat := msEffect / msResid
	return fStat, dist.FTestPValue(fStat, float64(df1), float64(df2))
}
