package ports

import (
	"context"

	"mancova/domain/dataset"
	"mancova/domain/stats"
)

// UnivariateFitterPort fits DV ~ C(IV) and returns its ANOVA effect and residual rows
type UnivariateFitterPort interface {
	Fit(ctx context.Context, ds *dataset.Dataset, dv string) (stats.UnivariateEffectRow, stats.ResidualRow, error)
}

// MultivariateFitterPort fits the dependent variables jointly against the grouping factor
type MultivariateFitterPort interface {
	Fit(ctx context.Context, ds *dataset.Dataset, dvs []string) (MultivariateResult, error)
}

// MultivariateResult exposes a fitted multivariate model both as structured
// statistics and as the human-readable summary text
type MultivariateResult interface {
	// Effect returns the four test rows of one effect in canonical order
	Effect(name string) ([]stats.MultivariateTestRow, error)
	// Summary renders the per-effect test tables as text
	Summary() string
}

// SummaryExtractorPort recovers the grouping-effect rows from summary text
type SummaryExtractorPort interface {
	Extract(text string) ([]stats.MultivariateTestRow, error)
}
