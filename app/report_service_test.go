package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"mancova/adapters/render/docx"
	"mancova/adapters/render/text"
	"mancova/adapters/stats/manova"
	"mancova/adapters/stats/ols"
	"mancova/adapters/stats/summary"
	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/domain/report"
	"mancova/domain/stats"
	"mancova/internal/errors"
	"mancova/internal/testkit"
	"mancova/ports"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	ds  *dataset.Dataset
	err error
}

func (s staticSource) Load(context.Context) (*dataset.Dataset, error) {
	return s.ds, s.err
}

// brokenEffect keeps the summary text but loses the structured lookup
type brokenEffect struct{ ports.MultivariateResult }

func (brokenEffect) Effect(string) ([]stats.MultivariateTestRow, error) {
	return nil, stderrors.New("effect index unavailable")
}

type brokenFitter struct{ inner *manova.Fitter }

func (f brokenFitter) Fit(ctx context.Context, ds *dataset.Dataset, dvs []string) (ports.MultivariateResult, error) {
	res, err := f.inner.Fit(ctx, ds, dvs)
	if err != nil {
		return nil, err
	}
	return brokenEffect{res}, nil
}

type failingRenderer struct{}

func (failingRenderer) Format() string { return "broken" }
func (failingRenderer) Render(io.Writer, []report.Table) error {
	return stderrors.New("no space left")
}

func surveyDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := testkit.NewSurveyDataGenerator(testkit.DefaultSurveyConfig()).Dataset()
	require.NoError(t, err)
	return ds
}

func newService(t *testing.T, mv ports.MultivariateFitterPort) *ReportService {
	t.Helper()
	if mv == nil {
		mv = manova.NewFitter(nil)
	}
	return NewReportService(staticSource{ds: surveyDataset(t)}, ols.NewFitter(nil), mv, summary.NewExtractor(nil), nil)
}

func TestBuildReport_Structured(t *testing.T) {
	res, err := newService(t, nil).BuildReport(context.Background(), ReportRequest{})
	require.NoError(t, err)

	assert.False(t, res.RunID == "")
	assert.False(t, res.UsedSummary)
	assert.False(t, res.Fingerprint.IsEmpty())
	assert.Equal(t, 90, res.Report.Observations)
	assert.Len(t, res.Descriptives, 9)
	require.NoError(t, res.Report.Validate())

	for i, dv := range dataset.ReportVariables {
		assert.Equal(t, dv, res.Report.Univariate[i].DependentVariable)
		assert.Equal(t, 2, res.Report.Univariate[i].DF)
		assert.Equal(t, 87, res.Report.Residuals[i].DF)
	}
	require.Len(t, res.Tables, 3)
	assert.Len(t, res.Tables[0].Rows, 4)
}

func TestBuildReport_SummaryPathAgrees(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)

	structured, err := svc.BuildReport(ctx, ReportRequest{MultivariateSource: FromStructured})
	require.NoError(t, err)
	parsed, err := svc.BuildReport(ctx, ReportRequest{MultivariateSource: FromSummary})
	require.NoError(t, err)

	assert.True(t, parsed.UsedSummary)
	if diff := cmp.Diff(structured.Tables, parsed.Tables); diff != "" {
		t.Errorf("tables differ between sources (-structured +summary):\n%s", diff)
	}
	assert.True(t, structured.Fingerprint.Equals(parsed.Fingerprint))
}

func TestBuildReport_FallsBackToSummary(t *testing.T) {
	svc := newService(t, brokenFitter{inner: manova.NewFitter(nil)})
	res, err := svc.BuildReport(context.Background(), ReportRequest{})
	require.NoError(t, err)
	assert.True(t, res.UsedSummary)
	assert.Len(t, res.Report.Multivariate, 4)
}

func TestBuildReport_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure", func(t *testing.T) {
		src := staticSource{err: core.NewDataLoadError("anonymized_data.xlsx", os.ErrNotExist)}
		svc := NewReportService(src, ols.NewFitter(nil), manova.NewFitter(nil), summary.NewExtractor(nil), nil)
		_, err := svc.BuildReport(ctx, ReportRequest{})
		assert.Equal(t, errors.CodeDataLoad, errors.GetCode(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("single level", func(t *testing.T) {
		cfg := testkit.DefaultSurveyConfig()
		cfg.Levels = []string{"Paper"}
		ds, err := testkit.NewSurveyDataGenerator(cfg).Dataset()
		require.NoError(t, err)
		svc := NewReportService(staticSource{ds: ds}, ols.NewFitter(nil), manova.NewFitter(nil), summary.NewExtractor(nil), nil)
		_, err = svc.BuildReport(ctx, ReportRequest{})
		assert.Equal(t, errors.CodeModelFit, errors.GetCode(err))
		assert.ErrorIs(t, err, core.ErrRankDeficient)
	})
}

func TestRenderOutputs(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	res, err := svc.BuildReport(ctx, ReportRequest{})
	require.NoError(t, err)

	dir := t.TempDir()
	docPath := filepath.Join(dir, "out", "mancova_output.docx")
	var console bytes.Buffer
	outputs := []Output{
		{Renderer: text.NewRenderer()},
		{Renderer: docx.NewRenderer(), Path: docPath},
	}
	require.NoError(t, svc.RenderOutputs(ctx, res.Tables, outputs, &console))

	assert.Contains(t, console.String(), "Multivariate Tests\n")
	info, err := os.Stat(docPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	entries, err := os.ReadDir(filepath.Dir(docPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestRenderOutputs_FailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	res, err := svc.BuildReport(ctx, ReportRequest{})
	require.NoError(t, err)

	docPath := filepath.Join(t.TempDir(), "mancova_output.docx")
	var console bytes.Buffer
	outputs := []Output{
		{Renderer: text.NewRenderer()},
		{Renderer: docx.NewRenderer(), Path: docPath},
		{Renderer: failingRenderer{}, Path: filepath.Join(t.TempDir(), "x")},
	}
	err = svc.RenderOutputs(ctx, res.Tables, outputs, &console)
	assert.Equal(t, errors.CodeRender, errors.GetCode(err))
	assert.Empty(t, console.String())
	_, statErr := os.Stat(docPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderOutputs_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)

	render := func() string {
		res, err := svc.BuildReport(ctx, ReportRequest{})
		require.NoError(t, err)
		var console bytes.Buffer
		require.NoError(t, svc.RenderOutputs(ctx, res.Tables, []Output{{Renderer: text.NewRenderer()}}, &console))
		return console.String()
	}
	assert.Equal(t, render(), render())
}
