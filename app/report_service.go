package app

import (
	"context"
	"fmt"
	"time"

	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/domain/report"
	"mancova/domain/stats"
	"mancova/internal"
	"mancova/internal/errors"
	"mancova/internal/profiling"
	"mancova/ports"
)

// MultivariateSource selects how the grouping-effect rows are obtained
type MultivariateSource string

const (
	// FromStructured reads the fitted statistics directly, falling back to
	// the summary text when the structured lookup fails
	FromStructured MultivariateSource = "structured"
	// FromSummary parses the rows out of the summary text only
	FromSummary MultivariateSource = "summary"
)

// ReportService computes the complete report from a dataset source
type ReportService struct {
	source       ports.DatasetSourcePort
	univariate   ports.UnivariateFitterPort
	multivariate ports.MultivariateFitterPort
	extractor    ports.SummaryExtractorPort
	logger       *internal.Logger
}

// ReportRequest defines the inputs of one run
type ReportRequest struct {
	RunID              core.RunID // optional, will be generated if empty
	MultivariateSource MultivariateSource
}

// ReportResult contains the computed report and its display tables
type ReportResult struct {
	RunID        core.RunID                    `json:"run_id"`
	Report       *stats.Report                 `json:"report"`
	Tables       []report.Table                `json:"tables"`
	Descriptives []profiling.GroupDescriptives `json:"descriptives"`
	Fingerprint  core.Hash                     `json:"fingerprint"`
	UsedSummary  bool                          `json:"used_summary"`
	RuntimeMs    int64                         `json:"runtime_ms"`
}

// NewReportService creates the report pipeline
func NewReportService(
	source ports.DatasetSourcePort,
	univariate ports.UnivariateFitterPort,
	multivariate ports.MultivariateFitterPort,
	extractor ports.SummaryExtractorPort,
	logger *internal.Logger,
) *ReportService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &ReportService{
		source:       source,
		univariate:   univariate,
		multivariate: multivariate,
		extractor:    extractor,
		logger:       logger,
	}
}

// BuildReport loads the dataset, fits every model and shapes the tables.
// Nothing is rendered here, so a failure leaves no partial output.
func (s *ReportService) BuildReport(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	logger := s.logger.With("run_id", runID.String())

	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load dataset")
	}
	logger.Info("dataset %s: %d observations, levels %v", ds.Name, ds.Len(), ds.Levels())

	descriptives, err := profiling.DescribeGroups(ds, dataset.ReportVariables)
	if err != nil {
		return nil, errors.Wrap(err, "describe groups")
	}
	profiling.LogGroups(logger, descriptives)

	rep := &stats.Report{Observations: ds.Len(), Levels: ds.Levels()}
	for _, dv := range dataset.ReportVariables {
		effect, residual, err := s.univariate.Fit(ctx, ds, dv)
		if err != nil {
			return nil, errors.Wrapf(err, "univariate model for %s", dv)
		}
		rep.Univariate = append(rep.Univariate, effect)
		rep.Residuals = append(rep.Residuals, residual)
	}

	mv, usedSummary, err := s.multivariateRows(ctx, ds, req.MultivariateSource, logger)
	if err != nil {
		return nil, err
	}
	rep.Multivariate = mv

	if err := rep.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeInternalError, fmt.Errorf("report shape: %w", err))
	}

	tables := report.Tables(rep)
	fingerprint := core.HashCells(report.Cells(tables))
	runtime := time.Since(startTime).Milliseconds()
	logger.Info("report built in %dms, fingerprint %s", runtime, fingerprint.Short())

	return &ReportResult{
		RunID:        runID,
		Report:       rep,
		Tables:       tables,
		Descriptives: descriptives,
		Fingerprint:  fingerprint,
		UsedSummary:  usedSummary,
		RuntimeMs:    runtime,
	}, nil
}

// multivariateRows fits the joint model and returns the grouping-effect rows
// and whether they came from the summary text
func (s *ReportService) multivariateRows(ctx context.Context, ds *dataset.Dataset, source MultivariateSource, logger *internal.Logger) ([]stats.MultivariateTestRow, bool, error) {
	result, err := s.multivariate.Fit(ctx, ds, dataset.ModelVariables)
	if err != nil {
		return nil, false, errors.Wrap(err, "multivariate model")
	}

	if source != FromSummary {
		rows, err := result.Effect(dataset.IVColumn)
		if err == nil {
			return rows, false, nil
		}
		if s.extractor == nil {
			return nil, false, errors.WithCode(errors.CodeModelFit, err)
		}
		logger.Warn("structured multivariate lookup failed, parsing summary text: %v", err)
	}

	if s.extractor == nil {
		return nil, false, errors.InvalidInput("summary source selected without an extractor")
	}
	rows, err := s.extractor.Extract(result.Summary())
	if err != nil {
		return nil, true, errors.Wrap(err, "extract multivariate rows")
	}
	return rows, true, nil
}
