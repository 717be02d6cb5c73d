package container

import (
	"fmt"

	"mancova/adapters/excel"
	"mancova/adapters/render/docx"
	"mancova/adapters/render/html"
	"mancova/adapters/render/text"
	"mancova/adapters/render/xlsx"
	"mancova/adapters/render/yaml"
	"mancova/adapters/stats/manova"
	"mancova/adapters/stats/ols"
	"mancova/adapters/stats/summary"
	"mancova/app"
	"mancova/internal"
	"mancova/internal/config"
	"mancova/internal/errors"
	"mancova/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Data source and model fitters
	Source       ports.DatasetSourcePort
	Univariate   *ols.Fitter
	Multivariate *manova.Fitter
	Extractor    *summary.Extractor

	// Pipeline
	ReportService *app.ReportService
	Outputs       []app.Output
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	sourceCfg := excel.DefaultSourceConfig()
	sourceCfg.FilePath = cfg.Data.Input
	sourceCfg.Sheet = cfg.Data.Sheet
	c.Source = excel.NewSource(sourceCfg, logger.With("component", "source"))

	c.Univariate = ols.NewFitter(logger.With("component", "ols"))
	c.Multivariate = manova.NewFitter(logger.With("component", "manova"))
	c.Extractor = summary.NewExtractor(logger.With("component", "summary"))
	c.ReportService = app.NewReportService(c.Source, c.Univariate, c.Multivariate, c.Extractor, logger)

	outputs, err := Outputs(cfg.Output)
	if err != nil {
		return nil, err
	}
	c.Outputs = outputs
	return c, nil
}

// Outputs builds one renderer per configured format, in configuration order
func Outputs(cfg config.OutputConfig) ([]app.Output, error) {
	outputs := make([]app.Output, 0, len(cfg.Formats))
	for _, format := range cfg.Formats {
		r, err := NewRenderer(format)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, app.Output{Renderer: r, Path: cfg.PathFor(format)})
	}
	return outputs, nil
}

// NewRenderer returns the renderer of one format
func NewRenderer(format string) (ports.RendererPort, error) {
	switch format {
	case config.FormatText:
		return text.NewRenderer(), nil
	case config.FormatDocx:
		return docx.NewRenderer(), nil
	case config.FormatXLSX:
		return xlsx.NewRenderer(), nil
	case config.FormatHTML:
		return html.NewRenderer(), nil
	case config.FormatYAML:
		return yaml.NewRenderer(), nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("no renderer for format %q", format))
	}
}

// MultivariateSource maps the configured source name
func (c *Container) MultivariateSource() app.MultivariateSource {
	if c.Config.Model.MultivariateSource == config.SourceSummary {
		return app.FromSummary
	}
	return app.FromStructured
}
