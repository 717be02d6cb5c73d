package config

import (
	"fmt"
	"strings"

	"mancova/internal/errors"

	"github.com/spf13/viper"
)

// Output formats
const (
	FormatText = "text"
	FormatDocx = "docx"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
	FormatYAML = "yaml"
)

// Multivariate row sources
const (
	SourceStructured = "structured"
	SourceSummary    = "summary"
)

// KnownFormats lists every renderer the pipeline can build
var KnownFormats = []string{FormatText, FormatDocx, FormatXLSX, FormatHTML, FormatYAML}

// Config represents the complete application configuration. Every field has a
// default, so an empty environment reproduces the standard run.
type Config struct {
	Data   DataConfig   `mapstructure:",squash"`
	Output OutputConfig `mapstructure:",squash"`
	Model  ModelConfig  `mapstructure:",squash"`
	Log    LogConfig    `mapstructure:",squash"`
}

// DataConfig holds the dataset location
type DataConfig struct {
	Input string `mapstructure:"input"`
	Sheet string `mapstructure:"sheet"`
}

// OutputConfig holds renderer selection and file paths
type OutputConfig struct {
	Formats  []string `mapstructure:"formats"`
	DocxPath string   `mapstructure:"docx_path"`
	XLSXPath string   `mapstructure:"xlsx_path"`
	HTMLPath string   `mapstructure:"html_path"`
	YAMLPath string   `mapstructure:"yaml_path"`
}

// ModelConfig selects how multivariate rows are obtained
type ModelConfig struct {
	MultivariateSource string `mapstructure:"multivariate_source"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"log_level"`
}

// Defaults returns the standard run's configuration
func Defaults() *Config {
	return &Config{
		Data: DataConfig{Input: "anonymized_data.xlsx"},
		Output: OutputConfig{
			Formats:  []string{FormatText, FormatDocx},
			DocxPath: "mancova_output.docx",
			XLSXPath: "mancova_output.xlsx",
			HTMLPath: "mancova_output.html",
			YAMLPath: "mancova_output.yaml",
		},
		Model: ModelConfig{MultivariateSource: SourceStructured},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads configuration from defaults, an optional YAML file and MANCOVA_*
// environment variables, then validates it.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	d := Defaults()

	v := viper.New()
	v.SetEnvPrefix("MANCOVA")
	v.AutomaticEnv()

	v.SetDefault("input", d.Data.Input)
	v.SetDefault("sheet", d.Data.Sheet)
	v.SetDefault("formats", d.Output.Formats)
	v.SetDefault("docx_path", d.Output.DocxPath)
	v.SetDefault("xlsx_path", d.Output.XLSXPath)
	v.SetDefault("html_path", d.Output.HTMLPath)
	v.SetDefault("yaml_path", d.Output.YAMLPath)
	v.SetDefault("multivariate_source", d.Model.MultivariateSource)
	v.SetDefault("log_level", d.Log.Level)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("read config %s: %w", cfgFile, err))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("unmarshal config: %w", err))
	}
	c.Output.Formats = normalizeFormats(c.Output.Formats)
	c.Model.MultivariateSource = strings.ToLower(strings.TrimSpace(c.Model.MultivariateSource))

	if err := validateConfig(&c); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &c, nil
}

// normalizeFormats splits comma lists, lowercases and drops repeats
func normalizeFormats(in []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range in {
		for _, f := range strings.Split(item, ",") {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func validateConfig(c *Config) error {
	if c.Data.Input == "" {
		return errors.ConfigInvalid("input path is required")
	}
	if len(c.Output.Formats) == 0 {
		return errors.ConfigInvalid("at least one output format is required")
	}
	for _, f := range c.Output.Formats {
		if !isKnownFormat(f) {
			return errors.ConfigInvalid(fmt.Sprintf("unknown output format %q (known: %s)", f, strings.Join(KnownFormats, ", ")))
		}
		if f != FormatText && c.Output.PathFor(f) == "" {
			return errors.ConfigInvalid(fmt.Sprintf("output path for %s is empty", f))
		}
	}
	switch c.Model.MultivariateSource {
	case SourceStructured, SourceSummary:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("multivariate_source must be %q or %q, got %q",
			SourceStructured, SourceSummary, c.Model.MultivariateSource))
	}
	return nil
}

func isKnownFormat(f string) bool {
	for _, k := range KnownFormats {
		if k == f {
			return true
		}
	}
	return false
}

// PathFor returns the output file of a file-backed format; text goes to stdout
func (o OutputConfig) PathFor(format string) string {
	switch format {
	case FormatDocx:
		return o.DocxPath
	case FormatXLSX:
		return o.XLSXPath
	case FormatHTML:
		return o.HTMLPath
	case FormatYAML:
		return o.YAMLPath
	default:
		return ""
	}
}
