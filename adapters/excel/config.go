package excel

import (
	"mancova/domain/dataset"
)

// SourceConfig holds configuration for the tabular dataset source
type SourceConfig struct {
	FilePath string `json:"file_path" mapstructure:"input"`
	// Sheet names the workbook sheet to read; empty means the first sheet
	Sheet string `json:"sheet" mapstructure:"sheet"`
	// Aliases renames source headers before column lookup
	Aliases map[string]string `json:"aliases" mapstructure:"aliases"`
	// Variables are the numeric columns every row must carry
	Variables []string `json:"variables" mapstructure:"variables"`
}

// DefaultSourceConfig reads the anonymized questionnaire workbook
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		FilePath:  "anonymized_data.xlsx",
		Aliases:   map[string]string{dataset.SourceIVLabel: dataset.IVColumn},
		Variables: append([]string(nil), dataset.ModelVariables...),
	}
}
