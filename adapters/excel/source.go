package excel

import (
	"context"
	"errors"
	"math"
	"strconv"

	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/internal"
)

// Source loads the analysis dataset from a workbook or CSV file and
// implements ports.DatasetSourcePort
type Source struct {
	config SourceConfig
	logger *internal.Logger
}

// NewSource creates a dataset source
func NewSource(config SourceConfig, logger *internal.Logger) *Source {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if len(config.Variables) == 0 {
		config.Variables = append([]string(nil), dataset.ModelVariables...)
	}
	return &Source{config: config, logger: logger}
}

// Load reads the file, renames aliased headers and parses every variable.
// Rows with a blank level or blank measurement are dropped; any other
// unparseable cell fails the load.
func (s *Source) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reader := NewDataReader(s.config.FilePath, s.config.Sheet, s.logger)
	data, err := reader.ReadData()
	if err != nil {
		return nil, core.NewDataLoadError(s.config.FilePath, err)
	}
	s.applyAliases(data)

	present := make(map[string]bool, len(data.Headers))
	for _, h := range data.Headers {
		present[h] = true
	}
	for _, col := range append([]string{dataset.IVColumn}, s.config.Variables...) {
		if !present[col] {
			return nil, core.NewDataLoadError(data.Source, core.NewMissingColumnError(col))
		}
	}

	records := make([]dataset.Record, 0, len(data.Rows))
	dropped := 0
	for i, row := range data.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := s.parseRow(row, data.Lines[i])
		if errors.Is(err, errIncomplete) {
			dropped++
			continue
		}
		if err != nil {
			return nil, core.NewDataLoadError(data.Source, err)
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		s.logger.Warn("dropped %d incomplete rows from %s", dropped, data.Source)
	}
	if len(records) == 0 {
		return nil, core.NewDataLoadError(data.Source, errors.New("no complete rows"))
	}

	ds, err := dataset.New(data.Source, s.config.Variables, records)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded %d records in %d groups from %s", ds.Len(), len(ds.Levels()), data.Source)
	return ds, nil
}

var errIncomplete = errors.New("incomplete row")

// parseRow converts one row; line is the 1-based file line for messages
func (s *Source) parseRow(row RawRowData, line int) (dataset.Record, error) {
	level := row[dataset.IVColumn]
	if level == "" {
		return dataset.Record{}, errIncomplete
	}
	values := make(map[string]float64, len(s.config.Variables))
	for _, col := range s.config.Variables {
		raw := row[col]
		if raw == "" {
			return dataset.Record{}, errIncomplete
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return dataset.Record{}, core.NewNonNumericError(col, line, raw)
		}
		values[col] = v
	}
	return dataset.Record{Level: level, Values: values}, nil
}

func (s *Source) applyAliases(data *SheetData) {
	if len(s.config.Aliases) == 0 {
		return
	}
	for i, h := range data.Headers {
		alias, ok := s.config.Aliases[h]
		if !ok {
			continue
		}
		data.Headers[i] = alias
		for _, row := range data.Rows {
			row[alias] = row[h]
			delete(row, h)
		}
	}
}
