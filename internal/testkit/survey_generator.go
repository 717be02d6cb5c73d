package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"mancova/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// SurveyGeneratorConfig configures the synthetic questionnaire dataset
type SurveyGeneratorConfig struct {
	Levels   []string                      `json:"levels"`
	PerLevel int                           `json:"per_level"`
	Means    map[string]map[string]float64 `json:"means"` // level -> DV -> mean
	StdDev   float64                       `json:"std_dev"`
	Seed     int64                         `json:"seed"`
}

// DefaultSurveyConfig returns three test formats of 30 respondents each, with
// the paper format shifted upwards on Anxiety and Stress
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Levels:   []string{"Computer", "Paper", "Tablet"},
		PerLevel: 30,
		Means: map[string]map[string]float64{
			"Computer": {dataset.Anxiety: 42, dataset.Stress: 18, dataset.Spirituality: 70},
			"Paper":    {dataset.Anxiety: 48, dataset.Stress: 22, dataset.Spirituality: 71},
			"Tablet":   {dataset.Anxiety: 44, dataset.Stress: 19, dataset.Spirituality: 69},
		},
		StdDev: 8,
		Seed:   42,
	}
}

// SurveyDataGenerator produces deterministic datasets for tests
type SurveyDataGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyDataGenerator creates a generator seeded from config
func NewSurveyDataGenerator(config SurveyGeneratorConfig) *SurveyDataGenerator {
	return &SurveyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records generates PerLevel records per level, levels interleaved so record
// order does not coincide with group order
func (g *SurveyDataGenerator) Records() []dataset.Record {
	var records []dataset.Record
	for i := 0; i < g.config.PerLevel; i++ {
		for _, level := range g.config.Levels {
			values := make(map[string]float64, len(dataset.ModelVariables))
			for _, dv := range dataset.ModelVariables {
				mean := g.config.Means[level][dv]
				// Whole-point scores, as a questionnaire total would be
				values[dv] = float64(int(mean + g.rng.NormFloat64()*g.config.StdDev + 0.5))
			}
			records = append(records, dataset.Record{Level: level, Values: values})
		}
	}
	return records
}

// Dataset generates a complete dataset
func (g *SurveyDataGenerator) Dataset() (*dataset.Dataset, error) {
	return dataset.New("synthetic", dataset.ModelVariables, g.Records())
}

// Header is the source file header the generator writes, using the
// un-aliased grouping label
func Header() []string {
	return []string{"Participant", dataset.SourceIVLabel, dataset.Anxiety, dataset.Stress, dataset.Spirituality}
}

func sourceRows(records []dataset.Record) [][]string {
	rows := [][]string{Header()}
	for i, rec := range records {
		row := []string{strconv.Itoa(i + 1), rec.Level}
		for _, dv := range dataset.ModelVariables {
			row = append(row, strconv.FormatFloat(rec.Values[dv], 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes records as a CSV source file
func WriteCSV(path string, records []dataset.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(sourceRows(records)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteXLSX writes records to the first sheet of a workbook, numbers as
// numeric cells
func WriteXLSX(path string, records []dataset.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := Header()
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := []interface{}{i + 1, rec.Level}
		for _, dv := range dataset.ModelVariables {
			row = append(row, rec.Values[dv])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
