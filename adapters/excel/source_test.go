package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSurvey(t *testing.T, name string) (string, []dataset.Record) {
	t.Helper()
	records := testkit.NewSurveyDataGenerator(testkit.DefaultSurveyConfig()).Records()
	path := filepath.Join(t.TempDir(), name)
	var err error
	if filepath.Ext(name) == ".csv" {
		err = testkit.WriteCSV(path, records)
	} else {
		err = testkit.WriteXLSX(path, records)
	}
	require.NoError(t, err)
	return path, records
}

func sourceFor(path string) *Source {
	cfg := DefaultSourceConfig()
	cfg.FilePath = path
	return NewSource(cfg, nil)
}

func TestSource_LoadWorkbook(t *testing.T) {
	path, records := writeSurvey(t, "survey.xlsx")

	ds, err := sourceFor(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 90, ds.Len())
	assert.Equal(t, []string{"Computer", "Paper", "Tablet"}, ds.Levels())
	assert.Equal(t, dataset.ModelVariables, ds.Columns)
	assert.Equal(t, records[0].Level, ds.Records[0].Level)
	assert.Equal(t, records[0].Values[dataset.Anxiety], ds.Records[0].Values[dataset.Anxiety])
}

func TestSource_LoadCSV(t *testing.T) {
	path, records := writeSurvey(t, "survey.csv")

	ds, err := sourceFor(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(records), ds.Len())
	for i := range records {
		assert.Equal(t, records[i].Level, ds.Records[i].Level)
		assert.Equal(t, records[i].Values, ds.Records[i].Values)
	}
}

func TestSource_WorkbookAndCSVAgree(t *testing.T) {
	xlsx, _ := writeSurvey(t, "survey.xlsx")
	csvPath, _ := writeSurvey(t, "survey.csv")

	a, err := sourceFor(xlsx).Load(context.Background())
	require.NoError(t, err)
	b, err := sourceFor(csvPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.Records, b.Records)
}

func TestSource_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := sourceFor(filepath.Join(t.TempDir(), "absent.xlsx")).Load(ctx)
		assert.True(t, core.IsDataLoadError(err))
	})

	t.Run("missing grouping column", func(t *testing.T) {
		path, _ := writeSurvey(t, "survey.csv")
		cfg := DefaultSourceConfig()
		cfg.FilePath = path
		cfg.Aliases = nil
		_, err := NewSource(cfg, nil).Load(ctx)
		assert.ErrorIs(t, err, core.ErrMissingColumn)
		assert.Contains(t, err.Error(), dataset.IVColumn)
	})

	t.Run("missing variable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.csv")
		content := "Participant,Type of test,Anxiety,Stress\n1,Paper,40,20\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := sourceFor(path).Load(ctx)
		assert.ErrorIs(t, err, core.ErrMissingColumn)
		assert.Contains(t, err.Error(), dataset.Spirituality)
	})

	t.Run("non-numeric cell", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		content := "Participant,Type of test,Anxiety,Stress,Spirituality\n1,Paper,40,high,70\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := sourceFor(path).Load(ctx)
		assert.ErrorIs(t, err, core.ErrNonNumeric)
		assert.Contains(t, err.Error(), "high")
	})

	t.Run("non-numeric cell after blank lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gap.csv")
		content := "Participant,Type of test,Anxiety,Stress,Spirituality\n" +
			"1,Paper,40,20,70\n" +
			"\n" +
			",,,,\n" +
			"2,Paper,41,high,71\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := sourceFor(path).Load(ctx)
		assert.ErrorIs(t, err, core.ErrNonNumeric)
		assert.Contains(t, err.Error(), "row 5")
	})

	t.Run("non-numeric cell after blank workbook row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gap.xlsx")
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		cells := [][]any{
			{"Participant", "Type of test", "Anxiety", "Stress", "Spirituality"},
			{1, "Paper", 40, 20, 70},
			nil,
			{2, "Paper", 41, "high", 71},
		}
		for i, row := range cells {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		_, err := sourceFor(path).Load(ctx)
		assert.ErrorIs(t, err, core.ErrNonNumeric)
		assert.Contains(t, err.Error(), "row 4")
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := sourceFor("anything.xlsx").Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSource_DropsIncompleteRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gaps.csv")
	content := "Participant,Type of test,Anxiety,Stress,Spirituality\n" +
		"1,Paper,40,20,70\n" +
		"2,,41,21,71\n" +
		"3,Computer,,22,72\n" +
		",,,,\n" +
		"4,Computer,43,23,73\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := sourceFor(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"Computer", "Paper"}, ds.Levels())
}

func TestSource_ReadsRawCellValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []any{"Participant", "Type of test", "Anxiety", "Stress", "Spirituality"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []any{1, "Paper", 1234.5, 0.45, 70}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	// thousands separator and percent formats change the displayed text only
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", thousands))
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D2", percent))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := sourceFor(path).Load(context.Background())
	require.NoError(t, err)
	anxiety, err := ds.Column(dataset.Anxiety)
	require.NoError(t, err)
	stress, err := ds.Column(dataset.Stress)
	require.NoError(t, err)
	assert.Equal(t, []float64{1234.5}, anxiety)
	assert.Equal(t, []float64{0.45}, stress)
}
