package config

import (
	"os"
	"path/filepath"
	"testing"

	"mancova/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "anonymized_data.xlsx", c.Data.Input)
	assert.Equal(t, []string{FormatText, FormatDocx}, c.Output.Formats)
	assert.Equal(t, "mancova_output.docx", c.Output.DocxPath)
	assert.Equal(t, SourceStructured, c.Model.MultivariateSource)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MANCOVA_INPUT", "survey.csv")
	t.Setenv("MANCOVA_FORMATS", "text, YAML,text")
	t.Setenv("MANCOVA_MULTIVARIATE_SOURCE", "Summary")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "survey.csv", c.Data.Input)
	assert.Equal(t, []string{FormatText, FormatYAML}, c.Output.Formats)
	assert.Equal(t, SourceSummary, c.Model.MultivariateSource)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mancova.yaml")
	content := "input: data/q.xlsx\nformats: [docx, xlsx]\nxlsx_path: out/tables.xlsx\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/q.xlsx", c.Data.Input)
	assert.Equal(t, []string{FormatDocx, FormatXLSX}, c.Output.Formats)
	assert.Equal(t, "out/tables.xlsx", c.Output.PathFor(FormatXLSX))
	assert.Equal(t, "", c.Output.PathFor(FormatText))
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		t.Setenv("MANCOVA_FORMATS", "text,pdf")
		_, err := Load("")
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("MANCOVA_MULTIVARIATE_SOURCE", "guess")
		_, err := Load("")
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})
}
