package yaml

import (
	"bytes"
	"testing"

	"mancova/internal/testkit"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRender_RoundTrip(t *testing.T) {
	tables := testkit.SampleTables()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, tables))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "MANCOVA", doc.Title)
	if diff := cmp.Diff(tables, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_QuotesNumericStrings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, testkit.SampleTables()))
	// formatted cells must stay strings, so trailing zeros survive
	assert.Contains(t, buf.String(), `"0.000"`)
	assert.Contains(t, buf.String(), `"5.70"`)
}
