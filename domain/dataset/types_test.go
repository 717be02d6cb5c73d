package dataset

import (
	"testing"

	"mancova/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{Level: "online", Values: map[string]float64{Anxiety: 1, Stress: 2, Spirituality: 3}},
		{Level: "paper", Values: map[string]float64{Anxiety: 4, Stress: 5, Spirituality: 6}},
		{Level: "online", Values: map[string]float64{Anxiety: 7, Stress: 8, Spirituality: 9}},
	}
}

func TestNew_RejectsIncompleteRecords(t *testing.T) {
	recs := sampleRecords()
	delete(recs[1].Values, Stress)

	_, err := New("t", ModelVariables, recs)
	require.Error(t, err)
	assert.True(t, core.IsDataLoadError(err))
}

func TestNew_RejectsEmptyLevel(t *testing.T) {
	recs := sampleRecords()
	recs[0].Level = ""

	_, err := New("t", ModelVariables, recs)
	assert.True(t, core.IsDataLoadError(err))
}

func TestDataset_ColumnAndLevels(t *testing.T) {
	ds, err := New("t", ModelVariables, sampleRecords())
	require.NoError(t, err)

	col, err := ds.Column(Anxiety)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 7}, col)
	assert.Equal(t, []string{"online", "paper"}, ds.Levels())
	assert.Equal(t, []string{"online", "paper", "online"}, ds.Groups())
	assert.Equal(t, 3, ds.Len())

	_, err = ds.Column("Depression")
	assert.ErrorIs(t, err, core.ErrMissingColumn)
}

func TestDataset_GroupColumn(t *testing.T) {
	ds, err := New("t", ModelVariables, sampleRecords())
	require.NoError(t, err)

	groups, err := ds.GroupColumn(Stress)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 8}, groups["online"])
	assert.Equal(t, []float64{5}, groups["paper"])
}
