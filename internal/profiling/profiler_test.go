package profiling

import (
	"testing"

	"mancova/domain/dataset"
	"mancova/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.138089935, s.StdDev, 1e-9)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.Equal(t, 0, s.Outliers)
}

func TestDescribe_Outlier(t *testing.T) {
	s, err := Describe([]float64{10, 11, 12, 11, 10, 12, 11, 90})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Outliers)
}

func TestDescribe_Empty(t *testing.T) {
	_, err := Describe(nil)
	assert.Error(t, err)
}

func TestDescribeGroups(t *testing.T) {
	ds, err := testkit.NewSurveyDataGenerator(testkit.DefaultSurveyConfig()).Dataset()
	require.NoError(t, err)

	groups, err := DescribeGroups(ds, dataset.ReportVariables)
	require.NoError(t, err)
	require.Len(t, groups, 9)

	assert.Equal(t, dataset.Anxiety, groups[0].Variable)
	assert.Equal(t, "Computer", groups[0].Level)
	assert.Equal(t, "Tablet", groups[2].Level)
	assert.Equal(t, dataset.Spirituality, groups[3].Variable)
	for _, g := range groups {
		assert.Equal(t, 30, g.Summary.N)
		assert.Greater(t, g.Summary.StdDev, 0.0)
	}

	_, err = DescribeGroups(ds, []string{"Depression"})
	assert.Error(t, err)
}
