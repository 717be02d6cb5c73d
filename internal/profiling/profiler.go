package profiling

import (
	"fmt"

	"mancova/domain/dataset"
	"mancova/internal"
)

// GroupDescriptives summarizes one dependent variable within one level
type GroupDescriptives struct {
	Variable string  `json:"variable"`
	Level    string  `json:"level"`
	Summary  Summary `json:"summary"`
}

// DescribeGroups summarizes every variable per grouping level, variables in
// the given order and levels sorted
func DescribeGroups(ds *dataset.Dataset, variables []string) ([]GroupDescriptives, error) {
	levels := ds.Levels()
	out := make([]GroupDescriptives, 0, len(variables)*len(levels))
	for _, v := range variables {
		groups, err := ds.GroupColumn(v)
		if err != nil {
			return nil, err
		}
		for _, level := range levels {
			s, err := Describe(groups[level])
			if err != nil {
				return nil, fmt.Errorf("describe %s in %s: %w", v, level, err)
			}
			out = append(out, GroupDescriptives{Variable: v, Level: level, Summary: s})
		}
	}
	return out, nil
}

// LogGroups writes one debug line per group
func LogGroups(logger *internal.Logger, groups []GroupDescriptives) {
	for _, g := range groups {
		logger.Debug("%s[%s]: n=%d mean=%.2f sd=%.2f min=%g max=%g outliers=%d",
			g.Variable, g.Level, g.Summary.N, g.Summary.Mean, g.Summary.StdDev,
			g.Summary.Min, g.Summary.Max, g.Summary.Outliers)
	}
}
