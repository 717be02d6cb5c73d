package profiling

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics of one numeric sample
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"` // sample standard deviation, n - 1
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Outliers int     `json:"outliers"` // beyond 1.5 IQR of the quartiles
}

// Describe computes the summary of data
func Describe(data []float64) (Summary, error) {
	s := Summary{N: len(data)}
	if len(data) == 0 {
		return s, fmt.Errorf("describe: %w", stats.ErrEmptyInput)
	}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if len(data) > 1 {
		if s.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return s, err
		}
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}

	// Quartiles for IQR-based outlier detection
	q, err := stats.Quartile(data)
	if err == nil {
		s.Q25, s.Q75 = q.Q1, q.Q3
	} else {
		s.Q25, s.Q75 = s.Median, s.Median
	}
	s.Outliers = detectOutliers(data, s.Q25, s.Q75)

	return s, nil
}

// detectOutliers counts points outside the IQR fences
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}
