package testkit

import (
	"mancova/domain/dataset"
	"mancova/domain/report"
	"mancova/domain/stats"
)

// SampleReport is a fixed, fully populated report for renderer tests
func SampleReport() *stats.Report {
	return &stats.Report{
		Observations: 90,
		Levels:       []string{"Computer", "Paper", "Tablet"},
		Multivariate: []stats.MultivariateTestRow{
			{TestName: stats.PillaiTrace, Value: 0.123456, F: 5.678, DF1: 6, DF2: 172, P: 0.00049},
			{TestName: stats.WilksLambda, Value: 0.88, F: 5.7, DF1: 6, DF2: 170, P: 0.0004},
			{TestName: stats.HotellingLawleyTrace, Value: 0.13, F: 5.8, DF1: 6, DF2: 111, P: 0.0003},
			{TestName: stats.RoysLargestRoot, Value: 0.12, F: 11.2, DF1: 3, DF2: 86, P: 0.0000021},
		},
		Univariate: []stats.UnivariateEffectRow{
			{DependentVariable: dataset.Anxiety, SumOfSquares: 1234.56, DF: 2, MeanSquare: 617.28, F: 5.4321, P: 0.0061},
			{DependentVariable: dataset.Spirituality, SumOfSquares: 88.2, DF: 2, MeanSquare: 44.1, F: 0.52, P: 0.5962},
			{DependentVariable: dataset.Stress, SumOfSquares: 401, DF: 2, MeanSquare: 200.5, F: 3.1, P: 0.0502},
		},
		Residuals: []stats.ResidualRow{
			{DependentVariable: dataset.Anxiety, SumOfSquares: 9876.4, DF: 87, MeanSquare: 113.52},
			{DependentVariable: dataset.Spirituality, SumOfSquares: 7380, DF: 87, MeanSquare: 84.83},
			{DependentVariable: dataset.Stress, SumOfSquares: 5626.9, DF: 87, MeanSquare: 64.68},
		},
	}
}

// SampleTables is SampleReport shaped into display tables
func SampleTables() []report.Table {
	return report.Tables(SampleReport())
}
