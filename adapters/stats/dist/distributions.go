// Package dist wraps the gonum distributions used for test p-values
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// FTestPValue is P(F > f) for an F(df1, df2) variate. df may be fractional,
// as the Rao and McKeon approximations produce.
func FTestPValue(f, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(f) || math.IsNaN(df1) || math.IsNaN(df2) {
		return math.NaN()
	}
	if math.IsInf(f, 1) {
		return 0
	}
	if f <= 0 {
		return 1
	}
	return distuv.F{D1: df1, D2: df2}.Survival(f)
}
