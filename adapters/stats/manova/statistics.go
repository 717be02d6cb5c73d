package manova

import (
	"fmt"
	"math"

	"mancova/adapters/stats/dist"
	"mancova/domain/stats"
)

// Statistic is one multivariate test of one effect. Degrees of freedom keep
// their fractional part here; reporting truncates them.
type Statistic struct {
	Name  stats.TestName `json:"name"`
	Value float64        `json:"value"`
	F     float64        `json:"f"`
	NumDF float64        `json:"num_df"`
	DenDF float64        `json:"den_df"`
	P     float64        `json:"p"`
}

// Row converts the statistic to a report row
func (s Statistic) Row() stats.MultivariateTestRow {
	return stats.MultivariateTestRow{
		TestName: s.Name,
		Value:    s.Value,
		F:        s.F,
		DF1:      stats.WholeDF(s.NumDF),
		DF2:      stats.WholeDF(s.DenDF),
		P:        s.P,
	}
}

// EffectTest holds the statistics of one model term
type EffectTest struct {
	Effect      string      `json:"effect"`
	Eigenvalues []float64   `json:"eigenvalues"`
	Statistics  []Statistic `json:"statistics"`
}

// Result is a fitted multivariate model
type Result struct {
	DependentVariables []string     `json:"dependent_variables"`
	Observations       int          `json:"observations"`
	DFResid            int          `json:"df_resid"`
	Tests              []EffectTest `json:"tests"`
}

// Statistic looks up one statistic of one effect
func (r *Result) Statistic(effect string, name stats.TestName) (Statistic, bool) {
	for _, t := range r.Tests {
		if t.Effect != effect {
			continue
		}
		for _, s := range t.Statistics {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Statistic{}, false
}

// Effect returns the four rows of an effect in canonical order
func (r *Result) Effect(name string) ([]stats.MultivariateTestRow, error) {
	rows := make([]stats.MultivariateTestRow, 0, len(stats.CanonicalTests))
	for _, test := range stats.CanonicalTests {
		s, ok := r.Statistic(name, test)
		if !ok {
			return nil, fmt.Errorf("effect %q has no %s statistic", name, test)
		}
		rows = append(rows, s.Row())
	}
	return rows, nil
}

// testStatistics computes the four statistics from the eigenvalues of
// (E+H)^-1 H, with p the rank of E, q the rank of the contrast and v the
// residual degrees of freedom.
func testStatistics(eigenvalues []float64, p, q, v int, tolerance float64) []Statistic {
	var roots []float64
	for _, e := range eigenvalues {
		if e > tolerance {
			roots = append(roots, e)
		}
	}

	pf, qf, vf := float64(p), float64(q), float64(v)
	s := math.Min(pf, qf)
	m := (math.Abs(pf-qf) - 1) / 2
	nn := (vf - pf - 1) / 2

	wilks, pillai, hotelling, roy := 1.0, 0.0, 0.0, 0.0
	for _, e := range roots {
		wilks *= 1 - e
		pillai += e
		ratio := e / (1 - e)
		hotelling += ratio
		roy = math.Max(roy, ratio)
	}

	out := make([]Statistic, 0, 4)

	// Pillai's trace
	df1 := s * (2*m + s + 1)
	df2 := s * (2*nn + s + 1)
	f := df2 / df1 * pillai / (s - pillai)
	out = append(out, newStatistic(stats.PillaiTrace, pillai, f, df1, df2))

	// Wilks' lambda via Rao's approximation
	t := 1.0
	if d := pf*pf + qf*qf - 5; d > 0 {
		t = math.Sqrt((pf*pf*qf*qf - 4) / d)
	}
	r := vf - (pf-qf+1)/2
	u := (pf*qf - 2) / 4
	df1 = pf * qf
	df2 = r*t - 2*u
	lambda := math.Pow(wilks, 1/t)
	f = (1 - lambda) / lambda * df2 / df1
	out = append(out, newStatistic(stats.WilksLambda, wilks, f, df1, df2))

	// Hotelling-Lawley trace, McKeon's approximation when nn > 0
	if nn > 0 {
		b := (pf + 2*nn) * (qf + 2*nn) / 2 / (2*nn + 1) / (nn - 1)
		df1 = pf * qf
		df2 = 4 + (pf*qf+2)/(b-1)
		c := (df2 - 2) / 2 / nn
		f = df2 / df1 * hotelling / c
	} else {
		df1 = s * (2*m + s + 1)
		df2 = s * (s*nn + 1)
		f = df2 / df1 / s * hotelling / s
	}
	out = append(out, newStatistic(stats.HotellingLawleyTrace, hotelling, f, df1, df2))

	// Roy's largest root, an upper bound on F
	big := math.Max(pf, qf)
	df1 = big
	df2 = vf - big + qf
	f = df2 / df1 * roy
	out = append(out, newStatistic(stats.RoysLargestRoot, roy, f, df1, df2))

	return out
}

func newStatistic(name stats.TestName, value, f, df1, df2 float64) Statistic {
	return Statistic{
		Name:  name,
		Value: value,
		F:     f,
		NumDF: df1,
		DenDF: df2,
		P:     dist.FTestPValue(f, df1, df2),
	}
}
