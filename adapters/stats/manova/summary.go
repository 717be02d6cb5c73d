package manova

import (
	"fmt"
	"strconv"
	"strings"
)

const summaryWidth = 112

var summaryColumns = []string{"Value", "F Value", "Num DF", "Den DF", "Pr > F"}

// Summary renders every effect as a fixed-width table. Each effect header
// carries the effect name and the column labels, and its four statistic rows
// follow directly, each ending in five whitespace-free numeric tokens. Every
// column starts with a space so full-precision values never run together.
func (r *Result) Summary() string {
	var b strings.Builder
	b.WriteString("Multivariate linear model\n")
	b.WriteString(strings.Repeat("=", summaryWidth))
	b.WriteString("\n")

	for _, test := range r.Tests {
		b.WriteString(strings.Repeat("-", summaryWidth))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%24s", test.Effect)
		for _, col := range summaryColumns {
			fmt.Fprintf(&b, " %21s", col)
		}
		b.WriteString("\n")
		for _, s := range test.Statistics {
			fmt.Fprintf(&b, "%24s", s.Name)
			for _, v := range []float64{s.Value, s.F, s.NumDF, s.DenDF, s.P} {
				fmt.Fprintf(&b, " %21s", strconv.FormatFloat(v, 'g', -1, 64))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(strings.Repeat("-", summaryWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%24s %21s %21d\n", "Residual", "DF", r.DFResid)
	b.WriteString(strings.Repeat("=", summaryWidth))
	b.WriteString("\n")
	return b.String()
}
