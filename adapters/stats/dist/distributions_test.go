package dist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFTestPValue(t *testing.T) {
	assert.Equal(t, 1.0, FTestPValue(0, 2, 10))
	assert.Equal(t, 0.0, FTestPValue(math.Inf(1), 2, 10))
	assert.True(t, math.IsNaN(FTestPValue(1, 0, 10)))
	assert.True(t, math.IsNaN(FTestPValue(math.NaN(), 2, 10)))

	// F(1, 4) = 13.5 is t(4) = sqrt(13.5), two-sided
	assert.InDelta(t, 0.0213116, FTestPValue(13.5, 1, 4), 1e-6)

	// monotone in f
	assert.Greater(t, FTestPValue(1.5, 3, 40), FTestPValue(3, 3, 40))
}
