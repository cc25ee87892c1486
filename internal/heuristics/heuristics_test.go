package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestLadder(t *testing.T) {
	tests := []struct {
		name      string
		pct       float64
		greenMax  float64
		yellowMax float64
		want      assessment.Flag
	}{
		{"zero is green", 0, 2, 5, assessment.FlagGreen},
		{"at green boundary", 2, 2, 5, assessment.FlagGreen},
		{"negative within green", -1.5, 2, 5, assessment.FlagGreen},
		{"between green and yellow", 3.2, 2, 5, assessment.FlagYellow},
		{"at yellow boundary", 5, 2, 5, assessment.FlagYellow},
		{"beyond yellow", 5.01, 2, 5, assessment.FlagRed},
		{"negative beyond yellow", -12, 2, 5, assessment.FlagRed},
		{"zero tolerance green band", 0.001, 0, 10, assessment.FlagYellow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ladder(tt.pct, tt.greenMax, tt.yellowMax))
		})
	}
}

func TestPctOf(t *testing.T) {
	assert.InDelta(t, 10.0, pctOf(10, 100), 1e-9)
	assert.InDelta(t, -5.0, pctOf(-5, 100), 1e-9)
	assert.Zero(t, pctOf(10, 0))
	assert.Zero(t, pctOf(10, -3))
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 157.01, round2(157.0129), 1e-9)
	assert.InDelta(t, -3.46, round2(-3.455), 1e-9)
}

func TestCr(t *testing.T) {
	assert.Equal(t, "₹116.38 Cr", cr(116.3778))
	assert.Equal(t, "₹0.00 Cr", cr(0))
}

func TestValidationHelpers(t *testing.T) {
	assert.NoError(t, nonNegative("x", 0))
	assert.Error(t, nonNegative("x", -0.01))
	assert.NoError(t, positive("x", 0.01))
	assert.Error(t, positive("x", 0))
}
