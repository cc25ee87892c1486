// Package heuristics holds the assessment rules applied to each ARR
// line item during truing-up: pure functions from typed inputs to a
// standardized assessment record. Input-shape problems (negative
// physical quantities, missing required figures) are returned as
// errors; a disallowance on merit is a result, not an error.
package heuristics

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// pctOf is the variance percentage relative to a base, zero when the
// base is not positive.
func pctOf(variance, base float64) float64 {
	if base > 0 {
		return variance / base * 100
	}
	return 0
}

// ladder applies the common symmetric tolerance bands: GREEN within
// greenMax percent, YELLOW within yellowMax, RED beyond.
func ladder(variancePct, greenMax, yellowMax float64) assessment.Flag {
	switch {
	case math.Abs(variancePct) <= greenMax:
		return assessment.FlagGreen
	case math.Abs(variancePct) <= yellowMax:
		return assessment.FlagYellow
	default:
		return assessment.FlagRed
	}
}

func cr(v float64) string {
	return fmt.Sprintf("₹%.2f Cr", v)
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return eris.Errorf("heuristics: %s must not be negative, got %.4f", name, v)
	}
	return nil
}

func positive(name string, v float64) error {
	if v <= 0 {
		return eris.Errorf("heuristics: %s must be positive, got %.4f", name, v)
	}
	return nil
}
