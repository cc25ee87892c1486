package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestNTI(t *testing.T) {
	base := NTIInputs{
		BaseIncomeFromAccounts:      100,
		ExclusionGrantClawback:      10,
		ExclusionLEDBulbs:           5,
		ExclusionProvisionReversals: 5,
		AdditionKWAArrearsReleased:  5,
	}

	tests := []struct {
		name     string
		claimed  float64
		wantFlag assessment.Flag
	}{
		{"claim at assessable", 85, assessment.FlagGreen},
		{"minor variance", 88, assessment.FlagYellow},
		{"large variance", 95, assessment.FlagRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.ClaimedNTI = tt.claimed
			got, err := NTI(in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.AllowableValue)
			assert.InDelta(t, 85, *got.AllowableValue, 1e-9)
		})
	}
}

func TestNTIMYTDeviationNote(t *testing.T) {
	in := NTIInputs{
		BaseIncomeFromAccounts: 100,
		ClaimedNTI:             100,
		MYTBaselineNTI:         50,
	}
	got, err := NTI(in)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Note)

	in.MYTBaselineNTI = 95
	got, err = NTI(in)
	require.NoError(t, err)
	assert.Empty(t, got.Note)
}
