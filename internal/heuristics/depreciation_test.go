package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestDepreciation(t *testing.T) {
	// Bucket 1: (1100 - 50 - 50) × 1.42% = 14.20
	// Bucket 2: opening (600 - 50 - 50) = 500, closing 600, avg 550 × 5.14% = 28.27
	base := DepreciationInputs{
		GFAOpeningTotal:    1700,
		GFA13To30Years:     1100,
		Land13To30Years:    50,
		Grants13To30Years:  50,
		GFABelow13Years:    600,
		LandBelow13Years:   50,
		GrantsBelow13Years: 50,
		AssetAdditions:     100,
		AssetWithdrawals:   0,
	}

	tests := []struct {
		name     string
		claimed  float64
		wantFlag assessment.Flag
	}{
		{"claim matches buckets", 42.47, assessment.FlagGreen},
		{"minor variance", 43.80, assessment.FlagYellow},
		{"large variance", 46.00, assessment.FlagRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.ClaimedDepreciation = tt.claimed
			got, err := Depreciation(in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.AllowableValue)
			assert.InDelta(t, 42.47, *got.AllowableValue, 0.01)
			assert.Equal(t, "DEP-GEN-01", got.HeuristicID)
			assert.True(t, got.IsPrimary)
		})
	}
}

func TestDepreciationWithdrawalsShrinkBucketTwo(t *testing.T) {
	in := DepreciationInputs{
		GFA13To30Years:      1000,
		GFABelow13Years:     500,
		AssetWithdrawals:    100,
		ClaimedDepreciation: 37.33,
	}
	// Bucket 1: 1000 × 1.42% = 14.20
	// Bucket 2: opening 500, closing 400, avg 450 × 5.14% = 23.13
	got, err := Depreciation(in)
	require.NoError(t, err)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 37.33, *got.AllowableValue, 0.01)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
}

func TestDepreciationRejectsNegativeInputs(t *testing.T) {
	_, err := Depreciation(DepreciationInputs{GFA13To30Years: -1})
	assert.Error(t, err)
}
