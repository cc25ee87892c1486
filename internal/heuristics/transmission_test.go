package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestTransOMNorm(t *testing.T) {
	in := TransOMNormInputs{
		NormPerBay:   7.884,
		NormPerMVA:   0.872,
		NormPerCktKm: 1.592,

		OpeningBays:  2905,
		OpeningMVA:   25344.5,
		OpeningCktKm: 10633.90,

		AddedBays:  24,
		AddedMVA:   785.0,
		AddedCktKm: 166.23,

		MYTApprovedOM:    644.81,
		ActualOMAccounts: 588.95,
		ClaimedOM:        625.20,
	}
	got, err := TransOMNorm(in)
	require.NoError(t, err)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 625.02, *got.AllowableValue, 0.01)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	assert.Equal(t, []string{"OM-INFL-01"}, got.DependsOn)
}

func TestTransOMNormCapsExcessClaim(t *testing.T) {
	in := TransOMNormInputs{
		NormPerBay:  1.0,
		OpeningBays: 1000,
		ClaimedOM:   12.0, // normative is 10.00 Cr
	}
	got, err := TransOMNorm(in)
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagYellow, got.Flag)
	require.NotNil(t, got.RecommendedAmount)
	assert.InDelta(t, 10.0, *got.RecommendedAmount, 1e-9)
}

func TestTransCompensation(t *testing.T) {
	entries := []CompensationEntry{
		{TotalCompensationCr: 10.0, YearOfDisbursement: "2019-20", KSEBShare50Pct: 5.0},
		{TotalCompensationCr: 6.0, YearOfDisbursement: "2020-21", KSEBShare50Pct: 3.0},
	}

	got, err := TransCompensation(TransCompensationInputs{
		LineName:            "Edamon-Kochi",
		CompensationEntries: entries,
		AvgInterestRate:     0.0915,
		ClaimedCompensation: 8.06,
		MYTApproved:         14.94,
		AssessmentYear:      "2023-24",
	})
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagYellow, got.Flag)
	require.NotNil(t, got.RecommendedAmount)
	assert.InDelta(t, 8.06, *got.RecommendedAmount, 1e-9)

	got, err = TransCompensation(TransCompensationInputs{
		LineName:            "Pugalur-Thrissur",
		CompensationEntries: entries,
		AvgInterestRate:     0.0915,
		ClaimedCompensation: 1.24,
	})
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
}

func TestTransCompensationRequiresLineName(t *testing.T) {
	_, err := TransCompensation(TransCompensationInputs{ClaimedCompensation: 1})
	assert.Error(t, err)
}

func TestTransIncentive(t *testing.T) {
	base := TransIncentiveInputs{
		TargetAvailability:    98.50,
		ActualAvailability:    99.17,
		SLDCCertified:         true,
		ARRExcludingIncentive: 1542.64,
		ClaimedIncentive:      10.49,
	}

	t.Run("below target earns nothing", func(t *testing.T) {
		in := base
		in.ActualAvailability = 98.20
		got, err := TransIncentive(in)
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagGreen, got.Flag)
		require.NotNil(t, got.RecommendedAmount)
		assert.Zero(t, *got.RecommendedAmount)
	})

	t.Run("uncertified claim is rejected", func(t *testing.T) {
		in := base
		in.SLDCCertified = false
		got, err := TransIncentive(in)
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagRed, got.Flag)
		require.NotNil(t, got.RecommendedAmount)
		assert.Zero(t, *got.RecommendedAmount)
	})

	t.Run("large revenue gap defers payout", func(t *testing.T) {
		in := base
		in.UnbridgedRevenueGap = 6408.37
		got, err := TransIncentive(in)
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagYellow, got.Flag)
		require.NotNil(t, got.RecommendedAmount)
		assert.Zero(t, *got.RecommendedAmount)
		assert.Equal(t, true, got.Details["deferral_applied"])
	})

	t.Run("certified excess with manageable gap pays the formula", func(t *testing.T) {
		in := base
		in.UnbridgedRevenueGap = 1200
		got, err := TransIncentive(in)
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagGreen, got.Flag)
		// 1542.64 × 0.67 / 98.50 / 100
		require.NotNil(t, got.RecommendedAmount)
		assert.InDelta(t, 0.10, *got.RecommendedAmount, 0.01)
	})
}
