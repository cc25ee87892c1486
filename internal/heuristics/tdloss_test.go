package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestTransLoss(t *testing.T) {
	got, err := TransLoss(TransLossInputs{
		TotalEnergyInput:        31406.32,
		TransmissionLossMU:      819.23,
		MYTApprovedTransLossPct: 2.75,
		Loss400kVMU:             120.10,
		Loss220kVMU:             410.55,
		Loss110kVMU:             250.30,
		Loss66kVMU:              38.28,
		PeakDemandMW:            5301,
	})
	require.NoError(t, err)
	// 819.23 / 31406.32 = 2.61%, inside the 2.75% target.
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	require.NotNil(t, got.ClaimedValue)
	assert.InDelta(t, 2.61, *got.ClaimedValue, 0.01)
	assert.False(t, got.IsPrimary)
	assert.Equal(t, assessment.OutputAssessment, got.OutputType)
}

func TestTransLossFlagBands(t *testing.T) {
	tests := []struct {
		name     string
		lossMU   float64
		wantFlag assessment.Flag
	}{
		{"within target", 250, assessment.FlagGreen},
		{"marginal breach", 304, assessment.FlagYellow},
		{"clear breach", 400, assessment.FlagRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransLoss(TransLossInputs{
				TotalEnergyInput:        10000,
				TransmissionLossMU:      tt.lossMU,
				MYTApprovedTransLossPct: 3.0,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
		})
	}
}

func TestTDLossCombined(t *testing.T) {
	got, err := TDLossCombined(TDLossCombinedInputs{
		TotalEnergyInputMU:   10000,
		TotalEnergySoldMU:    9000,
		MYTApprovedTDLossPct: 11.0,
		TransmissionLossMU:   260,
		DistributionLossMU:   740,
		ActualTDLossPct:      9.8,
	})
	require.NoError(t, err)
	// Computed 10%, inside the 11% target.
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 10.0, *got.AllowableValue, 1e-9)
	assert.ElementsMatch(t, []string{"TRANS-LOSS-01", "DIST-LOSS-01"}, got.DependsOn)

	got, err = TDLossCombined(TDLossCombinedInputs{
		TotalEnergyInputMU:   10000,
		TotalEnergySoldMU:    8800,
		MYTApprovedTDLossPct: 11.0,
		ActualTDLossPct:      12.0,
	})
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagRed, got.Flag)
}

func TestTDReward(t *testing.T) {
	t.Run("target beaten earns the utility share", func(t *testing.T) {
		got, err := TDReward(TDRewardInputs{
			ApprovedTDLossPct:        13.83,
			ActualTDLossPct:          12.10,
			TotalEnergyInputMU:       31406.32,
			AvgPowerPurchaseCostUnit: 4.50,
		})
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagGreen, got.Flag)
		// Saved 1.73pp × 31406.32 MU = 543.33 MU; gain ₹24.45 Cr; equal sharing.
		require.NotNil(t, got.RecommendedAmount)
		assert.InDelta(t, 12.22, *got.RecommendedAmount, 0.01)
		assert.Equal(t, []string{"TD-LOSS-COMBINED-01"}, got.DependsOn)
	})

	t.Run("order-fixed ratio overrides the equal split", func(t *testing.T) {
		got, err := TDReward(TDRewardInputs{
			ApprovedTDLossPct:        13.83,
			ActualTDLossPct:          12.10,
			TotalEnergyInputMU:       31406.32,
			AvgPowerPurchaseCostUnit: 4.50,
			UtilitySharePct:          66.67,
			ConsumerSharePct:         33.33,
		})
		require.NoError(t, err)
		require.NotNil(t, got.RecommendedAmount)
		assert.InDelta(t, 16.30, *got.RecommendedAmount, 0.01)
	})

	t.Run("target exactly met yields nothing", func(t *testing.T) {
		got, err := TDReward(TDRewardInputs{
			ApprovedTDLossPct:  13.0,
			ActualTDLossPct:    13.0,
			TotalEnergyInputMU: 10000,
		})
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagYellow, got.Flag)
		require.NotNil(t, got.RecommendedAmount)
		assert.Zero(t, *got.RecommendedAmount)
	})

	t.Run("target missed exposes a penalty", func(t *testing.T) {
		got, err := TDReward(TDRewardInputs{
			ApprovedTDLossPct:  13.0,
			ActualTDLossPct:    14.2,
			TotalEnergyInputMU: 10000,
			ClaimedReward:      131.59,
		})
		require.NoError(t, err)
		assert.Equal(t, assessment.FlagRed, got.Flag)
		require.NotNil(t, got.RecommendedAmount)
		assert.Zero(t, *got.RecommendedAmount)
	})
}

func TestLossValidationNamesTheRealConstraint(t *testing.T) {
	_, err := TransLoss(TransLossInputs{
		TotalEnergyInput:   100,
		TransmissionLossMU: 120,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transmission_loss_mu must not exceed total_energy_input")

	_, err = TDLossCombined(TDLossCombinedInputs{
		TotalEnergyInputMU: 100,
		TotalEnergySoldMU:  120,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_energy_sold_mu must not exceed total_energy_input_mu")
}
