package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestROE(t *testing.T) {
	tests := []struct {
		name          string
		in            ROEInputs
		wantFlag      assessment.Flag
		wantAllowable float64
	}{
		{
			name: "exact entitlement is green",
			in: ROEInputs{
				EquityCapital: 831.27,
				ROERate:       0.14,
				ClaimedROE:    116.38,
			},
			wantFlag:      assessment.FlagGreen,
			wantAllowable: 116.3778,
		},
		{
			name: "infusion grows the base",
			in: ROEInputs{
				EquityCapital:            800,
				ROERate:                  0.14,
				EquityInfusionDuringYear: 100,
				ClaimedROE:               126.00,
			},
			wantFlag:      assessment.FlagGreen,
			wantAllowable: 126.00,
		},
		{
			name: "any real deviation is red",
			in: ROEInputs{
				EquityCapital: 831.27,
				ROERate:       0.14,
				ClaimedROE:    120.00,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 116.3778,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ROE(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.AllowableValue)
			assert.InDelta(t, tt.wantAllowable, *got.AllowableValue, 1e-4)
			require.NotNil(t, got.RecommendedAmount)
			assert.InDelta(t, tt.wantAllowable, *got.RecommendedAmount, 1e-4)
			assert.True(t, got.IsPrimary)
			assert.Equal(t, assessment.OutputApprovedAmount, got.OutputType)
		})
	}
}

func TestROEInputValidation(t *testing.T) {
	_, err := ROE(ROEInputs{EquityCapital: -1, ROERate: 0.14})
	assert.Error(t, err)

	// A rate of 14 means percent was passed where a fraction belongs.
	_, err = ROE(ROEInputs{EquityCapital: 100, ROERate: 14, ClaimedROE: 14})
	assert.Error(t, err)

	_, err = ROE(ROEInputs{EquityCapital: 100, ROERate: 0.14, ClaimedROE: -5})
	assert.Error(t, err)
}
