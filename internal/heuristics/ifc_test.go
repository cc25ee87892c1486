package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestIFCLongTermLoans(t *testing.T) {
	// Closing = 1000 + 200 - 100 = 1100, average 1050, interest @ 8% = 84.
	base := IFCLongTermLoanInputs{
		OpeningNormativeLoan: 1000,
		GFAAdditions:         200,
		Depreciation:         100,
		OpeningInterestRate:  8,
	}

	tests := []struct {
		name     string
		mutate   func(*IFCLongTermLoanInputs)
		wantFlag assessment.Flag
	}{
		{
			name:     "claim at normative interest",
			mutate:   func(in *IFCLongTermLoanInputs) { in.ClaimedInterest = 84 },
			wantFlag: assessment.FlagGreen,
		},
		{
			name:     "mid-band variance is red",
			mutate:   func(in *IFCLongTermLoanInputs) { in.ClaimedInterest = 92 },
			wantFlag: assessment.FlagRed,
		},
		{
			name:     "large variance reads as wrong rate year",
			mutate:   func(in *IFCLongTermLoanInputs) { in.ClaimedInterest = 100 },
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "disputed claims taint a clean calculation",
			mutate: func(in *IFCLongTermLoanInputs) {
				in.ClaimedInterest = 84
				in.DisputedClaims = 50
			},
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "high-cost loan escalates green",
			mutate: func(in *IFCLongTermLoanInputs) {
				in.ClaimedInterest = 84
				rate := 9.5
				in.HighestLoanRate = &rate
			},
			wantFlag: assessment.FlagYellow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			got, err := IFCLongTermLoans(in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.AllowableValue)
			assert.InDelta(t, 84, *got.AllowableValue, 1e-9)
			assert.Equal(t, []string{"DEP-GEN-01"}, got.DependsOn)
		})
	}
}

func TestIFCWorkingCapital(t *testing.T) {
	// WC = 120/12 + 1% of 500 = 15, rate = 9.15 + 2 = 11.15%, interest = 1.6725.
	got, err := IFCWorkingCapital(IFCWorkingCapitalInputs{
		ApprovedOMExpenses: 120,
		OpeningGFAExclLand: 500,
		SBIEBLRRate:        9.15,
		ClaimedWCInterest:  1.67,
	})
	require.NoError(t, err)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 1.6725, *got.AllowableValue, 1e-6)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	assert.Equal(t, []string{"OM-NORM-01"}, got.DependsOn)

	got, err = IFCWorkingCapital(IFCWorkingCapitalInputs{
		ApprovedOMExpenses: 120,
		OpeningGFAExclLand: 500,
		SBIEBLRRate:        9.15,
		ClaimedWCInterest:  2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagRed, got.Flag)
}

func TestIFCGPF(t *testing.T) {
	// Average (4000+4400)/2 = 4200 @ 7.1% = 298.2, SBU @ 30% = 89.46.
	got, err := IFCGPF(IFCGPFInputs{
		OpeningGPFBalanceCompany: 4000,
		ClosingGPFBalanceCompany: 4400,
		GPFInterestRate:          7.1,
		SBUAllocationRatio:       30,
		ClaimedGPFInterestSBU:    89.46,
	})
	require.NoError(t, err)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 89.46, *got.AllowableValue, 1e-6)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	assert.Equal(t, assessment.OutputPassThrough, got.OutputType)
}

func TestIFCOther(t *testing.T) {
	tests := []struct {
		name          string
		in            IFCOtherInputs
		wantFlag      assessment.Flag
		wantAllowable float64
	}{
		{"modest bank charges pass", IFCOtherInputs{ClaimedBankCharges: 0.4}, assessment.FlagGreen, 0.4},
		{"elevated bank charges flagged", IFCOtherInputs{ClaimedBankCharges: 0.8}, assessment.FlagYellow, 0.8},
		{"excessive bank charges zeroed", IFCOtherInputs{ClaimedBankCharges: 1.5}, assessment.FlagRed, 0},
		{"any GBI claim forces red", IFCOtherInputs{ClaimedGBI: 2.0, ClaimedBankCharges: 0.4}, assessment.FlagRed, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IFCOther(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.AllowableValue)
			assert.InDelta(t, tt.wantAllowable, *got.AllowableValue, 1e-9)
		})
	}
}
