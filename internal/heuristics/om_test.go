package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestOMInflation(t *testing.T) {
	got, err := OMInflation(OMInflationInputs{
		CPIOld: 100, CPINew: 105,
		WPIOld: 100, WPINew: 102,
	})
	require.NoError(t, err)

	// 5% × 0.70 + 2% × 0.30 = 4.1%
	require.NotNil(t, got.OutputValue)
	assert.InDelta(t, 4.1, *got.OutputValue, 1e-9)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
	assert.False(t, got.IsPrimary)
	assert.Equal(t, assessment.OutputCalculatedValue, got.OutputType)
	assert.Nil(t, got.ClaimedValue)
}

func TestOMInflationRequiresIndices(t *testing.T) {
	_, err := OMInflation(OMInflationInputs{CPIOld: 100, CPINew: 105, WPIOld: 100})
	assert.Error(t, err)
}

func TestOMNorm(t *testing.T) {
	base := OMNormInputs{
		BaseYearOM:       100,
		Inflation2022_23: 10,
		Inflation2023_24: 10,
		Inflation2024_25: 10,
	}

	tests := []struct {
		name     string
		claimed  float64
		wantFlag assessment.Flag
	}{
		{"claim above norm within ten percent", 140, assessment.FlagYellow},
		{"claim beyond ten percent", 150, assessment.FlagRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.ClaimedExisting = tt.claimed
			got, err := OMNorm(in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			assert.Equal(t, []string{"OM-INFL-01"}, got.DependsOn)
		})
	}

	// Green only when the claim lands exactly on the escalated norm.
	got, err := OMNorm(OMNormInputs{BaseYearOM: 100, ClaimedExisting: 100})
	require.NoError(t, err)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
}

func TestOMNormNewStationsEnterTotalNotVariance(t *testing.T) {
	got, err := OMNorm(OMNormInputs{
		BaseYearOM:           100,
		ClaimedExisting:      100,
		NewStationsAllowable: 12.5,
	})
	require.NoError(t, err)
	require.NotNil(t, got.AllowableValue)
	assert.InDelta(t, 112.5, *got.AllowableValue, 1e-9)
	assert.Equal(t, assessment.FlagGreen, got.Flag)
}

func TestOMApportion(t *testing.T) {
	tests := []struct {
		name     string
		in       OMApportionInputs
		wantFlag assessment.Flag
	}{
		{
			name: "components at ratio",
			in: OMApportionInputs{
				TotalOMApproved: 100,
				ActualEmployee:  77.03,
				ActualAG:        4.32,
				ActualRM:        18.65,
			},
			wantFlag: assessment.FlagGreen,
		},
		{
			name: "one component moderately off",
			in: OMApportionInputs{
				TotalOMApproved: 100,
				ActualEmployee:  77.03,
				ActualAG:        4.60,
				ActualRM:        18.65,
			},
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "worst component wins",
			in: OMApportionInputs{
				TotalOMApproved: 100,
				ActualEmployee:  90.00,
				ActualAG:        4.32,
				ActualRM:        18.65,
			},
			wantFlag: assessment.FlagRed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OMApportion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			assert.False(t, got.IsPrimary)
			assert.Nil(t, got.RecommendedAmount)
			assert.Equal(t, assessment.OutputPrudenceCheck, got.OutputType)
		})
	}
}

func TestEmployeePayRevision(t *testing.T) {
	tests := []struct {
		name     string
		in       EmployeePayRevisionInputs
		wantFlag assessment.Flag
	}{
		{
			name: "no revision small variance",
			in: EmployeePayRevisionInputs{
				EmployeeCostNormative: 100, EmployeeCostActual: 104,
			},
			wantFlag: assessment.FlagGreen,
		},
		{
			name: "no revision moderate variance",
			in: EmployeePayRevisionInputs{
				EmployeeCostNormative: 100, EmployeeCostActual: 110,
			},
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "no revision large variance",
			in: EmployeePayRevisionInputs{
				EmployeeCostNormative: 100, EmployeeCostActual: 120,
			},
			wantFlag: assessment.FlagRed,
		},
		{
			name: "revision with government order",
			in: EmployeePayRevisionInputs{
				EmployeeCostNormative:  100,
				EmployeeCostActual:     120,
				PayRevisionImplemented: true,
				PayRevisionDetails:     &PayRevisionDetails{Date: "2023-07-01", GovtOrderRef: "GO(P) 12/2023", Amount: 18},
			},
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "revision without order reference",
			in: EmployeePayRevisionInputs{
				EmployeeCostNormative:  100,
				EmployeeCostActual:     120,
				PayRevisionImplemented: true,
			},
			wantFlag: assessment.FlagRed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EmployeePayRevision(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
		})
	}
}
