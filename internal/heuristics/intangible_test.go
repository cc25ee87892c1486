package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestIntangible(t *testing.T) {
	tests := []struct {
		name          string
		in            IntangibleInputs
		wantFlag      assessment.Flag
		wantAllowable float64
	}{
		{
			name: "software without docs is disallowed",
			in: IntangibleInputs{
				SoftwareAmortizationClaimed: 12.5,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 0,
		},
		{
			name: "software docs but staff inside norms is double counting",
			in: IntangibleInputs{
				SoftwareAmortizationClaimed:    12.5,
				SoftwareSupportingDocsProvided: true,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 0,
		},
		{
			name: "software fully substantiated is provisional",
			in: IntangibleInputs{
				SoftwareAmortizationClaimed:        12.5,
				SoftwareSupportingDocsProvided:     true,
				SoftwareEmployeesAdditionalToNorms: true,
			},
			wantFlag:      assessment.FlagYellow,
			wantAllowable: 12.5,
		},
		{
			name: "documented other amortization is clean",
			in: IntangibleInputs{
				OtherIntangiblesAmortization: 3.2,
				OtherSupportingDocsProvided:  true,
			},
			wantFlag:      assessment.FlagGreen,
			wantAllowable: 3.2,
		},
		{
			name: "undocumented other amortization allowed pending docs",
			in: IntangibleInputs{
				OtherIntangiblesAmortization: 3.2,
			},
			wantFlag:      assessment.FlagYellow,
			wantAllowable: 3.2,
		},
		{
			name: "worst component flag wins",
			in: IntangibleInputs{
				SoftwareAmortizationClaimed:  12.5,
				OtherIntangiblesAmortization: 3.2,
				OtherSupportingDocsProvided:  true,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 3.2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intangible(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.RecommendedAmount)
			assert.InDelta(t, tt.wantAllowable, *got.RecommendedAmount, 1e-9)
		})
	}
}
