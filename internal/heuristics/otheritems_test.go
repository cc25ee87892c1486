package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestOtherExpenses(t *testing.T) {
	tests := []struct {
		name          string
		in            OtherExpensesInputs
		wantFlag      assessment.Flag
		wantAllowable float64
	}{
		{
			name: "everything substantiated",
			in: OtherExpensesInputs{
				ClaimedDiscountToConsumers: 5.0,
				ClaimedFloodLosses:         2.0,
				ClaimedMiscWriteoffs:       1.0,
				FloodSupportingDocs:        true,
				WriteoffAppealOrders:       true,
			},
			wantFlag:      assessment.FlagGreen,
			wantAllowable: 8.0,
		},
		{
			name: "flood losses without documentation",
			in: OtherExpensesInputs{
				ClaimedDiscountToConsumers: 5.0,
				ClaimedFloodLosses:         2.0,
			},
			wantFlag:      assessment.FlagYellow,
			wantAllowable: 5.0,
		},
		{
			name: "writeoffs without appeal orders",
			in: OtherExpensesInputs{
				ClaimedDiscountToConsumers: 5.0,
				ClaimedMiscWriteoffs:       1.5,
			},
			wantFlag:      assessment.FlagYellow,
			wantAllowable: 5.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OtherExpenses(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.RecommendedAmount)
			assert.InDelta(t, tt.wantAllowable, *got.RecommendedAmount, 1e-9)
			assert.Equal(t, assessment.OutputMixed, got.OutputType)
		})
	}
}

func TestExceptionalItems(t *testing.T) {
	tests := []struct {
		name          string
		in            ExceptionalItemsInputs
		wantFlag      assessment.Flag
		wantAllowable float64
	}{
		{
			name: "calamity fully substantiated",
			in: ExceptionalItemsInputs{
				ClaimedCalamityRM:      4.0,
				SeparateAccountCode:    true,
				CalamitySupportingDocs: true,
			},
			wantFlag:      assessment.FlagGreen,
			wantAllowable: 4.0,
		},
		{
			name: "calamity with account code only",
			in: ExceptionalItemsInputs{
				ClaimedCalamityRM:   4.0,
				SeparateAccountCode: true,
			},
			wantFlag:      assessment.FlagYellow,
			wantAllowable: 4.0,
		},
		{
			name: "calamity not segregable",
			in: ExceptionalItemsInputs{
				ClaimedCalamityRM: 4.0,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 0,
		},
		{
			name: "government loss takeover is always zero",
			in: ExceptionalItemsInputs{
				ClaimedGovtLossTakeover: 250.0,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 0,
		},
		{
			// A takeover booked as a negative adjustment is still a
			// claim routed through ARR, not an input error.
			name: "negative takeover adjustment is still disallowed",
			in: ExceptionalItemsInputs{
				ClaimedGovtLossTakeover: -767.72,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 0,
		},
		{
			name: "takeover poisons an otherwise clean claim",
			in: ExceptionalItemsInputs{
				ClaimedCalamityRM:       4.0,
				SeparateAccountCode:     true,
				CalamitySupportingDocs:  true,
				ClaimedGovtLossTakeover: 250.0,
			},
			wantFlag:      assessment.FlagRed,
			wantAllowable: 4.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExceptionalItems(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
			require.NotNil(t, got.RecommendedAmount)
			assert.InDelta(t, tt.wantAllowable, *got.RecommendedAmount, 1e-9)
			assert.Equal(t, assessment.OutputDiscretionary, got.OutputType)
		})
	}
}
