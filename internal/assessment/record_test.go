package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorse(t *testing.T) {
	tests := []struct {
		name string
		a, b Flag
		want Flag
	}{
		{"green vs green", FlagGreen, FlagGreen, FlagGreen},
		{"green vs yellow", FlagGreen, FlagYellow, FlagYellow},
		{"yellow vs red", FlagYellow, FlagRed, FlagRed},
		{"red vs green", FlagRed, FlagGreen, FlagRed},
		{"pending vs green", FlagPending, FlagGreen, FlagGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Worse(tt.a, tt.b))
		})
	}
}

func TestNewRecordDefaults(t *testing.T) {
	r := New("ROE-01", "Return on Equity", "Return on Equity")

	assert.Equal(t, ReviewPending, r.StaffReviewStatus)
	assert.Nil(t, r.StaffOverrideFlag)
	assert.Nil(t, r.StaffApprovedAmount)
	assert.Empty(t, r.ReviewedBy)
	assert.Nil(t, r.ReviewedAt)

	// Records carry no random state: rebuilding one from the same
	// arguments reproduces it exactly.
	other := New("ROE-01", "Return on Equity", "Return on Equity")
	assert.Equal(t, r, other)
}

func TestEffectiveFlagPrefersOverride(t *testing.T) {
	r := New("DEP-GEN-01", "Depreciation", "Depreciation")
	r.Flag = FlagRed

	assert.Equal(t, FlagRed, r.EffectiveFlag())

	require.NoError(t, r.OverrideFlag("Deputy Director (Tariff)", "supporting docs furnished during hearing", FlagGreen))
	assert.Equal(t, FlagGreen, r.EffectiveFlag())
	assert.Equal(t, FlagRed, r.Flag, "computed flag must survive the override")
}

func TestResolvedAmountPrefersStaffApproved(t *testing.T) {
	r := New("FUEL-01", "Fuel Costs", "Fuel Costs")
	r.RecommendedAmount = Amount(9.64)

	require.NotNil(t, r.ResolvedAmount())
	assert.InDelta(t, 9.64, *r.ResolvedAmount(), 1e-9)

	require.NoError(t, r.OverrideAmount("Deputy Director (Tariff)", "capped per prudence review", 8.00))
	assert.InDelta(t, 8.00, *r.ResolvedAmount(), 1e-9)
}

func TestResolvedAmountNilWhenNothingRecommended(t *testing.T) {
	r := New("OM-APPORT-01", "O&M Apportionment", "O&M Expenses")
	assert.Nil(t, r.ResolvedAmount())
}

func TestResetReviewClearsEverything(t *testing.T) {
	r := New("ROE-01", "Return on Equity", "Return on Equity")
	r.Flag = FlagYellow
	require.NoError(t, r.OverrideFlag("AO", "verified equity infusion", FlagGreen))
	require.NoError(t, r.OverrideAmount("AO", "verified equity infusion", 120.00))

	r.ResetReview()

	assert.Nil(t, r.StaffOverrideFlag)
	assert.Nil(t, r.StaffApprovedAmount)
	assert.Empty(t, r.StaffJustification)
	assert.Equal(t, ReviewPending, r.StaffReviewStatus)
	assert.Empty(t, r.ReviewedBy)
	assert.Nil(t, r.ReviewedAt)
	assert.Equal(t, FlagYellow, r.Flag, "computed result is not touched by a review reset")
}
