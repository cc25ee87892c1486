package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptRequiresReviewer(t *testing.T) {
	r := New("NTI-01", "Non-Tariff Income", "Non-Tariff Income")

	err := r.Accept("")
	require.Error(t, err)
	assert.Equal(t, ReviewPending, r.StaffReviewStatus)
	assert.Nil(t, r.ReviewedAt)

	require.NoError(t, r.Accept("Chief Engineer (Tariff)"))
	assert.Equal(t, ReviewAccepted, r.StaffReviewStatus)
	assert.Equal(t, "Chief Engineer (Tariff)", r.ReviewedBy)
	assert.NotNil(t, r.ReviewedAt)
}

func TestOverrideFlagValidation(t *testing.T) {
	tests := []struct {
		name          string
		reviewer      string
		justification string
		flag          Flag
		wantErr       bool
	}{
		{"valid", "AO", "docs verified", FlagGreen, false},
		{"missing reviewer", "", "docs verified", FlagGreen, true},
		{"missing justification", "AO", "", FlagGreen, true},
		{"pending not allowed", "AO", "docs verified", FlagPending, true},
		{"garbage flag", "AO", "docs verified", Flag("BLUE"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("EXC-01", "Exceptional Items", "Exceptional Items")
			r.Flag = FlagRed

			err := r.OverrideFlag(tt.reviewer, tt.justification, tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				// Rejected actions must leave no trace.
				assert.Nil(t, r.StaffOverrideFlag)
				assert.Empty(t, r.StaffJustification)
				assert.Equal(t, ReviewPending, r.StaffReviewStatus)
				assert.Empty(t, r.ReviewedBy)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, r.StaffOverrideFlag)
			assert.Equal(t, tt.flag, *r.StaffOverrideFlag)
			assert.Equal(t, ReviewOverridden, r.StaffReviewStatus)
		})
	}
}

func TestOverrideAmountValidation(t *testing.T) {
	r := New("OM-NORM-01", "Normative O&M", "O&M Expenses")
	r.RecommendedAmount = Amount(3783.56)

	require.Error(t, r.OverrideAmount("", "capped", 3605.39))
	require.Error(t, r.OverrideAmount("AO", "", 3605.39))
	assert.Nil(t, r.StaffApprovedAmount)
	assert.Equal(t, ReviewPending, r.StaffReviewStatus)

	require.NoError(t, r.OverrideAmount("AO", "capped to MYT approval", 3605.39))
	require.NotNil(t, r.StaffApprovedAmount)
	assert.InDelta(t, 3605.39, *r.StaffApprovedAmount, 1e-9)
	assert.Equal(t, "capped to MYT approval", r.StaffJustification)
	assert.Equal(t, ReviewOverridden, r.StaffReviewStatus)
}

func TestAddRemarks(t *testing.T) {
	r := New("MT-ADD-01", "Master Trust Additional", "Master Trust Contribution")

	require.Error(t, r.AddRemarks("", "noted"))
	assert.Equal(t, ReviewPending, r.StaffReviewStatus)

	require.NoError(t, r.AddRemarks("AO", "actuarial report awaited"))
	assert.Equal(t, ReviewAccepted, r.StaffReviewStatus)
	assert.Equal(t, "actuarial report awaited", r.StaffJustification)
	assert.Equal(t, "AO", r.ReviewedBy)
}
