package heuristics

import (
	"fmt"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// NTIInputs reconstructs assessable non-tariff income from the audited
// base figure: one-off and non-tariff-neutral receipts are excluded,
// released arrears are added back.
type NTIInputs struct {
	MYTBaselineNTI         float64 `json:"myt_baseline_nti"`
	BaseIncomeFromAccounts float64 `json:"base_income_from_accounts"`

	ExclusionGrantClawback      float64 `json:"exclusion_grant_clawback"`
	ExclusionLEDBulbs           float64 `json:"exclusion_led_bulbs"`
	ExclusionNilaavuScheme      float64 `json:"exclusion_nilaavu_scheme"`
	ExclusionProvisionReversals float64 `json:"exclusion_provision_reversals"`
	ExclusionKWAUnrealized      float64 `json:"exclusion_kwa_unrealized"`
	OtherExclusions             float64 `json:"other_exclusions"`

	AdditionKWAArrearsReleased float64 `json:"addition_kwa_arrears_released"`
	OtherAdditions             float64 `json:"other_additions"`

	ClaimedNTI float64 `json:"claimed_nti"`
}

func (in NTIInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_income_from_accounts", in.BaseIncomeFromAccounts},
		{"exclusion_grant_clawback", in.ExclusionGrantClawback},
		{"exclusion_led_bulbs", in.ExclusionLEDBulbs},
		{"exclusion_nilaavu_scheme", in.ExclusionNilaavuScheme},
		{"exclusion_provision_reversals", in.ExclusionProvisionReversals},
		{"exclusion_kwa_unrealized", in.ExclusionKWAUnrealized},
		{"other_exclusions", in.OtherExclusions},
		{"addition_kwa_arrears_released", in.AdditionKWAArrearsReleased},
		{"other_additions", in.OtherAdditions},
		{"claimed_nti", in.ClaimedNTI},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// NTI implements NTI-01. Non-tariff income reduces the revenue
// requirement, so this record is consumed subtractively by the unit
// roll-up.
func NTI(in NTIInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	totalExclusions := in.ExclusionGrantClawback + in.ExclusionLEDBulbs + in.ExclusionNilaavuScheme +
		in.ExclusionProvisionReversals + in.ExclusionKWAUnrealized + in.OtherExclusions
	totalAdditions := in.AdditionKWAArrearsReleased + in.OtherAdditions
	allowable := in.BaseIncomeFromAccounts - totalExclusions + totalAdditions

	variance := in.ClaimedNTI - allowable
	variancePct := pctOf(variance, allowable)

	flag := ladder(variancePct, 2, 5)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = fmt.Sprintf("Approve NTI of %s after exclusions of %s and additions of %s.",
			cr(allowable), cr(totalExclusions), cr(totalAdditions))
	case assessment.FlagYellow:
		recommendation = fmt.Sprintf("NTI claim of %s varies %.2f%% from assessable %s; verify exclusion schedule.",
			cr(in.ClaimedNTI), variancePct, cr(allowable))
	default:
		recommendation = fmt.Sprintf("NTI claim of %s diverges materially from assessable %s; require item-wise reconciliation.",
			cr(in.ClaimedNTI), cr(allowable))
	}

	note := ""
	if in.MYTBaselineNTI > 0 {
		mytPct := (allowable - in.MYTBaselineNTI) / in.MYTBaselineNTI * 100
		if mytPct > 50 || mytPct < -20 {
			note = fmt.Sprintf("Assessed NTI deviates %+.1f%% from the MYT baseline of %s.", mytPct, cr(in.MYTBaselineNTI))
		}
	}

	r := assessment.New("NTI-01", "Non-Tariff Income Assessment", "Non-Tariff Income")
	r.ClaimedValue = assessment.Amount(in.ClaimedNTI)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 52, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Base income per accounts: %s", cr(in.BaseIncomeFromAccounts)),
		fmt.Sprintf("Less exclusions: grant clawback %s, LED bulbs %s, Nilaavu %s, provision reversals %s, KWA unrealized %s, other %s = %s",
			cr(in.ExclusionGrantClawback), cr(in.ExclusionLEDBulbs), cr(in.ExclusionNilaavuScheme),
			cr(in.ExclusionProvisionReversals), cr(in.ExclusionKWAUnrealized), cr(in.OtherExclusions), cr(totalExclusions)),
		fmt.Sprintf("Add: KWA arrears released %s, other %s = %s",
			cr(in.AdditionKWAArrearsReleased), cr(in.OtherAdditions), cr(totalAdditions)),
		fmt.Sprintf("Assessable NTI = %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
			cr(allowable), cr(in.ClaimedNTI), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Note = note
	r.Details = map[string]any{
		"total_exclusions": round2(totalExclusions),
		"total_additions":  round2(totalAdditions),
		"myt_baseline_nti": in.MYTBaselineNTI,
	}
	return r, nil
}
