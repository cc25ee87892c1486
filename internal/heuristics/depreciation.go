package heuristics

import (
	"fmt"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// Age-bucket depreciation rates per the tariff regulations.
const (
	depRate13To30  = 0.0142
	depRateBelow13 = 0.0514
)

// DepreciationInputs carries the gross-fixed-asset balances split into
// the two age buckets the regulations depreciate at different rates.
// Land and consumer-funded grants are excluded from the depreciable
// base in both buckets.
type DepreciationInputs struct {
	GFAOpeningTotal    float64 `json:"gfa_opening_total"`
	GFA13To30Years     float64 `json:"gfa_13_to_30_years"`
	Land13To30Years    float64 `json:"land_13_to_30_years"`
	Grants13To30Years  float64 `json:"grants_13_to_30_years"`
	GFABelow13Years    float64 `json:"gfa_below_13_years"`
	LandBelow13Years   float64 `json:"land_below_13_years"`
	GrantsBelow13Years float64 `json:"grants_below_13_years"`

	AssetAdditions   float64 `json:"asset_additions"`
	AssetWithdrawals float64 `json:"asset_withdrawals"`

	ClaimedDepreciation float64 `json:"claimed_depreciation"`
}

func (in DepreciationInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"gfa_13_to_30_years", in.GFA13To30Years},
		{"land_13_to_30_years", in.Land13To30Years},
		{"grants_13_to_30_years", in.Grants13To30Years},
		{"gfa_below_13_years", in.GFABelow13Years},
		{"land_below_13_years", in.LandBelow13Years},
		{"grants_below_13_years", in.GrantsBelow13Years},
		{"asset_additions", in.AssetAdditions},
		{"asset_withdrawals", in.AssetWithdrawals},
		{"claimed_depreciation", in.ClaimedDepreciation},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Depreciation implements DEP-GEN-01: two age buckets, 1.42% on the
// closing depreciable base of 13-30 year assets and 5.14% on the
// average depreciable base of assets under 13 years.
func Depreciation(in DepreciationInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	depreciable13To30 := in.GFA13To30Years - in.Land13To30Years - in.Grants13To30Years
	depreciation13To30 := depreciable13To30 * depRate13To30

	openingBelow13 := in.GFABelow13Years - in.LandBelow13Years - in.GrantsBelow13Years
	closingBelow13 := openingBelow13 + in.AssetAdditions - in.AssetWithdrawals
	averageBelow13 := (openingBelow13 + closingBelow13) / 2
	depreciationBelow13 := averageBelow13 * depRateBelow13

	totalAllowable := depreciation13To30 + depreciationBelow13
	variance := in.ClaimedDepreciation - totalAllowable
	variancePct := pctOf(variance, totalAllowable)

	flag := ladder(variancePct, 2, 5)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = "Approve as calculated - within tolerance"
	case assessment.FlagYellow:
		recommendation = "Minor variance - verify calculation methodology"
	default:
		recommendation = "Significant variance - requires detailed scrutiny"
	}

	r := assessment.New("DEP-GEN-01", "Depreciation Calculation", "Depreciation")
	r.ClaimedValue = assessment.Amount(in.ClaimedDepreciation)
	r.AllowableValue = assessment.Amount(round2(totalAllowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(totalAllowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 48, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Bucket 1 (13-30 yrs): depreciable = %s - %s - %s = %s",
			cr(in.GFA13To30Years), cr(in.Land13To30Years), cr(in.Grants13To30Years), cr(depreciable13To30)),
		fmt.Sprintf("Bucket 1 depreciation @ 1.42%% = %s", cr(depreciation13To30)),
		fmt.Sprintf("Bucket 2 (<13 yrs): opening = %s - %s - %s = %s",
			cr(in.GFABelow13Years), cr(in.LandBelow13Years), cr(in.GrantsBelow13Years), cr(openingBelow13)),
		fmt.Sprintf("Bucket 2 closing = opening + %s - %s = %s",
			cr(in.AssetAdditions), cr(in.AssetWithdrawals), cr(closingBelow13)),
		fmt.Sprintf("Bucket 2 average = %s, depreciation @ 5.14%% = %s",
			cr(averageBelow13), cr(depreciationBelow13)),
		fmt.Sprintf("Total allowable = %s | Claimed = %s | Variance %+.2f Cr (%+.2f%%)",
			cr(totalAllowable), cr(in.ClaimedDepreciation), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"depreciation_13_to_30": round2(depreciation13To30),
		"depreciation_below_13": round2(depreciationBelow13),
		"average_base_below_13": round2(averageBelow13),
		"gfa_opening_total":     in.GFAOpeningTotal,
	}
	return r, nil
}
