package heuristics

import (
	"fmt"
	"math"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// OtherExpensesInputs covers the miscellaneous claims bundled under
// other expenses: consumer discounts, flood losses, and write-offs of
// irrecoverable amounts.
type OtherExpensesInputs struct {
	ClaimedDiscountToConsumers float64 `json:"claimed_discount_to_consumers"`
	ClaimedFloodLosses         float64 `json:"claimed_flood_losses"`
	ClaimedMiscWriteoffs       float64 `json:"claimed_misc_writeoffs"`
	FloodSupportingDocs        bool    `json:"flood_supporting_docs"`
	WriteoffAppealOrders       bool    `json:"writeoff_appeal_orders"`
}

func (in OtherExpensesInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"claimed_discount_to_consumers", in.ClaimedDiscountToConsumers},
		{"claimed_flood_losses", in.ClaimedFloodLosses},
		{"claimed_misc_writeoffs", in.ClaimedMiscWriteoffs},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// OtherExpenses implements OTHER-EXP-01: each component passes or
// fails on its own evidence and the flag is the worst of the three.
func OtherExpenses(in OtherExpensesInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	flag := assessment.FlagGreen
	steps := []string{
		fmt.Sprintf("Discount to consumers %s: allowed (contractual, verified against Note 38)", cr(in.ClaimedDiscountToConsumers)),
	}
	allowable := in.ClaimedDiscountToConsumers

	floodAllowed := 0.0
	if in.ClaimedFloodLosses > 0 {
		if in.FloodSupportingDocs {
			floodAllowed = in.ClaimedFloodLosses
			steps = append(steps, fmt.Sprintf("Flood losses %s: allowed (supporting documentation furnished)", cr(in.ClaimedFloodLosses)))
		} else {
			flag = assessment.Worse(flag, assessment.FlagYellow)
			steps = append(steps, fmt.Sprintf("Flood losses %s: DISALLOWED pending supporting documentation", cr(in.ClaimedFloodLosses)))
		}
	}
	allowable += floodAllowed

	writeoffAllowed := 0.0
	if in.ClaimedMiscWriteoffs > 0 {
		if in.WriteoffAppealOrders {
			writeoffAllowed = in.ClaimedMiscWriteoffs
			steps = append(steps, fmt.Sprintf("Misc write-offs %s: allowed per appeal authority orders", cr(in.ClaimedMiscWriteoffs)))
		} else {
			flag = assessment.Worse(flag, assessment.FlagYellow)
			steps = append(steps, fmt.Sprintf("Misc write-offs %s: DISALLOWED pending appeal authority orders", cr(in.ClaimedMiscWriteoffs)))
		}
	}
	allowable += writeoffAllowed

	claimed := in.ClaimedDiscountToConsumers + in.ClaimedFloodLosses + in.ClaimedMiscWriteoffs
	variance := claimed - allowable
	variancePct := pctOf(variance, allowable)

	recommendation := fmt.Sprintf("Allow other expenses of %s against claim of %s.", cr(allowable), cr(claimed))
	steps = append(steps, fmt.Sprintf("Allowable %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
		cr(allowable), cr(claimed), variance, variancePct))

	r := assessment.New("OTHER-EXP-01", "Other Expenses Prudence Check", "Other Expenses")
	r.ClaimedValue = assessment.Amount(claimed)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Note 38 of audited accounts; Prudence check on operational expenses; Prior period adjustments per appeal authority directions"
	r.CalculationSteps = steps
	r.IsPrimary = true
	r.OutputType = assessment.OutputMixed
	r.Details = map[string]any{
		"discount_allowed": round2(in.ClaimedDiscountToConsumers),
		"flood_allowed":    round2(floodAllowed),
		"writeoff_allowed": round2(writeoffAllowed),
	}
	return r, nil
}

// ExceptionalItemsInputs covers one-time exceptional claims: calamity
// restoration works and the government loss-takeover adjustment.
type ExceptionalItemsInputs struct {
	ClaimedCalamityRM       float64 `json:"claimed_calamity_rm"`
	ClaimedGovtLossTakeover float64 `json:"claimed_govt_loss_takeover"`
	SeparateAccountCode     bool    `json:"separate_account_code"`
	CalamitySupportingDocs  bool    `json:"calamity_supporting_docs"`
}

func (in ExceptionalItemsInputs) validate() error {
	// The loss takeover can legitimately arrive as a negative
	// balance-sheet adjustment; only the calamity claim must be
	// non-negative.
	return nonNegative("claimed_calamity_rm", in.ClaimedCalamityRM)
}

// ExceptionalItems implements EXC-01. The government loss takeover is
// a balance-sheet restructuring already accounted for elsewhere:
// claiming it through ARR double-counts, so it is always disallowed in
// full.
func ExceptionalItems(in ExceptionalItemsInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	steps := []string{}

	calamityAllowed := 0.0
	calamityFlag := assessment.FlagGreen
	if in.ClaimedCalamityRM > 0 {
		switch {
		case in.SeparateAccountCode && in.CalamitySupportingDocs:
			calamityAllowed = in.ClaimedCalamityRM
			steps = append(steps, fmt.Sprintf("Calamity R&M %s: allowed (separate account code, documented)", cr(in.ClaimedCalamityRM)))
		case in.SeparateAccountCode:
			calamityAllowed = in.ClaimedCalamityRM
			calamityFlag = assessment.FlagYellow
			steps = append(steps, fmt.Sprintf("Calamity R&M %s: allowed provisionally, supporting documents awaited", cr(in.ClaimedCalamityRM)))
		default:
			calamityFlag = assessment.FlagRed
			steps = append(steps, fmt.Sprintf("Calamity R&M %s: DISALLOWED (no separate account code, not segregable from normal R&M)", cr(in.ClaimedCalamityRM)))
		}
	}

	takeoverFlag := assessment.FlagGreen
	if in.ClaimedGovtLossTakeover != 0 {
		takeoverFlag = assessment.FlagRed
		steps = append(steps, fmt.Sprintf("Govt loss takeover %s: DISALLOWED in full (double counting, Order Para 6.105)", cr(math.Abs(in.ClaimedGovtLossTakeover))))
	}

	flag := assessment.Worse(calamityFlag, takeoverFlag)
	allowable := calamityAllowed
	claimed := in.ClaimedCalamityRM + in.ClaimedGovtLossTakeover
	variance := claimed - allowable
	variancePct := pctOf(variance, allowable)

	recommendation := fmt.Sprintf("Allow exceptional items of %s against claim of %s.", cr(allowable), cr(claimed))
	if takeoverFlag == assessment.FlagRed {
		recommendation += " The loss-takeover claim is rejected outright as double counting."
	}
	steps = append(steps, fmt.Sprintf("Allowable %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
		cr(allowable), cr(claimed), variance, variancePct))

	r := assessment.New("EXC-01", "Exceptional Items Assessment", "Exceptional Items")
	r.ClaimedValue = assessment.Amount(claimed)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Prudence assessment; One-time exceptional expenses; Order Para 6.101-6.106"
	r.CalculationSteps = steps
	r.IsPrimary = true
	r.OutputType = assessment.OutputDiscretionary
	r.Details = map[string]any{
		"calamity_allowed":         round2(calamityAllowed),
		"govt_takeover_disallowed": round2(math.Abs(in.ClaimedGovtLossTakeover)),
	}
	return r, nil
}
