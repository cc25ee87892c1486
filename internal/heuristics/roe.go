package heuristics

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// ROEInputs parameterizes the return-on-equity entitlement check.
type ROEInputs struct {
	EquityCapital            float64 `json:"equity_capital"`
	ROERate                  float64 `json:"roe_rate"`
	ClaimedROE               float64 `json:"claimed_roe"`
	EquityInfusionDuringYear float64 `json:"equity_infusion_during_year"`
}

func (in ROEInputs) validate() error {
	if err := nonNegative("equity_capital", in.EquityCapital); err != nil {
		return err
	}
	if err := positive("roe_rate", in.ROERate); err != nil {
		return err
	}
	if in.ROERate >= 1 {
		return eris.Errorf("heuristics: roe_rate is a fraction, got %.4f", in.ROERate)
	}
	if err := nonNegative("claimed_roe", in.ClaimedROE); err != nil {
		return err
	}
	return nonNegative("equity_infusion_during_year", in.EquityInfusionDuringYear)
}

// ROE implements ROE-01: entitlement = (equity base + infusions
// capitalized during the year) × the regulated rate of return. The
// tolerance is essentially zero because both factors are order-fixed.
func ROE(in ROEInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	adjustedEquity := in.EquityCapital + in.EquityInfusionDuringYear
	allowable := adjustedEquity * in.ROERate
	variance := in.ClaimedROE - allowable
	variancePct := pctOf(variance, allowable)

	flag := assessment.FlagRed
	recommendation := fmt.Sprintf(
		"Variance of %s against entitlement %s. Verify equity base and rate applied.",
		cr(variance), cr(allowable))
	if variance < 0.01 && variance > -0.01 {
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf(
			"Approve RoE of %s at %.2f%% on adjusted equity of %s.",
			cr(allowable), in.ROERate*100, cr(adjustedEquity))
	}

	r := assessment.New("ROE-01", "Return on Equity", "Return on Equity")
	r.ClaimedValue = assessment.Amount(in.ClaimedROE)
	r.AllowableValue = assessment.Amount(allowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(allowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 47, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Adjusted equity = %s + %s = %s",
			cr(in.EquityCapital), cr(in.EquityInfusionDuringYear), cr(adjustedEquity)),
		fmt.Sprintf("Allowable RoE = %s × %.2f%% = %s", cr(adjustedEquity), in.ROERate*100, cr(allowable)),
		fmt.Sprintf("Claimed %s | Variance %+.4f Cr (%+.2f%%)", cr(in.ClaimedROE), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"adjusted_equity": adjustedEquity,
		"roe_rate":        in.ROERate,
	}
	return r, nil
}
