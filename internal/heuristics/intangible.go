package heuristics

import (
	"fmt"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// IntangibleInputs covers amortization claimed on intangible assets.
// The software claim is only admissible when it is documented AND the
// underlying staff cost is additional to the O&M norms, since the
// norms already carry normal establishment costs.
type IntangibleInputs struct {
	SoftwareAmortizationClaimed        float64 `json:"software_amortization_claimed"`
	SoftwareSupportingDocsProvided     bool    `json:"software_supporting_docs_provided"`
	SoftwareEmployeesAdditionalToNorms bool    `json:"software_employees_additional_to_norms"`

	PatentsIP                    float64 `json:"patents_ip"`
	OtherIntangibles             float64 `json:"other_intangibles"`
	OtherIntangiblesAmortization float64 `json:"other_intangibles_amortization"`
	OtherSupportingDocsProvided  bool    `json:"other_supporting_docs_provided"`
}

func (in IntangibleInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"software_amortization_claimed", in.SoftwareAmortizationClaimed},
		{"patents_ip", in.PatentsIP},
		{"other_intangibles", in.OtherIntangibles},
		{"other_intangibles_amortization", in.OtherIntangiblesAmortization},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Intangible implements INTANG-01.
func Intangible(in IntangibleInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	flag := assessment.FlagGreen
	steps := []string{}
	var softwareAllowed, otherAllowed float64
	var reasons []string

	if in.SoftwareAmortizationClaimed > 0 {
		switch {
		case !in.SoftwareSupportingDocsProvided:
			flag = assessment.Worse(flag, assessment.FlagRed)
			reasons = append(reasons, "software amortization disallowed: no supporting documentation")
			steps = append(steps, fmt.Sprintf("Software amortization %s: DISALLOWED (no supporting docs)", cr(in.SoftwareAmortizationClaimed)))
		case !in.SoftwareEmployeesAdditionalToNorms:
			flag = assessment.Worse(flag, assessment.FlagRed)
			reasons = append(reasons, "software amortization disallowed: staff cost already covered by O&M norms (double counting)")
			steps = append(steps, fmt.Sprintf("Software amortization %s: DISALLOWED (double counting with O&M norms)", cr(in.SoftwareAmortizationClaimed)))
		default:
			softwareAllowed = in.SoftwareAmortizationClaimed
			flag = assessment.Worse(flag, assessment.FlagYellow)
			reasons = append(reasons, "software amortization allowed provisionally, subject to verification")
			steps = append(steps, fmt.Sprintf("Software amortization %s: allowed provisionally", cr(in.SoftwareAmortizationClaimed)))
		}
	}

	if in.OtherIntangiblesAmortization > 0 {
		if in.OtherSupportingDocsProvided {
			otherAllowed = in.OtherIntangiblesAmortization
			steps = append(steps, fmt.Sprintf("Other intangibles amortization %s: allowed (documented)", cr(in.OtherIntangiblesAmortization)))
		} else {
			otherAllowed = in.OtherIntangiblesAmortization
			flag = assessment.Worse(flag, assessment.FlagYellow)
			reasons = append(reasons, "other intangibles allowed pending documentation")
			steps = append(steps, fmt.Sprintf("Other intangibles amortization %s: allowed pending documentation", cr(in.OtherIntangiblesAmortization)))
		}
	}

	allowable := softwareAllowed + otherAllowed
	claimed := in.SoftwareAmortizationClaimed + in.OtherIntangiblesAmortization
	variance := claimed - allowable
	variancePct := pctOf(variance, allowable)

	recommendation := fmt.Sprintf("Allow intangible asset amortization of %s.", cr(allowable))
	if len(reasons) > 0 {
		recommendation = fmt.Sprintf("Allow %s. ", cr(allowable))
		for i, reason := range reasons {
			if i > 0 {
				recommendation += "; "
			}
			recommendation += reason
		}
	}

	steps = append(steps, fmt.Sprintf("Allowable %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
		cr(allowable), cr(claimed), variance, variancePct))

	r := assessment.New("INTANG-01", "Intangible Assets Amortization", "Intangible Assets")
	r.ClaimedValue = assessment.Amount(claimed)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 49, Tariff Regulations 2021; Truing-Up Order 2023-24 (Rejection Precedent)"
	r.CalculationSteps = steps
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"software_allowed": round2(softwareAllowed),
		"other_allowed":    round2(otherAllowed),
		"patents_ip":       in.PatentsIP,
	}
	return r, nil
}
