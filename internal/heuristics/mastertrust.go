package heuristics

import (
	"fmt"
	"math"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// MasterTrustBondInputs covers interest on the bonds issued to the
// pension Master Trust, allocated to a business unit by its ratio.
type MasterTrustBondInputs struct {
	TotalBondInterest      float64 `json:"total_bond_interest"`
	SBUAllocationRatio     float64 `json:"sbu_allocation_ratio"`
	ClaimedBondInterestSBU float64 `json:"claimed_bond_interest_sbu"`
}

func (in MasterTrustBondInputs) validate() error {
	if err := nonNegative("total_bond_interest", in.TotalBondInterest); err != nil {
		return err
	}
	if err := positive("sbu_allocation_ratio", in.SBUAllocationRatio); err != nil {
		return err
	}
	return nonNegative("claimed_bond_interest_sbu", in.ClaimedBondInterestSBU)
}

// MasterTrustBond implements MT-BOND-01: a pass-through of the unit's
// share of Master Trust bond interest.
func MasterTrustBond(in MasterTrustBondInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	allowable := in.TotalBondInterest * in.SBUAllocationRatio / 100
	variance := in.ClaimedBondInterestSBU - allowable
	variancePct := pctOf(variance, allowable)

	flag := ladder(variancePct, 1, 3)
	recommendation := fmt.Sprintf("Pass through bond interest of %s (%.2f%% of %s).",
		cr(allowable), in.SBUAllocationRatio, cr(in.TotalBondInterest))
	if flag != assessment.FlagGreen {
		recommendation = fmt.Sprintf("Claimed %s varies %+.2f%% from the allocated share %s; verify the allocation ratio.",
			cr(in.ClaimedBondInterestSBU), variancePct, cr(allowable))
	}

	r := assessment.New("MT-BOND-01", "Master Trust Bond Interest", "Master Trust Bond Interest")
	r.ClaimedValue = assessment.Amount(in.ClaimedBondInterestSBU)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 30, Regulation 34; Transfer Scheme notified vide GO(P) 46/2013/PD dated 31.10.2013 and GO(P) 3/2015/PD dated 28.01.2015"
	r.CalculationSteps = []string{
		fmt.Sprintf("Allocated share = %s × %.2f%% = %s", cr(in.TotalBondInterest), in.SBUAllocationRatio, cr(allowable)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedBondInterestSBU), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputPassThrough
	return r, nil
}

// MasterTrustRepaymentInputs covers the principal repayment of the
// Master Trust bonds, allowed as a pass-through since the 2024
// amendment.
type MasterTrustRepaymentInputs struct {
	AnnualPrincipalRepayment     float64 `json:"annual_principal_repayment"`
	SBUAllocationRatio           float64 `json:"sbu_allocation_ratio"`
	ClaimedPrincipalRepaymentSBU float64 `json:"claimed_principal_repayment_sbu"`
}

func (in MasterTrustRepaymentInputs) validate() error {
	if err := nonNegative("annual_principal_repayment", in.AnnualPrincipalRepayment); err != nil {
		return err
	}
	if err := positive("sbu_allocation_ratio", in.SBUAllocationRatio); err != nil {
		return err
	}
	return nonNegative("claimed_principal_repayment_sbu", in.ClaimedPrincipalRepaymentSBU)
}

// MasterTrustRepayment implements MT-REPAY-01.
func MasterTrustRepayment(in MasterTrustRepaymentInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	allowable := in.AnnualPrincipalRepayment * in.SBUAllocationRatio / 100
	variance := in.ClaimedPrincipalRepaymentSBU - allowable
	variancePct := pctOf(variance, allowable)

	flag := ladder(variancePct, 1, 3)
	recommendation := fmt.Sprintf("Pass through bond principal repayment of %s (%.2f%% of %s).",
		cr(allowable), in.SBUAllocationRatio, cr(in.AnnualPrincipalRepayment))
	if flag != assessment.FlagGreen {
		recommendation = fmt.Sprintf("Claimed %s varies %+.2f%% from the allocated share %s; verify the repayment schedule.",
			cr(in.ClaimedPrincipalRepaymentSBU), variancePct, cr(allowable))
	}

	r := assessment.New("MT-REPAY-01", "Master Trust Bond Principal Repayment", "Bond Principal Repayment")
	r.ClaimedValue = assessment.Amount(in.ClaimedPrincipalRepaymentSBU)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 34(iv) as amended by KSERC (Terms and Conditions for Determination of Tariff) (Second Amendment) Regulations, 2024; Transfer Scheme provisions"
	r.CalculationSteps = []string{
		fmt.Sprintf("Allocated share = %s × %.2f%% = %s", cr(in.AnnualPrincipalRepayment), in.SBUAllocationRatio, cr(allowable)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedPrincipalRepaymentSBU), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputPassThrough
	return r, nil
}

// MasterTrustAdditionalInputs covers the additional contribution to
// the Master Trust beyond bond servicing. How much is admissible
// depends on whether the actuarial valuation and government approval
// exist, not on arithmetic alone.
type MasterTrustAdditionalInputs struct {
	ActuarialLiabilityCurrentYear    float64 `json:"actuarial_liability_current_year"`
	ProvisionalCap                   float64 `json:"provisional_cap"`
	SBUAllocationRatio               float64 `json:"sbu_allocation_ratio"`
	ClaimedAdditionalContributionSBU float64 `json:"claimed_additional_contribution_sbu"`
	ActuarialReportSubmitted         bool    `json:"actuarial_report_submitted"`
	GovtApprovalObtained             bool    `json:"govt_approval_obtained"`
}

func (in MasterTrustAdditionalInputs) validate() error {
	if err := nonNegative("actuarial_liability_current_year", in.ActuarialLiabilityCurrentYear); err != nil {
		return err
	}
	if err := nonNegative("provisional_cap", in.ProvisionalCap); err != nil {
		return err
	}
	if err := positive("sbu_allocation_ratio", in.SBUAllocationRatio); err != nil {
		return err
	}
	return nonNegative("claimed_additional_contribution_sbu", in.ClaimedAdditionalContributionSBU)
}

// MasterTrustAdditional implements MT-ADD-01, a conditional decision
// table rather than a variance check.
func MasterTrustAdditional(in MasterTrustAdditionalInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	var allowableTotal float64
	var flag assessment.Flag
	var basisStep, recommendation string

	switch {
	case in.ActuarialReportSubmitted && in.GovtApprovalObtained:
		allowableTotal = in.ActuarialLiabilityCurrentYear
		flag = assessment.FlagGreen
		basisStep = "Actuarial report and government approval on record: allow full actuarial liability"
		recommendation = fmt.Sprintf("Allow the full actuarial liability of %s; valuation and approval are on record.", cr(allowableTotal))
	case in.ActuarialReportSubmitted:
		allowableTotal = math.Min(in.ProvisionalCap, in.ActuarialLiabilityCurrentYear)
		flag = assessment.FlagYellow
		basisStep = "Actuarial report without government approval: allow lower of cap and liability"
		recommendation = fmt.Sprintf("Allow %s provisionally (lower of cap %s and actuarial liability %s) pending government approval.",
			cr(allowableTotal), cr(in.ProvisionalCap), cr(in.ActuarialLiabilityCurrentYear))
	default:
		allowableTotal = in.ProvisionalCap
		flag = assessment.FlagYellow
		basisStep = "No actuarial report: allow the provisional cap only"
		recommendation = fmt.Sprintf("Allow the provisional cap of %s; a current actuarial valuation must be furnished.", cr(allowableTotal))
	}

	allowableSBU := allowableTotal * in.SBUAllocationRatio / 100
	variance := in.ClaimedAdditionalContributionSBU - allowableSBU
	variancePct := pctOf(variance, allowableSBU)

	r := assessment.New("MT-ADD-01", "Master Trust Additional Contribution", "Master Trust Contribution")
	r.ClaimedValue = assessment.Amount(in.ClaimedAdditionalContributionSBU)
	r.AllowableValue = assessment.Amount(round2(allowableSBU))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowableSBU))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 30(3), Regulation 45(2), Regulation 58(3), Regulation 80; MYT Order dated 25.06.2022; Truing-Up Order Para 6.81-6.82"
	r.CalculationSteps = []string{
		basisStep,
		fmt.Sprintf("Allowable (company) = %s", cr(allowableTotal)),
		fmt.Sprintf("Allocated share = %s × %.2f%% = %s", cr(allowableTotal), in.SBUAllocationRatio, cr(allowableSBU)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedAdditionalContributionSBU), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputConditional
	r.Details = map[string]any{
		"actuarial_report_submitted": in.ActuarialReportSubmitted,
		"govt_approval_obtained":     in.GovtApprovalObtained,
		"allowable_company_total":    round2(allowableTotal),
	}
	return r, nil
}
