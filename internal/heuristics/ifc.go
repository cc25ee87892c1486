package heuristics

import (
	"fmt"
	"math"
	"strings"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// IFCLongTermLoanInputs drives the normative long-term loan interest
// calculation: additions grow the loan, depreciation stands in for
// repayment, and the opening weighted rate applies to the average
// balance.
type IFCLongTermLoanInputs struct {
	OpeningNormativeLoan float64  `json:"opening_normative_loan"`
	GFAAdditions         float64  `json:"gfa_additions"`
	Depreciation         float64  `json:"depreciation"`
	OpeningInterestRate  float64  `json:"opening_interest_rate"`
	ClaimedInterest      float64  `json:"claimed_interest"`
	DisputedClaims       float64  `json:"disputed_claims"`
	HighestLoanRate      *float64 `json:"highest_loan_rate,omitempty"`
}

func (in IFCLongTermLoanInputs) validate() error {
	if err := nonNegative("opening_normative_loan", in.OpeningNormativeLoan); err != nil {
		return err
	}
	if err := nonNegative("gfa_additions", in.GFAAdditions); err != nil {
		return err
	}
	if err := nonNegative("depreciation", in.Depreciation); err != nil {
		return err
	}
	if err := positive("opening_interest_rate", in.OpeningInterestRate); err != nil {
		return err
	}
	if err := nonNegative("claimed_interest", in.ClaimedInterest); err != nil {
		return err
	}
	return nonNegative("disputed_claims", in.DisputedClaims)
}

// IFCLongTermLoans implements IFC-LTL-01. A variance beyond 15%
// usually means the wrong rate year was applied (a correctable
// methodology slip, flagged YELLOW), while 5-15% indicates a deeper
// calculation problem and goes RED.
func IFCLongTermLoans(in IFCLongTermLoanInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	closing := in.OpeningNormativeLoan + in.GFAAdditions - in.Depreciation
	average := (in.OpeningNormativeLoan + closing) / 2
	allowable := average * in.OpeningInterestRate / 100

	variance := in.ClaimedInterest - allowable
	variancePct := 0.0
	if allowable != 0 {
		variancePct = variance / allowable * 100
	}

	flag := assessment.FlagGreen
	var notes []string

	if in.DisputedClaims > 0 {
		flag = assessment.FlagYellow
		notes = append(notes, fmt.Sprintf("Opening loan includes %s of disputed claims. Verify APTEL status before allowing.", cr(in.DisputedClaims)))
	}

	absPct := math.Abs(variancePct)
	switch {
	case absPct > 15:
		if flag != assessment.FlagYellow {
			flag = assessment.FlagYellow
		}
		notes = append(notes, fmt.Sprintf("Large variance (%.2f%%) suggests the previous-year average rate was applied instead of the opening rate.", variancePct))
	case absPct > 5:
		flag = assessment.FlagRed
		notes = append(notes, fmt.Sprintf("Significant variance (%.2f%%). Verify interest rate and loan calculation methodology.", variancePct))
	case absPct <= 2:
		if flag != assessment.FlagYellow {
			flag = assessment.FlagGreen
		}
	}

	if in.HighestLoanRate != nil && *in.HighestLoanRate > 9.0 {
		if flag == assessment.FlagGreen {
			flag = assessment.FlagYellow
		}
		notes = append(notes, fmt.Sprintf("High-cost loan detected (%.2f%%). Verify refinancing efforts per Commission directives.", *in.HighestLoanRate))
	}

	recommendation := fmt.Sprintf("Approve normative interest of %s. Calculation verified.", cr(allowable))
	if flag != assessment.FlagGreen {
		recommendation = fmt.Sprintf("Approve normative interest of %s. %s", cr(allowable), strings.Join(notes, " "))
	}

	r := assessment.New("IFC-LTL-01", "Interest on Long-Term Loans", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(in.ClaimedInterest)
	r.AllowableValue = assessment.Amount(allowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(allowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 29, Tariff Regulations 2021; Normative loan methodology per MYT framework"
	r.CalculationSteps = []string{
		fmt.Sprintf("Closing normative loan = %s + %s - %s = %s",
			cr(in.OpeningNormativeLoan), cr(in.GFAAdditions), cr(in.Depreciation), cr(closing)),
		fmt.Sprintf("Average normative loan = %s", cr(average)),
		fmt.Sprintf("Allowable interest @ %.2f%% = %s", in.OpeningInterestRate, cr(allowable)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedInterest), variance, variancePct),
	}
	r.DependsOn = []string{"DEP-GEN-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	return r, nil
}

// IFCWorkingCapitalInputs: working capital is one month of approved
// O&M plus 1% of GFA for spares, financed at SBI EBLR plus two
// percent. The approved O&M must come from the normative heuristic,
// never the claim.
type IFCWorkingCapitalInputs struct {
	ApprovedOMExpenses float64 `json:"approved_om_expenses"`
	OpeningGFAExclLand float64 `json:"opening_gfa_excl_land"`
	SBIEBLRRate        float64 `json:"sbi_eblr_rate"`
	ClaimedWCInterest  float64 `json:"claimed_wc_interest"`
}

func (in IFCWorkingCapitalInputs) validate() error {
	if err := positive("approved_om_expenses", in.ApprovedOMExpenses); err != nil {
		return err
	}
	if err := nonNegative("opening_gfa_excl_land", in.OpeningGFAExclLand); err != nil {
		return err
	}
	if err := positive("sbi_eblr_rate", in.SBIEBLRRate); err != nil {
		return err
	}
	return nonNegative("claimed_wc_interest", in.ClaimedWCInterest)
}

// IFCWorkingCapital implements IFC-WC-01.
func IFCWorkingCapital(in IFCWorkingCapitalInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	oneMonthOM := in.ApprovedOMExpenses / 12
	spares := in.OpeningGFAExclLand * 0.01
	workingCapital := oneMonthOM + spares
	rate := in.SBIEBLRRate + 2.0
	allowable := workingCapital * rate / 100

	variance := in.ClaimedWCInterest - allowable
	variancePct := 0.0
	if allowable != 0 {
		variancePct = variance / allowable * 100
	}

	flag := ladder(variancePct, 5, 15)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = fmt.Sprintf("Approve normative WC interest of %s.", cr(allowable))
	case assessment.FlagYellow:
		recommendation = fmt.Sprintf("Approve normative WC interest of %s. Variance of %+.2f%% detected; verify the approved O&M source (not the MYT baseline).",
			cr(allowable), variancePct)
	default:
		recommendation = fmt.Sprintf("Approve normative WC interest of %s. Large variance (%+.2f%%) suggests non-O&M items (Master Trust servicing) were included. Working capital comprises only one month O&M and 1%% spares.",
			cr(allowable), variancePct)
	}

	r := assessment.New("IFC-WC-01", "Interest on Working Capital", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(in.ClaimedWCInterest)
	r.AllowableValue = assessment.Amount(allowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(allowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 32, Tariff Regulations 2021; Regulation 3(12) (Base rate = SBI EBLR)"
	r.CalculationSteps = []string{
		fmt.Sprintf("One month O&M = %s ÷ 12 = %s", cr(in.ApprovedOMExpenses), cr(oneMonthOM)),
		fmt.Sprintf("Spares @ 1%% of GFA %s = %s", cr(in.OpeningGFAExclLand), cr(spares)),
		fmt.Sprintf("Working capital = %s", cr(workingCapital)),
		fmt.Sprintf("Rate = SBI EBLR %.2f%% + 2.00%% = %.2f%%", in.SBIEBLRRate, rate),
		fmt.Sprintf("Allowable interest = %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
			cr(allowable), cr(in.ClaimedWCInterest), variance, variancePct),
	}
	r.DependsOn = []string{"OM-NORM-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	return r, nil
}

// IFCGPFInputs allocates company-wide GPF interest to a unit by its
// employee-strength ratio.
type IFCGPFInputs struct {
	OpeningGPFBalanceCompany float64 `json:"opening_gpf_balance_company"`
	ClosingGPFBalanceCompany float64 `json:"closing_gpf_balance_company"`
	GPFInterestRate          float64 `json:"gpf_interest_rate"`
	SBUAllocationRatio       float64 `json:"sbu_allocation_ratio"`
	ClaimedGPFInterestSBU    float64 `json:"claimed_gpf_interest_sbu"`
}

func (in IFCGPFInputs) validate() error {
	if err := nonNegative("opening_gpf_balance_company", in.OpeningGPFBalanceCompany); err != nil {
		return err
	}
	if err := nonNegative("closing_gpf_balance_company", in.ClosingGPFBalanceCompany); err != nil {
		return err
	}
	if err := positive("gpf_interest_rate", in.GPFInterestRate); err != nil {
		return err
	}
	if err := positive("sbu_allocation_ratio", in.SBUAllocationRatio); err != nil {
		return err
	}
	return nonNegative("claimed_gpf_interest_sbu", in.ClaimedGPFInterestSBU)
}

// IFCGPF implements IFC-GPF-01, a pass-through of actuals.
func IFCGPF(in IFCGPFInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	averageBalance := (in.OpeningGPFBalanceCompany + in.ClosingGPFBalanceCompany) / 2
	totalInterest := averageBalance * in.GPFInterestRate / 100
	allowable := totalInterest * in.SBUAllocationRatio / 100

	variance := in.ClaimedGPFInterestSBU - allowable
	variancePct := 0.0
	if allowable != 0 {
		variancePct = variance / allowable * 100
	}

	flag := ladder(variancePct, 2, 5)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = fmt.Sprintf("Approve GPF interest of %s.", cr(allowable))
	case assessment.FlagYellow:
		recommendation = fmt.Sprintf("Approve %s. Minor variance of %+.2f%%; verify the allocation ratio or GPF balances from audited accounts.", cr(allowable), variancePct)
	default:
		recommendation = fmt.Sprintf("Approve %s. Significant variance of %+.2f%%. Verify opening/closing GPF balances (Note 23) and the employee-strength allocation ratio.", cr(allowable), variancePct)
	}

	r := assessment.New("IFC-GPF-01", "Interest on GPF/Pension Funds", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(in.ClaimedGPFInterestSBU)
	r.AllowableValue = assessment.Amount(allowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(allowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Established practice for low-cost internal funding; GPF interest allowed as actuals per audited accounts; SBU allocation per employee strength ratio"
	r.CalculationSteps = []string{
		fmt.Sprintf("Average GPF balance (company) = (%s + %s) ÷ 2 = %s",
			cr(in.OpeningGPFBalanceCompany), cr(in.ClosingGPFBalanceCompany), cr(averageBalance)),
		fmt.Sprintf("Total GPF interest @ %.2f%% = %s", in.GPFInterestRate, cr(totalInterest)),
		fmt.Sprintf("SBU share @ %.2f%% = %s", in.SBUAllocationRatio, cr(allowable)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedGPFInterestSBU), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputPassThrough
	return r, nil
}

// IFCOtherInputs covers the residual charges bucket: a
// generation-based incentive claim (no scheme is in force, so it is
// always disallowed) and ordinary bank charges.
type IFCOtherInputs struct {
	ClaimedGBI         float64 `json:"claimed_gbi"`
	ClaimedBankCharges float64 `json:"claimed_bank_charges"`
}

func (in IFCOtherInputs) validate() error {
	if err := nonNegative("claimed_gbi", in.ClaimedGBI); err != nil {
		return err
	}
	return nonNegative("claimed_bank_charges", in.ClaimedBankCharges)
}

// IFCOther implements IFC-OTH-02.
func IFCOther(in IFCOtherInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	var allowableBank float64
	var bankFlag assessment.Flag
	var bankNote string
	switch {
	case in.ClaimedBankCharges <= 0.5:
		allowableBank = in.ClaimedBankCharges
		bankFlag = assessment.FlagGreen
	case in.ClaimedBankCharges <= 1.0:
		allowableBank = in.ClaimedBankCharges
		bankFlag = assessment.FlagYellow
		bankNote = fmt.Sprintf("Bank charges of %s flagged for staff review (elevated but may be justified).", cr(in.ClaimedBankCharges))
	default:
		bankFlag = assessment.FlagRed
		bankNote = fmt.Sprintf("Bank charges of %s appear excessive. Require detailed justification and supporting documents.", cr(in.ClaimedBankCharges))
	}

	totalAllowable := allowableBank
	totalClaimed := in.ClaimedGBI + in.ClaimedBankCharges

	overall := bankFlag
	if in.ClaimedGBI > 0 {
		overall = assessment.FlagRed
	}

	variance := totalClaimed - totalAllowable
	var variancePct float64
	switch {
	case totalAllowable != 0:
		variancePct = variance / totalAllowable * 100
	case totalClaimed > 0:
		variancePct = -100.0
	}

	var notes []string
	if in.ClaimedGBI > 0 {
		notes = append(notes, fmt.Sprintf("GBI of %s disallowed (no GBI scheme in force for FY 2023-24).", cr(in.ClaimedGBI)))
	}
	if allowableBank > 0 {
		notes = append(notes, fmt.Sprintf("Bank charges of %s approved as legitimate operational expense.", cr(in.ClaimedBankCharges)))
	}
	if bankNote != "" {
		notes = append(notes, bankNote)
	}

	recommendation := fmt.Sprintf("Approve %s. %s", cr(totalAllowable), strings.Join(notes, " "))
	if overall != assessment.FlagGreen {
		recommendation = fmt.Sprintf("Approve %s (out of %s claimed). %s", cr(totalAllowable), cr(totalClaimed), strings.Join(notes, " "))
	}

	r := assessment.New("IFC-OTH-02", "Other Interest & Charges (GBI + Bank Charges)", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(totalClaimed)
	r.AllowableValue = assessment.Amount(totalAllowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = overall
	r.RecommendedAmount = assessment.Amount(totalAllowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "No applicable GBI scheme for the year; Bank charges allowed as legitimate operational expenses subject to prudence check"
	r.CalculationSteps = []string{
		fmt.Sprintf("GBI claimed %s: disallowed (no scheme in force)", cr(in.ClaimedGBI)),
		fmt.Sprintf("Bank charges claimed %s: allowable %s", cr(in.ClaimedBankCharges), cr(allowableBank)),
		fmt.Sprintf("Total allowable %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
			cr(totalAllowable), cr(totalClaimed), variance, variancePct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputMixed
	r.Details = map[string]any{
		"allowable_gbi":          0.0,
		"allowable_bank_charges": round2(allowableBank),
	}
	return r, nil
}
