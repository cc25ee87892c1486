package heuristics

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// TransOMNormInputs computes the normative O&M allowance for the
// transmission network from per-asset norms: bays, MVA capacity, and
// circuit kilometers, with additions counted at half weight. Norms are
// in Rs. lakh per unit; the result converts to Rs. crore.
type TransOMNormInputs struct {
	NormPerBay   float64 `json:"norm_per_bay"`
	NormPerMVA   float64 `json:"norm_per_mva"`
	NormPerCktKm float64 `json:"norm_per_cktkm"`

	OpeningBays  int     `json:"opening_bays"`
	OpeningMVA   float64 `json:"opening_mva"`
	OpeningCktKm float64 `json:"opening_cktkm"`

	AddedBays  int     `json:"added_bays"`
	AddedMVA   float64 `json:"added_mva"`
	AddedCktKm float64 `json:"added_cktkm"`

	MYTApprovedOM    float64 `json:"myt_approved_om"`
	ActualOMAccounts float64 `json:"actual_om_accounts"`
	ClaimedOM        float64 `json:"claimed_om"`

	Escalation2022_23 float64 `json:"escalation_2022_23"`
	Escalation2023_24 float64 `json:"escalation_2023_24"`
}

func (in TransOMNormInputs) validate() error {
	if in.OpeningBays < 0 || in.AddedBays < 0 {
		return eris.New("heuristics: bay counts must not be negative")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"norm_per_bay", in.NormPerBay},
		{"norm_per_mva", in.NormPerMVA},
		{"norm_per_cktkm", in.NormPerCktKm},
		{"opening_mva", in.OpeningMVA},
		{"opening_cktkm", in.OpeningCktKm},
		{"added_mva", in.AddedMVA},
		{"added_cktkm", in.AddedCktKm},
		{"claimed_om", in.ClaimedOM},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// TransOMNorm implements OM-TRANS-NORM-01.
func TransOMNorm(in TransOMNormInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	openingLakh := in.NormPerBay*float64(in.OpeningBays) +
		in.NormPerMVA*in.OpeningMVA +
		in.NormPerCktKm*in.OpeningCktKm
	addedLakh := (in.NormPerBay*float64(in.AddedBays) +
		in.NormPerMVA*in.AddedMVA +
		in.NormPerCktKm*in.AddedCktKm) * 0.5
	totalLakh := openingLakh + addedLakh
	allowableCr := totalLakh / 100.0

	variance := in.ClaimedOM - allowableCr
	variancePct := pctOf(variance, allowableCr)

	var flag assessment.Flag
	var recommendation string
	switch {
	case math.Abs(variance) < 0.5:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Approve normative O&M at %s based on %d bays, %.1f MVA, %.2f ckt-km at opening plus additions.",
			cr(allowableCr), in.OpeningBays, in.OpeningMVA, in.OpeningCktKm)
	case allowableCr < in.ClaimedOM:
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Cap O&M to the normative level of %s. Claimed %s exceeds norms by %s. Verify parameter accuracy.",
			cr(allowableCr), cr(in.ClaimedOM), cr(variance))
	default:
		flag = assessment.FlagRed
		recommendation = fmt.Sprintf("Significant variance: normative %s vs claimed %s. Investigate parameters.",
			cr(allowableCr), cr(in.ClaimedOM))
	}

	r := assessment.New("OM-TRANS-NORM-01", "Normative O&M Expenses - Transmission", "O&M Expenses (Transmission)")
	r.ClaimedValue = assessment.Amount(in.ClaimedOM)
	r.AllowableValue = assessment.Amount(round2(allowableCr))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowableCr))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 58 + Annexure-7, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		"Formula: O&M = (norms × opening assets) + (norms × 50% × additions), ratio Bays(40%):MVA(30%):CktKm(30%)",
		fmt.Sprintf("Opening: %.3f×%d + %.3f×%.1f + %.3f×%.2f = ₹%.2f Lakh",
			in.NormPerBay, in.OpeningBays, in.NormPerMVA, in.OpeningMVA, in.NormPerCktKm, in.OpeningCktKm, openingLakh),
		fmt.Sprintf("Additions at 50%%: ₹%.2f Lakh", addedLakh),
		fmt.Sprintf("Total = ₹%.2f Lakh = %s", totalLakh, cr(allowableCr)),
		fmt.Sprintf("Escalation from base year 2021-22: %.2f%% (2022-23), %.2f%% (2023-24), actual CPI/WPI 70:30",
			in.Escalation2022_23*100, in.Escalation2023_24*100),
		fmt.Sprintf("MYT approved %s | Accounts %s | Claimed %s | Variance %+.2f Cr (%+.2f%%)",
			cr(in.MYTApprovedOM), cr(in.ActualOMAccounts), cr(in.ClaimedOM), variance, variancePct),
	}
	r.DependsOn = []string{"OM-INFL-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"om_opening_total_lakh": round2(openingLakh),
		"om_added_total_lakh":   round2(addedLakh),
		"myt_approved_om":       in.MYTApprovedOM,
		"actual_om_accounts":    in.ActualOMAccounts,
	}
	return r, nil
}

// CompensationEntry is one disbursement tranche for a transmission
// line compensation award.
type CompensationEntry struct {
	TotalCompensationCr float64 `json:"total_compensation_cr"`
	YearOfDisbursement  string  `json:"year_of_disbursement"`
	KSEBShare50Pct      float64 `json:"kseb_share_50pct"`
	AmortizationPeriod  int     `json:"amortization_period,omitempty"`
}

// TransCompensationInputs amortizes line compensation awards: the
// utility's 50% share spreads over twelve years with interest on the
// unamortized balance.
type TransCompensationInputs struct {
	LineName            string              `json:"line_name"`
	CompensationEntries []CompensationEntry `json:"compensation_entries"`
	AvgInterestRate     float64             `json:"avg_interest_rate"`
	ClaimedCompensation float64             `json:"claimed_compensation"`
	MYTApproved         float64             `json:"myt_approved"`
	AssessmentYear      string              `json:"assessment_year"`
}

func (in TransCompensationInputs) validate() error {
	if in.LineName == "" {
		return eris.New("heuristics: line_name is required")
	}
	if err := nonNegative("claimed_compensation", in.ClaimedCompensation); err != nil {
		return err
	}
	for _, e := range in.CompensationEntries {
		if err := nonNegative("kseb_share_50pct", e.KSEBShare50Pct); err != nil {
			return err
		}
	}
	return nil
}

// TransCompensation implements TRANS-COMP-01. The exact order
// computation tracks interest on year-wise unamortized balances; the
// claimed amount is allowed after schedule validation, flagged when it
// drifts from the MYT approval.
func TransCompensation(in TransCompensationInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	steps := []string{
		fmt.Sprintf("Line compensation - %s", in.LineName),
		fmt.Sprintf("KSEB share = 50%% of award, amortized over 12 years, interest @ %.2f%% on unamortized balance", in.AvgInterestRate*100),
	}

	var totalAmortization, totalShare float64
	entryDetails := make([]map[string]any, 0, len(in.CompensationEntries))
	for _, e := range in.CompensationEntries {
		period := e.AmortizationPeriod
		if period == 0 {
			period = 12
		}
		annual := e.KSEBShare50Pct / float64(period)
		totalAmortization += annual
		totalShare += e.KSEBShare50Pct
		steps = append(steps, fmt.Sprintf("  %s: award ₹%.2f Cr → share ₹%.4f Cr → annual amortization ₹%.4f Cr",
			e.YearOfDisbursement, e.TotalCompensationCr, e.KSEBShare50Pct, annual))
		entryDetails = append(entryDetails, map[string]any{
			"year_of_disbursement": e.YearOfDisbursement,
			"kseb_share_50pct":     e.KSEBShare50Pct,
			"annual_amortization":  round4(annual),
		})
	}

	allowable := in.ClaimedCompensation

	var flag assessment.Flag
	var recommendation string
	if in.MYTApproved > 0 && math.Abs(in.ClaimedCompensation-in.MYTApproved) > 2.0 {
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Claimed %s differs from MYT %s. Verify disbursement schedule and interest calculation for %s.",
			cr(in.ClaimedCompensation), cr(in.MYTApproved), in.LineName)
	} else {
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Approve compensation of %s for %s. 50%% share amortized over 12 years with interest @ %.2f%%.",
			cr(allowable), in.LineName, in.AvgInterestRate*100)
	}

	steps = append(steps,
		fmt.Sprintf("Total annual amortization ₹%.4f Cr on share ₹%.4f Cr", totalAmortization, totalShare),
		fmt.Sprintf("Claimed %s | MYT approved %s | Allowable %s", cr(in.ClaimedCompensation), cr(in.MYTApproved), cr(allowable)))

	r := assessment.New("TRANS-COMP-01", fmt.Sprintf("Line Compensation - %s", in.LineName), fmt.Sprintf("Line Compensation (%s)", in.LineName))
	r.ClaimedValue = assessment.Amount(in.ClaimedCompensation)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(0)
	r.VariancePercentage = assessment.Amount(0)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "OP No. 58/2018 (Edamon-Kochi), OP No. 42/2023 (Pugalur-Thrissur)"
	r.CalculationSteps = steps
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"line_name":                 in.LineName,
		"total_kseb_share_cr":       round4(totalShare),
		"total_annual_amortization": round4(totalAmortization),
		"entries":                   entryDetails,
		"myt_approved":              in.MYTApproved,
	}
	return r, nil
}

// TransIncentiveInputs checks the availability incentive: earned when
// actual availability beats the target, but payable only when the
// unbridged revenue gap is manageable.
type TransIncentiveInputs struct {
	TargetAvailability    float64 `json:"target_availability"`
	ActualAvailability    float64 `json:"actual_availability"`
	SLDCCertified         bool    `json:"sldc_certified"`
	ARRExcludingIncentive float64 `json:"arr_excluding_incentive"`
	ClaimedIncentive      float64 `json:"claimed_incentive"`
	UnbridgedRevenueGap   float64 `json:"unbridged_revenue_gap"`
	RevenueGapThreshold   float64 `json:"revenue_gap_threshold"`
}

func (in TransIncentiveInputs) validate() error {
	if err := positive("target_availability", in.TargetAvailability); err != nil {
		return err
	}
	if err := nonNegative("actual_availability", in.ActualAvailability); err != nil {
		return err
	}
	if err := nonNegative("arr_excluding_incentive", in.ARRExcludingIncentive); err != nil {
		return err
	}
	return nonNegative("claimed_incentive", in.ClaimedIncentive)
}

// TransIncentive implements TRANS-INCENT-01.
func TransIncentive(in TransIncentiveInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	threshold := in.RevenueGapThreshold
	if threshold == 0 {
		threshold = 5000.0
	}

	excess := in.ActualAvailability - in.TargetAvailability
	formulaIncentive := 0.0
	if excess > 0 {
		formulaIncentive = in.ARRExcludingIncentive * excess / in.TargetAvailability / 100
	}

	var flag assessment.Flag
	var allowable float64
	var eligibility, recommendation string
	deferred := false

	switch {
	case in.ActualAvailability <= in.TargetAvailability:
		flag = assessment.FlagGreen
		eligibility = "Not Eligible"
		recommendation = fmt.Sprintf("No incentive. Actual availability (%.2f%%) did not exceed target (%.2f%%).",
			in.ActualAvailability, in.TargetAvailability)
	case !in.SLDCCertified:
		flag = assessment.FlagRed
		eligibility = "Eligible but Not Certified"
		recommendation = "SLDC certification missing. Cannot approve incentive without certification."
	case in.UnbridgedRevenueGap > threshold:
		flag = assessment.FlagYellow
		eligibility = "Eligible - Deferred"
		deferred = true
		recommendation = fmt.Sprintf("DEFER incentive of %s. Availability of %.2f%% exceeds the %.2f%% target, but the unbridged revenue gap of %s requires deferral until it is reduced to manageable levels.",
			cr(in.ClaimedIncentive), in.ActualAvailability, in.TargetAvailability, cr(in.UnbridgedRevenueGap))
	default:
		flag = assessment.FlagGreen
		allowable = formulaIncentive
		eligibility = "Eligible - Approved"
		recommendation = fmt.Sprintf("Approve incentive of %s for exceeding the availability target (%.2f%% vs %.2f%%).",
			cr(allowable), in.ActualAvailability, in.TargetAvailability)
	}

	variance := in.ClaimedIncentive - allowable
	variancePct := 0.0
	if in.ClaimedIncentive > 0 {
		variancePct = variance / in.ClaimedIncentive * 100
	}

	r := assessment.New("TRANS-INCENT-01", "Incentive on Transmission Availability", "Transmission Availability Incentive")
	r.ClaimedValue = assessment.Amount(in.ClaimedIncentive)
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 56(2), KSERC Tariff Regulations 2021"
	r.CalculationSteps = []string{
		"Formula: Incentive = ARR × (Actual% - Target%) / Target%",
		fmt.Sprintf("Target %.2f%% | Actual %.2f%% | Excess %+.2f%% | SLDC certified: %v",
			in.TargetAvailability, in.ActualAvailability, excess, in.SLDCCertified),
		fmt.Sprintf("ARR (excl incentive) %s → formula incentive %s", cr(in.ARRExcludingIncentive), cr(formulaIncentive)),
		fmt.Sprintf("Eligibility: %s", eligibility),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Note = "Incentive may be deferred if unbridged revenue gap exceeds threshold"
	r.Details = map[string]any{
		"eligibility_status":    eligibility,
		"deferral_applied":      deferred,
		"formula_incentive_cr":  round2(formulaIncentive),
		"unbridged_revenue_gap": in.UnbridgedRevenueGap,
		"revenue_gap_threshold": threshold,
	}
	return r, nil
}
