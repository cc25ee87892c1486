package heuristics

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// PowerPurchaseInputs validates the distribution unit's largest cost
// block: the two internal transfer costs plus external power purchase,
// each compared against its separately approved figure.
type PowerPurchaseInputs struct {
	CostOfGenerationSBUGClaimed    float64 `json:"cost_of_generation_sbug_claimed"`
	CostOfGenerationSBUGApproved   float64 `json:"cost_of_generation_sbug_approved"`
	CostOfTransmissionSBUTClaimed  float64 `json:"cost_of_transmission_sbut_claimed"`
	CostOfTransmissionSBUTApproved float64 `json:"cost_of_transmission_sbut_approved"`

	ExternalPPClaimed  float64 `json:"external_pp_claimed"`
	ExternalPPApproved float64 `json:"external_pp_approved"`

	CGSCost                float64 `json:"cgs_cost"`
	LTATotalCost           float64 `json:"lta_total_cost"`
	ExchangeCost           float64 `json:"exchange_cost"`
	InterstateTransmission float64 `json:"interstate_transmission"`
	BankingSwapDisallowed  float64 `json:"banking_swap_disallowed"`

	TotalEnergyPurchasedMU float64 `json:"total_energy_purchased_mu"`
	MYTApprovedTotalPP     float64 `json:"myt_approved_total_pp"`
	MYTApprovedAvgRate     float64 `json:"myt_approved_avg_rate"`
}

func (in PowerPurchaseInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"cost_of_generation_sbug_claimed", in.CostOfGenerationSBUGClaimed},
		{"cost_of_generation_sbug_approved", in.CostOfGenerationSBUGApproved},
		{"cost_of_transmission_sbut_claimed", in.CostOfTransmissionSBUTClaimed},
		{"cost_of_transmission_sbut_approved", in.CostOfTransmissionSBUTApproved},
		{"external_pp_claimed", in.ExternalPPClaimed},
		{"external_pp_approved", in.ExternalPPApproved},
		{"total_energy_purchased_mu", in.TotalEnergyPurchasedMU},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// PowerPurchase implements PP-COST-01.
func PowerPurchase(in PowerPurchaseInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	totalClaimed := in.CostOfGenerationSBUGClaimed + in.CostOfTransmissionSBUTClaimed + in.ExternalPPClaimed
	totalApproved := in.CostOfGenerationSBUGApproved + in.CostOfTransmissionSBUTApproved + in.ExternalPPApproved
	totalVariance := totalClaimed - totalApproved
	totalVariancePct := pctOf(totalVariance, totalApproved)

	extVariance := in.ExternalPPClaimed - in.ExternalPPApproved
	extVariancePct := pctOf(extVariance, in.ExternalPPApproved)
	mytDeviation := in.ExternalPPApproved - in.MYTApprovedTotalPP
	mytDeviationPct := pctOf(mytDeviation, in.MYTApprovedTotalPP)

	flag := ladder(totalVariancePct, 2, 5)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = fmt.Sprintf("Approve total power cost at %s. Variance within normal range.", cr(totalApproved))
	case assessment.FlagYellow:
		recommendation = fmt.Sprintf("Approve %s. Disallowance of %s mainly from banking/swap (%s) and SBU transfer cost adjustments.",
			cr(totalApproved), cr(totalVariance), cr(in.BankingSwapDisallowed))
	default:
		recommendation = fmt.Sprintf("Significant disallowance of %s. Review external PP components, transfer cost reconciliation and banking/swap transactions.",
			cr(totalVariance))
	}

	r := assessment.New("PP-COST-01", "Power Purchase Cost Validation", "Power Purchase Cost")
	r.ClaimedValue = assessment.Amount(round2(totalClaimed))
	r.AllowableValue = assessment.Amount(round2(totalApproved))
	r.VarianceAbsolute = assessment.Amount(round2(totalVariance))
	r.VariancePercentage = assessment.Amount(round2(totalVariancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(totalApproved))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulations 77-78, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("SBU-G transfer: claimed %s vs approved %s", cr(in.CostOfGenerationSBUGClaimed), cr(in.CostOfGenerationSBUGApproved)),
		fmt.Sprintf("SBU-T transfer: claimed %s vs approved %s", cr(in.CostOfTransmissionSBUTClaimed), cr(in.CostOfTransmissionSBUTApproved)),
		fmt.Sprintf("External PP: claimed %s vs approved %s (%+.2f%%)", cr(in.ExternalPPClaimed), cr(in.ExternalPPApproved), extVariancePct),
		fmt.Sprintf("Sub-items: CGS %s, LTA %s, exchanges %s, interstate transmission %s, banking/swap disallowed %s",
			cr(in.CGSCost), cr(in.LTATotalCost), cr(in.ExchangeCost), cr(in.InterstateTransmission), cr(in.BankingSwapDisallowed)),
		fmt.Sprintf("Total claimed %s | approved %s | variance %+.2f Cr (%+.2f%%)",
			cr(totalClaimed), cr(totalApproved), totalVariance, totalVariancePct),
		fmt.Sprintf("Deviation from MYT PP %s: %+.2f Cr (%+.2f%%) on %.2f MU purchased",
			cr(in.MYTApprovedTotalPP), mytDeviation, mytDeviationPct, in.TotalEnergyPurchasedMU),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"external_variance_cr": round2(extVariance),
		"myt_deviation_cr":     round2(mytDeviation),
		"myt_deviation_pct":    round2(mytDeviationPct),
	}
	return r, nil
}

// DistOMNormInputs drives the five-parameter distribution O&M norm:
// consumers, distribution transformers, HT and LT line length, and
// energy sales, plus R&M at a fixed rate on net opening GFA. Norms are
// in Rs. lakh per unit.
type DistOMNormInputs struct {
	NumConsumers  int     `json:"num_consumers"`
	NumDTRs       int     `json:"num_dtrs"`
	HTLineKm      float64 `json:"ht_line_km"`
	LTLineKm      float64 `json:"lt_line_km"`
	EnergySalesMU float64 `json:"energy_sales_mu"`

	NormPer1000Consumers float64 `json:"norm_per_1000_consumers"`
	NormPerDTR           float64 `json:"norm_per_dtr"`
	NormPerHTKm          float64 `json:"norm_per_ht_km"`
	NormPerLTKm          float64 `json:"norm_per_lt_km"`
	NormPerMU            float64 `json:"norm_per_mu"`

	GFASBUDOpening  float64 `json:"gfa_sbu_d_opening"`
	GFADerecognized float64 `json:"gfa_derecognized"`
	GFALand         float64 `json:"gfa_land"`
	RMRate          float64 `json:"rm_rate"`

	ClaimedEmployeeAG float64 `json:"claimed_employee_ag"`
	ClaimedRM         float64 `json:"claimed_rm"`
	ClaimedTotalOM    float64 `json:"claimed_total_om"`
	MYTApprovedOM     float64 `json:"myt_approved_om"`
}

func (in DistOMNormInputs) validate() error {
	if in.NumConsumers < 0 || in.NumDTRs < 0 {
		return eris.New("heuristics: consumer and DTR counts must not be negative")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"ht_line_km", in.HTLineKm},
		{"lt_line_km", in.LTLineKm},
		{"energy_sales_mu", in.EnergySalesMU},
		{"gfa_sbu_d_opening", in.GFASBUDOpening},
		{"claimed_total_om", in.ClaimedTotalOM},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return positive("rm_rate", in.RMRate)
}

// DistOMNorm implements OM-DIST-NORM-01.
func DistOMNorm(in DistOMNormInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	costConsumers := (in.NormPer1000Consumers * float64(in.NumConsumers) / 1000) / 100
	costDTRs := (in.NormPerDTR * float64(in.NumDTRs)) / 100
	costHT := (in.NormPerHTKm * in.HTLineKm) / 100
	costLT := (in.NormPerLTKm * in.LTLineKm) / 100
	costEnergy := in.NormPerMU * in.EnergySalesMU / 10
	totalEmployeeAG := costConsumers + costDTRs + costHT + costLT + costEnergy

	netGFA := in.GFASBUDOpening - in.GFADerecognized - in.GFALand
	rmAllowable := netGFA * in.RMRate
	totalNormative := totalEmployeeAG + rmAllowable

	totalVariance := in.ClaimedTotalOM - totalNormative
	totalVariancePct := pctOf(totalVariance, totalNormative)

	var flag assessment.Flag
	var recommendation string
	switch {
	case math.Abs(totalVariancePct) <= 2:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Approve normative O&M of %s; claim within tolerance.", cr(totalNormative))
	case totalVariance > 0:
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Cap O&M to the normative %s. Claimed %s exceeds norms by %s.",
			cr(totalNormative), cr(in.ClaimedTotalOM), cr(totalVariance))
	default:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Approve normative O&M of %s; claim is below the norm.", cr(totalNormative))
	}

	r := assessment.New("OM-DIST-NORM-01", "Normative O&M Expenses - Distribution", "O&M Expenses (Distribution)")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedTotalOM))
	r.AllowableValue = assessment.Amount(round2(totalNormative))
	r.VarianceAbsolute = assessment.Amount(round2(totalVariance))
	r.VariancePercentage = assessment.Amount(round2(totalVariancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(totalNormative))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 80 + Annexure-7, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Employee+A&G: consumers %s, DTRs %s, HT lines %s, LT lines %s, energy sales %s = %s",
			cr(costConsumers), cr(costDTRs), cr(costHT), cr(costLT), cr(costEnergy), cr(totalEmployeeAG)),
		fmt.Sprintf("Claimed employee+A&G %s | variance %+.2f Cr", cr(in.ClaimedEmployeeAG), in.ClaimedEmployeeAG-totalEmployeeAG),
		fmt.Sprintf("Net GFA for R&M = %s - %s - %s = %s", cr(in.GFASBUDOpening), cr(in.GFADerecognized), cr(in.GFALand), cr(netGFA)),
		fmt.Sprintf("R&M @ %.1f%% = %s (claimed %s)", in.RMRate*100, cr(rmAllowable), cr(in.ClaimedRM)),
		fmt.Sprintf("Total normative %s | claimed %s | variance %+.2f Cr (%+.2f%%)",
			cr(totalNormative), cr(in.ClaimedTotalOM), totalVariance, totalVariancePct),
		fmt.Sprintf("MYT approved: %s", cr(in.MYTApprovedOM)),
	}
	r.DependsOn = []string{"OM-INFL-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"employee_ag_normative": round2(totalEmployeeAG),
		"rm_normative":          round2(rmAllowable),
		"net_gfa_for_rm":        round2(netGFA),
	}
	return r, nil
}

// IFCSecurityDepositInputs: only the interest actually disbursed to
// consumers is allowed at truing-up, not the provision in accounts.
type IFCSecurityDepositInputs struct {
	MYTApprovedSDInterest float64 `json:"myt_approved_sd_interest"`
	ActualDisbursement    float64 `json:"actual_disbursement"`
	ProvisionInAccounts   float64 `json:"provision_in_accounts"`
	AvgSecurityDeposit    float64 `json:"avg_security_deposit"`
	InterestRateApplied   float64 `json:"interest_rate_applied"`
	ClaimedSDInterest     float64 `json:"claimed_sd_interest"`
}

func (in IFCSecurityDepositInputs) validate() error {
	if err := nonNegative("actual_disbursement", in.ActualDisbursement); err != nil {
		return err
	}
	return nonNegative("claimed_sd_interest", in.ClaimedSDInterest)
}

// IFCSecurityDeposit implements IFC-SD-01.
func IFCSecurityDeposit(in IFCSecurityDepositInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	allowable := in.ActualDisbursement
	variance := in.ClaimedSDInterest - allowable
	variancePct := pctOf(variance, allowable)

	flag := assessment.FlagGreen
	if math.Abs(variancePct) > 2 {
		flag = assessment.FlagYellow
	}

	expectedInterest := in.AvgSecurityDeposit * in.InterestRateApplied / 100

	r := assessment.New("IFC-SD-01", "Interest on Security Deposits", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedSDInterest))
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = fmt.Sprintf("Approve %s (actual disbursement) as per Regulation 29(8).", cr(allowable))
	r.RegulatoryBasis = "Regulation 29(8), Tariff Regulations 2021"
	r.CalculationSteps = []string{
		"Rule: only actual disbursement to consumers is allowed at truing-up",
		fmt.Sprintf("Average security deposit %s @ %.2f%% → notional interest %s",
			cr(in.AvgSecurityDeposit), in.InterestRateApplied, cr(expectedInterest)),
		fmt.Sprintf("Provision in accounts %s vs actual disbursement %s (difference %s carries to next truing-up)",
			cr(in.ProvisionInAccounts), cr(in.ActualDisbursement), cr(in.ProvisionInAccounts-in.ActualDisbursement)),
		fmt.Sprintf("MYT approved %s | claimed %s | approved %s", cr(in.MYTApprovedSDInterest), cr(in.ClaimedSDInterest), cr(allowable)),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	return r, nil
}

// IFCCarryingCostInputs: the revenue-gap carrying cost, after netting
// off GPF balances and excess security deposits whose interest is
// already allowed elsewhere.
type IFCCarryingCostInputs struct {
	RevenueGapAsOn0104      float64 `json:"revenue_gap_as_on_01_04"`
	AvgGPFBalance           float64 `json:"avg_gpf_balance"`
	ExcessSecurityDeposit   float64 `json:"excess_security_deposit"`
	AvgInterestRate         float64 `json:"avg_interest_rate"`
	ClaimedCarryingCost     float64 `json:"claimed_carrying_cost"`
	MYTApprovedCarryingCost float64 `json:"myt_approved_carrying_cost"`
}

func (in IFCCarryingCostInputs) validate() error {
	if err := nonNegative("revenue_gap_as_on_01_04", in.RevenueGapAsOn0104); err != nil {
		return err
	}
	if err := positive("avg_interest_rate", in.AvgInterestRate); err != nil {
		return err
	}
	return nonNegative("claimed_carrying_cost", in.ClaimedCarryingCost)
}

// IFCCarryingCost implements IFC-CC-01.
func IFCCarryingCost(in IFCCarryingCostInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	netGap := in.RevenueGapAsOn0104 - in.AvgGPFBalance - in.ExcessSecurityDeposit
	if netGap < 0 {
		netGap = 0
	}
	allowable := netGap * in.AvgInterestRate / 100

	variance := in.ClaimedCarryingCost - allowable
	variancePct := pctOf(variance, allowable)

	var flag assessment.Flag
	switch {
	case math.Abs(variancePct) <= 2:
		flag = assessment.FlagGreen
	case variance > 0:
		flag = assessment.FlagYellow
	default:
		flag = assessment.FlagGreen
	}

	r := assessment.New("IFC-CC-01", "Carrying Cost of Revenue Gap", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedCarryingCost))
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = fmt.Sprintf("Approve carrying cost at %s. Disallow %s due to GPF/SD deduction methodology.",
		cr(allowable), cr(variance))
	r.RegulatoryBasis = "Regulation 29(9), Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Net gap = %s - GPF %s - excess SD %s = %s",
			cr(in.RevenueGapAsOn0104), cr(in.AvgGPFBalance), cr(in.ExcessSecurityDeposit), cr(netGap)),
		fmt.Sprintf("Carrying cost = %s × %.2f%% = %s", cr(netGap), in.AvgInterestRate, cr(allowable)),
		fmt.Sprintf("Claimed %s | MYT approved %s | variance %+.2f Cr (%+.2f%%)",
			cr(in.ClaimedCarryingCost), cr(in.MYTApprovedCarryingCost), variance, variancePct),
	}
	r.DependsOn = []string{"IFC-WC-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"gross_gap":     round2(in.RevenueGapAsOn0104),
		"gpf_deduction": round2(in.AvgGPFBalance),
		"sd_deduction":  round2(in.ExcessSecurityDeposit),
		"net_gap":       round2(netGap),
	}
	return r, nil
}

// IFCOtherDistInputs: residual interest charges for distribution,
// both allowed as claimed after reconciliation.
type IFCOtherDistInputs struct {
	OtherBankCharges        float64 `json:"other_bank_charges"`
	InterestOnPowerPurchase float64 `json:"interest_on_power_purchase"`
	ClaimedOtherInterest    float64 `json:"claimed_other_interest"`
}

func (in IFCOtherDistInputs) validate() error {
	if err := nonNegative("other_bank_charges", in.OtherBankCharges); err != nil {
		return err
	}
	if err := nonNegative("interest_on_power_purchase", in.InterestOnPowerPurchase); err != nil {
		return err
	}
	return nonNegative("claimed_other_interest", in.ClaimedOtherInterest)
}

// IFCOtherDist implements IFC-OTH-D-01.
func IFCOtherDist(in IFCOtherDistInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	calculated := in.OtherBankCharges + in.InterestOnPowerPurchase
	variance := in.ClaimedOtherInterest - calculated

	flag := assessment.FlagGreen
	if math.Abs(variance) >= 0.5 {
		flag = assessment.FlagYellow
	}

	r := assessment.New("IFC-OTH-D-01", "Other Interest Charges - Distribution", "Interest & Finance Charges")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedOtherInterest))
	r.AllowableValue = assessment.Amount(round2(calculated))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(0)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(calculated))
	r.RecommendationText = fmt.Sprintf("Approve %s as claimed.", cr(calculated))
	r.RegulatoryBasis = "Para 5.191, KSERC Order"
	r.CalculationSteps = []string{
		fmt.Sprintf("Bank charges %s + interest on power purchase (CERC provisional vs final tariff) %s = %s",
			cr(in.OtherBankCharges), cr(in.InterestOnPowerPurchase), cr(calculated)),
		fmt.Sprintf("Claimed %s | variance %+.2f Cr", cr(in.ClaimedOtherInterest), variance),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	return r, nil
}

// DistLossInputs assesses distribution network loss against the MYT
// trajectory. Informational: the result feeds the gain-sharing
// heuristic rather than the ARR roll-up.
type DistLossInputs struct {
	EnergyInputToDistMU     float64 `json:"energy_input_to_dist_mu"`
	EnergyOutputMU          float64 `json:"energy_output_mu"`
	MYTTargetDistLossPct    float64 `json:"myt_target_dist_loss_pct"`
	MYTTargetATCLossPct     float64 `json:"myt_target_atc_loss_pct"`
	CollectionEfficiencyPct float64 `json:"collection_efficiency_pct"`
	ClaimedDistLossPct      float64 `json:"claimed_dist_loss_pct"`
}

func (in DistLossInputs) validate() error {
	if err := positive("energy_input_to_dist_mu", in.EnergyInputToDistMU); err != nil {
		return err
	}
	if err := nonNegative("energy_output_mu", in.EnergyOutputMU); err != nil {
		return err
	}
	if in.EnergyOutputMU > in.EnergyInputToDistMU {
		return eris.New("heuristics: energy_output_mu must not exceed energy_input_to_dist_mu")
	}
	return nil
}

// DistLoss implements DIST-LOSS-01.
func DistLoss(in DistLossInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	lossMU := in.EnergyInputToDistMU - in.EnergyOutputMU
	actualPct := lossMU / in.EnergyInputToDistMU * 100
	variancePP := actualPct - in.MYTTargetDistLossPct
	atcPct := (1 - (in.EnergyOutputMU/in.EnergyInputToDistMU)*(in.CollectionEfficiencyPct/100)) * 100

	var flag assessment.Flag
	var recommendation string
	switch {
	case variancePP <= 0:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Distribution loss %.2f%% is better than the %.2f%% target by %.2fpp. Eligible for gain sharing under Regulation 73.",
			actualPct, in.MYTTargetDistLossPct, math.Abs(variancePP))
	case variancePP <= 0.5:
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Distribution loss %.2f%% marginally exceeds the target by %.2fpp. Review loss-reduction works before penal action.",
			actualPct, variancePP)
	default:
		flag = assessment.FlagRed
		recommendation = fmt.Sprintf("Distribution loss %.2f%% exceeds the target by %.2fpp. Gain sharing not applicable; consider penalty provisions.",
			actualPct, variancePP)
	}

	r := assessment.New("DIST-LOSS-01", "Distribution Loss Assessment", "Distribution Loss")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedDistLossPct))
	r.AllowableValue = assessment.Amount(round2(actualPct))
	r.VarianceAbsolute = assessment.Amount(round2(variancePP))
	r.Flag = flag
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 73, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Distribution loss = %.2f - %.2f = %.2f MU", in.EnergyInputToDistMU, in.EnergyOutputMU, lossMU),
		fmt.Sprintf("Actual loss %.2f%% vs target %.2f%% = %+.2fpp", actualPct, in.MYTTargetDistLossPct, variancePP),
		fmt.Sprintf("Collection efficiency %.2f%% → AT&C loss %.2f%% (target %.2f%%)",
			in.CollectionEfficiencyPct, atcPct, in.MYTTargetATCLossPct),
	}
	r.IsPrimary = false
	r.OutputType = assessment.OutputAssessment
	r.Details = map[string]any{
		"loss_mu":      round2(lossMU),
		"actual_pct":   round2(actualPct),
		"variance_pp":  round2(variancePP),
		"atc_loss_pct": round2(atcPct),
	}
	return r, nil
}

// TDShareInputs computes the would-be gain share for beating the T&D
// loss target. The assessed loss figure governs, not the utility's own
// claim.
type TDShareInputs struct {
	ApprovedTDLossPct    float64 `json:"approved_td_loss_pct"`
	ActualTDLossKSEBLPct float64 `json:"actual_td_loss_ksebl_pct"`
	ActualTDLossKSERCPct float64 `json:"actual_td_loss_kserc_pct"`
	EnergySalesMU        float64 `json:"energy_sales_mu"`
	AvgPPCostPerUnit     float64 `json:"avg_pp_cost_per_unit"`
	ClaimedGainSharing   float64 `json:"claimed_gain_sharing"`
	UnbridgedRevenueGap  float64 `json:"unbridged_revenue_gap"`
	UtilityShareRatio    float64 `json:"utility_share_ratio"`
}

func (in TDShareInputs) validate() error {
	if err := positive("energy_sales_mu", in.EnergySalesMU); err != nil {
		return err
	}
	return nonNegative("claimed_gain_sharing", in.ClaimedGainSharing)
}

// TDShare implements TD-SHARE-01. The gain is computed in full for the
// record trace, then disallowed: the unbridged revenue gap and the
// year-on-year loss increase rule out a payout this year.
func TDShare(in TDShareInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	shareRatio := in.UtilityShareRatio
	if shareRatio == 0 {
		shareRatio = 2.0 / 3.0
	}

	actualLoss := in.ActualTDLossKSERCPct
	reductionPP := in.ApprovedTDLossPct - actualLoss

	steps := []string{
		fmt.Sprintf("Approved T&D loss target %.2f%% | utility claimed %.2f%% | assessed %.2f%%",
			in.ApprovedTDLossPct, in.ActualTDLossKSEBLPct, actualLoss),
		fmt.Sprintf("Loss reduction achieved: %+.2fpp", reductionPP),
	}

	var energySaved, monetaryGain, utilityShare float64
	if reductionPP > 0 {
		energyAtTarget := in.EnergySalesMU / (1 - in.ApprovedTDLossPct/100)
		energyAtActual := in.EnergySalesMU / (1 - actualLoss/100)
		energySaved = energyAtTarget - energyAtActual
		monetaryGain = energySaved * in.AvgPPCostPerUnit / 100
		utilityShare = monetaryGain * shareRatio
		steps = append(steps,
			fmt.Sprintf("Energy at target loss %.2f MU vs at actual loss %.2f MU → saved %.2f MU",
				energyAtTarget, energyAtActual, energySaved),
			fmt.Sprintf("Monetary gain = %.2f MU × ₹%.2f/unit ÷ 100 = %s; utility share (2/3) = %s",
				energySaved, in.AvgPPCostPerUnit, cr(monetaryGain), cr(utilityShare)))
	} else {
		steps = append(steps, "T&D loss exceeds target - no gain sharing applicable")
	}

	steps = append(steps,
		fmt.Sprintf("DISALLOWED: unbridged revenue gap of %s and year-on-year increase in assessed T&D loss", cr(in.UnbridgedRevenueGap)),
		"No penalty imposed either, considering force majeure demand growth")

	r := assessment.New("TD-SHARE-01", "T&D Loss Gain Sharing", "T&D Loss Gain Sharing")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedGainSharing))
	r.AllowableValue = assessment.Amount(0)
	r.VarianceAbsolute = assessment.Amount(round2(in.ClaimedGainSharing))
	r.VariancePercentage = assessment.Amount(100.0)
	r.Flag = assessment.FlagRed
	r.RecommendedAmount = assessment.Amount(0)
	r.RecommendationText = fmt.Sprintf("DISALLOW gain sharing of %s. While assessed T&D loss (%.2f%%) is below target (%.2f%%), the unbridged revenue gap of %s and the year-on-year increase in T&D loss justify disallowance. No penalty imposed either (force majeure).",
		cr(in.ClaimedGainSharing), actualLoss, in.ApprovedTDLossPct, cr(in.UnbridgedRevenueGap))
	r.RegulatoryBasis = "Regulations 14(1) & 73(3), Tariff Regulations 2021"
	r.CalculationSteps = steps
	r.DependsOn = []string{"DIST-LOSS-01", "TRANS-LOSS-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"loss_reduction_pp": round2(reductionPP),
		"energy_saved_mu":   round2(energySaved),
		"monetary_gain_cr":  round2(monetaryGain),
		"utility_share_cr":  round2(utilityShare),
	}
	return r, nil
}
