package heuristics

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// TransLossInputs assesses intra-state transmission loss against the
// MYT trajectory, with the voltage-wise split recorded for the trace.
type TransLossInputs struct {
	TotalEnergyInput        float64 `json:"total_energy_input"`
	TransmissionLossMU      float64 `json:"transmission_loss_mu"`
	MYTApprovedTransLossPct float64 `json:"myt_approved_trans_loss_pct"`
	Loss400kVMU             float64 `json:"loss_400kv_mu"`
	Loss220kVMU             float64 `json:"loss_220kv_mu"`
	Loss110kVMU             float64 `json:"loss_110kv_mu"`
	Loss66kVMU              float64 `json:"loss_66kv_mu"`
	PeakDemandMW            float64 `json:"peak_demand_mw"`
	Methodology             string  `json:"methodology"`
}

func (in TransLossInputs) validate() error {
	if err := positive("total_energy_input", in.TotalEnergyInput); err != nil {
		return err
	}
	if err := nonNegative("transmission_loss_mu", in.TransmissionLossMU); err != nil {
		return err
	}
	if in.TransmissionLossMU > in.TotalEnergyInput {
		return eris.New("heuristics: transmission_loss_mu must not exceed total_energy_input")
	}
	return nil
}

// TransLoss implements TRANS-LOSS-01.
func TransLoss(in TransLossInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	actualPct := in.TransmissionLossMU / in.TotalEnergyInput * 100
	variancePP := actualPct - in.MYTApprovedTransLossPct

	var flag assessment.Flag
	var recommendation string
	switch {
	case variancePP <= 0:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Transmission loss %.2f%% is within the %.2f%% target (better by %.2fpp). Accept as assessed.",
			actualPct, in.MYTApprovedTransLossPct, math.Abs(variancePP))
	case variancePP <= 0.5:
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Transmission loss %.2f%% marginally exceeds the target by %.2fpp. Review load flow study before penal action.",
			actualPct, variancePP)
	default:
		flag = assessment.FlagRed
		recommendation = fmt.Sprintf("Transmission loss %.2f%% exceeds the target by %.2fpp. Examine system loading and loss-reduction measures.",
			actualPct, variancePP)
	}

	methodology := in.Methodology
	if methodology == "" {
		methodology = "energy accounting"
	}

	r := assessment.New("TRANS-LOSS-01", "Transmission Loss Assessment", "Transmission Loss")
	r.ClaimedValue = assessment.Amount(round2(actualPct))
	r.AllowableValue = assessment.Amount(in.MYTApprovedTransLossPct)
	r.VarianceAbsolute = assessment.Amount(round2(variancePP))
	r.Flag = flag
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Chapter 4, Truing-Up Order; Load flow methodology per CEA/FOR guidelines"
	r.CalculationSteps = []string{
		fmt.Sprintf("Transmission loss = %.2f MU on %.2f MU input = %.2f%%", in.TransmissionLossMU, in.TotalEnergyInput, actualPct),
		fmt.Sprintf("Voltage-wise: 400kV %.2f, 220kV %.2f, 110kV %.2f, 66kV %.2f MU",
			in.Loss400kVMU, in.Loss220kVMU, in.Loss110kVMU, in.Loss66kVMU),
		fmt.Sprintf("Peak demand %.0f MW | methodology: %s", in.PeakDemandMW, methodology),
		fmt.Sprintf("Actual %.2f%% vs MYT target %.2f%% = %+.2fpp", actualPct, in.MYTApprovedTransLossPct, variancePP),
	}
	r.IsPrimary = false
	r.OutputType = assessment.OutputAssessment
	r.Details = map[string]any{
		"actual_pct":  round2(actualPct),
		"variance_pp": round2(variancePP),
		"methodology": methodology,
	}
	return r, nil
}

// TDLossCombinedInputs reconciles the combined transmission plus
// distribution loss figure from the energy balance.
type TDLossCombinedInputs struct {
	TotalEnergyInputMU   float64 `json:"total_energy_input_mu"`
	TotalEnergySoldMU    float64 `json:"total_energy_sold_mu"`
	MYTApprovedTDLossPct float64 `json:"myt_approved_td_loss_pct"`
	TransmissionLossMU   float64 `json:"transmission_loss_mu"`
	DistributionLossMU   float64 `json:"distribution_loss_mu"`
	ActualTDLossPct      float64 `json:"actual_td_loss_pct"`
}

func (in TDLossCombinedInputs) validate() error {
	if err := positive("total_energy_input_mu", in.TotalEnergyInputMU); err != nil {
		return err
	}
	if err := nonNegative("total_energy_sold_mu", in.TotalEnergySoldMU); err != nil {
		return err
	}
	if in.TotalEnergySoldMU > in.TotalEnergyInputMU {
		return eris.New("heuristics: total_energy_sold_mu must not exceed total_energy_input_mu")
	}
	return nil
}

// TDLossCombined implements TD-LOSS-COMBINED-01.
func TDLossCombined(in TDLossCombinedInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	computedPct := (in.TotalEnergyInputMU - in.TotalEnergySoldMU) / in.TotalEnergyInputMU * 100
	variancePP := computedPct - in.MYTApprovedTDLossPct
	reconciliationGap := computedPct - in.ActualTDLossPct

	var flag assessment.Flag
	var recommendation string
	switch {
	case variancePP <= 0:
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Combined T&D loss %.2f%% is within the %.2f%% target. Carry forward to gain-sharing assessment.",
			computedPct, in.MYTApprovedTDLossPct)
	case variancePP <= 0.5:
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Combined T&D loss %.2f%% marginally exceeds the target by %.2fpp.", computedPct, variancePP)
	default:
		flag = assessment.FlagRed
		recommendation = fmt.Sprintf("Combined T&D loss %.2f%% exceeds the target by %.2fpp.", computedPct, variancePP)
	}

	r := assessment.New("TD-LOSS-COMBINED-01", "Combined T&D Loss Reconciliation", "T&D Loss")
	r.ClaimedValue = assessment.Amount(round2(in.ActualTDLossPct))
	r.AllowableValue = assessment.Amount(round2(computedPct))
	r.VarianceAbsolute = assessment.Amount(round2(variancePP))
	r.Flag = flag
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 14, Tariff Regulations 2021; Energy balance per audited accounts"
	r.CalculationSteps = []string{
		fmt.Sprintf("Computed T&D loss = (%.2f - %.2f) / %.2f × 100 = %.2f%%",
			in.TotalEnergyInputMU, in.TotalEnergySoldMU, in.TotalEnergyInputMU, computedPct),
		fmt.Sprintf("Component losses: transmission %.2f MU, distribution %.2f MU", in.TransmissionLossMU, in.DistributionLossMU),
		fmt.Sprintf("Utility reported %.2f%% | reconciliation gap %+.2fpp", in.ActualTDLossPct, reconciliationGap),
		fmt.Sprintf("Computed %.2f%% vs MYT target %.2f%% = %+.2fpp", computedPct, in.MYTApprovedTDLossPct, variancePP),
	}
	r.DependsOn = []string{"TRANS-LOSS-01", "DIST-LOSS-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputAssessment
	r.Details = map[string]any{
		"computed_pct":          round2(computedPct),
		"variance_pp":           round2(variancePP),
		"reconciliation_gap_pp": round2(reconciliationGap),
	}
	return r, nil
}

// TDRewardInputs computes the loss-reduction reward on the combined
// T&D trajectory, shared between utility and consumers.
type TDRewardInputs struct {
	ApprovedTDLossPct        float64 `json:"approved_td_loss_pct"`
	ActualTDLossPct          float64 `json:"actual_td_loss_pct"`
	TotalEnergyInputMU       float64 `json:"total_energy_input_mu"`
	AvgPowerPurchaseCostUnit float64 `json:"avg_power_purchase_cost_per_unit"`
	UtilitySharePct          float64 `json:"utility_share_pct"`
	ConsumerSharePct         float64 `json:"consumer_share_pct"`
	ClaimedReward            float64 `json:"claimed_reward"`
}

func (in TDRewardInputs) validate() error {
	if err := positive("total_energy_input_mu", in.TotalEnergyInputMU); err != nil {
		return err
	}
	return nonNegative("claimed_reward", in.ClaimedReward)
}

// TDReward implements TD-REWARD-01.
func TDReward(in TDRewardInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	// Regulation 14(1): gains are shared equally unless the order
	// fixes a different ratio.
	utilityPct := in.UtilitySharePct
	if utilityPct == 0 {
		utilityPct = 50.0
	}
	consumerPct := in.ConsumerSharePct
	if consumerPct == 0 {
		consumerPct = 100 - utilityPct
	}

	reductionPP := in.ApprovedTDLossPct - in.ActualTDLossPct

	var flag assessment.Flag
	var allowable, energySaved, grossGain float64
	var recommendation string
	steps := []string{
		fmt.Sprintf("Approved T&D loss %.2f%% vs actual %.2f%% → reduction %+.2fpp",
			in.ApprovedTDLossPct, in.ActualTDLossPct, reductionPP),
	}

	switch {
	case reductionPP > 0:
		energySaved = (reductionPP / 100) * in.TotalEnergyInputMU
		grossGain = energySaved * in.AvgPowerPurchaseCostUnit / 100
		allowable = grossGain * utilityPct / 100
		flag = assessment.FlagGreen
		recommendation = fmt.Sprintf("Allow loss-reduction reward of %s (utility share %.2f%% of gross gain %s).",
			cr(allowable), utilityPct, cr(grossGain))
		steps = append(steps,
			fmt.Sprintf("Energy saved = %.2fpp × %.2f MU = %.2f MU", reductionPP, in.TotalEnergyInputMU, energySaved),
			fmt.Sprintf("Gross gain = %.2f MU × ₹%.2f/unit ÷ 100 = %s", energySaved, in.AvgPowerPurchaseCostUnit, cr(grossGain)),
			fmt.Sprintf("Utility share %.2f%% = %s; consumer share %.2f%% = %s",
				utilityPct, cr(allowable), consumerPct, cr(grossGain-allowable)))
	case reductionPP == 0:
		flag = assessment.FlagYellow
		recommendation = "Actual T&D loss equals the target exactly. No reward or penalty."
		steps = append(steps, "No reduction achieved - reward is nil")
	default:
		flag = assessment.FlagRed
		recommendation = fmt.Sprintf("Actual T&D loss exceeds the target by %.2fpp. No reward; penalty exposure under Regulation 14(2).",
			math.Abs(reductionPP))
		steps = append(steps, "Target missed - reward is nil, penalty provisions apply")
	}

	variance := 0.0
	if in.ClaimedReward > 0 {
		variance = in.ClaimedReward - allowable
	}

	r := assessment.New("TD-REWARD-01", "T&D Loss Reduction Reward", "T&D Loss Reward")
	r.ClaimedValue = assessment.Amount(round2(in.ClaimedReward))
	r.AllowableValue = assessment.Amount(round2(allowable))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(pctOf(variance, allowable)))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(allowable))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 14(1)-(2), Tariff Regulations 2021"
	r.CalculationSteps = steps
	r.DependsOn = []string{"TD-LOSS-COMBINED-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Details = map[string]any{
		"loss_reduction_pp": round2(reductionPP),
		"energy_saved_mu":   round2(energySaved),
		"gross_gain_cr":     round2(grossGain),
	}
	return r, nil
}
