// Package fy carries the truing-up dataset for an assessment year: the
// heuristic inputs for every line item of every unit. The built-in
// dataset is FY 2023-24, assembled from the truing-up order's tables;
// a YAML scenario file can override any subset of it.
package fy

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/gridreg/trueup-cli/internal/heuristics"
)

// GenerationInputs feeds every heuristic on the SBU-G roster. The
// O&M chain fields that come from upstream heuristics (the 2024-25
// inflation figure, the approved O&M total, the normative employee
// cost) are filled in during evaluation and ignored here.
type GenerationInputs struct {
	Fuel              heuristics.FuelInputs                  `json:"fuel"`
	OMInflation       heuristics.OMInflationInputs           `json:"om_inflation"`
	OMNorm            heuristics.OMNormInputs                `json:"om_norm"`
	OMApportion       heuristics.OMApportionInputs           `json:"om_apportion"`
	PayRevision       heuristics.EmployeePayRevisionInputs   `json:"pay_revision"`
	ROE               heuristics.ROEInputs                   `json:"roe"`
	Depreciation      heuristics.DepreciationInputs          `json:"depreciation"`
	IFCLongTermLoans  heuristics.IFCLongTermLoanInputs       `json:"ifc_long_term_loans"`
	IFCWorkingCapital heuristics.IFCWorkingCapitalInputs     `json:"ifc_working_capital"`
	IFCGPF            heuristics.IFCGPFInputs                `json:"ifc_gpf"`
	IFCOther          heuristics.IFCOtherInputs              `json:"ifc_other"`
	MTBond            heuristics.MasterTrustBondInputs       `json:"mt_bond"`
	MTRepayment       heuristics.MasterTrustRepaymentInputs  `json:"mt_repayment"`
	MTAdditional      heuristics.MasterTrustAdditionalInputs `json:"mt_additional"`
	OtherExpenses     heuristics.OtherExpensesInputs         `json:"other_expenses"`
	ExceptionalItems  heuristics.ExceptionalItemsInputs      `json:"exceptional_items"`
	Intangible        heuristics.IntangibleInputs            `json:"intangible_assets"`
	NTI               heuristics.NTIInputs                   `json:"nti"`
}

// TransmissionInputs feeds the SBU-T roster plus its loss analysis.
type TransmissionInputs struct {
	OM                heuristics.TransOMNormInputs           `json:"om"`
	ROE               heuristics.ROEInputs                   `json:"roe"`
	Depreciation      heuristics.DepreciationInputs          `json:"depreciation"`
	IFCLongTermLoans  heuristics.IFCLongTermLoanInputs       `json:"ifc_long_term_loans"`
	IFCWorkingCapital heuristics.IFCWorkingCapitalInputs     `json:"ifc_working_capital"`
	IFCGPF            heuristics.IFCGPFInputs                `json:"ifc_gpf"`
	IFCOther          heuristics.IFCOtherInputs              `json:"ifc_other"`
	MTBond            heuristics.MasterTrustBondInputs       `json:"mt_bond"`
	MTRepayment       heuristics.MasterTrustRepaymentInputs  `json:"mt_repayment"`
	MTAdditional      heuristics.MasterTrustAdditionalInputs `json:"mt_additional"`
	EdamonKochi       heuristics.TransCompensationInputs     `json:"edamon_kochi"`
	PugalurThrissur   heuristics.TransCompensationInputs     `json:"pugalur_thrissur"`
	Intangible        heuristics.IntangibleInputs            `json:"intangible_assets"`
	OtherExpenses     heuristics.OtherExpensesInputs         `json:"other_expenses"`
	ExceptionalItems  heuristics.ExceptionalItemsInputs      `json:"exceptional_items"`
	Incentive         heuristics.TransIncentiveInputs        `json:"incentive"`
	NTI               heuristics.NTIInputs                   `json:"nti"`

	Loss         heuristics.TransLossInputs      `json:"loss"`
	LossCombined heuristics.TDLossCombinedInputs `json:"loss_combined"`
	Reward       heuristics.TDRewardInputs       `json:"reward"`
}

// TransferInputs carries the upstream amounts SBU-D accepts without
// re-evaluation. The approved figures are replaced by the live unit
// results when all three units are evaluated together.
type TransferInputs struct {
	ClaimedFromGeneration    float64 `json:"claimed_from_generation"`
	ApprovedFromGeneration   float64 `json:"approved_from_generation"`
	ClaimedFromTransmission  float64 `json:"claimed_from_transmission"`
	ApprovedFromTransmission float64 `json:"approved_from_transmission"`
}

// DistributionInputs feeds the SBU-D roster plus its loss analysis.
// The interest block has seven components in distribution.
type DistributionInputs struct {
	Transfers        TransferInputs                         `json:"transfers"`
	PowerPurchase    heuristics.PowerPurchaseInputs         `json:"power_purchase"`
	OM               heuristics.DistOMNormInputs            `json:"om"`
	IFCLongTermLoans heuristics.IFCLongTermLoanInputs       `json:"ifc_long_term_loans"`
	IFCSecurity      heuristics.IFCSecurityDepositInputs    `json:"ifc_security_deposit"`
	IFCGPF           heuristics.IFCGPFInputs                `json:"ifc_gpf"`
	IFCOtherDist     heuristics.IFCOtherDistInputs          `json:"ifc_other"`
	IFCMTBond        heuristics.MasterTrustBondInputs       `json:"ifc_mt_bond"`
	IFCCarryingCost  heuristics.IFCCarryingCostInputs       `json:"ifc_carrying_cost"`
	IFCWorking       heuristics.IFCWorkingCapitalInputs     `json:"ifc_working_capital"`
	MTAdditional     heuristics.MasterTrustAdditionalInputs `json:"mt_additional"`
	Depreciation     heuristics.DepreciationInputs          `json:"depreciation"`
	PayRevision      heuristics.EmployeePayRevisionInputs   `json:"pay_revision"`
	ROE              heuristics.ROEInputs                   `json:"roe"`
	OtherExpenses    heuristics.OtherExpensesInputs         `json:"other_expenses"`
	ExceptionalItems heuristics.ExceptionalItemsInputs      `json:"exceptional_items"`
	TDShare          heuristics.TDShareInputs               `json:"td_share"`
	Intangible       heuristics.IntangibleInputs            `json:"intangible_assets"`
	BondRepayment    heuristics.MasterTrustRepaymentInputs  `json:"bond_repayment"`
	NTI              heuristics.NTIInputs                   `json:"nti"`

	DistLoss heuristics.DistLossInputs `json:"dist_loss"`
}

// Scenario is a complete dataset for one assessment year.
type Scenario struct {
	Year         string             `json:"year"`
	Generation   GenerationInputs   `json:"generation"`
	Transmission TransmissionInputs `json:"transmission"`
	Distribution DistributionInputs `json:"distribution"`
}

// Load reads a YAML scenario file as an overlay on the FY 2023-24
// dataset: every key present in the file replaces the built-in value,
// everything else keeps its default. The YAML is bridged through JSON
// so the field names match the heuristics' input tags.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fy: read scenario")
	}
	return Parse(data)
}

// Parse overlays YAML scenario bytes on the default dataset.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "fy: parse scenario")
	}
	bridge, err := json.Marshal(raw)
	if err != nil {
		return nil, eris.Wrap(err, "fy: bridge scenario")
	}

	sc := Defaults()
	if err := json.Unmarshal(bridge, sc); err != nil {
		return nil, eris.Wrap(err, "fy: apply scenario overlay")
	}
	return sc, nil
}
