package unit

import "github.com/gridreg/trueup-cli/internal/lineitem"

// Rosters follow the display order of the truing-up order's ARR
// tables. Non-tariff income is the only deduction in each unit.

func item(key, name string, pattern lineitem.Pattern) entry {
	return entry{item: lineitem.New(key, name, pattern), expense: true}
}

func income(key, name string, pattern lineitem.Pattern) entry {
	return entry{item: lineitem.New(key, name, pattern), expense: false}
}

// NewGeneration builds SBU-G with its ten-line roster.
func NewGeneration() *Generation {
	return &Generation{SBU: SBU{
		code: "G",
		name: "Generation (SBU-G)",
		entries: []entry{
			item("fuel_costs", "Fuel Costs", lineitem.PatternSingle),
			item("om_expenses", "O&M Expenses", lineitem.PatternMulti),
			item("roe", "Return on Equity", lineitem.PatternSingle),
			item("depreciation", "Depreciation", lineitem.PatternSingle),
			item("ifc", "Interest & Finance Charges", lineitem.PatternMulti),
			item("master_trust", "Master Trust Obligations", lineitem.PatternMulti),
			item("other_expenses", "Other Expenses", lineitem.PatternSingle),
			item("exceptional_items", "Exceptional Items", lineitem.PatternSingle),
			item("intangible_assets", "Intangible Assets", lineitem.PatternSingle),
			income("nti", "Non-Tariff Income", lineitem.PatternSingle),
		},
	}}
}

// NewTransmission builds SBU-T, which adds the line compensations and
// the availability incentive to the shared cost items.
func NewTransmission() *Transmission {
	return &Transmission{SBU: SBU{
		code: "T",
		name: "Transmission (SBU-T)",
		entries: []entry{
			item("om_expenses", "O&M Expenses", lineitem.PatternSingle),
			item("roe", "Return on Equity", lineitem.PatternSingle),
			item("depreciation", "Depreciation", lineitem.PatternSingle),
			item("ifc", "Interest & Finance Charges", lineitem.PatternMulti),
			item("master_trust", "Master Trust Obligations", lineitem.PatternMulti),
			item("edamon_kochi_comp", "Edamon-Kochi Line Compensation", lineitem.PatternSingle),
			item("pugalur_thrissur_comp", "Pugalur-Thrissur Line Compensation", lineitem.PatternSingle),
			item("intangible_assets", "Intangible Assets (Software)", lineitem.PatternSingle),
			item("other_expenses", "Other Expenses", lineitem.PatternSingle),
			item("exceptional_items", "Exceptional Items", lineitem.PatternSingle),
			item("trans_incentive", "Transmission Availability Incentive", lineitem.PatternSingle),
			income("nti", "Non-Tariff Income", lineitem.PatternSingle),
		},
	}}
}

// NewDistribution builds SBU-D with its fifteen-line roster, including
// the two upstream transfers that are accepted without re-evaluation.
func NewDistribution() *Distribution {
	return &Distribution{SBU: SBU{
		code: "D",
		name: "Distribution (SBU-D)",
		entries: []entry{
			item("sbu_g_transfer", "Cost of Generation (SBU-G)", lineitem.PatternNone),
			item("power_purchase", "Cost of Power Purchase (incl RLDC/ISTS)", lineitem.PatternSingle),
			item("sbu_t_transfer", "Cost of Intra-State Transmission (SBU-T)", lineitem.PatternNone),
			item("ifc", "Interest & Finance Charges", lineitem.PatternMulti),
			item("mt_additional", "Additional Contribution to Master Trust", lineitem.PatternSingle),
			item("depreciation", "Depreciation", lineitem.PatternSingle),
			item("om_expenses", "Normative O&M Expenses", lineitem.PatternSingle),
			item("pay_revision", "Pay Revision Arrears", lineitem.PatternSingle),
			item("roe", "Return on Equity (14%)", lineitem.PatternSingle),
			item("other_expenses", "Other Expenses", lineitem.PatternSingle),
			item("exceptional_items", "Exceptional Items", lineitem.PatternSingle),
			item("td_loss_sharing", "Sharing of Gains due to T&D Loss Reduction", lineitem.PatternSingle),
			item("intangible_assets", "Amortisation of Intangible Assets (Software)", lineitem.PatternSingle),
			item("bond_repayment", "Repayment of Master Trust Bonds", lineitem.PatternSingle),
			income("nti", "Non-Tariff Income", lineitem.PatternSingle),
		},
	}}
}
