package heuristics

import (
	"fmt"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// O&M component apportionment ratios per MYT Order 2022, Table 4.23.
const (
	omRatioEmployee = 0.7703
	omRatioAG       = 0.0432
	omRatioRM       = 0.1865
)

// OMInflationInputs carries the price indices used to escalate O&M
// norms: CPI weighted 70%, WPI weighted 30%.
type OMInflationInputs struct {
	CPIOld float64 `json:"cpi_old"`
	CPINew float64 `json:"cpi_new"`
	WPIOld float64 `json:"wpi_old"`
	WPINew float64 `json:"wpi_new"`
}

func (in OMInflationInputs) validate() error {
	if err := positive("cpi_old", in.CPIOld); err != nil {
		return err
	}
	if err := positive("cpi_new", in.CPINew); err != nil {
		return err
	}
	if err := positive("wpi_old", in.WPIOld); err != nil {
		return err
	}
	return positive("wpi_new", in.WPINew)
}

// OMInflation implements OM-INFL-01, a calculation-only heuristic
// whose output value feeds the normative O&M escalation.
func OMInflation(in OMInflationInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	cpiIncrease := (in.CPINew - in.CPIOld) / in.CPIOld * 100
	wpiIncrease := (in.WPINew - in.WPIOld) / in.WPIOld * 100
	weighted := cpiIncrease*0.70 + wpiIncrease*0.30

	r := assessment.New("OM-INFL-01", "O&M Inflation Calculation", "O&M Expenses")
	r.AllowableValue = assessment.Amount(weighted)
	r.Flag = assessment.FlagGreen
	r.RecommendationText = "Inflation calculated per regulation"
	r.RegulatoryBasis = "Annexure-7, Para 1, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("CPI: %.2f → %.2f = %.2f%%", in.CPIOld, in.CPINew, cpiIncrease),
		fmt.Sprintf("WPI: %.2f → %.2f = %.2f%%", in.WPIOld, in.WPINew, wpiIncrease),
		fmt.Sprintf("Weighted inflation = (%.2f%% × 0.70) + (%.2f%% × 0.30) = %.2f%%", cpiIncrease, wpiIncrease, weighted),
	}
	r.IsPrimary = false
	r.OutputType = assessment.OutputCalculatedValue
	r.OutputValue = assessment.Amount(weighted)
	return r, nil
}

// OMNormInputs escalates the base-year O&M through three years of
// actual inflation to arrive at the normative allowance.
type OMNormInputs struct {
	BaseYearOM           float64 `json:"base_year_om"`
	Inflation2022_23     float64 `json:"inflation_2022_23"`
	Inflation2023_24     float64 `json:"inflation_2023_24"`
	Inflation2024_25     float64 `json:"inflation_2024_25"`
	ClaimedExisting      float64 `json:"claimed_existing"`
	NewStationsAllowable float64 `json:"new_stations_allowable"`
}

func (in OMNormInputs) validate() error {
	if err := positive("base_year_om", in.BaseYearOM); err != nil {
		return err
	}
	if err := nonNegative("claimed_existing", in.ClaimedExisting); err != nil {
		return err
	}
	return nonNegative("new_stations_allowable", in.NewStationsAllowable)
}

// OMNorm implements OM-NORM-01, the primary heuristic that sets the
// approved O&M amount. The variance is judged against the escalated
// norm for existing stations; new-station allowances enter the total
// but not the variance.
func OMNorm(in OMNormInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	om2022_23 := in.BaseYearOM * (1 + in.Inflation2022_23/100)
	om2023_24 := om2022_23 * (1 + in.Inflation2023_24/100)
	om2024_25 := om2023_24 * (1 + in.Inflation2024_25/100)
	totalAllowable := om2024_25 + in.NewStationsAllowable

	variance := in.ClaimedExisting - om2024_25
	variancePct := pctOf(variance, om2024_25)

	flag := ladder(variancePct, 0, 10)
	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = "Approve as claimed - within normative"
	case assessment.FlagYellow:
		recommendation = "Conditional approval - minor variance, justify excess"
	default:
		recommendation = "Reject excess - allow only normative amount"
	}

	r := assessment.New("OM-NORM-01", "Normative O&M Comparison (Existing Stations)", "O&M Expenses")
	r.ClaimedValue = assessment.Amount(in.ClaimedExisting)
	r.AllowableValue = assessment.Amount(totalAllowable)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(totalAllowable)
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 45, Annexure-7 Table 3, Tariff Regulations 2021"
	r.CalculationSteps = []string{
		fmt.Sprintf("Base year O&M (2021-22): %s", cr(in.BaseYearOM)),
		fmt.Sprintf("Escalated 2022-23 (%.2f%%): %s", in.Inflation2022_23, cr(om2022_23)),
		fmt.Sprintf("Escalated 2023-24 (%.2f%%): %s", in.Inflation2023_24, cr(om2023_24)),
		fmt.Sprintf("Escalated 2024-25 (%.2f%%): %s", in.Inflation2024_25, cr(om2024_25)),
		fmt.Sprintf("Add new stations allowable: %s → total %s", cr(in.NewStationsAllowable), cr(totalAllowable)),
		fmt.Sprintf("Claimed (existing) %s | Variance %+.2f Cr (%+.2f%%)", cr(in.ClaimedExisting), variance, variancePct),
	}
	r.DependsOn = []string{"OM-INFL-01"}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	return r, nil
}

// OMApportionInputs checks actual component spending against the
// fixed apportionment ratios of the approved O&M total.
type OMApportionInputs struct {
	TotalOMApproved float64 `json:"total_om_approved"`
	ActualEmployee  float64 `json:"actual_employee"`
	ActualAG        float64 `json:"actual_ag"`
	ActualRM        float64 `json:"actual_rm"`
}

func (in OMApportionInputs) validate() error {
	if err := positive("total_om_approved", in.TotalOMApproved); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"actual_employee", in.ActualEmployee},
		{"actual_ag", in.ActualAG},
		{"actual_rm", in.ActualRM},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// OMApportion implements OM-APPORT-01, a prudence check that never
// changes the approved amount: the worst component flag wins.
func OMApportion(in OMApportionInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	type component struct {
		name      string
		actual    float64
		normative float64
	}
	components := []component{
		{"Employee Cost", in.ActualEmployee, in.TotalOMApproved * omRatioEmployee},
		{"A&G Expenses", in.ActualAG, in.TotalOMApproved * omRatioAG},
		{"R&M Expenses", in.ActualRM, in.TotalOMApproved * omRatioRM},
	}

	overall := assessment.FlagGreen
	steps := []string{
		fmt.Sprintf("Total O&M approved: %s", cr(in.TotalOMApproved)),
		"Component breakdown (ratios per MYT Order 2022, Table 4.23):",
	}
	details := make([]map[string]any, 0, len(components))

	for _, c := range components {
		varPct := pctOf(c.actual-c.normative, c.normative)
		compFlag := ladder(varPct, 5, 15)
		overall = assessment.Worse(overall, compFlag)
		steps = append(steps, fmt.Sprintf("  %s: norm %s vs actual %s = %+.2f%% [%s]",
			c.name, cr(c.normative), cr(c.actual), varPct, compFlag))
		details = append(details, map[string]any{
			"component":    c.name,
			"normative":    round2(c.normative),
			"actual":       round2(c.actual),
			"variance_pct": round2(varPct),
			"flag":         compFlag,
		})
	}

	totalActual := in.ActualEmployee + in.ActualAG + in.ActualRM
	totalVar := totalActual - in.TotalOMApproved
	totalVarPct := pctOf(totalVar, in.TotalOMApproved)
	steps = append(steps, fmt.Sprintf("Total actual %s vs approved %s = %+.2f Cr (%+.2f%%)",
		cr(totalActual), cr(in.TotalOMApproved), totalVar, totalVarPct))

	r := assessment.New("OM-APPORT-01", "O&M Component Apportionment (Prudence Check)", "O&M Expenses")
	r.ClaimedValue = assessment.Amount(totalActual)
	r.AllowableValue = assessment.Amount(in.TotalOMApproved)
	r.VarianceAbsolute = assessment.Amount(totalVar)
	r.VariancePercentage = assessment.Amount(totalVarPct)
	r.Flag = overall
	r.RecommendationText = "Prudence check only - does not affect approved amount. Staff should note deviations for future monitoring."
	r.RegulatoryBasis = "MYT Order 2022, Table 4.23 (Component Ratios)"
	r.CalculationSteps = steps
	r.DependsOn = []string{"OM-NORM-01"}
	r.IsPrimary = false
	r.OutputType = assessment.OutputPrudenceCheck
	r.Details = map[string]any{"components": details}
	return r, nil
}

// PayRevisionDetails documents an implemented pay revision.
type PayRevisionDetails struct {
	Date         string  `json:"date"`
	GovtOrderRef string  `json:"govt_order_ref"`
	Amount       float64 `json:"amount"`
}

// EmployeePayRevisionInputs flags undisclosed or undocumented pay
// revisions hiding inside the employee cost component.
type EmployeePayRevisionInputs struct {
	EmployeeCostNormative  float64             `json:"employee_cost_normative"`
	EmployeeCostActual     float64             `json:"employee_cost_actual"`
	PayRevisionImplemented bool                `json:"pay_revision_implemented"`
	PayRevisionDetails     *PayRevisionDetails `json:"pay_revision_details,omitempty"`
}

func (in EmployeePayRevisionInputs) validate() error {
	if err := positive("employee_cost_normative", in.EmployeeCostNormative); err != nil {
		return err
	}
	return nonNegative("employee_cost_actual", in.EmployeeCostActual)
}

// EmployeePayRevision implements EMP-PAYREV-01.
func EmployeePayRevision(in EmployeePayRevisionInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	variance := in.EmployeeCostActual - in.EmployeeCostNormative
	variancePct := pctOf(variance, in.EmployeeCostNormative)

	var flag assessment.Flag
	var recommendation string
	if !in.PayRevisionImplemented {
		flag = ladder(variancePct, 5, 15)
		switch flag {
		case assessment.FlagGreen:
			recommendation = "Employee cost within acceptable limits"
		case assessment.FlagYellow:
			recommendation = "Moderate variance - verify no undisclosed pay revision"
		default:
			recommendation = "Significant variance with no pay revision on record - requires investigation"
		}
	} else if in.PayRevisionDetails != nil && in.PayRevisionDetails.GovtOrderRef != "" {
		flag = assessment.FlagYellow
		recommendation = fmt.Sprintf("Pay revision verified (Order: %s) - pending prudence check", in.PayRevisionDetails.GovtOrderRef)
	} else {
		flag = assessment.FlagRed
		recommendation = "Pay revision claimed but government order reference missing"
	}

	steps := []string{
		fmt.Sprintf("Normative employee cost: %s", cr(in.EmployeeCostNormative)),
		fmt.Sprintf("Actual employee cost: %s", cr(in.EmployeeCostActual)),
		fmt.Sprintf("Variance %+.2f Cr (%+.2f%%)", variance, variancePct),
		fmt.Sprintf("Pay revision implemented: %v", in.PayRevisionImplemented),
	}
	if in.PayRevisionImplemented && in.PayRevisionDetails != nil {
		steps = append(steps,
			fmt.Sprintf("Pay revision date: %s, order: %s, amount: %s",
				in.PayRevisionDetails.Date, in.PayRevisionDetails.GovtOrderRef, cr(in.PayRevisionDetails.Amount)))
	}

	r := assessment.New("EMP-PAYREV-01", "Pay Revision Component Check", "O&M Expenses")
	r.ClaimedValue = assessment.Amount(in.EmployeeCostActual)
	r.AllowableValue = assessment.Amount(in.EmployeeCostNormative)
	r.VarianceAbsolute = assessment.Amount(variance)
	r.VariancePercentage = assessment.Amount(variancePct)
	r.Flag = flag
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 14(3), Tariff Regulations 2021; APTEL Order 10.11.2014"
	r.CalculationSteps = steps
	r.DependsOn = []string{"OM-APPORT-01"}
	r.IsPrimary = false
	r.OutputType = assessment.OutputPrudenceCheck
	return r, nil
}
