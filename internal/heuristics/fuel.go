package heuristics

import (
	"fmt"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// FuelInputs itemizes operational consumables for the generation
// stations. StationBreakdown is informational context for drill-downs.
type FuelInputs struct {
	HeavyFuelOil          float64 `json:"heavy_fuel_oil"`
	HSDOil                float64 `json:"hsd_oil"`
	LubeOil               float64 `json:"lube_oil"`
	LubricantsConsumables float64 `json:"lubricants_consumables"`
	TotalClaimedFuelCost  float64 `json:"total_claimed_fuel_cost"`
	PreviousYearFuelCost  float64 `json:"previous_year_fuel_cost"`

	StationBreakdown map[string]float64 `json:"station_breakdown,omitempty"`
}

func (in FuelInputs) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"heavy_fuel_oil", in.HeavyFuelOil},
		{"hsd_oil", in.HSDOil},
		{"lube_oil", in.LubeOil},
		{"lubricants_consumables", in.LubricantsConsumables},
		{"total_claimed_fuel_cost", in.TotalClaimedFuelCost},
		{"previous_year_fuel_cost", in.PreviousYearFuelCost},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Fuel implements FUEL-01: the claim must reconcile with the sum of
// its components, and a year-on-year jump above 100% demotes an
// otherwise clean result to YELLOW.
func Fuel(in FuelInputs) (assessment.Record, error) {
	if err := in.validate(); err != nil {
		return assessment.Record{}, err
	}

	calculated := in.HeavyFuelOil + in.HSDOil + in.LubeOil + in.LubricantsConsumables
	variance := in.TotalClaimedFuelCost - calculated
	variancePct := pctOf(variance, calculated)

	flag := ladder(variancePct, 1, 5)

	yoyPct := 0.0
	if in.PreviousYearFuelCost > 0 {
		yoyPct = (in.TotalClaimedFuelCost - in.PreviousYearFuelCost) / in.PreviousYearFuelCost * 100
	}
	note := ""
	if flag == assessment.FlagGreen && yoyPct > 100 {
		flag = assessment.FlagYellow
		note = fmt.Sprintf("Year-on-year increase of %.1f%% warrants scrutiny of station-wise consumption.", yoyPct)
	}

	var recommendation string
	switch flag {
	case assessment.FlagGreen:
		recommendation = fmt.Sprintf("Approve fuel and consumables of %s; claim reconciles with component totals.", cr(calculated))
	case assessment.FlagYellow:
		recommendation = fmt.Sprintf("Allow %s subject to verification of component details.", cr(calculated))
		if note != "" {
			recommendation = note + " " + recommendation
		}
	default:
		recommendation = fmt.Sprintf("Claim of %s does not reconcile with components totalling %s. Require station-wise substantiation.",
			cr(in.TotalClaimedFuelCost), cr(calculated))
	}

	r := assessment.New("FUEL-01", "Fuel and Operational Consumables", "Fuel Costs")
	r.ClaimedValue = assessment.Amount(in.TotalClaimedFuelCost)
	r.AllowableValue = assessment.Amount(round2(calculated))
	r.VarianceAbsolute = assessment.Amount(round2(variance))
	r.VariancePercentage = assessment.Amount(round2(variancePct))
	r.Flag = flag
	r.RecommendedAmount = assessment.Amount(round2(calculated))
	r.RecommendationText = recommendation
	r.RegulatoryBasis = "Regulation 51, Tariff Regulations 2021 (Operational Consumables)"
	r.CalculationSteps = []string{
		fmt.Sprintf("HFO %s + HSD %s + Lube %s + Consumables %s = %s",
			cr(in.HeavyFuelOil), cr(in.HSDOil), cr(in.LubeOil), cr(in.LubricantsConsumables), cr(calculated)),
		fmt.Sprintf("Claimed %s | Variance %+.2f Cr (%+.2f%%)", cr(in.TotalClaimedFuelCost), variance, variancePct),
		fmt.Sprintf("Year-on-year change vs %s: %+.1f%%", cr(in.PreviousYearFuelCost), yoyPct),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputApprovedAmount
	r.Note = note
	r.Details = map[string]any{
		"yoy_increase_pct":  round2(yoyPct),
		"station_breakdown": in.StationBreakdown,
	}
	return r, nil
}
