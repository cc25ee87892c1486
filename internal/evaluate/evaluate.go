// Package evaluate runs every heuristic on a unit's roster and files
// the results into its line items. Generation's O&M chain threads
// intermediate results from one heuristic into the next; everything
// else is a straight fan-out from the scenario inputs.
package evaluate

import (
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/gridreg/trueup-cli/internal/assessment"
	"github.com/gridreg/trueup-cli/internal/fy"
	"github.com/gridreg/trueup-cli/internal/heuristics"
	"github.com/gridreg/trueup-cli/internal/lineitem"
	"github.com/gridreg/trueup-cli/internal/unit"
)

// employeeShareOfOM is the employee component of the approved O&M
// total under the fixed apportionment ratios. It feeds the pay
// revision prudence check in generation, where the normative employee
// cost is derived rather than given.
const employeeShareOfOM = 0.7703

func wrap(err error, code, key string) error {
	return eris.Wrapf(err, "evaluate: SBU-%s %s", code, key)
}

func apply(u unit.Unit, key string, records ...assessment.Record) error {
	item, err := u.Item(key)
	if err != nil {
		return eris.Wrap(err, "evaluate: roster lookup")
	}
	item.Evaluate(records...)
	return nil
}

// Generation evaluates the full SBU-G roster. The O&M item is a
// four-record chain: the weighted inflation feeds the normative
// comparison, whose approved total feeds both the apportionment check
// and the derived normative employee cost for the pay revision check.
func Generation(g *unit.Generation, in fy.GenerationInputs) error {
	fuel, err := heuristics.Fuel(in.Fuel)
	if err != nil {
		return wrap(err, "G", "fuel_costs")
	}

	infl, err := heuristics.OMInflation(in.OMInflation)
	if err != nil {
		return wrap(err, "G", "om_expenses")
	}
	normIn := in.OMNorm
	normIn.Inflation2024_25 = *infl.OutputValue
	norm, err := heuristics.OMNorm(normIn)
	if err != nil {
		return wrap(err, "G", "om_expenses")
	}
	apportIn := in.OMApportion
	apportIn.TotalOMApproved = *norm.RecommendedAmount
	apport, err := heuristics.OMApportion(apportIn)
	if err != nil {
		return wrap(err, "G", "om_expenses")
	}
	payIn := in.PayRevision
	payIn.EmployeeCostNormative = *norm.RecommendedAmount * employeeShareOfOM
	pay, err := heuristics.EmployeePayRevision(payIn)
	if err != nil {
		return wrap(err, "G", "om_expenses")
	}

	roe, err := heuristics.ROE(in.ROE)
	if err != nil {
		return wrap(err, "G", "roe")
	}
	dep, err := heuristics.Depreciation(in.Depreciation)
	if err != nil {
		return wrap(err, "G", "depreciation")
	}

	ltl, err := heuristics.IFCLongTermLoans(in.IFCLongTermLoans)
	if err != nil {
		return wrap(err, "G", "ifc")
	}
	wc, err := heuristics.IFCWorkingCapital(in.IFCWorkingCapital)
	if err != nil {
		return wrap(err, "G", "ifc")
	}
	gpf, err := heuristics.IFCGPF(in.IFCGPF)
	if err != nil {
		return wrap(err, "G", "ifc")
	}
	oth, err := heuristics.IFCOther(in.IFCOther)
	if err != nil {
		return wrap(err, "G", "ifc")
	}

	bond, err := heuristics.MasterTrustBond(in.MTBond)
	if err != nil {
		return wrap(err, "G", "master_trust")
	}
	repay, err := heuristics.MasterTrustRepayment(in.MTRepayment)
	if err != nil {
		return wrap(err, "G", "master_trust")
	}
	add, err := heuristics.MasterTrustAdditional(in.MTAdditional)
	if err != nil {
		return wrap(err, "G", "master_trust")
	}

	other, err := heuristics.OtherExpenses(in.OtherExpenses)
	if err != nil {
		return wrap(err, "G", "other_expenses")
	}
	exc, err := heuristics.ExceptionalItems(in.ExceptionalItems)
	if err != nil {
		return wrap(err, "G", "exceptional_items")
	}
	intang, err := heuristics.Intangible(in.Intangible)
	if err != nil {
		return wrap(err, "G", "intangible_assets")
	}
	nti, err := heuristics.NTI(in.NTI)
	if err != nil {
		return wrap(err, "G", "nti")
	}

	for _, step := range []struct {
		key     string
		records []assessment.Record
	}{
		{"fuel_costs", []assessment.Record{fuel}},
		{"om_expenses", []assessment.Record{infl, norm, apport, pay}},
		{"roe", []assessment.Record{roe}},
		{"depreciation", []assessment.Record{dep}},
		{"ifc", []assessment.Record{ltl, wc, gpf, oth}},
		{"master_trust", []assessment.Record{bond, repay, add}},
		{"other_expenses", []assessment.Record{other}},
		{"exceptional_items", []assessment.Record{exc}},
		{"intangible_assets", []assessment.Record{intang}},
		{"nti", []assessment.Record{nti}},
	} {
		if err := apply(g, step.key, step.records...); err != nil {
			return err
		}
	}
	return nil
}

// Transmission evaluates the SBU-T roster and records its loss
// analysis: the transmission-segment assessment, the combined T&D
// reconciliation and the loss reduction reward.
func Transmission(t *unit.Transmission, in fy.TransmissionInputs) error {
	om, err := heuristics.TransOMNorm(in.OM)
	if err != nil {
		return wrap(err, "T", "om_expenses")
	}
	roe, err := heuristics.ROE(in.ROE)
	if err != nil {
		return wrap(err, "T", "roe")
	}
	dep, err := heuristics.Depreciation(in.Depreciation)
	if err != nil {
		return wrap(err, "T", "depreciation")
	}

	ltl, err := heuristics.IFCLongTermLoans(in.IFCLongTermLoans)
	if err != nil {
		return wrap(err, "T", "ifc")
	}
	wc, err := heuristics.IFCWorkingCapital(in.IFCWorkingCapital)
	if err != nil {
		return wrap(err, "T", "ifc")
	}
	gpf, err := heuristics.IFCGPF(in.IFCGPF)
	if err != nil {
		return wrap(err, "T", "ifc")
	}
	oth, err := heuristics.IFCOther(in.IFCOther)
	if err != nil {
		return wrap(err, "T", "ifc")
	}

	bond, err := heuristics.MasterTrustBond(in.MTBond)
	if err != nil {
		return wrap(err, "T", "master_trust")
	}
	repay, err := heuristics.MasterTrustRepayment(in.MTRepayment)
	if err != nil {
		return wrap(err, "T", "master_trust")
	}
	add, err := heuristics.MasterTrustAdditional(in.MTAdditional)
	if err != nil {
		return wrap(err, "T", "master_trust")
	}

	edamon, err := heuristics.TransCompensation(in.EdamonKochi)
	if err != nil {
		return wrap(err, "T", "edamon_kochi_comp")
	}
	pugalur, err := heuristics.TransCompensation(in.PugalurThrissur)
	if err != nil {
		return wrap(err, "T", "pugalur_thrissur_comp")
	}

	intang, err := heuristics.Intangible(in.Intangible)
	if err != nil {
		return wrap(err, "T", "intangible_assets")
	}
	other, err := heuristics.OtherExpenses(in.OtherExpenses)
	if err != nil {
		return wrap(err, "T", "other_expenses")
	}
	exc, err := heuristics.ExceptionalItems(in.ExceptionalItems)
	if err != nil {
		return wrap(err, "T", "exceptional_items")
	}
	incentive, err := heuristics.TransIncentive(in.Incentive)
	if err != nil {
		return wrap(err, "T", "trans_incentive")
	}
	nti, err := heuristics.NTI(in.NTI)
	if err != nil {
		return wrap(err, "T", "nti")
	}

	for _, step := range []struct {
		key     string
		records []assessment.Record
	}{
		{"om_expenses", []assessment.Record{om}},
		{"roe", []assessment.Record{roe}},
		{"depreciation", []assessment.Record{dep}},
		{"ifc", []assessment.Record{ltl, wc, gpf, oth}},
		{"master_trust", []assessment.Record{bond, repay, add}},
		{"edamon_kochi_comp", []assessment.Record{edamon}},
		{"pugalur_thrissur_comp", []assessment.Record{pugalur}},
		{"intangible_assets", []assessment.Record{intang}},
		{"other_expenses", []assessment.Record{other}},
		{"exceptional_items", []assessment.Record{exc}},
		{"trans_incentive", []assessment.Record{incentive}},
		{"nti", []assessment.Record{nti}},
	} {
		if err := apply(t, step.key, step.records...); err != nil {
			return err
		}
	}

	loss, err := heuristics.TransLoss(in.Loss)
	if err != nil {
		return wrap(err, "T", "loss_analysis")
	}
	combined, err := heuristics.TDLossCombined(in.LossCombined)
	if err != nil {
		return wrap(err, "T", "loss_analysis")
	}
	reward, err := heuristics.TDReward(in.Reward)
	if err != nil {
		return wrap(err, "T", "loss_analysis")
	}
	t.RecordLossAnalysis(loss, combined, reward)
	return nil
}

// Distribution evaluates the SBU-D roster. The two upstream transfers
// are pass-throughs of the amounts approved in the other units'
// chapters, the interest block carries seven records, and the gain
// sharing record doubles as part of the loss analysis.
func Distribution(d *unit.Distribution, in fy.DistributionInputs) error {
	gTransfer := lineitem.TransferRecord("G",
		in.Transfers.ClaimedFromGeneration, in.Transfers.ApprovedFromGeneration)
	tTransfer := lineitem.TransferRecord("T",
		in.Transfers.ClaimedFromTransmission, in.Transfers.ApprovedFromTransmission)

	pp, err := heuristics.PowerPurchase(in.PowerPurchase)
	if err != nil {
		return wrap(err, "D", "power_purchase")
	}

	ltl, err := heuristics.IFCLongTermLoans(in.IFCLongTermLoans)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	sd, err := heuristics.IFCSecurityDeposit(in.IFCSecurity)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	gpf, err := heuristics.IFCGPF(in.IFCGPF)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	othD, err := heuristics.IFCOtherDist(in.IFCOtherDist)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	mtBond, err := heuristics.MasterTrustBond(in.IFCMTBond)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	cc, err := heuristics.IFCCarryingCost(in.IFCCarryingCost)
	if err != nil {
		return wrap(err, "D", "ifc")
	}
	wc, err := heuristics.IFCWorkingCapital(in.IFCWorking)
	if err != nil {
		return wrap(err, "D", "ifc")
	}

	mtAdd, err := heuristics.MasterTrustAdditional(in.MTAdditional)
	if err != nil {
		return wrap(err, "D", "mt_additional")
	}
	dep, err := heuristics.Depreciation(in.Depreciation)
	if err != nil {
		return wrap(err, "D", "depreciation")
	}
	om, err := heuristics.DistOMNorm(in.OM)
	if err != nil {
		return wrap(err, "D", "om_expenses")
	}
	pay, err := heuristics.EmployeePayRevision(in.PayRevision)
	if err != nil {
		return wrap(err, "D", "pay_revision")
	}
	roe, err := heuristics.ROE(in.ROE)
	if err != nil {
		return wrap(err, "D", "roe")
	}
	other, err := heuristics.OtherExpenses(in.OtherExpenses)
	if err != nil {
		return wrap(err, "D", "other_expenses")
	}
	exc, err := heuristics.ExceptionalItems(in.ExceptionalItems)
	if err != nil {
		return wrap(err, "D", "exceptional_items")
	}
	tdShare, err := heuristics.TDShare(in.TDShare)
	if err != nil {
		return wrap(err, "D", "td_loss_sharing")
	}
	intang, err := heuristics.Intangible(in.Intangible)
	if err != nil {
		return wrap(err, "D", "intangible_assets")
	}
	repay, err := heuristics.MasterTrustRepayment(in.BondRepayment)
	if err != nil {
		return wrap(err, "D", "bond_repayment")
	}
	nti, err := heuristics.NTI(in.NTI)
	if err != nil {
		return wrap(err, "D", "nti")
	}

	for _, step := range []struct {
		key     string
		records []assessment.Record
	}{
		{"sbu_g_transfer", []assessment.Record{gTransfer}},
		{"power_purchase", []assessment.Record{pp}},
		{"sbu_t_transfer", []assessment.Record{tTransfer}},
		{"ifc", []assessment.Record{ltl, sd, gpf, othD, mtBond, cc, wc}},
		{"mt_additional", []assessment.Record{mtAdd}},
		{"depreciation", []assessment.Record{dep}},
		{"om_expenses", []assessment.Record{om}},
		{"pay_revision", []assessment.Record{pay}},
		{"roe", []assessment.Record{roe}},
		{"other_expenses", []assessment.Record{other}},
		{"exceptional_items", []assessment.Record{exc}},
		{"td_loss_sharing", []assessment.Record{tdShare}},
		{"intangible_assets", []assessment.Record{intang}},
		{"bond_repayment", []assessment.Record{repay}},
		{"nti", []assessment.Record{nti}},
	} {
		if err := apply(d, step.key, step.records...); err != nil {
			return err
		}
	}

	loss, err := heuristics.DistLoss(in.DistLoss)
	if err != nil {
		return wrap(err, "D", "loss_analysis")
	}
	d.RecordLossAnalysis(loss, tdShare)
	return nil
}

// Unit evaluates one unit standalone against a scenario. Distribution
// uses the scenario's standalone transfer figures; use AllInto when the
// live upstream results should feed it instead.
func Unit(u unit.Unit, sc *fy.Scenario) error {
	switch v := u.(type) {
	case *unit.Generation:
		return Generation(v, sc.Generation)
	case *unit.Transmission:
		return Transmission(v, sc.Transmission)
	case *unit.Distribution:
		return Distribution(v, sc.Distribution)
	default:
		return eris.Errorf("evaluate: unsupported unit type %T", u)
	}
}

// AllInto evaluates three existing units for one scenario. Generation
// and transmission run independently; distribution then consumes their
// net requirements as its upstream transfer amounts in place of the
// scenario's standalone figures.
func AllInto(sc *fy.Scenario, g *unit.Generation, t *unit.Transmission, d *unit.Distribution) error {
	var eg errgroup.Group
	eg.Go(func() error { return Generation(g, sc.Generation) })
	eg.Go(func() error { return Transmission(t, sc.Transmission) })
	if err := eg.Wait(); err != nil {
		return err
	}

	in := sc.Distribution
	in.Transfers.ApprovedFromGeneration = g.NetRequirement()
	in.Transfers.ApprovedFromTransmission = t.NetRequirement()
	return Distribution(d, in)
}

// All evaluates fresh units for one scenario.
func All(sc *fy.Scenario) (*unit.Generation, *unit.Transmission, *unit.Distribution, error) {
	g := unit.NewGeneration()
	t := unit.NewTransmission()
	d := unit.NewDistribution()
	if err := AllInto(sc, g, t, d); err != nil {
		return nil, nil, nil, err
	}
	return g, t, d, nil
}
