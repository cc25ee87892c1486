package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridreg/trueup-cli/internal/unit"
)

// Workbook builds the working-paper export: a summary sheet across all
// units, one drill-down sheet per unit, and a sheet listing every
// record still awaiting staff review.
func Workbook(units ...unit.Unit) (*xlsx.File, error) {
	f := xlsx.NewFile()

	if err := summarySheet(f, units); err != nil {
		return nil, err
	}
	for _, u := range units {
		if err := drillDownSheet(f, u); err != nil {
			return nil, err
		}
	}
	if err := pendingSheet(f, units); err != nil {
		return nil, err
	}
	return f, nil
}

// Save writes the workbook to disk.
func Save(path string, units ...unit.Unit) error {
	f, err := Workbook(units...)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

func summarySheet(f *xlsx.File, units []unit.Unit) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addRow(sheet, "SBU", "Line Item", "Pattern", "Flag", "Approved (Cr)", "Reviewed", "Pending")
	for _, u := range units {
		s := u.Summary()
		for _, it := range s.Items {
			addRow(sheet, s.Code, it.Name, string(it.Pattern), string(it.Flag),
				it.Amount, it.Review.Total-it.Review.Pending, it.Review.Pending)
		}
		addRow(sheet, s.Code, "Net Revenue Requirement", "", "", s.NetRequirement, "", "")
	}
	return nil
}

func drillDownSheet(f *xlsx.File, u unit.Unit) error {
	sheet, err := f.AddSheet("SBU-" + u.Code())
	if err != nil {
		return eris.Wrap(err, "report: add drill-down sheet")
	}
	addRow(sheet, "Line Item", "Heuristic", "Name", "Flag",
		"Claimed (Cr)", "Allowable (Cr)", "Recommended (Cr)", "Review", "Reviewer", "Recommendation")
	for _, item := range u.Items() {
		for _, r := range item.Records() {
			addRow(sheet, item.Name, r.HeuristicID, r.HeuristicName, string(r.EffectiveFlag()),
				r.ClaimedValue, r.AllowableValue, r.ResolvedAmount(),
				string(r.StaffReviewStatus), r.ReviewedBy, r.RecommendationText)
		}
	}
	if la, ok := u.(unit.LossAnalyzer); ok {
		for _, r := range la.LossRecords() {
			addRow(sheet, "Loss Analysis", r.HeuristicID, r.HeuristicName, string(r.EffectiveFlag()),
				r.ClaimedValue, r.AllowableValue, r.ResolvedAmount(),
				string(r.StaffReviewStatus), r.ReviewedBy, r.RecommendationText)
		}
	}
	return nil
}

func pendingSheet(f *xlsx.File, units []unit.Unit) error {
	sheet, err := f.AddSheet("Pending Reviews")
	if err != nil {
		return eris.Wrap(err, "report: add pending sheet")
	}
	addRow(sheet, "SBU", "Line Item", "Heuristic", "Flag", "Recommended (Cr)", "Recommendation")
	for _, u := range units {
		for _, p := range u.PendingReviews() {
			addRow(sheet, u.Code(), p.ItemName, p.Record.HeuristicID,
				string(p.Record.Flag), p.Record.RecommendedAmount, p.Record.RecommendationText)
		}
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...any) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		switch val := v.(type) {
		case string:
			cell.SetString(val)
		case int:
			cell.SetInt(val)
		case float64:
			cell.SetFloat(val)
		case *float64:
			if val != nil {
				cell.SetFloat(*val)
			}
		default:
			cell.SetString(fmt.Sprint(val))
		}
	}
}
