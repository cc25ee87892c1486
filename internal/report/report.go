// Package report renders evaluated units for people: a terminal
// summary with per-item flags and amounts, a record-level drill-down,
// and an xlsx workbook for the truing-up working papers.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gridreg/trueup-cli/internal/unit"
)

// Amounts are in crore and grouped the Indian way (1,23,456.78).
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Cr formats a crore amount.
func Cr(v float64) string { return printer.Sprintf("₹%.2f Cr", v) }

func amount(v *float64) string {
	if v == nil {
		return "-"
	}
	return Cr(*v)
}

// WriteSummary writes the roll-up view of each unit: the roster with
// flags, approved amounts and review progress, the net requirement,
// and the loss analysis where the unit carries one.
func WriteSummary(w io.Writer, units ...unit.Unit) error {
	for i, u := range units {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s := u.Summary()
		fmt.Fprintln(w, s.Name)
		fmt.Fprintln(w, strings.Repeat("=", 78))
		for _, it := range s.Items {
			sign := "+"
			if !it.Expense {
				sign = "-"
			}
			fmt.Fprintf(w, "  [%-7s] %s %-46s %18s  %d/%d reviewed\n",
				it.Flag, sign, it.Name, amount(it.Amount),
				it.Review.Total-it.Review.Pending, it.Review.Total)
		}
		fmt.Fprintln(w, strings.Repeat("-", 78))
		readiness := "review incomplete"
		if s.Ready {
			readiness = "fully reviewed"
		}
		fmt.Fprintf(w, "  Net revenue requirement: %s (%s)\n", Cr(s.NetRequirement), readiness)

		if la, ok := u.(unit.LossAnalyzer); ok {
			for _, r := range la.LossRecords() {
				fmt.Fprintf(w, "  Loss analysis [%-7s] %s: %s\n",
					r.EffectiveFlag(), r.HeuristicName, r.RecommendationText)
			}
		}
	}
	return nil
}

// WriteDrillDown writes every record behind one line item, with the
// full calculation trace.
func WriteDrillDown(w io.Writer, u unit.Unit, key string) error {
	item, err := u.Item(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s / %s (%s)\n", u.Name(), item.Name, item.Pattern)
	for _, r := range item.Records() {
		fmt.Fprintln(w, strings.Repeat("-", 78))
		fmt.Fprintf(w, "%s  %s  [%s]\n", r.HeuristicID, r.HeuristicName, r.EffectiveFlag())
		fmt.Fprintf(w, "  Claimed %s | Allowable %s | Recommended %s\n",
			amount(r.ClaimedValue), amount(r.AllowableValue), amount(r.ResolvedAmount()))
		for _, step := range r.CalculationSteps {
			fmt.Fprintf(w, "    %s\n", step)
		}
		fmt.Fprintf(w, "  %s\n", r.RecommendationText)
		if r.RegulatoryBasis != "" {
			fmt.Fprintf(w, "  Basis: %s\n", r.RegulatoryBasis)
		}
		fmt.Fprintf(w, "  Review: %s", r.StaffReviewStatus)
		if r.ReviewedBy != "" {
			fmt.Fprintf(w, " by %s", r.ReviewedBy)
		}
		if r.StaffJustification != "" {
			fmt.Fprintf(w, " (%s)", r.StaffJustification)
		}
		fmt.Fprintln(w)
	}
	return nil
}
