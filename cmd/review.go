package main

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridreg/trueup-cli/internal/assessment"
	"github.com/gridreg/trueup-cli/internal/evaluate"
	"github.com/gridreg/trueup-cli/internal/report"
	"github.com/gridreg/trueup-cli/internal/unit"
)

var (
	reviewScenario      string
	reviewAction        string
	reviewReviewer      string
	reviewJustification string
	reviewFlag          string
	reviewAmount        float64
	reviewRemarks       string
)

var reviewCmd = &cobra.Command{
	Use:   "review <G|T|D> <item> <heuristic>",
	Short: "Apply a staff review action to one assessment record",
	Long:  "Evaluates the unit in memory, applies the review action to the named record, and prints the resulting drill-down. Long-lived review sessions are served by `trueup serve`.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("review"); err != nil {
			return err
		}
		sc, err := loadScenario(reviewScenario)
		if err != nil {
			return err
		}

		u, err := unit.ForCode(args[0])
		if err != nil {
			return err
		}
		if err := evaluate.Unit(u, sc); err != nil {
			return err
		}

		item, err := u.Item(args[1])
		if err != nil {
			return err
		}
		rec, err := item.Record(args[2])
		if err != nil {
			return err
		}

		reviewer := reviewReviewer
		if reviewer == "" {
			reviewer = cfg.Review.DefaultReviewer
		}

		switch reviewAction {
		case "accept":
			err = rec.Accept(reviewer)
		case "override-flag":
			err = rec.OverrideFlag(reviewer, reviewJustification, assessment.Flag(strings.ToUpper(reviewFlag)))
		case "override-amount":
			err = rec.OverrideAmount(reviewer, reviewJustification, reviewAmount)
		case "remarks":
			err = rec.AddRemarks(reviewer, reviewRemarks)
		default:
			return eris.Errorf("review: unknown action %q (want accept, override-flag, override-amount or remarks)", reviewAction)
		}
		if err != nil {
			return err
		}

		zap.L().Info("review action applied",
			zap.String("sbu", u.Code()),
			zap.String("item", item.Key),
			zap.String("heuristic", rec.HeuristicID),
			zap.String("action", reviewAction),
			zap.String("reviewer", reviewer),
		)
		return report.WriteDrillDown(os.Stdout, u, item.Key)
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewScenario, "scenario", "", "YAML scenario overlay (default: built-in FY 2023-24)")
	reviewCmd.Flags().StringVar(&reviewAction, "action", "accept", "accept | override-flag | override-amount | remarks")
	reviewCmd.Flags().StringVar(&reviewReviewer, "reviewer", "", "reviewer name (default from config)")
	reviewCmd.Flags().StringVar(&reviewJustification, "justification", "", "justification for overrides")
	reviewCmd.Flags().StringVar(&reviewFlag, "flag", "", "replacement flag for override-flag")
	reviewCmd.Flags().Float64Var(&reviewAmount, "amount", 0, "replacement amount (Cr) for override-amount")
	reviewCmd.Flags().StringVar(&reviewRemarks, "remarks", "", "remarks text for the remarks action")
	rootCmd.AddCommand(reviewCmd)
}
