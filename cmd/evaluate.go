package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridreg/trueup-cli/internal/evaluate"
	"github.com/gridreg/trueup-cli/internal/report"
	"github.com/gridreg/trueup-cli/internal/unit"
)

var (
	evaluateAll      bool
	evaluateScenario string
	evaluateDrill    string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [G|T|D]",
	Short: "Run the truing-up heuristics for one unit or all three",
	Long:  "Without a unit code, evaluates all three units and feeds the generation and transmission net requirements into distribution's transfer items. With a code, evaluates that unit standalone against the scenario figures.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("evaluate"); err != nil {
			return err
		}
		sc, err := loadScenario(evaluateScenario)
		if err != nil {
			return err
		}

		if evaluateAll || len(args) == 0 {
			g, t, d, err := evaluate.All(sc)
			if err != nil {
				return err
			}
			zap.L().Info("evaluated all units",
				zap.String("year", sc.Year),
				zap.Float64("generation_cr", g.NetRequirement()),
				zap.Float64("transmission_cr", t.NetRequirement()),
				zap.Float64("distribution_cr", d.NetRequirement()),
			)
			return report.WriteSummary(os.Stdout, g, t, d)
		}

		u, err := unit.ForCode(args[0])
		if err != nil {
			return err
		}
		if err := evaluate.Unit(u, sc); err != nil {
			return err
		}
		zap.L().Info("evaluated unit",
			zap.String("year", sc.Year),
			zap.String("sbu", u.Code()),
			zap.Float64("net_requirement_cr", u.NetRequirement()),
		)

		if evaluateDrill != "" {
			return report.WriteDrillDown(os.Stdout, u, evaluateDrill)
		}
		return report.WriteSummary(os.Stdout, u)
	},
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateAll, "all", false, "evaluate all three units with live transfers")
	evaluateCmd.Flags().StringVar(&evaluateScenario, "scenario", "", "YAML scenario overlay (default: built-in FY 2023-24)")
	evaluateCmd.Flags().StringVar(&evaluateDrill, "drill", "", "print the record-level drill-down for one line item")
	rootCmd.AddCommand(evaluateCmd)
}
