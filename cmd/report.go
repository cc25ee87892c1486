package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridreg/trueup-cli/internal/evaluate"
	"github.com/gridreg/trueup-cli/internal/report"
)

var (
	reportScenario string
	reportOut      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Evaluate all units and export the working-paper workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := reportOut
		if out == "" {
			out = cfg.Report.Output
		}
		cfg.Report.Output = out
		if err := cfg.Validate("report"); err != nil {
			return err
		}

		sc, err := loadScenario(reportScenario)
		if err != nil {
			return err
		}
		g, t, d, err := evaluate.All(sc)
		if err != nil {
			return err
		}

		if err := report.Save(out, g, t, d); err != nil {
			return err
		}
		zap.L().Info("workbook written",
			zap.String("path", out),
			zap.String("year", sc.Year),
		)
		return report.WriteSummary(os.Stdout, g, t, d)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportScenario, "scenario", "", "YAML scenario overlay (default: built-in FY 2023-24)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "workbook path (default from config)")
	rootCmd.AddCommand(reportCmd)
}
