package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridreg/trueup-cli/internal/config"
	"github.com/gridreg/trueup-cli/internal/fy"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "trueup",
	Short: "Truing-up assessment for the three SBU revenue requirements",
	Long:  "Runs the Commission's truing-up heuristics over the generation, transmission and distribution business units, tracks staff review of every assessment record, and exports the working papers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadScenario resolves the dataset for a run: an explicit --scenario
// flag wins, then the configured path, then the built-in FY 2023-24
// figures.
func loadScenario(path string) (*fy.Scenario, error) {
	if path == "" {
		path = cfg.Scenario.Path
	}
	if path == "" {
		return fy.Defaults(), nil
	}
	return fy.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
