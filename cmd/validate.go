package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fiilgen/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-check every persisted training example offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Paths.OutputDir = dir
		}

		report, err := dataset.ValidateFiles(cfg.Paths.OutputDir)
		if err != nil {
			return fmt.Errorf("validate dataset: %w", err)
		}

		if out, _ := cmd.Flags().GetString("report"); out != "" {
			if err := report.WriteReport(out); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Println("report written to", out)
		}

		fmt.Println(report.Summary())
		if report.TotalErrors > 0 {
			return fmt.Errorf("%d problems found", report.TotalErrors)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("output", "o", "", "Training example directory to validate")
	validateCmd.Flags().String("report", "", "Write the full JSON report to this path")
}
