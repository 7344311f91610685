package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fiilgen/internal/dataset"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge per-combination files into one training dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("top-n"); n > 0 {
			cfg.Run.TopN = n
		}
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Paths.OutputDir = dir
		}
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = filepath.Join(cfg.Paths.IndexDir, "consolidated_training_data.json")
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		selected, err := selectVerbs(cfg)
		if err != nil {
			return err
		}
		merged, err := dataset.Consolidate(cfg.Paths.OutputDir, selected, outPath, logger)
		if err != nil {
			return fmt.Errorf("consolidate: %w", err)
		}
		fmt.Printf("wrote %d examples for %d verbs to %s\n",
			merged.Metadata.TotalExamples, merged.Metadata.TotalVerbs, outPath)
		return nil
	},
}

func init() {
	consolidateCmd.Flags().IntP("top-n", "n", 0, "Number of verbs to include (default from config)")
	consolidateCmd.Flags().StringP("output", "o", "", "Training example directory to read")
	consolidateCmd.Flags().String("out", "", "Consolidated output file path")
}
