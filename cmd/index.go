package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fiilgen/internal/dataset"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the navigation indexes over the persisted dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Paths.OutputDir = dir
		}
		if dir, _ := cmd.Flags().GetString("index-dir"); dir != "" {
			cfg.Paths.IndexDir = dir
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		idx, err := dataset.BuildIndexes(cfg.Paths.OutputDir, cfg.Paths.IndexDir, logger)
		if err != nil {
			return fmt.Errorf("build indexes: %w", err)
		}
		fmt.Printf("indexed %d verbs under %s\n", idx.TotalVerbs, cfg.Paths.IndexDir)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringP("output", "o", "", "Training example directory to index")
	indexCmd.Flags().String("index-dir", "", "Directory the indexes are written to")
}
