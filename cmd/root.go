package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fiilgen/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "fiilgen",
	Short: "Turkish verb conjugation dataset generator",
	Long: "Fiilgen generates LLM-validated Turkish verb conjugation training examples:\n" +
		"one JSON file per (verb, tense, pronoun, polarity) combination, plus navigation\n" +
		"indexes and a consolidated dataset.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides FIILGEN_* env vars)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration from defaults, the optional
// --config file, and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger builds the run logger. Debug mode switches to the development
// encoder with per-call detail; the default is terse console output.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	if !debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		zc.DisableCaller = true
	}
	return zc.Build()
}
