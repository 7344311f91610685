package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fiilgen/internal/config"
	"fiilgen/internal/dataset"
	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
	"fiilgen/internal/runlog"
	"fiilgen/internal/verbs"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate training examples for the selected verbs",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntP("top-n", "n", 0, "Number of verbs to process (default from config)")
	f.Int("start-from", 0, "Frequency rank to start from (1-based)")
	f.String("level", "", "Maximum language level: A1, A2, B1, or B2")
	f.Bool("batch", false, "One request per (verb, tense) instead of per combination")
	f.Bool("regenerate", false, "Regenerate combinations whose files already exist")
	f.StringP("output", "o", "", "Training example output directory")
	f.String("verbs", "", "Path to the verb frequency CSV")
	f.String("exclusions", "", "Path to the verb/tense exclusions file")
	f.String("template", "", "Path to a system prompt template file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	selected, err := selectVerbs(cfg)
	if err != nil {
		return err
	}
	excl := grammar.LoadExclusions(cfg.Paths.Exclusions, logger.Sugar().Warnf)
	units := examplegen.Enumerate(selected, cfg.Level(), cfg.Run.Batch, excl)
	logger.Info("run planned",
		zap.Int("verbs", len(selected)),
		zap.Int("units", len(units)),
		zap.String("level", string(cfg.Level())),
		zap.Bool("batch", cfg.Run.Batch))

	stats := runlog.NewStats()
	eventLog, err := runlog.OpenEventLog(cfg.Paths.EventLog, runMode(cfg), string(cfg.Level()), logger)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer eventLog.Close()

	gwCfg := cfg.LLMConfig()
	if err := gwCfg.Validate(); err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, gwCfg, runlog.Tee(stats, eventLog), func(from, to string) {
		logger.Warn("model quota exhausted, rotating", zap.String("from", from), zap.String("to", to))
	})
	if err != nil {
		return fmt.Errorf("build provider: %w", err)
	}

	prompts, err := examplegen.NewPromptBuilder(cfg.Paths.PromptTemplate)
	if err != nil {
		return err
	}
	gen := examplegen.New(provider, prompts, cfg.GenConfig(), logger)
	store := dataset.NewStore(cfg.Paths.OutputDir, logger)

	// The summary is printed and the run row stamped on every exit path,
	// interrupts included.
	defer func() {
		summary := stats.Snapshot()
		eventLog.FinishRun(summary)
		fmt.Println(summary)
	}()

	return processUnits(ctx, units, cfg, gen, store, stats, eventLog, logger)
}

func processUnits(ctx context.Context, units []examplegen.Unit, cfg config.Config,
	gen *examplegen.Orchestrator, store *dataset.Store,
	stats *runlog.Stats, eventLog *runlog.EventLog, logger *zap.Logger) error {

	for _, unit := range units {
		if ctx.Err() != nil {
			logger.Warn("interrupted, flushing partial run", zap.Error(ctx.Err()))
			return nil
		}
		if cfg.Run.SkipExisting && store.Exists(unit) {
			stats.RecordSkipped(unit.Verb.Turkish)
			eventLog.RecordUnit(unit.String(), "skipped", 0, nil)
			continue
		}

		res, err := gen.GenerateUnit(ctx, unit)
		if err != nil {
			if fatal, retErr := classifyUnitError(unit, err, stats, eventLog, logger); fatal {
				return retErr
			}
			continue
		}

		if err := saveAll(store, res.Examples); err != nil {
			var pve *dataset.PersistenceValidationError
			if errors.As(err, &pve) {
				logger.Error("dropping unit, example failed the save-time check",
					zap.String("unit", unit.String()), zap.Error(err))
				stats.RecordUnit(unit.Verb.Turkish, false)
				eventLog.RecordUnit(unit.String(), "failed", res.Attempts, err)
				continue
			}
			return fmt.Errorf("persist %s: %w", unit, err)
		}

		stats.RecordUnit(unit.Verb.Turkish, true)
		eventLog.RecordUnit(unit.String(), "generated", res.Attempts, nil)
		logger.Info("unit generated",
			zap.String("unit", unit.String()),
			zap.Int("examples", len(res.Examples)),
			zap.Int("attempts", res.Attempts))
	}
	return nil
}

// classifyUnitError decides whether a generation failure ends the run.
// Quota exhaustion with no rotation target and configuration problems are
// fatal; a unit that spent its validation budget is logged and skipped.
func classifyUnitError(unit examplegen.Unit, err error,
	stats *runlog.Stats, eventLog *runlog.EventLog, logger *zap.Logger) (bool, error) {

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("interrupted, flushing partial run", zap.Error(err))
		return true, nil
	}

	var exhausted *examplegen.ErrUnitExhausted
	if errors.As(err, &exhausted) {
		logger.Error("unit failed validation on every attempt",
			zap.String("unit", unit.String()),
			zap.Int("attempts", exhausted.Attempts),
			zap.Error(exhausted.LastErr))
		stats.RecordUnit(unit.Verb.Turkish, false)
		eventLog.RecordUnit(unit.String(), "failed", exhausted.Attempts, err)
		return false, nil
	}

	stats.RecordUnit(unit.Verb.Turkish, false)
	eventLog.RecordUnit(unit.String(), "failed", 0, err)

	var quota *llm.ErrQuotaExhausted
	if errors.As(err, &quota) {
		return true, fmt.Errorf("every model's quota is exhausted (last: %s); stopping run", quota.Model)
	}
	var confErr *examplegen.ConfigurationError
	if errors.As(err, &confErr) {
		return true, err
	}

	// Transport budget spent on a transient failure: this unit is lost,
	// but the next one may hit a healthy backend window.
	var unavailable *llm.ErrProviderUnavailable
	var limited *llm.ErrRateLimit
	if errors.As(err, &unavailable) || errors.As(err, &limited) {
		logger.Error("unit failed, transport retries exhausted",
			zap.String("unit", unit.String()), zap.Error(err))
		return false, nil
	}

	return true, fmt.Errorf("unit %s: %w", unit, err)
}

func saveAll(store *dataset.Store, examples []examplegen.TrainingExample) error {
	for i := range examples {
		if _, err := store.Save(&examples[i]); err != nil {
			return err
		}
	}
	return nil
}

// selectVerbs loads the frequency list and keeps top_n_verbs starting at
// rank start_from.
func selectVerbs(cfg config.Config) ([]verbs.Verb, error) {
	list, err := verbs.Load(cfg.Paths.VerbsCSV)
	if err != nil {
		return nil, fmt.Errorf("load verbs: %w", err)
	}
	var selected []verbs.Verb
	for _, v := range list {
		if v.Rank < cfg.Run.StartFrom {
			continue
		}
		selected = append(selected, v)
		if len(selected) == cfg.Run.TopN {
			break
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no verbs at rank %d or above in %s", cfg.Run.StartFrom, cfg.Paths.VerbsCSV)
	}
	return selected, nil
}

func runMode(cfg config.Config) string {
	if cfg.Run.Batch {
		return "batch"
	}
	return "single"
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if n, _ := f.GetInt("top-n"); n > 0 {
		cfg.Run.TopN = n
	}
	if n, _ := f.GetInt("start-from"); n > 0 {
		cfg.Run.StartFrom = n
	}
	if s, _ := f.GetString("level"); s != "" {
		cfg.Run.Level = s
	}
	if f.Changed("batch") {
		cfg.Run.Batch, _ = f.GetBool("batch")
	}
	if regen, _ := f.GetBool("regenerate"); regen {
		cfg.Run.SkipExisting = false
	}
	if s, _ := f.GetString("output"); s != "" {
		cfg.Paths.OutputDir = s
	}
	if s, _ := f.GetString("verbs"); s != "" {
		cfg.Paths.VerbsCSV = s
	}
	if s, _ := f.GetString("exclusions"); s != "" {
		cfg.Paths.Exclusions = s
	}
	if s, _ := f.GetString("template"); s != "" {
		cfg.Paths.PromptTemplate = s
	}
}
