package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
	"fiilgen/internal/runlog"
	"fiilgen/internal/verbs"
)

func classifyFixtures(t *testing.T) (examplegen.Unit, *runlog.Stats, *runlog.EventLog) {
	t.Helper()
	form, ok := grammar.FormFor("şimdiki_zaman")
	if !ok {
		t.Fatal("şimdiki_zaman missing from the form table")
	}
	unit := examplegen.Unit{
		Verb:     verbs.Verb{Rank: 1, English: "to be", Russian: "быть", Turkish: "olmak"},
		Form:     form,
		Pronoun:  grammar.Ben,
		Polarity: grammar.Positive,
	}
	stats := runlog.NewStats()
	eventLog, err := runlog.OpenEventLog(filepath.Join(t.TempDir(), "events.db"), "single", "B2", nil)
	if err != nil {
		t.Fatalf("open event log: %v", err)
	}
	t.Cleanup(func() { eventLog.Close() })
	return unit, stats, eventLog
}

func TestClassifyUnitError_TransportExhaustionSkipsUnit(t *testing.T) {
	unit, stats, eventLog := classifyFixtures(t)

	cases := []error{
		&llm.ErrProviderUnavailable{Err: errors.New("502 from backend")},
		&llm.ErrRateLimit{Err: errors.New("429 still limited")},
	}
	for _, cause := range cases {
		fatal, err := classifyUnitError(unit, cause, stats, eventLog, zap.NewNop())
		if fatal {
			t.Errorf("%T must not end the run", cause)
		}
		if err != nil {
			t.Errorf("%T: unexpected error %v", cause, err)
		}
	}
	if s := stats.Snapshot(); s.Failed != len(cases) {
		t.Fatalf("failed units = %d, want %d", s.Failed, len(cases))
	}
}

func TestClassifyUnitError_ExhaustedUnitSkipped(t *testing.T) {
	unit, stats, eventLog := classifyFixtures(t)

	cause := &examplegen.ErrUnitExhausted{Unit: unit, Attempts: 3, LastErr: errors.New("verb-presence")}
	fatal, err := classifyUnitError(unit, cause, stats, eventLog, zap.NewNop())
	if fatal || err != nil {
		t.Fatalf("exhausted unit should be skipped, got fatal=%v err=%v", fatal, err)
	}
	if s := stats.Snapshot(); s.Failed != 1 {
		t.Fatalf("failed units = %d, want 1", s.Failed)
	}
}

func TestClassifyUnitError_FatalCauses(t *testing.T) {
	unit, stats, eventLog := classifyFixtures(t)

	cases := []error{
		&llm.ErrQuotaExhausted{Model: "claude-haiku-4-5", Err: errors.New("daily limit")},
		&examplegen.ConfigurationError{Msg: "unknown tense"},
		errors.New("401 invalid api key"),
	}
	for _, cause := range cases {
		fatal, err := classifyUnitError(unit, cause, stats, eventLog, zap.NewNop())
		if !fatal {
			t.Errorf("%T must end the run", cause)
		}
		if err == nil {
			t.Errorf("%T: want a run-level error", cause)
		}
	}
}

func TestClassifyUnitError_CancellationFlushesQuietly(t *testing.T) {
	unit, stats, eventLog := classifyFixtures(t)

	fatal, err := classifyUnitError(unit, context.Canceled, stats, eventLog, zap.NewNop())
	if !fatal || err != nil {
		t.Fatalf("cancellation should end the loop without an error, got fatal=%v err=%v", fatal, err)
	}
	if s := stats.Snapshot(); s.Failed != 0 {
		t.Fatalf("cancellation must not count a failed unit, got %d", s.Failed)
	}
}
