package runlog

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *EventLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	log, err := OpenEventLog(path, "single", "B2", nil)
	if err != nil {
		t.Fatalf("OpenEventLog: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return n
}

func TestEventLogRun(t *testing.T) {
	log := openTestLog(t)

	if log.RunID() == "" {
		t.Fatal("run ID must be set")
	}
	if n := countRows(t, log.db, `SELECT COUNT(*) FROM runs WHERE id = ?`, log.RunID()); n != 1 {
		t.Fatalf("expected 1 run row, got %d", n)
	}

	log.RecordCall("claude-haiku-4-5", 100, 50, 1200*time.Millisecond, nil)
	log.RecordCall("claude-haiku-4-5", 80, 0, 300*time.Millisecond, errors.New("rate limited"))
	log.RecordUnit("olmak/şimdiki_zaman/ben/positive", "generated", 1, nil)
	log.RecordUnit("olmak/şimdiki_zaman/ben/negative", "failed", 3, errors.New("attempts exhausted"))

	if n := countRows(t, log.db, `SELECT COUNT(*) FROM llm_calls WHERE run_id = ?`, log.RunID()); n != 2 {
		t.Errorf("expected 2 call rows, got %d", n)
	}
	if n := countRows(t, log.db, `SELECT COUNT(*) FROM llm_calls WHERE run_id = ? AND error IS NOT NULL`, log.RunID()); n != 1 {
		t.Errorf("expected 1 errored call row, got %d", n)
	}
	if n := countRows(t, log.db, `SELECT COUNT(*) FROM units WHERE run_id = ? AND outcome = 'failed'`, log.RunID()); n != 1 {
		t.Errorf("expected 1 failed unit row, got %d", n)
	}

	log.FinishRun(Summary{Generated: 1, Failed: 1, PromptTokens: 180, CompletionTokens: 50})
	var finished sql.NullString
	var generated int
	err := log.db.QueryRow(`SELECT finished_at, generated FROM runs WHERE id = ?`, log.RunID()).
		Scan(&finished, &generated)
	if err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if !finished.Valid || finished.String == "" {
		t.Error("finished_at not stamped")
	}
	if generated != 1 {
		t.Errorf("generated = %d, want 1", generated)
	}
}

func TestEventLogSeparateRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	first, err := OpenEventLog(path, "single", "A1", nil)
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := OpenEventLog(path, "batch", "B2", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if first.RunID() == second.RunID() {
		t.Error("runs must get distinct IDs")
	}
	if n := countRows(t, second.db, `SELECT COUNT(*) FROM runs`); n != 2 {
		t.Errorf("expected 2 run rows, got %d", n)
	}
}
