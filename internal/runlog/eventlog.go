package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// EventLog appends run, call, and unit events to a SQLite database so runs
// can be analyzed after the fact. Every write is fire-and-forget: failures
// are logged through the injected logger and never surface to the caller.
type EventLog struct {
	db     *sql.DB
	runID  string
	logger *zap.Logger
}

const eventLogSchema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    mode TEXT NOT NULL,
    level TEXT NOT NULL,
    generated INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0,
    prompt_tokens INTEGER DEFAULT 0,
    completion_tokens INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS llm_calls (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    model TEXT NOT NULL,
    prompt_tokens INTEGER NOT NULL,
    completion_tokens INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    error TEXT,
    called_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS units (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    unit TEXT NOT NULL,
    outcome TEXT NOT NULL,
    attempts INTEGER DEFAULT 0,
    error TEXT,
    processed_at TEXT DEFAULT (datetime('now'))
);
`

// OpenEventLog creates or opens the event database and registers a new
// run row. A nil logger disables logging.
func OpenEventLog(path, mode, level string, logger *zap.Logger) (*EventLog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create event log directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(eventLogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create event log schema: %w", err)
	}

	l := &EventLog{db: db, runID: uuid.NewString(), logger: logger}
	_, err = db.Exec(
		`INSERT INTO runs (id, started_at, mode, level) VALUES (?, ?, ?, ?)`,
		l.runID, time.Now().UTC().Format(time.RFC3339), mode, level,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return l, nil
}

// RunID returns this run's identifier.
func (l *EventLog) RunID() string { return l.runID }

// RecordCall appends one provider-call row. Implements llm.CallRecorder.
func (l *EventLog) RecordCall(model string, promptTokens, completionTokens int, duration time.Duration, callErr error) {
	errText := sql.NullString{}
	if callErr != nil {
		errText = sql.NullString{String: callErr.Error(), Valid: true}
	}
	_, err := l.db.Exec(
		`INSERT INTO llm_calls (run_id, model, prompt_tokens, completion_tokens, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.runID, model, promptTokens, completionTokens, duration.Milliseconds(), errText,
	)
	if err != nil {
		l.logger.Warn("event log write failed", zap.String("table", "llm_calls"), zap.Error(err))
	}
}

// RecordUnit appends one unit outcome ("generated", "skipped", "failed").
func (l *EventLog) RecordUnit(unit, outcome string, attempts int, unitErr error) {
	errText := sql.NullString{}
	if unitErr != nil {
		errText = sql.NullString{String: unitErr.Error(), Valid: true}
	}
	_, err := l.db.Exec(
		`INSERT INTO units (run_id, unit, outcome, attempts, error) VALUES (?, ?, ?, ?, ?)`,
		l.runID, unit, outcome, attempts, errText,
	)
	if err != nil {
		l.logger.Warn("event log write failed", zap.String("table", "units"), zap.Error(err))
	}
}

// FinishRun stamps the run row with its final counters.
func (l *EventLog) FinishRun(s Summary) {
	_, err := l.db.Exec(
		`UPDATE runs SET finished_at = ?, generated = ?, skipped = ?, failed = ?,
		 prompt_tokens = ?, completion_tokens = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339),
		s.Generated, s.Skipped, s.Failed, s.PromptTokens, s.CompletionTokens,
		l.runID,
	)
	if err != nil {
		l.logger.Warn("event log write failed", zap.String("table", "runs"), zap.Error(err))
	}
}

// Close closes the database.
func (l *EventLog) Close() error { return l.db.Close() }
