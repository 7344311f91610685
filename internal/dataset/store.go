package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/verbs"
)

// PersistenceValidationError is the final gate rejecting an example at
// save time. It is not retryable at generation time: the model would most
// likely reproduce the same mistake, so the unit is logged for manual
// follow-up instead.
type PersistenceValidationError struct {
	Path string
	Err  error
}

func (e *PersistenceValidationError) Error() string {
	return fmt.Sprintf("refusing to persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceValidationError) Unwrap() error { return e.Err }

// Store writes validated examples under a dataset root, one JSON file per
// (verb, tense, pronoun, polarity) combination.
type Store struct {
	root       string
	validators []examplegen.Validator
	logger     *zap.Logger
}

// NewStore creates a store rooted at dir. A nil logger disables logging.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		root: dir,
		// The save-time gate re-checks the invariants that matter for
		// persisted data; structural request matching happened upstream.
		validators: []examplegen.Validator{
			examplegen.AffixAgreementValidator{},
			examplegen.VerbPresenceValidator{},
		},
		logger: logger,
	}
}

// Root returns the dataset root directory.
func (s *Store) Root() string { return s.root }

// Save re-validates the example and writes it to its deterministic path,
// creating the verb folder as needed. Inconsistent examples are rejected
// with a PersistenceValidationError rather than written.
func (s *Store) Save(ex *examplegen.TrainingExample) (string, error) {
	tv := ex.TurkishVerb
	path := examplePath(s.root, ex.VerbEnglish, tv.PersonalPronoun, ex.VerbInfinitive, tv.VerbTense, tv.Polarity)

	form, ok := grammar.FormFor(tv.VerbTense)
	if !ok {
		return "", &PersistenceValidationError{Path: path, Err: fmt.Errorf("unknown tense %q", tv.VerbTense)}
	}
	unit := examplegen.Unit{
		Verb:     verbs.Verb{Rank: ex.VerbRank, English: ex.VerbEnglish, Russian: ex.VerbRussian, Turkish: ex.VerbInfinitive},
		Form:     form,
		Pronoun:  tv.PersonalPronoun,
		Polarity: tv.Polarity,
	}
	for _, v := range s.validators {
		if verr := v.Validate(ex, unit); verr != nil {
			return "", &PersistenceValidationError{Path: path, Err: verr}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create verb folder: %w", err)
	}
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal example: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Debug("saved example", zap.String("path", path))
	return path, nil
}

// Exists reports whether the unit's output is already on disk, using the
// same naming rule as Save. A batch unit exists only when every expected
// (pronoun, polarity) file is present; a partial batch is regenerated.
func (s *Store) Exists(unit examplegen.Unit) bool {
	if !unit.Batch {
		return s.fileExists(unit.Pronoun, unit.Polarity, unit)
	}
	for _, p := range unit.ExpectedPairs() {
		if !s.fileExists(p.Pronoun, p.Polarity, unit) {
			return false
		}
	}
	return true
}

func (s *Store) fileExists(pronoun grammar.Pronoun, polarity grammar.Polarity, unit examplegen.Unit) bool {
	path := examplePath(s.root, unit.Verb.English, pronoun, unit.Verb.Turkish, unit.Form.Tense, polarity)
	_, err := os.Stat(path)
	return err == nil
}
