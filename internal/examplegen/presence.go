package examplegen

import (
	"fmt"
	"strings"

	"fiilgen/internal/grammar"
)

// VerbPresenceValidator checks that the Turkish sentence actually contains
// the verb: the full conjugated form, the bare root, or the
// consonant-softened root, case-insensitively.
type VerbPresenceValidator struct{}

func (VerbPresenceValidator) Name() string { return "verb-presence" }

func (VerbPresenceValidator) Validate(ex *TrainingExample, _ Unit) *ValidationError {
	tv := ex.TurkishVerb
	if grammar.ContainsVerbForm(ex.TurkishExampleSentence, tv.Root, tv.VerbFull) {
		return nil
	}

	tried := []string{tv.VerbFull, tv.Root}
	if soft := grammar.Soften(tv.Root); soft != "" {
		tried = append(tried, soft)
	}
	return &ValidationError{
		Validator: "verb-presence",
		Message: fmt.Sprintf("the conjugated verb %q (root %q, also tried: %s) does not appear in the Turkish sentence %q",
			tv.VerbFull, tv.Root, strings.Join(tried, ", "), ex.TurkishExampleSentence),
		Retryable: true,
	}
}
