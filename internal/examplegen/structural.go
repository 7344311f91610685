package examplegen

import (
	"fmt"

	"fiilgen/internal/grammar"
)

// StructuralValidator checks that the reply answers the question that was
// asked: non-empty core fields and tense/pronoun/polarity matching the
// request. In batch mode pronoun and polarity are checked by the
// completeness stage instead.
type StructuralValidator struct{}

func (StructuralValidator) Name() string { return "structural" }

func (StructuralValidator) Validate(ex *TrainingExample, unit Unit) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: "structural", Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	tv := ex.TurkishVerb
	if tv.VerbFull == "" {
		return fail("turkish_verb.verb_full is empty")
	}
	if tv.Root == "" {
		return fail("turkish_verb.root is empty")
	}
	if ex.TurkishExampleSentence == "" {
		return fail("turkish_example_sentence is empty")
	}
	if ex.EnglishExampleSentence == "" {
		return fail("english_example_sentence is empty")
	}
	if tv.VerbTense != unit.Form.Tense {
		return fail("verb_tense is %q but the request asked for %q", tv.VerbTense, unit.Form.Tense)
	}
	if ex.VerbInfinitive != unit.Verb.Turkish {
		return fail("verb_infinitive is %q but the request asked for %q", ex.VerbInfinitive, unit.Verb.Turkish)
	}

	if !unit.Batch {
		if tv.PersonalPronoun != unit.Pronoun {
			return fail("personal_pronoun is %q but the request asked for %q", tv.PersonalPronoun, unit.Pronoun)
		}
		if tv.Polarity != unit.Polarity {
			return fail("polarity is %q but the request asked for %q", tv.Polarity, unit.Polarity)
		}
	}
	return nil
}

// AffixAgreementValidator enforces that a negative affix is present exactly
// when the polarity is negative.
type AffixAgreementValidator struct{}

func (AffixAgreementValidator) Name() string { return "affix-agreement" }

func (AffixAgreementValidator) Validate(ex *TrainingExample, _ Unit) *ValidationError {
	tv := ex.TurkishVerb
	switch {
	case tv.Polarity == grammar.Negative && tv.NegativeAffix == "":
		return &ValidationError{
			Validator: "affix-agreement",
			Message:   fmt.Sprintf("polarity is negative but negative_affix is empty in %q", tv.VerbFull),
			Retryable: true,
		}
	case tv.Polarity == grammar.Positive && tv.NegativeAffix != "":
		return &ValidationError{
			Validator: "affix-agreement",
			Message:   fmt.Sprintf("polarity is positive but negative_affix %q is set in %q", tv.NegativeAffix, tv.VerbFull),
			Retryable: true,
		}
	}
	return nil
}
