package examplegen

import (
	"fmt"
	"strings"
)

const turkishVowels = "aeıioöuü"

// ReconstructionValidator checks that root + negative affix + tense affix +
// personal affix reproduces verb_full. One vowel drop is tolerated at an
// affix boundary where a vowel-final part meets a vowel-initial part
// (e.g. "bekle" + "iyor" → "bekliyor").
type ReconstructionValidator struct{}

func (ReconstructionValidator) Name() string { return "reconstruction" }

func (ReconstructionValidator) Validate(ex *TrainingExample, _ Unit) *ValidationError {
	tv := ex.TurkishVerb
	parts := []string{tv.Root, tv.NegativeAffix, tv.TenseAffix, tv.PersonalAffix}
	want := strings.ToLower(tv.VerbFull)

	candidates := reconstructions(parts)
	for _, c := range candidates {
		if strings.ToLower(c) == want {
			return nil
		}
	}

	return &ValidationError{
		Validator: "reconstruction",
		Message: fmt.Sprintf("root %q + negative_affix %q + tense_affix %q + personal_affix %q gives %q, which does not reconstruct verb_full %q",
			tv.Root, tv.NegativeAffix, tv.TenseAffix, tv.PersonalAffix, candidates[0], tv.VerbFull),
		Retryable: true,
	}
}

// reconstructions returns the exact concatenation plus every variant with
// one vowel dropped at a vowel/vowel part boundary.
func reconstructions(parts []string) []string {
	out := []string{strings.Join(parts, "")}
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "" || !endsWithVowel(parts[i]) {
			continue
		}
		next := firstNonEmpty(parts[i+1:])
		if next == "" || !startsWithVowel(next) {
			continue
		}
		dropped := make([]string, len(parts))
		copy(dropped, parts)
		dropped[i] = trimLastRune(parts[i])
		out = append(out, strings.Join(dropped, ""))
	}
	return out
}

func firstNonEmpty(parts []string) string {
	for _, p := range parts {
		if p != "" {
			return p
		}
	}
	return ""
}

func endsWithVowel(s string) bool {
	runes := []rune(strings.ToLower(s))
	return len(runes) > 0 && strings.ContainsRune(turkishVowels, runes[len(runes)-1])
}

func startsWithVowel(s string) bool {
	runes := []rune(strings.ToLower(s))
	return len(runes) > 0 && strings.ContainsRune(turkishVowels, runes[0])
}

func trimLastRune(s string) string {
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
