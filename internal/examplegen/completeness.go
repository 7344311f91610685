package examplegen

import (
	"fmt"
	"sort"
	"strings"

	"fiilgen/internal/grammar"
)

// CheckCompleteness verifies a batch reply covers exactly the expected
// (pronoun, polarity) set for the unit's tense: every required combination
// present once, nothing else. Missing and extra combinations are named in
// the message so the model can fill the precise gaps.
func CheckCompleteness(examples []TrainingExample, unit Unit) *ValidationError {
	expected := unit.ExpectedPairs()

	seen := make(map[grammar.PronounPolarity]int, len(examples))
	for _, ex := range examples {
		seen[ex.TurkishVerb.Pair()]++
	}

	var missing, extra []string
	for _, p := range expected {
		if seen[p] == 0 {
			missing = append(missing, p.String())
			continue
		}
		if seen[p] > 1 {
			extra = append(extra, fmt.Sprintf("%s ×%d", p, seen[p]))
		}
		delete(seen, p)
	}
	var unexpected []string
	for p, n := range seen {
		for i := 0; i < n; i++ {
			unexpected = append(unexpected, p.String())
		}
	}
	sort.Strings(unexpected)
	extra = append(extra, unexpected...)

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "the batch must contain exactly %d examples, one per (pronoun, polarity) combination; got %d",
		len(expected), len(examples))
	if len(missing) > 0 {
		fmt.Fprintf(&sb, "; missing: %s", strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		fmt.Fprintf(&sb, "; unexpected: %s", strings.Join(extra, ", "))
	}
	return &ValidationError{Validator: "completeness", Message: sb.String(), Retryable: true}
}
