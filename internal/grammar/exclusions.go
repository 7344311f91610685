package grammar

import (
	"encoding/json"
	"fmt"
	"os"
)

// Exclusions maps a Turkish infinitive to the tenses that must not be
// generated for it. Some verbs have no natural form in certain moods
// (e.g. defective auxiliaries in the imperative).
type Exclusions map[string]map[Tense]bool

// Excluded reports whether the tense is excluded for the infinitive.
func (e Exclusions) Excluded(infinitive string, tense Tense) bool {
	return e[infinitive][tense]
}

// LoadExclusions reads an exclusion table from a JSON file shaped as
// {"infinitive": ["tense", ...], ...}. Unknown tense names are skipped and
// reported through warn; a malformed file is treated as no exclusions.
// An empty path yields an empty table.
func LoadExclusions(path string, warn func(format string, args ...any)) Exclusions {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	out := Exclusions{}
	if path == "" {
		return out
	}

	data, err := os.ReadFile(path)
	if err != nil {
		warn("exclusion table %s unreadable, ignoring: %v", path, err)
		return out
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		warn("exclusion table %s malformed, ignoring: %v", path, err)
		return out
	}

	for infinitive, tenses := range raw {
		for _, name := range tenses {
			t := Tense(name)
			if !ValidTense(t) {
				warn("exclusion table %s: unknown tense %q for %q, skipping", path, name, infinitive)
				continue
			}
			if out[infinitive] == nil {
				out[infinitive] = map[Tense]bool{}
			}
			out[infinitive][t] = true
		}
	}
	return out
}

// String renders the table for logging.
func (e Exclusions) String() string {
	return fmt.Sprintf("exclusions(%d verbs)", len(e))
}
