// Package verbs loads the frequency-ranked verb list driving generation.
package verbs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Verb is one row of the verb list.
type Verb struct {
	Rank    int
	English string // English infinitive, usually with a leading "to "
	Russian string
	Turkish string // Turkish infinitive, e.g. "olmak"
}

// Load parses a semicolon-delimited verb CSV with columns
// Rank;English;Russian;Turkish. Header names and field values are trimmed;
// the source files pad them with spaces.
func Load(path string) ([]Verb, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open verb list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse verb list %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("verb list %s is empty", path)
	}

	idx := map[string]int{}
	for i, name := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range []string{"rank", "english", "russian", "turkish"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("verb list %s: missing column %q", path, col)
		}
	}

	out := make([]Verb, 0, len(rows)-1)
	for n, row := range rows[1:] {
		field := func(col string) string { return strings.TrimSpace(row[idx[col]]) }
		rank, err := strconv.Atoi(field("rank"))
		if err != nil {
			return nil, fmt.Errorf("verb list %s row %d: bad rank %q", path, n+2, field("rank"))
		}
		out = append(out, Verb{
			Rank:    rank,
			English: field("english"),
			Russian: field("russian"),
			Turkish: field("turkish"),
		})
	}
	return out, nil
}
