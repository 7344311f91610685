// Package grammar holds the static tables describing the Turkish
// conjugation space: tenses, language levels, pronouns, polarity, and the
// per-tense pronoun rules that drive enumeration.
package grammar

// Level is a CEFR language proficiency level.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
)

var levelOrder = map[Level]int{A1: 0, A2: 1, B1: 2, B2: 3}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, ok := levelOrder[l]
	return ok
}

// AtMost reports whether l is at or below max in the A1 < A2 < B1 < B2 order.
func (l Level) AtMost(max Level) bool {
	return levelOrder[l] <= levelOrder[max]
}

// Polarity is the positive or negative form of a verb.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// Polarities lists both polarities in enumeration order.
var Polarities = []Polarity{Positive, Negative}

// Pronoun is a Turkish personal pronoun.
type Pronoun string

const (
	Ben   Pronoun = "ben"
	Sen   Pronoun = "sen"
	O     Pronoun = "o"
	Biz   Pronoun = "biz"
	Siz   Pronoun = "siz"
	Onlar Pronoun = "onlar"
)

// AllPronouns is the full six-pronoun set in enumeration order.
var AllPronouns = []Pronoun{Ben, Sen, O, Biz, Siz, Onlar}

// ImperativePronouns is the four-pronoun imperative subset. First person
// (ben, biz) has no imperative form.
var ImperativePronouns = []Pronoun{Sen, O, Siz, Onlar}
