package examplegen

import (
	"fiilgen/internal/grammar"
	"fiilgen/internal/verbs"
)

// Enumerate expands the verb list into generation units in deterministic
// order: verbs in input order, tenses in form-table order, pronouns in
// pronoun-set order, positive before negative. Tenses above maxLevel and
// (verb, tense) pairs in the exclusion table are skipped. The applicable
// pronoun set always comes from the form table, never per-unit guessing.
func Enumerate(list []verbs.Verb, maxLevel grammar.Level, batch bool, excl grammar.Exclusions) []Unit {
	var units []Unit
	for _, v := range list {
		for _, form := range grammar.Forms {
			if !form.Level.AtMost(maxLevel) {
				continue
			}
			if excl.Excluded(v.Turkish, form.Tense) {
				continue
			}
			if batch {
				units = append(units, Unit{Verb: v, Form: form, Batch: true})
				continue
			}
			pronouns := form.Category.Pronouns()
			if pronouns == nil {
				for _, pol := range grammar.Polarities {
					units = append(units, Unit{Verb: v, Form: form, Polarity: pol})
				}
				continue
			}
			for _, pr := range pronouns {
				for _, pol := range grammar.Polarities {
					units = append(units, Unit{Verb: v, Form: form, Pronoun: pr, Polarity: pol})
				}
			}
		}
	}
	return units
}
