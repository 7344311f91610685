// Package dataset is the persistence layer: deterministic file naming,
// idempotent saves with a final validation gate, and the derived artifacts
// (navigation indexes, consolidated corpus, offline validation report).
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"fiilgen/internal/grammar"
)

// FileName derives the per-combination file name. The rule is bit-exact;
// downstream indexing parses these names back:
// {pronoun|"none"}_{infinitive}_{tense}{"_olumsuz" if negative}.json
// Spaces in a multi-word infinitive become underscores.
func FileName(pronoun grammar.Pronoun, infinitive string, tense grammar.Tense, polarity grammar.Polarity) string {
	p := string(pronoun)
	if p == "" {
		p = "none"
	}
	infinitive = strings.ReplaceAll(infinitive, " ", "_")
	suffix := ""
	if polarity == grammar.Negative {
		suffix = "_olumsuz"
	}
	return fmt.Sprintf("%s_%s_%s%s.json", p, infinitive, tense, suffix)
}

// FolderName derives the per-verb folder from the English verb name: the
// leading "to " stripped, spaces replaced by underscores.
func FolderName(english string) string {
	name := strings.TrimPrefix(english, "to ")
	return strings.ReplaceAll(name, " ", "_")
}

// examplePath joins the dataset root, verb folder, and file name.
func examplePath(root, english string, pronoun grammar.Pronoun, infinitive string, tense grammar.Tense, polarity grammar.Polarity) string {
	return filepath.Join(root, FolderName(english), FileName(pronoun, infinitive, tense, polarity))
}
