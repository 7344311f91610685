package examplegen

import (
	"fmt"
	"os"
	"strings"

	"fiilgen/internal/grammar"
)

const defaultSystemPrompt = `You are a Turkish language expert creating verb-conjugation training examples for language learners.

Rules:
- Conjugate the verb correctly for the requested tense, pronoun and polarity, following Turkish vowel harmony and consonant softening.
- Decompose the conjugated form in the nested turkish_verb object: root, negative affix (negative polarity only), tense affix, personal affix. The pieces, concatenated in that order, must reproduce verb_full.
- verb_full must appear verbatim inside the Turkish example sentence.
- Write natural example sentences in English, Russian and Turkish (4-8 words each) that convey the same basic meaning.
- Use simple vocabulary appropriate for the requested language level.
- Turkish sentences use natural word order (SOV when appropriate).
- Fill every required field, including the nested turkish_verb structure.`

// workedExample anchors the expected decomposition with one concrete case.
const workedExample = `EXAMPLE (for "to be" / olmak, şimdiki_zaman, ben, positive, A1):
{
  "verb_rank": 1,
  "verb_english": "to be",
  "verb_russian": "быть",
  "verb_infinitive": "olmak",
  "turkish_verb": {
    "verb_full": "oluyorum",
    "root": "ol",
    "tense_affix": "uyor",
    "verb_tense": "şimdiki_zaman",
    "personal_pronoun": "ben",
    "personal_affix": "um",
    "polarity": "positive"
  },
  "language_level": "A1",
  "english_example_sentence": "I am becoming happy.",
  "russian_example_sentence": "Я становлюсь счастливым.",
  "turkish_example_sentence": "Ben mutlu oluyorum."
}`

// PromptBuilder renders the system prompt and per-unit user messages. The
// system prompt can be overridden from a file; everything else is derived
// from the unit and the verb-form table.
type PromptBuilder struct {
	system string
}

// NewPromptBuilder loads the optional system-prompt override. An empty
// path selects the built-in prompt; an unreadable file is a
// ConfigurationError.
func NewPromptBuilder(templatePath string) (*PromptBuilder, error) {
	if templatePath == "" {
		return &PromptBuilder{system: defaultSystemPrompt}, nil
	}
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("prompt template %s", templatePath), Err: err}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("prompt template %s is empty", templatePath)}
	}
	return &PromptBuilder{system: string(data)}, nil
}

// System returns the system prompt.
func (b *PromptBuilder) System() string { return b.system }

// UserMessage renders the initial user message for a unit. Batch messages
// enumerate every required (pronoun, polarity) combination by name and
// state the exact expected count; without that the model under- or
// over-generates.
func (b *PromptBuilder) UserMessage(u Unit) (string, error) {
	if !grammar.ValidTense(u.Form.Tense) {
		return "", &ConfigurationError{Msg: fmt.Sprintf("unknown tense %q", u.Form.Tense)}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Verb (English): %s\n", u.Verb.English)
	fmt.Fprintf(&sb, "Verb (Russian): %s\n", u.Verb.Russian)
	fmt.Fprintf(&sb, "Verb (Turkish infinitive): %s\n", u.Verb.Turkish)
	fmt.Fprintf(&sb, "Verb rank: %d\n", u.Verb.Rank)
	fmt.Fprintf(&sb, "Tense: %s\n", u.Form.Tense)
	fmt.Fprintf(&sb, "Level: %s\n", u.Form.Level)

	if u.Batch {
		pairs := u.ExpectedPairs()
		fmt.Fprintf(&sb, "\nGenerate one training example for EACH of the following %d (pronoun, polarity) combinations:\n", len(pairs))
		for i, p := range pairs {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
		}
		fmt.Fprintf(&sb, "Return exactly %d examples in the \"examples\" array, no more and no fewer.\n", len(pairs))
	} else {
		pronoun := string(u.Pronoun)
		if pronoun == "" {
			pronoun = "none (impersonal form, no personal pronoun or personal affix)"
		}
		fmt.Fprintf(&sb, "Pronoun: %s\n", pronoun)
		fmt.Fprintf(&sb, "Polarity: %s\n", u.Polarity)
		if u.Polarity == grammar.Negative {
			sb.WriteString("The form is negated: include the negative affix in turkish_verb.negative_affix.\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(workedExample)
	return sb.String(), nil
}
