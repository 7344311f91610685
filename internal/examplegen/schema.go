package examplegen

import (
	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
)

// SingleSchema is the reply shape for single-mode calls: one training
// example.
var SingleSchema = &llm.Schema{
	Name:        "training-example",
	Description: "A single Turkish verb-conjugation training example with nested verb structure",
	Definition:  exampleDef(),
}

// BatchSchema is the reply shape for batch-mode calls. Cardinality and
// pair coverage are deliberately not schema-constrained; the completeness
// validator checks them so its feedback can name the missing combinations.
var BatchSchema = &llm.Schema{
	Name:        "training-example-batch",
	Description: "All pronoun and polarity combinations for one verb and tense",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"examples": map[string]any{
				"type":        "array",
				"items":       exampleDef(),
				"description": "One training example per required (pronoun, polarity) combination",
			},
		},
		"required":             []any{"examples"},
		"additionalProperties": false,
	},
}

func exampleDef() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verb_rank": map[string]any{
				"type":        "integer",
				"description": "Frequency rank of the verb, copied from the request",
			},
			"verb_english": map[string]any{
				"type":        "string",
				"description": "English infinitive, e.g. \"to be\"",
			},
			"verb_russian": map[string]any{
				"type":        "string",
				"description": "Russian infinitive translation",
			},
			"verb_infinitive": map[string]any{
				"type":        "string",
				"description": "Turkish infinitive, e.g. \"olmak\"",
			},
			"turkish_verb": turkishVerbDef(),
			"language_level": map[string]any{
				"type":        "string",
				"enum":        []any{"A1", "A2", "B1", "B2"},
				"description": "CEFR level the sentence vocabulary targets",
			},
			"english_example_sentence": map[string]any{
				"type":        "string",
				"description": "Natural English sentence using the verb, 4-8 words",
			},
			"russian_example_sentence": map[string]any{
				"type":        "string",
				"description": "Russian equivalent with simple vocabulary",
			},
			"turkish_example_sentence": map[string]any{
				"type":        "string",
				"description": "Turkish sentence containing the conjugated form, natural SOV order",
			},
		},
		"required": []any{
			"verb_rank", "verb_english", "verb_russian", "verb_infinitive",
			"turkish_verb", "language_level",
			"english_example_sentence", "russian_example_sentence", "turkish_example_sentence",
		},
		"additionalProperties": false,
	}
}

func turkishVerbDef() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Decomposed conjugation: root + optional negative affix + tense affix + optional personal affix",
		"properties": map[string]any{
			"verb_full": map[string]any{
				"type":        "string",
				"description": "The complete conjugated form as it appears in the sentence",
			},
			"root": map[string]any{
				"type":        "string",
				"description": "Verb root (infinitive minus -mak/-mek)",
			},
			"tense_affix": map[string]any{
				// Affix-less forms come back as null from some models;
				// decoding coerces null to "".
				"type":        []any{"string", "null"},
				"description": "Tense/mood affix, empty or null when the form has none",
			},
			"verb_tense": map[string]any{
				"type":        "string",
				"enum":        tenseEnum(),
				"description": "Tense identifier, copied from the request",
			},
			"personal_pronoun": map[string]any{
				"type":        "string",
				"enum":        []any{"ben", "sen", "o", "biz", "siz", "onlar", ""},
				"description": "Personal pronoun, empty for impersonal forms",
			},
			"personal_affix": map[string]any{
				"type":        "string",
				"description": "Personal ending, empty when the form takes none",
			},
			"polarity": map[string]any{
				"type":        "string",
				"enum":        []any{"positive", "negative"},
				"description": "Whether the form is affirmative or negated",
			},
			"negative_affix": map[string]any{
				"type":        "string",
				"description": "Negation affix (-ma/-me/-m), present only for negative polarity",
			},
		},
		"required":             []any{"verb_full", "root", "tense_affix", "verb_tense", "polarity"},
		"additionalProperties": false,
	}
}

func tenseEnum() []any {
	out := make([]any, len(grammar.Forms))
	for i, f := range grammar.Forms {
		out[i] = string(f.Tense)
	}
	return out
}
