// Package examplegen turns generation units into validated training
// examples: it builds prompts, drives the provider through the retry loop,
// and runs the domain validators over each reply.
package examplegen

import (
	"fmt"
	"strings"

	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
	"fiilgen/internal/verbs"
)

// Unit is one requested piece of work. In single mode it names a full
// (verb, tense, pronoun, polarity) combination; in batch mode Pronoun and
// Polarity are unset and the unit implicitly expands to every applicable
// (pronoun, polarity) pair for the tense.
type Unit struct {
	Verb     verbs.Verb
	Form     grammar.FormInfo
	Pronoun  grammar.Pronoun  // single mode; empty for impersonal tenses
	Polarity grammar.Polarity // single mode
	Batch    bool
}

// Tense is a shorthand for the unit's tense identifier.
func (u Unit) Tense() grammar.Tense { return u.Form.Tense }

// ExpectedPairs returns the (pronoun, polarity) combinations a batch reply
// must cover. Single-mode units return nil.
func (u Unit) ExpectedPairs() []grammar.PronounPolarity {
	if !u.Batch {
		return nil
	}
	return grammar.ExpectedPairs(u.Form.Tense)
}

// String renders the unit for logs and error context.
func (u Unit) String() string {
	if u.Batch {
		return fmt.Sprintf("%s/%s/batch", u.Verb.Turkish, u.Form.Tense)
	}
	pronoun := string(u.Pronoun)
	if pronoun == "" {
		pronoun = "none"
	}
	return fmt.Sprintf("%s/%s/%s/%s", u.Verb.Turkish, u.Form.Tense, pronoun, u.Polarity)
}

// TurkishVerbForm is the nested conjugation structure inside a training
// example. The model may return tense_affix as JSON null for affix-less
// forms; decoding coerces that to "".
type TurkishVerbForm struct {
	VerbFull        string           `json:"verb_full"`
	Root            string           `json:"root"`
	TenseAffix      string           `json:"tense_affix"`
	VerbTense       grammar.Tense    `json:"verb_tense"`
	PersonalPronoun grammar.Pronoun  `json:"personal_pronoun,omitempty"`
	PersonalAffix   string           `json:"personal_affix,omitempty"`
	Polarity        grammar.Polarity `json:"polarity"`
	NegativeAffix   string           `json:"negative_affix,omitempty"`
}

// Pair projects the form to its (pronoun, polarity) combination.
func (f TurkishVerbForm) Pair() grammar.PronounPolarity {
	return grammar.PronounPolarity{Pronoun: f.PersonalPronoun, Polarity: f.Polarity}
}

// TrainingExample is one persisted dataset entry. GeneratedByModel and
// GeneratedAt are stamped by the orchestrator on success; everything else
// comes from the model.
type TrainingExample struct {
	VerbRank                        int             `json:"verb_rank"`
	VerbEnglish                     string          `json:"verb_english"`
	VerbRussian                     string          `json:"verb_russian"`
	VerbInfinitive                  string          `json:"verb_infinitive"`
	TurkishVerb                     TurkishVerbForm `json:"turkish_verb"`
	LanguageLevel                   grammar.Level   `json:"language_level,omitempty"`
	EnglishExampleSentence          string          `json:"english_example_sentence"`
	RussianExampleSentence          string          `json:"russian_example_sentence"`
	TurkishExampleSentence          string          `json:"turkish_example_sentence"`
	TurkishExampleSentenceWithBlank string          `json:"turkish_example_sentence_with_blank,omitempty"`
	GeneratedByModel                string          `json:"generated_by_model,omitempty"`
	GeneratedAt                     string          `json:"generated_at,omitempty"`
}

// SentenceWithBlank returns the Turkish sentence with every occurrence of
// the conjugated form replaced by a fill-in blank.
func (e *TrainingExample) SentenceWithBlank() string {
	if e.TurkishVerb.VerbFull == "" {
		return e.TurkishExampleSentence
	}
	return strings.ReplaceAll(e.TurkishExampleSentence, e.TurkishVerb.VerbFull, "______")
}

// BatchResult is the reply shape for one (verb, tense) batch call.
type BatchResult struct {
	Examples []TrainingExample `json:"examples"`
}

// Conversation is the append-only message history for one unit. Append
// returns a new value; history started for a unit is never truncated or
// replaced, so every retry sees the full prior exchange.
type Conversation struct {
	msgs []llm.Message
}

// NewConversation starts a conversation with the initial user message.
func NewConversation(userMsg string) Conversation {
	return Conversation{msgs: []llm.Message{{Role: llm.RoleUser, Content: userMsg}}}
}

// Append returns a copy of the conversation with one more message.
func (c Conversation) Append(role llm.Role, content string) Conversation {
	msgs := make([]llm.Message, len(c.msgs), len(c.msgs)+1)
	copy(msgs, c.msgs)
	return Conversation{msgs: append(msgs, llm.Message{Role: role, Content: content})}
}

// Messages returns the history in order.
func (c Conversation) Messages() []llm.Message { return c.msgs }

// Len returns the number of messages.
func (c Conversation) Len() int { return len(c.msgs) }
