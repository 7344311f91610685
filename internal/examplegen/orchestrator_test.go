package examplegen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
	"fiilgen/internal/verbs"
)

func testOrchestrator(t *testing.T, provider llm.Provider) *Orchestrator {
	t.Helper()
	prompts, err := NewPromptBuilder("")
	if err != nil {
		t.Fatalf("NewPromptBuilder: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ValidationAttempts = 3
	o := New(provider, prompts, cfg, nil)
	o.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return o
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestGenerateUnitFirstAttemptSuccess(t *testing.T) {
	mock := llm.NewNamedMockProvider("claude-haiku-4-5",
		llm.MockResponse{Content: mustJSON(t, olmakExample())})
	o := testOrchestrator(t, mock)

	res, err := o.GenerateUnit(context.Background(), olmakUnit(t))
	if err != nil {
		t.Fatalf("GenerateUnit: %v", err)
	}
	if res.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", res.Attempts)
	}
	if len(res.Examples) != 1 {
		t.Fatalf("got %d examples, want 1", len(res.Examples))
	}

	ex := res.Examples[0]
	if ex.GeneratedByModel != "claude-haiku-4-5" {
		t.Errorf("generated_by_model = %q", ex.GeneratedByModel)
	}
	if ex.GeneratedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("generated_at = %q", ex.GeneratedAt)
	}
	if ex.TurkishExampleSentenceWithBlank != "Ben mutlu ______." {
		t.Errorf("blank sentence = %q", ex.TurkishExampleSentenceWithBlank)
	}
}

func TestGenerateUnitFeedbackRetry(t *testing.T) {
	bad := olmakExample()
	bad.TurkishExampleSentence = "Bugün hava çok güzel."

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: mustJSON(t, bad), Usage: llm.Usage{PromptTokens: 100, CompletionTokens: 50}},
		llm.MockResponse{Content: mustJSON(t, olmakExample()), Usage: llm.Usage{PromptTokens: 140, CompletionTokens: 60}},
	)
	o := testOrchestrator(t, mock)

	res, err := o.GenerateUnit(context.Background(), olmakUnit(t))
	if err != nil {
		t.Fatalf("GenerateUnit: %v", err)
	}
	if res.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", res.Attempts)
	}
	// Token totals sum both attempts, including the failed one.
	if res.Usage.PromptTokens != 240 || res.Usage.CompletionTokens != 110 {
		t.Errorf("usage = %+v, want 240/110", res.Usage)
	}

	// The second call must carry the full exchange: original request,
	// the rejected reply, and feedback naming the problem.
	if len(mock.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(mock.Calls))
	}
	second := mock.Calls[1].Messages
	if len(second) != 3 {
		t.Fatalf("second call has %d messages, want 3", len(second))
	}
	if second[0].Content != mock.Calls[0].Messages[0].Content {
		t.Error("original user message was not preserved")
	}
	if second[1].Role != llm.RoleAssistant || !strings.Contains(second[1].Content, "Bugün hava çok güzel.") {
		t.Error("rejected assistant reply was not appended")
	}
	feedback := second[2]
	if feedback.Role != llm.RoleUser {
		t.Error("feedback message must be a user message")
	}
	for _, want := range []string{"verb-presence", "oluyorum", "Bugün hava çok güzel."} {
		if !strings.Contains(feedback.Content, want) {
			t.Errorf("feedback missing %q: %s", want, feedback.Content)
		}
	}
}

func TestGenerateUnitBatchCompletenessFeedback(t *testing.T) {
	unit := Unit{
		Verb:  verbs.Verb{Rank: 4, English: "to do", Russian: "делать", Turkish: "yapmak"},
		Form:  mustForm(t, grammar.EmirKipi),
		Batch: true,
	}

	short := BatchResult{}
	var full BatchResult
	for _, p := range unit.ExpectedPairs() {
		ex := imperativeExample(p.Pronoun, p.Polarity)
		full.Examples = append(full.Examples, ex)
		if p.Pronoun == grammar.O && p.Polarity == grammar.Negative {
			continue
		}
		if p.Pronoun == grammar.Onlar && p.Polarity == grammar.Positive {
			continue
		}
		short.Examples = append(short.Examples, ex)
	}

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: mustJSON(t, short)},
		llm.MockResponse{Content: mustJSON(t, full)},
	)
	o := testOrchestrator(t, mock)

	res, err := o.GenerateUnit(context.Background(), unit)
	if err != nil {
		t.Fatalf("GenerateUnit: %v", err)
	}
	if len(res.Examples) != 8 {
		t.Errorf("got %d examples, want 8", len(res.Examples))
	}

	feedback := mock.Calls[1].Messages[2].Content
	for _, want := range []string{"completeness", "(o, negative)", "(onlar, positive)"} {
		if !strings.Contains(feedback, want) {
			t.Errorf("feedback missing %q: %s", want, feedback)
		}
	}
}

func TestGenerateUnitSchemaInvalidRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"oops": true}`),
			Usage:   llm.Usage{PromptTokens: 90, CompletionTokens: 10},
			Err:     errors.New("missing required field turkish_verb"),
		}},
		llm.MockResponse{Content: mustJSON(t, olmakExample()), Usage: llm.Usage{PromptTokens: 120, CompletionTokens: 40}},
	)
	o := testOrchestrator(t, mock)

	res, err := o.GenerateUnit(context.Background(), olmakUnit(t))
	if err != nil {
		t.Fatalf("GenerateUnit: %v", err)
	}
	if res.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", res.Attempts)
	}
	// The schema-invalid attempt's tokens still count.
	if res.Usage.PromptTokens != 210 || res.Usage.CompletionTokens != 50 {
		t.Errorf("usage = %+v, want 210/50", res.Usage)
	}
	feedback := mock.Calls[1].Messages[2].Content
	if !strings.Contains(feedback, "missing required field turkish_verb") {
		t.Errorf("feedback missing schema error: %s", feedback)
	}
}

func TestGenerateUnitExhausted(t *testing.T) {
	bad := olmakExample()
	bad.TurkishExampleSentence = "Bugün hava çok güzel."
	raw := mustJSON(t, bad)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: raw},
		llm.MockResponse{Content: raw},
		llm.MockResponse{Content: raw},
	)
	o := testOrchestrator(t, mock)

	_, err := o.GenerateUnit(context.Background(), olmakUnit(t))
	var exhausted *ErrUnitExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrUnitExhausted, got %v", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", exhausted.Attempts)
	}
	if mock.CallCount() != 3 {
		t.Errorf("call count = %d, want 3", mock.CallCount())
	}
}

func TestGenerateUnitQuotaFatal(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrQuotaExhausted{Model: "claude-haiku-4-5"}},
	)
	o := testOrchestrator(t, mock)

	_, err := o.GenerateUnit(context.Background(), olmakUnit(t))
	var quota *llm.ErrQuotaExhausted
	if !errors.As(err, &quota) {
		t.Fatalf("expected quota error to propagate, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("quota exhaustion must not be retried here, got %d calls", mock.CallCount())
	}
}

func TestGenerateUnitContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider()
	o := testOrchestrator(t, mock)

	_, err := o.GenerateUnit(ctx, olmakUnit(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("no call should be made after cancellation")
	}
}

// imperativeExample builds a consistent imperative example for yapmak.
func imperativeExample(pronoun grammar.Pronoun, polarity grammar.Polarity) TrainingExample {
	personal := map[grammar.Pronoun]string{
		grammar.Sen:   "",
		grammar.O:     "sın",
		grammar.Siz:   "ın",
		grammar.Onlar: "sınlar",
	}[pronoun]

	negative := ""
	if polarity == grammar.Negative {
		negative = "ma"
	}
	full := "yap" + negative + personal

	return TrainingExample{
		VerbRank:       4,
		VerbEnglish:    "to do",
		VerbRussian:    "делать",
		VerbInfinitive: "yapmak",
		TurkishVerb: TurkishVerbForm{
			VerbFull:        full,
			Root:            "yap",
			TenseAffix:      "",
			VerbTense:       grammar.EmirKipi,
			PersonalPronoun: pronoun,
			PersonalAffix:   personal,
			Polarity:        polarity,
			NegativeAffix:   negative,
		},
		LanguageLevel:          grammar.A2,
		EnglishExampleSentence: "Do your homework now.",
		RussianExampleSentence: "Сделай домашнее задание сейчас.",
		TurkishExampleSentence: "Lütfen ödevini " + full + ".",
	}
}
