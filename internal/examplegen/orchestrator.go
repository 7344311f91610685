package examplegen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fiilgen/internal/llm"
)

// Orchestrator drives one unit through the call/validate/retry loop.
//
// Each attempt sends the full conversation so far; a validation failure
// appends the assistant's reply plus a feedback message naming the exact
// problem, then loops. The conversation is never reset mid-unit. Provider
// errors other than schema-invalid replies end the unit immediately; the
// gateway has already spent its own transport-retry budget on them.
type Orchestrator struct {
	provider llm.Provider
	prompts  *PromptBuilder
	cfg      Config
	logger   *zap.Logger

	now func() time.Time // test hook
}

// New builds an orchestrator. A nil logger disables logging.
func New(provider llm.Provider, prompts *PromptBuilder, cfg Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		provider: provider,
		prompts:  prompts,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Result is a unit's successful outcome. Usage sums every attempt,
// including ones that failed validation; those tokens were spent too.
type Result struct {
	Examples []TrainingExample
	Attempts int
	Usage    llm.Usage
}

// GenerateUnit processes one unit to a terminal state. It returns the
// validated examples on success, *ErrUnitExhausted when the validation
// budget runs out (skip the unit, keep the run going), and any other error
// as-is; the caller decides run-fatality with errors.As (quota exhaustion
// and configuration errors halt the run).
func (o *Orchestrator) GenerateUnit(ctx context.Context, unit Unit) (*Result, error) {
	userMsg, err := o.prompts.UserMessage(unit)
	if err != nil {
		return nil, err
	}

	schema := SingleSchema
	maxTokens := o.cfg.MaxTokens
	if unit.Batch {
		schema = BatchSchema
		maxTokens = o.cfg.BatchMaxTokens
	}

	conv := NewConversation(userMsg)
	var usage llm.Usage
	var lastErr error

	for attempt := 1; attempt <= o.cfg.ValidationAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.logger.Debug("calling provider",
			zap.Stringer("unit", unit),
			zap.Int("attempt", attempt),
			zap.Int("history", conv.Len()))

		resp, err := o.provider.Generate(ctx, llm.Request{
			System:      o.prompts.System(),
			Messages:    conv.Messages(),
			Schema:      schema,
			MaxTokens:   maxTokens,
			Temperature: o.cfg.Temperature,
		})
		if err != nil {
			var inv *llm.ErrInvalidResponse
			if !errors.As(err, &inv) {
				return nil, fmt.Errorf("unit %s: %w", unit, err)
			}
			// Schema-invalid reply: feed the error back and retry.
			usage.PromptTokens += inv.Usage.PromptTokens
			usage.CompletionTokens += inv.Usage.CompletionTokens
			lastErr = err
			o.logger.Warn("reply failed schema validation",
				zap.Stringer("unit", unit),
				zap.Int("attempt", attempt),
				zap.Error(err))
			conv = conv.
				Append(llm.RoleAssistant, string(inv.Content)).
				Append(llm.RoleUser, schemaFeedback(inv))
			continue
		}

		usage.PromptTokens += resp.Usage.PromptTokens
		usage.CompletionTokens += resp.Usage.CompletionTokens

		examples, verr := o.validate(resp, unit)
		if verr == nil {
			o.stamp(examples, resp.Model, unit)
			return &Result{Examples: examples, Attempts: attempt, Usage: usage}, nil
		}

		lastErr = verr
		o.logger.Warn("reply failed domain validation",
			zap.Stringer("unit", unit),
			zap.Int("attempt", attempt),
			zap.String("validator", verr.Validator),
			zap.String("problem", verr.Message))
		conv = conv.
			Append(llm.RoleAssistant, string(resp.Content)).
			Append(llm.RoleUser, validationFeedback(verr))
	}

	return nil, &ErrUnitExhausted{Unit: unit, Attempts: o.cfg.ValidationAttempts, LastErr: lastErr}
}

// validate decodes the reply and runs the validator chain over every
// example, then the batch completeness check.
func (o *Orchestrator) validate(resp *llm.Response, unit Unit) ([]TrainingExample, *ValidationError) {
	examples, verr := decode(resp.Content, unit.Batch)
	if verr != nil {
		return nil, verr
	}

	for i := range examples {
		for _, v := range o.cfg.Validators {
			if verr := v.Validate(&examples[i], unit); verr != nil {
				if unit.Batch {
					verr.Message = fmt.Sprintf("example %d %s: %s",
						i+1, examples[i].TurkishVerb.Pair(), verr.Message)
				}
				return nil, verr
			}
		}
	}

	if unit.Batch {
		if verr := CheckCompleteness(examples, unit); verr != nil {
			return nil, verr
		}
	}
	return examples, nil
}

// stamp fills the derived and provenance fields on validated examples.
func (o *Orchestrator) stamp(examples []TrainingExample, model string, unit Unit) {
	at := o.now().UTC().Format(time.RFC3339)
	for i := range examples {
		ex := &examples[i]
		ex.TurkishExampleSentenceWithBlank = ex.SentenceWithBlank()
		ex.GeneratedByModel = model
		ex.GeneratedAt = at
		if ex.LanguageLevel == "" {
			ex.LanguageLevel = unit.Form.Level
		}
	}
}

func schemaFeedback(inv *llm.ErrInvalidResponse) string {
	return fmt.Sprintf("Your previous reply was rejected: %v\nReply again with a single JSON object in exactly the required format, fixing this problem.", inv.Err)
}

func validationFeedback(verr *ValidationError) string {
	return fmt.Sprintf("Your previous reply failed the %s check: %s\nRegenerate the full JSON reply in the same format, correcting this problem.", verr.Validator, verr.Message)
}
