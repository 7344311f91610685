package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit indicates a per-minute rate limit (HTTP 429 without
// period-quota wording). RetryAfter carries the provider-suggested wait
// when one could be extracted.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrQuotaExhausted indicates a period (e.g. daily) usage cap on the
// current model. Retrying the same model is pointless; the rotation
// decorator advances to the next model, and when rotation runs out this
// error is fatal for the whole run.
type ErrQuotaExhausted struct {
	Model string
	Err   error
}

func (e *ErrQuotaExhausted) Error() string {
	return fmt.Sprintf("quota exhausted on %s: %v", e.Model, e.Err)
}

func (e *ErrQuotaExhausted) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that is not
// valid JSON or does not conform to the requested schema. Content carries
// the raw reply so the orchestrator can feed it back as conversation
// history; Usage carries the tokens the failed attempt still consumed.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates a transient backend failure (5xx,
// connection timeout). Retryable with backoff.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the reply was truncated at the output
// token budget. A configuration problem, not transient.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrMissingUsage indicates the provider reported no token counts for an
// otherwise successful call. Cost tracking is a hard requirement, so this
// is surfaced instead of silently accepting the response.
type ErrMissingUsage struct {
	Model string
}

func (e *ErrMissingUsage) Error() string {
	return fmt.Sprintf("provider returned no token usage for model %s", e.Model)
}

// quotaWords are the message fragments that mark a 429 as a period quota
// rather than a per-minute limit.
var quotaWords = []string{"quota", "daily limit", "resource_exhausted", "resource has been exhausted"}

// retryDelayPattern matches the retry_delay{seconds:N} fragment some
// providers embed in 429 bodies.
var retryDelayPattern = regexp.MustCompile(`retry_delay\s*\{\s*seconds:\s*(\d+)`)

// classifyStatus converts an HTTP status plus message body into the
// package taxonomy. It is the single place raw provider errors are
// pattern-matched; nothing above the gateway inspects error text again.
func classifyStatus(status int, model, msg string, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		lower := strings.ToLower(msg)
		for _, w := range quotaWords {
			if strings.Contains(lower, w) {
				return &ErrQuotaExhausted{Model: model, Err: err}
			}
		}
		return &ErrRateLimit{RetryAfter: parseRetryDelay(msg), Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	default:
		// Auth failures, malformed requests: propagate as-is, fatal.
		return err
	}
}

// parseRetryDelay extracts a provider-suggested wait from a rate-limit
// message. Returns 0 when no delay is present.
func parseRetryDelay(msg string) time.Duration {
	m := retryDelayPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// attachUsage records the tokens a schema-invalid attempt still consumed
// so callers can keep cost accounting accurate across failed attempts.
func attachUsage(err error, usage Usage) error {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		inv.Usage = usage
	}
	return err
}
