// Package llm is the provider gateway: one request/response shape over
// heterogeneous LLM backends, a closed error taxonomy established at the
// boundary, and decorators for rotation, rate limiting, retry, and call
// logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the uniform call interface over LLM backends.
type Provider interface {
	// Generate sends the conversation to the LLM and returns its reply.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and the returned Content is JSON that
	// passed schema validation. Errors are always classified into the
	// package's error taxonomy before being returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier currently in use.
	ModelID() string
}

// Request describes one call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Retries feed the prior assistant
	// reply and a corrective user message back through here, so the
	// model sees the full exchange.
	Messages []Message

	// Schema, when set, is the JSON Schema the reply must conform to.
	Schema *Schema

	// MaxTokens is the output token budget.
	MaxTokens int

	// Temperature controls randomness (0.0-1.0). Zero means the
	// provider default.
	Temperature float64
}

// Message is one role-tagged conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "training-example".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output after markdown-fence and
	// reasoning-tag cleanup. With a Schema set it is validated JSON.
	Content json.RawMessage

	// Usage reports token consumption. A response with no usable token
	// counts never reaches the caller; the gateway rejects it.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Total returns prompt + completion tokens.
func (u Usage) Total() int { return u.PromptTokens + u.CompletionTokens }

// empty reports whether the provider returned no usable counts at all.
// Treating zero/zero as success would corrupt cost accounting.
func (u Usage) empty() bool { return u.PromptTokens == 0 && u.CompletionTokens == 0 }
