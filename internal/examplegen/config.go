package examplegen

// Config controls the orchestrator.
type Config struct {
	// Validators is the ordered chain run on every decoded example. The
	// first failure becomes the retry feedback.
	Validators []Validator

	// ValidationAttempts bounds conversational retries per unit. This
	// budget is independent of the gateway's transport-retry budget.
	ValidationAttempts int

	// MaxTokens is the reply token budget for single-mode calls.
	MaxTokens int

	// BatchMaxTokens is the reply token budget for batch calls, which
	// return up to twelve examples in one reply.
	BatchMaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// TemplatePath optionally overrides the built-in system prompt.
	TemplatePath string
}

// DefaultConfig returns the standard validator chain and recommended
// defaults.
func DefaultConfig() Config {
	return Config{
		Validators:         DefaultValidators(),
		ValidationAttempts: 3,
		MaxTokens:          4096,
		BatchMaxTokens:     16384,
		Temperature:        0.7,
	}
}
