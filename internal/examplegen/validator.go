package examplegen

import "fmt"

// Validator checks one generated example against the request that produced
// it. Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "verb-presence", "reconstruction".
	Name() string

	// Validate returns nil if the example passes, or a ValidationError
	// whose Message is suitable for feeding back to the model verbatim.
	Validate(ex *TrainingExample, unit Unit) *ValidationError
}

// ValidationError describes why an example failed validation. Message is
// written for the model: it names the exact problem so a conversational
// retry can fix it rather than regenerate blind.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard chain in stage order.
func DefaultValidators() []Validator {
	return []Validator{
		StructuralValidator{},
		AffixAgreementValidator{},
		VerbPresenceValidator{},
		ReconstructionValidator{},
	}
}
