package examplegen

import (
	"encoding/json"
	"fmt"
)

// decode parses gateway-validated JSON into training examples. Single mode
// yields a one-element slice so the validator chain and persistence see one
// shape. A null tense_affix decodes to "" (encoding/json leaves the zero
// value on JSON null), which is the documented normalization.
func decode(raw json.RawMessage, batch bool) ([]TrainingExample, *ValidationError) {
	if batch {
		var b BatchResult
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, &ValidationError{
				Validator: "decode",
				Message:   fmt.Sprintf("reply did not parse as a batch result: %v", err),
				Retryable: true,
			}
		}
		return b.Examples, nil
	}

	var ex TrainingExample
	if err := json.Unmarshal(raw, &ex); err != nil {
		return nil, &ValidationError{
			Validator: "decode",
			Message:   fmt.Sprintf("reply did not parse as a training example: %v", err),
			Retryable: true,
		}
	}
	return []TrainingExample{ex}, nil
}
