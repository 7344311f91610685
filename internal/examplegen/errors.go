package examplegen

import "fmt"

// ConfigurationError is a unit-independent setup failure: a missing prompt
// template, unknown tense metadata, bad credentials. It is fatal for the
// run; retrying cannot help.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Msg, e.Err)
	}
	return "configuration: " + e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ErrUnitExhausted is returned when a unit's validation-retry budget runs
// out. The unit is skipped; the run continues.
type ErrUnitExhausted struct {
	Unit     Unit
	Attempts int
	LastErr  error
}

func (e *ErrUnitExhausted) Error() string {
	return fmt.Sprintf("unit %s: %d attempts exhausted, last error: %v", e.Unit, e.Attempts, e.LastErr)
}

func (e *ErrUnitExhausted) Unwrap() error { return e.LastErr }
