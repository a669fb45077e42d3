package scoring

import "fmt"

// GenerateError represents a transport-level failure while calling the model.
// Unparsable model output is not a GenerateError; that case is absorbed by
// the fallback path.
type GenerateError struct {
	Message string
	Cause   error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scoring failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("scoring failed: %s", e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}
