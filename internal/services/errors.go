package services

import "fmt"

// ValidationError is a client-fault condition: a missing required field
// or a reference to an entity that does not exist. The operation is not
// attempted, or is aborted before any write takes effect.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}
