package analysis

import "fmt"

// InputError reports a resume or job description that cannot be analyzed.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}
