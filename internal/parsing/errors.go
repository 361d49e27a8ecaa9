package parsing

import "fmt"

// CacheError wraps a failure reading or decoding a cached parse result.
// Parser logs it and falls back to a fresh parse.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
