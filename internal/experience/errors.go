// Package experience extracts work history from resume text and matches
// experience levels between resumes and job descriptions.
package experience

import "fmt"

// DateParseError reports a date string in none of the supported layouts.
type DateParseError struct {
	Value string
	Cause error
}

func (e *DateParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date parse error: %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("date parse error: %q", e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Cause
}
