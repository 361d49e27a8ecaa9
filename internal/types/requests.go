//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxTextLength bounds the size of any text field accepted over the API.
const MaxTextLength = 200000

var validate = validator.New()

// TextRequest carries a block of text to parse or extract bullets from.
type TextRequest struct {
	Text string `json:"text" validate:"required,max=200000"`
}

// AnalyzeRequest asks for a resume to be analyzed against a job description.
type AnalyzeRequest struct {
	Resume         string `json:"resume" validate:"required,max=200000"`
	JobDescription string `json:"job_description" validate:"required,max=200000"`
	SessionID      string `json:"session_id,omitempty" validate:"omitempty,uuid"`
	ResumeFilename string `json:"resume_filename,omitempty" validate:"omitempty,max=200"`
	JobFilename    string `json:"job_filename,omitempty" validate:"omitempty,max=200"`
}

// BatchResume is one named resume in a batch request.
type BatchResume struct {
	Name string `json:"name" validate:"required,max=200"`
	Text string `json:"text" validate:"required,max=200000"`
}

// BatchRequest asks for several resumes to be analyzed against one job
// description.
type BatchRequest struct {
	Resumes        []BatchResume `json:"resumes" validate:"required,min=1,max=50,dive"`
	JobDescription string        `json:"job_description" validate:"required,max=200000"`
	SessionID      string        `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the TextRequest using the validator.
func (r *TextRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validate.Struct(r)
}
