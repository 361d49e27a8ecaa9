package ingestion

import "fmt"

// UnsupportedFormatError is returned for documents whose text cannot be
// extracted, such as PDF and DOCX files.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported document format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported document format %s: %s", e.Extension, e.Path)
}

// UploadError reports an uploaded file that failed validation. Message is
// safe to show to the uploader.
type UploadError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid upload %q: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid upload %q: %s", e.Filename, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}
