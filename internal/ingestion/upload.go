package ingestion

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload size bounds in bytes.
const (
	MinUploadSize = 100
	MaxUploadSize = 20 << 20
)

// maxNameLength caps the base name kept by SanitizeFilename.
const maxNameLength = 200

// allowedTypes maps an accepted extension to the MIME types its content may
// sniff as.
var allowedTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".txt":  {"text/plain"},
	".html": {"text/html"},
	".htm":  {"text/html"},
}

var (
	executableSig = []byte("MZ")
	zipSig        = []byte("PK\x03\x04")
	pdfHeader     = []byte("%PDF-")
	pdfEOF        = []byte("%%EOF")
)

// pdfTailSize is how far from the end a PDF's EOF marker may sit.
const pdfTailSize = 1024

// ValidateUpload vets an uploaded document: extension allow-list, size
// bounds, executable and archive signatures, and sniffed content type.
// DOCX files are zip containers, so the archive signature is only refused
// for other extensions.
func ValidateUpload(filename string, data []byte) (*Metadata, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed, ok := allowedTypes[ext]
	if !ok {
		return nil, &UploadError{Filename: filename, Message: "file type not allowed"}
	}

	switch {
	case len(data) == 0:
		return nil, &UploadError{Filename: filename, Message: "file is empty"}
	case len(data) < MinUploadSize:
		return nil, &UploadError{Filename: filename, Message: "file is too small to be a valid document"}
	case len(data) > MaxUploadSize:
		return nil, &UploadError{Filename: filename, Message: "file exceeds maximum size limit"}
	}

	if bytes.HasPrefix(data, executableSig) || (ext != ".docx" && bytes.HasPrefix(data, zipSig)) {
		return nil, &UploadError{Filename: filename, Message: "file appears to be an executable or compressed archive"}
	}

	detected := mimetype.Detect(data)
	if !matchesAny(detected, allowed) {
		return nil, &UploadError{Filename: filename, Message: "invalid file type, detected " + detected.String()}
	}

	if ext == ".pdf" {
		if err := ValidatePDF(data); err != nil {
			return nil, &UploadError{Filename: filename, Message: "invalid PDF", Cause: err}
		}
	}

	return NewMetadata(SanitizeFilename(filename), data, detected.String()), nil
}

// matchesAny reports whether m or one of its parents is an allowed type.
func matchesAny(m *mimetype.MIME, allowed []string) bool {
	for ; m != nil; m = m.Parent() {
		for _, a := range allowed {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

type pdfError string

func (e pdfError) Error() string { return string(e) }

// ValidatePDF checks the PDF header and that an EOF marker appears near the
// end of the file.
func ValidatePDF(data []byte) error {
	if !bytes.HasPrefix(data, pdfHeader) {
		return pdfError("invalid PDF header")
	}
	tail := data
	if len(tail) > pdfTailSize {
		tail = tail[len(tail)-pdfTailSize:]
	}
	if !bytes.Contains(tail, pdfEOF) {
		return pdfError("PDF file appears corrupted (missing EOF marker)")
	}
	return nil
}

var unsafeNameParts = []string{"..", "/", "\\", "\x00", "\n", "\r"}

// SanitizeFilename strips directory components and unsafe characters and
// caps the base name at 200 bytes, keeping the extension.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	for _, part := range unsafeNameParts {
		name = strings.ReplaceAll(name, part, "")
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if len(base) > maxNameLength {
		base = base[:maxNameLength]
	}
	return base + ext
}
