// Package ingestion reads resume and job description text, normalizes it and
// vets uploaded files before analysis.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	innerSpaceRe  = regexp.MustCompile(`\s+`)
	extraBlanksRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and Unicode compatibility forms, squeezes
// runs of spaces inside lines and collapses runs of blank lines. Leading
// indentation is kept because bullet nesting depends on it.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = norm.NFKC.String(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = extraBlanksRe.ReplaceAllString(result, "\n\n")
	return strings.Trim(result, "\n")
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	return indent + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// textExtensions are read as plain text.
var textExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
}

// ReadText reads and cleans a plain-text or HTML document. PDF, DOCX and any
// other binary format yields an *UnsupportedFormatError; callers treat that
// as an empty document.
func ReadText(path string) (string, error) {
	if err := checkTextFormat(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return decode(path, content)
}

// DecodeText cleans the bytes of an uploaded document named filename. Like
// ReadText it understands plain text and HTML.
func DecodeText(filename string, data []byte) (string, error) {
	if err := checkTextFormat(filename); err != nil {
		return "", err
	}
	return decode(filename, data)
}

func decode(name string, data []byte) (string, error) {
	if htmlExtensions[strings.ToLower(filepath.Ext(name))] {
		return HTMLText(bytes.NewReader(data))
	}
	return CleanText(string(data)), nil
}

func checkTextFormat(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !textExtensions[ext] && !htmlExtensions[ext] {
		return &UnsupportedFormatError{Path: name, Extension: ext}
	}
	return nil
}
