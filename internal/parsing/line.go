package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineKind is the classification the bullet scanner assigned to a line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeading
	LineBulletMarker
	LineNumberedMarker
	LineLetterMarker
	LineContinuation
	LinePlain
)

var lineKindNames = map[LineKind]string{
	LineBlank:          "blank",
	LineHeading:        "heading",
	LineBulletMarker:   "bullet-marker",
	LineNumberedMarker: "numbered-marker",
	LineLetterMarker:   "letter-marker",
	LineContinuation:   "continuation",
	LinePlain:          "plain",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets LineKind render by name in JSON output.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Line is a single input line with its derived attributes. Lines are
// recomputed on every pass and never shared between extractions.
type Line struct {
	Raw      string   `json:"raw"`
	Stripped string   `json:"stripped"`
	Indent   int      `json:"indent"`
	Kind     LineKind `json:"kind"`
	Marker   *Marker  `json:"-"`
}

// NewLine derives a Line from raw text. Trailing line terminators are
// removed. Kind is set to blank or plain; marker and heading kinds are
// assigned by the scanner because they depend on context.
func NewLine(raw string) Line {
	raw = strings.TrimRight(raw, "\r\n")
	l := Line{
		Raw:      raw,
		Stripped: strings.TrimSpace(raw),
		Indent:   leadingWhitespace(raw),
		Kind:     LinePlain,
	}
	if l.Stripped == "" {
		l.Kind = LineBlank
	}
	return l
}

// IsHeadingLike reports whether the stripped line ends in a colon.
func (l Line) IsHeadingLike() bool {
	return strings.HasSuffix(l.Stripped, ":")
}

func leadingWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// firstRuneLower reports whether the first rune of s is a lowercase letter.
func firstRuneLower(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return unicode.IsLower(r)
}

func markerLineKind(k MarkerKind) LineKind {
	switch k {
	case MarkerNumbered:
		return LineNumberedMarker
	case MarkerLetter:
		return LineLetterMarker
	default:
		return LineBulletMarker
	}
}

// splitLines splits text on newlines and drops a trailing carriage return
// from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
