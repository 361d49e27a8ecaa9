package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedHeadings are top-level section names. A colon-terminated line
// naming one of them is a section boundary, not a nested list heading.
var reservedHeadings = map[string]struct{}{
	"experience":         {},
	"education":          {},
	"skills":             {},
	"summary":            {},
	"contact":            {},
	"work":               {},
	"work experience":    {},
	"key achievements":   {},
	"project highlights": {},
	"achievements":       {},
	"projects":           {},
}

// ContinuationFunc reports whether line extends the currently open bullet.
type ContinuationFunc func(line Line) bool

// IsContinuation is the default continuation rule. A line continues the open
// bullet when it is indented or starts with a lowercase letter.
//
// An unindented line starting with an uppercase letter closes the bullet, so
// wrapped text that begins with a proper noun must be indented to stay attached.
func IsContinuation(line Line) bool {
	return line.Indent > 0 || firstRuneLower(line.Stripped)
}

// BulletExtractor turns a block of text into an ordered list of cleaned bullet
// strings. The zero value is not usable; construct with NewBulletExtractor.
type BulletExtractor struct {
	// Continuation decides whether a non-marker line extends the open bullet.
	Continuation ContinuationFunc
}

// NewBulletExtractor returns an extractor using IsContinuation.
func NewBulletExtractor() *BulletExtractor {
	return &BulletExtractor{Continuation: IsContinuation}
}

var defaultExtractor = NewBulletExtractor()

// ExtractBullets extracts cleaned bullet points from text using the default rules.
func ExtractBullets(text string) []string {
	return defaultExtractor.Extract(text)
}

// Extract runs the bullet state machine over text and cleans the result.
// It never fails: text without recognizable markers yields an empty list.
func (e *BulletExtractor) Extract(text string) []string {
	raw, _ := e.scan(text)
	return CleanBullets(raw)
}

// Classify returns every input line tagged with the kind the scanner gave it.
func (e *BulletExtractor) Classify(text string) []Line {
	_, lines := e.scan(text)
	return lines
}

// bulletScan holds the state of a single extraction pass. At most one bullet
// is open at a time; an empty open string means no bullet is open.
type bulletScan struct {
	items  []string
	open   string
	inList bool
}

func (s *bulletScan) flush() {
	if s.open == "" {
		return
	}
	s.items = append(s.items, strings.TrimSpace(s.open))
	s.open = ""
}

func (e *BulletExtractor) scan(text string) ([]string, []Line) {
	continues := e.Continuation
	if continues == nil {
		continues = IsContinuation
	}

	rawLines := splitLines(text)
	classified := make([]Line, 0, len(rawLines))
	s := &bulletScan{}

	for i, raw := range rawLines {
		line := NewLine(raw)
		if line.Kind == LineBlank {
			classified = append(classified, line)
			continue
		}

		if line.IsHeadingLike() {
			nextIsBullet := nextNonBlankIsMarker(rawLines, i+1)
			name := strings.TrimSpace(strings.TrimRight(strings.ToLower(line.Stripped), ":"))
			if _, reserved := reservedHeadings[name]; reserved {
				line.Kind = LineHeading
				classified = append(classified, line)
				continue
			}
			if s.inList || nextIsBullet {
				s.flush()
				s.items = append(s.items, line.Stripped)
				line.Kind = LineHeading
				classified = append(classified, line)
				continue
			}
		}

		if m, ok := MatchMarker(line.Raw); ok {
			s.inList = true
			s.flush()
			s.open = strings.TrimSpace(line.Raw[m.End:])
			line.Kind = markerLineKind(m.Kind)
			line.Marker = &m
			classified = append(classified, line)
			continue
		}

		if s.open != "" && continues(line) {
			s.open += " " + line.Stripped
			line.Kind = LineContinuation
			classified = append(classified, line)
			continue
		}

		s.flush()
		classified = append(classified, line)
	}
	s.flush()

	return s.items, classified
}

// nextNonBlankIsMarker looks past blank lines starting at index from and
// reports whether the first non-blank line carries a list marker.
func nextNonBlankIsMarker(lines []string, from int) bool {
	for _, l := range lines[from:] {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		return HasMarker(trimmed)
	}
	return false
}

// CleanBullets normalizes raw bullet items. Items ending in a colon are kept
// verbatim as nested headings; everything else is capitalized and given
// terminal punctuation. Running it on its own output is a no-op.
func CleanBullets(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		point := strings.Join(strings.Fields(StripMarker(item)), " ")
		if point == "" || point == ":" || point == "." {
			continue
		}
		if strings.HasSuffix(point, ":") {
			cleaned = append(cleaned, point)
			continue
		}
		point = capitalizeFirst(point)
		if !hasTerminalPunctuation(point) {
			point += "."
		}
		cleaned = append(cleaned, point)
	}
	return cleaned
}

// FormatBullets prefixes each bullet with a bullet glyph for display.
func FormatBullets(items []string) []string {
	formatted := make([]string, len(items))
	for i, item := range items {
		formatted[i] = "• " + item
	}
	return formatted
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?") || strings.HasSuffix(s, ":")
}
