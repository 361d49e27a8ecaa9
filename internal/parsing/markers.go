package parsing

import "regexp"

// MarkerKind identifies the family of list prefix that opened a bullet.
type MarkerKind int

const (
	// MarkerNone means the line carries no list prefix.
	MarkerNone MarkerKind = iota
	// MarkerGlyph covers unicode bullets, ASCII dash/asterisk/plus, arrows, checkmarks and checkboxes.
	MarkerGlyph
	// MarkerNumbered covers "1." and "1)" style prefixes.
	MarkerNumbered
	// MarkerLetter covers "a)" and "a." style prefixes.
	MarkerLetter
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerGlyph:
		return "glyph"
	case MarkerNumbered:
		return "numbered"
	case MarkerLetter:
		return "letter"
	default:
		return "none"
	}
}

// Marker is a recognized list prefix. End is the byte offset in the matched
// line where the bullet's content begins.
type Marker struct {
	Kind MarkerKind
	Text string
	End  int
}

// Marker whitespace includes Unicode space separators such as the no-break
// space that PDF and word-processor exports put after bullet glyphs.
var (
	glyphMarkerRe    = regexp.MustCompile(`^[\s\p{Zs}]*([•·‣⁃◦○●◆▪▫▶►→⚫⚬✓☐\-\*\+])[\s\p{Zs}]+`)
	numberedMarkerRe = regexp.MustCompile(`^[\s\p{Zs}]*(\d+[.)])[\s\p{Zs}]+`)
	letterMarkerRe   = regexp.MustCompile(`^[\s\p{Zs}]*([a-zA-Z][.)])[\s\p{Zs}]+`)
)

// markerPatterns is ordered: the first pattern that matches wins.
var markerPatterns = []struct {
	kind MarkerKind
	re   *regexp.Regexp
}{
	{MarkerGlyph, glyphMarkerRe},
	{MarkerNumbered, numberedMarkerRe},
	{MarkerLetter, letterMarkerRe},
}

// MatchMarker reports whether line starts with a list marker. Leading
// indentation is allowed and at least one whitespace character must follow
// the marker itself.
func MatchMarker(line string) (Marker, bool) {
	for _, p := range markerPatterns {
		loc := p.re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		return Marker{
			Kind: p.kind,
			Text: line[loc[2]:loc[3]],
			End:  loc[1],
		}, true
	}
	return Marker{}, false
}

// HasMarker is shorthand for checking MatchMarker's second result.
func HasMarker(line string) bool {
	_, ok := MatchMarker(line)
	return ok
}

// StripMarker removes leading list markers until none remain.
func StripMarker(s string) string {
	for {
		m, ok := MatchMarker(s)
		if !ok {
			return s
		}
		s = s[m.End:]
	}
}
