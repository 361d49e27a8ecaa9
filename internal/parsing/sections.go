package parsing

import (
	"regexp"
	"strings"
)

// SectionName is one of the canonical resume categories.
type SectionName string

const (
	SectionContact    SectionName = "contact"
	SectionSummary    SectionName = "summary"
	SectionEducation  SectionName = "education"
	SectionExperience SectionName = "experience"
	SectionSkills     SectionName = "skills"
	SectionUnknown    SectionName = "unknown"
)

// SectionOrder is the canonical ordering used for iteration and output.
var SectionOrder = []SectionName{
	SectionContact,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionUnknown,
}

type sectionKeyword struct {
	keyword string
	re      *regexp.Regexp
}

type sectionHeader struct {
	name     SectionName
	keywords []sectionKeyword
}

// sectionHeaders is checked in order; the first category with a whole-word
// keyword hit wins.
var sectionHeaders = []sectionHeader{
	newSectionHeader(SectionContact, "contact", "contact information"),
	newSectionHeader(SectionSummary, "summary", "objective", "profile", "about"),
	newSectionHeader(SectionEducation, "education", "academic", "qualifications", "university", "college"),
	newSectionHeader(SectionExperience, "experience", "work", "work experience", "employment", "job", "position"),
	newSectionHeader(SectionSkills, "skills", "technical skills", "technologies"),
}

func newSectionHeader(name SectionName, keywords ...string) sectionHeader {
	h := sectionHeader{name: name}
	for _, kw := range keywords {
		h.keywords = append(h.keywords, sectionKeyword{
			keyword: kw,
			re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	return h
}

// isKeyword reports whether lowered is exactly one of the header's keywords.
func (h sectionHeader) isKeyword(lowered string) bool {
	for _, kw := range h.keywords {
		if lowered == kw.keyword {
			return true
		}
	}
	return false
}

// matchSectionHeader returns the header category a line's lowercased text
// names, if any.
func matchSectionHeader(lowered string) (sectionHeader, bool) {
	for _, h := range sectionHeaders {
		for _, kw := range h.keywords {
			if kw.re.MatchString(lowered) {
				return h, true
			}
		}
	}
	return sectionHeader{}, false
}

// contactHints move a line into the contact section wherever it appears.
var contactHints = []string{"@", "email", "linkedin.com", "github.com", "phone"}

func hasContactHint(lowered string) bool {
	for _, hint := range contactHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}

// bulletSections are the sections whose text is run through the bullet extractor.
var bulletSections = map[SectionName]bool{
	SectionEducation:  true,
	SectionExperience: true,
	SectionSkills:     true,
}

// sectionBuffer accumulates the raw lines of one section. Blank lines are
// stored as "" separators.
type sectionBuffer struct {
	lines       []string
	headerFirst bool
}

func (b *sectionBuffer) contentLen() int {
	n := 0
	for _, l := range b.lines {
		if l != "" {
			n++
		}
	}
	return n
}

// segmentState is the mutable state of one Segment call.
type segmentState struct {
	current     SectionName
	buffers     map[SectionName]*sectionBuffer
	assignments []LineAssignment
}

func newSegmentState() *segmentState {
	return &segmentState{
		current: SectionUnknown,
		buffers: make(map[SectionName]*sectionBuffer),
	}
}

func (st *segmentState) buffer(name SectionName) *sectionBuffer {
	b, ok := st.buffers[name]
	if !ok {
		b = &sectionBuffer{}
		st.buffers[name] = b
	}
	return b
}

func (st *segmentState) appendLine(line string, header bool) {
	b := st.buffer(st.current)
	if header && b.contentLen() == 0 {
		b.headerFirst = true
	}
	b.lines = append(b.lines, line)
}

func (st *segmentState) separator() {
	b, ok := st.buffers[st.current]
	if !ok || len(b.lines) == 0 || b.lines[len(b.lines)-1] == "" {
		return
	}
	b.lines = append(b.lines, "")
}

func (st *segmentState) assign(index int, rule string, retained bool) {
	st.assignments = append(st.assignments, LineAssignment{
		Index:    index,
		Section:  st.current,
		Rule:     rule,
		Retained: retained,
	})
}

// A segmentRule inspects one non-blank line and reports whether it handled
// it. Rules run in order and the first one that handles the line wins.
type segmentRule struct {
	name  string
	apply func(st *segmentState, index int, line Line) bool
}

var segmentRules = []segmentRule{
	{name: "heading", apply: headingRule},
	{name: "contact", apply: contactRule},
	{name: "append", apply: appendRule},
}

// headingRule switches section when the line names a section. A line that is
// exactly a keyword is swallowed; anything longer is kept as content. A kept
// line that opens a new section is marked as that section's header.
func headingRule(st *segmentState, index int, line Line) bool {
	lowered := strings.ToLower(line.Stripped)
	h, ok := matchSectionHeader(lowered)
	if !ok {
		return false
	}
	switched := st.current != h.name
	st.current = h.name
	retained := !h.isKeyword(lowered)
	if retained {
		st.appendLine(line.Raw, switched)
	}
	st.assign(index, "heading", retained)
	return true
}

// contactRule is the guarded transition into the contact section. It runs
// before the default rule and its effect persists until the next heading.
func contactRule(st *segmentState, index int, line Line) bool {
	if !hasContactHint(strings.ToLower(line.Stripped)) {
		return false
	}
	st.current = SectionContact
	st.appendLine(line.Raw, false)
	st.assign(index, "contact", true)
	return true
}

func appendRule(st *segmentState, index int, line Line) bool {
	st.appendLine(line.Raw, false)
	st.assign(index, "append", true)
	return true
}

// Segment splits document text into named sections and extracts bullets for
// the education, experience and skills sections. Empty input produces a
// document with no sections.
func Segment(text string) *Document {
	return segmentWith(defaultExtractor, text)
}

func segmentWith(extractor *BulletExtractor, text string) *Document {
	st := newSegmentState()

	for i, raw := range splitLines(text) {
		line := NewLine(raw)
		if line.Kind == LineBlank {
			st.separator()
			continue
		}
		for _, rule := range segmentRules {
			if rule.apply(st, i, line) {
				break
			}
		}
	}

	doc := &Document{
		Sections: make(map[SectionName]*Section),
		Lines:    st.assignments,
	}
	for _, name := range SectionOrder {
		b, ok := st.buffers[name]
		if !ok {
			continue
		}
		if section := buildSection(extractor, name, b); section != nil {
			doc.Sections[name] = section
		}
	}
	return doc
}

// buildSection derives the text block and bullets for one section. It
// returns nil when the section has no text.
func buildSection(extractor *BulletExtractor, name SectionName, b *sectionBuffer) *Section {
	lines := b.lines
	if name != SectionContact && b.headerFirst && len(lines) > 0 {
		lines = lines[1:]
	}
	lines = trimBlankEdges(lines)

	text := strings.TrimSpace(strings.Join(dedent(lines), "\n"))
	if text == "" {
		return nil
	}

	// Bullets see the lines as written: indentation marks continuations.
	section := &Section{Name: name, Text: text, BulletPoints: []string{}}
	if bulletSections[name] {
		section.BulletPoints = extractor.Extract(strings.Join(anchoredLines(lines), "\n"))
	}
	return section
}

// anchoredLines regroups lines into blank-delimited blocks and keeps each
// block from its first anchor line onward. An anchor is a colon-terminated
// line or a marker line. When no block has an anchor the original lines are
// returned unchanged.
func anchoredLines(lines []string) []string {
	var included []string
	for _, block := range splitBlocks(lines) {
		for i, l := range block {
			s := strings.TrimSpace(l)
			if strings.HasSuffix(s, ":") || HasMarker(s) {
				if len(included) > 0 {
					included = append(included, "")
				}
				included = append(included, block[i:]...)
				break
			}
		}
	}
	if len(included) == 0 {
		return lines
	}
	return included
}

func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// dedent removes the indentation shared by every non-blank line, keeping
// relative indentation intact.
func dedent(lines []string) []string {
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= common {
			out[i] = l[common:]
		}
	}
	return out
}
