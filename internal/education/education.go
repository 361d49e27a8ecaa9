// Package education extracts degrees from resume education sections and
// degree requirements from job descriptions.
package education

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Degree levels, ordered from lowest to highest.
const (
	LevelBachelors = "Bachelors"
	LevelMasters   = "Masters"
	LevelPhd       = "Phd"
)

// Degree is one education entry. Fields that could not be found are empty.
type Degree struct {
	Degree     string `json:"degree,omitempty"`
	Major      string `json:"major,omitempty"`
	School     string `json:"school,omitempty"`
	Graduation string `json:"graduation,omitempty"`
	GPA        string `json:"gpa,omitempty"`
}

var degreeLevels = []struct {
	level string
	rank  int
	re    *regexp.Regexp
}{
	{LevelBachelors, 1, regexp.MustCompile(`(?i:bachelor'?s?(?:\sof\s(?:science|arts|engineering|business))?|undergraduate degree)|\bB\.?(?:S|A|E|B\.?A)\b`)},
	{LevelMasters, 2, regexp.MustCompile(`(?i:master'?s?(?:\sof\s(?:science|arts|engineering|business))?|graduate degree)|\bM\.?(?:S|A|E|B\.?A)\b`)},
	{LevelPhd, 3, regexp.MustCompile(`(?i)ph\.?d|doctor(?:ate)?\sof\sphilosophy|doctoral degree`)},
}

var (
	entryBreakRe    = regexp.MustCompile(`(?i)(?:19|20)\d{2}|gpa|bachelor|master|phd|degree`)
	specificMajorRe = regexp.MustCompile(`(?i)(?:bachelor|master|doctor).*?\s+in\s+([A-Za-z\s]+?)(?:\s*,|\s+Expected|\s+\d{4}|$)`)
	majorPrefixRe   = regexp.MustCompile(`(?i)^(?:Science|Arts|Engineering|Business)\s+in\s+`)
	generalMajorRe  = regexp.MustCompile(`(?i)(?:in|of)\s+([A-Za-z\s]+?)(?:\s*,|\s+Expected|\s+\d{4}|$)|([^,.\n]+)\smajor`)
	graduationRe    = regexp.MustCompile(`(?i)(?:expected|anticipated)?\s*(?:19|20)\d{2}`)
	gpaRe           = regexp.MustCompile(`(?i)(?:gpa|grade point average)[:\s]+([0-9.]+)`)
	schoolStopWords = []string{"gpa", "expected", "bachelor", "master", "phd"}
)

const minEntryLineChars = 5

// ExtractDegrees splits education text into entries and extracts the degree
// fields of each. A line longer than five characters that carries no year,
// GPA or degree word starts a new entry, as does a blank line. Entries with
// neither a school nor a degree level are dropped.
func ExtractDegrees(text string) []Degree {
	degrees := []Degree{}
	for _, entry := range splitEntries(text) {
		d := parseEntry(entry)
		if d.School != "" || d.Degree != "" {
			degrees = append(degrees, d)
		}
	}
	return degrees
}

// ExtractDocumentDegrees extracts degrees from the document's education section.
func ExtractDocumentDegrees(doc *parsing.Document) []Degree {
	return ExtractDegrees(doc.Text(parsing.SectionEducation))
}

func splitEntries(text string) [][]string {
	var entries [][]string
	var current []string
	closeEntry := func() {
		if len(current) > 0 {
			entries = append(entries, current)
			current = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			closeEntry()
			continue
		}
		if len(line) > minEntryLineChars && !entryBreakRe.MatchString(line) {
			closeEntry()
		}
		current = append(current, line)
	}
	closeEntry()
	return entries
}

func parseEntry(lines []string) Degree {
	entry := strings.Join(lines, "\n")
	var d Degree

	d.Degree = DegreeLevel(entry)
	d.Major = extractMajor(entry)

	if m := graduationRe.FindString(entry); m != "" {
		d.Graduation = strings.TrimSpace(m)
	}
	if m := gpaRe.FindStringSubmatch(entry); m != nil {
		d.GPA = m[1]
	}

	first := lines[0]
	if len(first) > minEntryLineChars && !containsAny(strings.ToLower(first), schoolStopWords) {
		d.School = first
	}
	return d
}

func extractMajor(entry string) string {
	if m := specificMajorRe.FindStringSubmatch(entry); m != nil {
		return majorPrefixRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
	}
	m := generalMajorRe.FindStringSubmatch(entry)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

// DegreeLevel returns the first degree level named in text, checking
// bachelors, then masters, then PhD. It returns "" when none is named.
func DegreeLevel(text string) string {
	for _, dl := range degreeLevels {
		if dl.re.MatchString(text) {
			return dl.level
		}
	}
	return ""
}

// Rank orders degree levels; unknown levels rank 0.
func Rank(level string) int {
	for _, dl := range degreeLevels {
		if dl.level == level {
			return dl.rank
		}
	}
	return 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var (
	sentenceRe     = regexp.MustCompile(`[^.!?\n]+`)
	requiredWordRe = regexp.MustCompile(`(?i)\b(?:required|requires|must|minimum|mandatory)\b`)
)

// DetectRequirement finds the lowest degree level a job description names
// and whether the sentence naming it marks it as required. It returns nil
// when no degree is mentioned.
func DetectRequirement(jobText string) *types.EducationRequirements {
	var req *types.EducationRequirements
	minRank := 0
	for _, sentence := range sentenceRe.FindAllString(jobText, -1) {
		for _, dl := range degreeLevels {
			if !dl.re.MatchString(sentence) {
				continue
			}
			if req == nil || dl.rank < minRank {
				minRank = dl.rank
				req = &types.EducationRequirements{
					MinDegree:  dl.level,
					Evidence:   strings.TrimSpace(sentence),
					IsRequired: requiredWordRe.MatchString(sentence),
				}
			}
			break
		}
	}
	return req
}

// Meets reports whether any degree is at or above the required level. A nil
// requirement is always met.
func Meets(degrees []Degree, req *types.EducationRequirements) bool {
	if req == nil {
		return true
	}
	need := Rank(req.MinDegree)
	for _, d := range degrees {
		if Rank(d.Degree) >= need {
			return true
		}
	}
	return false
}
