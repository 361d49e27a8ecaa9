package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-analyzer/internal/scoring"
)

// Section names checked by the section advisor. These differ from the
// parser's sections: projects is included and contact is not.
const (
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionSummary    = "summary"
)

var adviceSections = []struct {
	name     string
	headers  []string
	pattern  *regexp.Regexp
	required []string
}{
	{
		name:    SectionEducation,
		headers: []string{"education"},
		pattern: regexp.MustCompile(`education|academic|degree|university|college|school`),
		required: []string{
			"degree name", "field of study", "university name", "graduation year",
			"GPA (if notable)", "relevant coursework", "academic achievements",
		},
	},
	{
		name:    SectionExperience,
		headers: []string{"experience", "work experience", "employment history"},
		pattern: regexp.MustCompile(`experience|work|employment|job|position|career`),
		required: []string{
			"company name", "job title", "employment dates", "location",
			"key responsibilities", "quantifiable achievements", "technologies used",
		},
	},
	{
		name:    SectionSkills,
		headers: []string{"skills", "technical skills", "core competencies"},
		pattern: regexp.MustCompile(`skills|technologies|tools|programming|languages`),
		required: []string{
			"technical skills", "soft skills", "certifications",
			"proficiency levels", "tools and technologies", "languages",
		},
	},
	{
		name:    SectionProjects,
		headers: []string{"projects", "portfolio"},
		pattern: regexp.MustCompile(`projects|portfolio|achievements|accomplishments`),
		required: []string{
			"project name", "technologies used", "role/responsibilities",
			"outcome/impact", "timeline", "team size",
		},
	},
	{
		name:    SectionSummary,
		headers: []string{"summary", "professional summary", "profile"},
		pattern: regexp.MustCompile(`summary|objective|profile|about`),
		required: []string{
			"years of experience", "key expertise areas", "notable achievements",
			"career objectives", "unique value proposition",
		},
	},
}

var (
	blockSplitRe     = regexp.MustCompile(`\n\s*\n`)
	quantifiedRe     = regexp.MustCompile(`\d+%|\d+x|\$\d+|\d+ \w+`)
	strongOpenerRe   = regexp.MustCompile(`^•\s*(?:Led|Developed|Implemented|Created|Managed|Improved)`)
	yearsMentionedRe = regexp.MustCompile(`\d+ years?`)
)

// maxListedTerms caps how many job terms a single suggestion lists.
const maxListedTerms = 10

// SectionAdvisor checks resume sections against a job description.
type SectionAdvisor struct {
	vectorizer *scoring.Vectorizer
	caser      cases.Caser
}

// NewSectionAdvisor creates an advisor.
func NewSectionAdvisor() *SectionAdvisor {
	return &SectionAdvisor{
		vectorizer: scoring.NewVectorizer(),
		caser:      cases.Title(language.English),
	}
}

// IdentifySections splits text into blank-line separated blocks and names a
// block by its first line: an exact header first, then a header pattern.
// Blocks with no content lines after the header are ignored, and a later
// block replaces an earlier one of the same section.
func IdentifySections(text string) map[string]string {
	sections := make(map[string]string)
	for _, block := range blockSplitRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		first := strings.ToLower(strings.TrimSpace(lines[0]))

		var content []string
		for _, line := range lines[1:] {
			if line = strings.TrimSpace(line); line != "" {
				content = append(content, line)
			}
		}
		if len(content) == 0 {
			continue
		}
		if name := classifyHeader(first); name != "" {
			sections[name] = strings.Join(content, "\n")
		}
	}
	return sections
}

func classifyHeader(first string) string {
	for _, s := range adviceSections {
		if contains(s.headers, first) {
			return s.name
		}
	}
	for _, s := range adviceSections {
		if s.pattern.MatchString(first) {
			return s.name
		}
	}
	return ""
}

// AnalyzeSection lists what a section is missing. Requirement elements are
// satisfied when any of their words appears in the content; each section
// kind then has its own job-aware checks.
func (a *SectionAdvisor) AnalyzeSection(section, content, jobText string) []string {
	suggestions := []string{}
	lowerContent := strings.ToLower(content)

	for _, s := range adviceSections {
		if s.name != section {
			continue
		}
		for _, req := range s.required {
			if !containsAnyWord(lowerContent, strings.Fields(strings.ToLower(req))) {
				suggestions = append(suggestions, fmt.Sprintf("Add %s to your %s section", req, section))
			}
		}
	}

	switch section {
	case SectionExperience:
		if !quantifiedRe.MatchString(content) {
			suggestions = append(suggestions,
				"Add quantifiable achievements (e.g., increased efficiency by 25%, managed $1M budget)")
		}
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "•") && !strongOpenerRe.MatchString(line) {
				suggestions = append(suggestions,
					"Start bullet points with strong action verbs (e.g., Led, Developed, Implemented)")
				break
			}
		}

	case SectionSkills:
		have := toSet(a.vectorizer.Tokens(content))
		var missing []string
		for _, term := range uniqueInOrder(a.vectorizer.Tokens(jobText)) {
			if !have[term] {
				missing = append(missing, term)
			}
		}
		if len(missing) > maxListedTerms {
			missing = missing[:maxListedTerms]
		}
		if len(missing) > 0 {
			suggestions = append(suggestions,
				"Consider adding these relevant skills if you have them: "+strings.Join(missing, ", "))
		}

	case SectionEducation:
		lowerJob := strings.ToLower(jobText)
		if strings.Contains(lowerJob, "gpa") && !strings.Contains(lowerContent, "gpa") {
			suggestions = append(suggestions, "Include GPA if it's 3.0 or higher")
		}
		if !strings.Contains(lowerContent, "coursework") {
			suggestions = append(suggestions, "List relevant coursework that aligns with job requirements")
		}

	case SectionSummary:
		if !yearsMentionedRe.MatchString(content) {
			suggestions = append(suggestions, "Mention your years of experience in the summary")
		}
		have := toSet(a.vectorizer.Tokens(content))
		var missing []string
		for _, term := range mostCommon(a.vectorizer.Tokens(jobText), 5) {
			if !have[term] {
				missing = append(missing, term)
			}
		}
		if len(missing) > 0 {
			suggestions = append(suggestions,
				"Align summary with job requirements by mentioning: "+strings.Join(missing, ", "))
		}
	}
	return suggestions
}

// GenerateSuggestions analyzes every identified section and adds a hint for
// each advisory section the resume lacks.
func (a *SectionAdvisor) GenerateSuggestions(resumeText, jobText string) map[string][]string {
	sections := IdentifySections(resumeText)
	out := make(map[string][]string)
	for name, content := range sections {
		if s := a.AnalyzeSection(name, content, jobText); len(s) > 0 {
			out[name] = s
		}
	}
	for _, s := range adviceSections {
		if _, ok := sections[s.name]; !ok {
			out[s.name] = []string{fmt.Sprintf("Add a %s section to your resume", a.caser.String(s.name))}
		}
	}
	return out
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func uniqueInOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// mostCommon returns the n most frequent items, ties in first-seen order.
func mostCommon(items []string, n int) []string {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item]++
	}
	order := uniqueInOrder(items)
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}
