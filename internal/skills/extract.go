// Package skills extracts categorized skills from resume text and builds
// weighted skill targets from job requirements.
package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/nlp"
	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// Category names used by the phrase matcher and the regex fallback.
const (
	CategoryProgramming = "PROGRAMMING"
	CategoryFramework   = "FRAMEWORK"
	CategoryTool        = "TOOL"
	CategoryOther       = "OTHER"
	CategoryCloud       = "Cloud"
)

// Skill is one extracted skill occurrence count.
type Skill struct {
	Count    int    `json:"count"`
	Category string `json:"category"`
}

// Skills maps a skill key to its count. Keys are "Category: Skill" for
// categorized hits and the bare skill for noun and regex hits.
type Skills map[string]Skill

func (s Skills) add(key, category string) {
	entry, ok := s[key]
	if !ok {
		s[key] = Skill{Count: 1, Category: category}
		return
	}
	entry.Count++
	s[key] = entry
}

// NamedSkill is a Skills entry with its key, used for ordered output.
type NamedSkill struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Skill
}

// Sorted returns the skills ordered by descending count, then key.
func (s Skills) Sorted() []NamedSkill {
	out := make([]NamedSkill, 0, len(s))
	for key, skill := range s {
		out = append(out, NamedSkill{Key: key, Name: skillName(key), Skill: skill})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Names returns the distinct normalized skill names without category
// prefixes, sorted.
func (s Skills) Names() []string {
	seen := make(map[string]string)
	for key := range s {
		name := NormalizeSkillName(skillName(key))
		if name == "" {
			continue
		}
		folded := strings.ToLower(name)
		if _, ok := seen[folded]; !ok {
			seen[folded] = name
		}
	}
	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func skillName(key string) string {
	if _, name, ok := strings.Cut(key, ": "); ok {
		return name
	}
	return key
}

var (
	categoryLineRe = regexp.MustCompile(`([A-Za-z\s]+):\s*([^:\n-]+?)(?:\n|$)`)
	skillSplitRe   = regexp.MustCompile(`[,;/]`)
)

// cloudTools are recategorized under Cloud wherever they appear.
var cloudTools = []string{"docker", "kubernetes", "aws", "azure", "gcp", "terraform", "ansible"}

var phraseLists = []struct {
	label   string
	phrases []string
}{
	{CategoryProgramming, []string{
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go",
		"Rust", "PHP", "Ruby", "Swift", "Kotlin", "SQL", "HTML", "CSS",
	}},
	{CategoryFramework, []string{
		"React", "Angular", "Vue.js", "Django", "Flask", "Spring",
		"Node.js", "Express.js", "TensorFlow", "PyTorch", "Scikit-learn",
		"Pandas", "NumPy", "Docker", "Kubernetes",
	}},
	{CategoryTool, []string{
		"Git", "AWS", "Azure", "GCP", "Linux", "Unix", "Jenkins",
		"CircleCI", "GitHub Actions", "Jira", "Confluence",
		"Terraform", "Ansible",
	}},
}

var nounStopWords = map[string]bool{
	"skills":      true,
	"technical":   true,
	"additional":  true,
	"experienced": true,
}

var fallbackPatterns = []struct {
	category string
	re       *regexp.Regexp
}{
	{CategoryProgramming, regexp.MustCompile(`\b(?:python|java|javascript|typescript|c\+\+|c#|go|rust)\b`)},
	{CategoryFramework, regexp.MustCompile(`\b(?:react|angular|vue|django|flask|spring|node\.js|tensorflow|pytorch)\b`)},
	{CategoryTool, regexp.MustCompile(`\b(?:git|docker|kubernetes|aws|azure|jenkins|terraform)\b`)},
}

// Extractor finds skills in text. The NLP provider is optional; without it
// extraction uses category lines and the keyword fallback only.
type Extractor struct {
	provider nlp.Provider
	matcher  *nlp.PhraseMatcher
}

// NewExtractor builds an extractor. provider may be nil.
func NewExtractor(provider nlp.Provider) *Extractor {
	matcher := nlp.NewPhraseMatcher()
	for _, list := range phraseLists {
		matcher.Add(list.label, list.phrases...)
	}
	return &Extractor{provider: provider, matcher: matcher}
}

// Extract runs the three extraction strategies over text. The phrase and
// noun passes need a working provider; a provider error is treated as no
// provider. The keyword fallback only runs when nothing else matched.
func (e *Extractor) Extract(text string) Skills {
	skills := make(Skills)
	if strings.TrimSpace(text) == "" {
		return skills
	}

	extractCategoryLines(skills, text)

	if e.provider != nil {
		if tokens, err := e.provider.Tokens(text); err == nil {
			for _, m := range e.matcher.MatchText(text) {
				skills.add(m.Label+": "+m.Text, m.Label)
			}
			extractNouns(skills, tokens)
		}
	}

	if len(skills) == 0 {
		extractKeywords(skills, text)
	}
	return skills
}

// ExtractDocument extracts skills from the skills section, or from fullText
// when the document has no skills section.
func (e *Extractor) ExtractDocument(doc *parsing.Document, fullText string) Skills {
	if text := doc.Text(parsing.SectionSkills); text != "" {
		return e.Extract(text)
	}
	return e.Extract(fullText)
}

func extractCategoryLines(skills Skills, text string) {
	for _, m := range categoryLineRe.FindAllStringSubmatch(text, -1) {
		category := strings.TrimSpace(m[1])
		list := strings.TrimSpace(m[2])
		if len(list) < 3 {
			continue
		}
		for _, part := range skillSplitRe.Split(list, -1) {
			skill := strings.TrimSpace(parsing.StripMarker(strings.TrimSpace(part)))
			if len(skill) <= 1 || strings.HasPrefix(skill, "-") {
				continue
			}
			if isCloudTool(skill) {
				skills.add(CategoryCloud+": "+skill, CategoryCloud)
				continue
			}
			skills.add(category+": "+skill, category)
		}
	}
}

func isCloudTool(skill string) bool {
	lower := strings.ToLower(skill)
	for _, tool := range cloudTools {
		if strings.Contains(lower, tool) {
			return true
		}
	}
	return false
}

func extractNouns(skills Skills, tokens []nlp.Token) {
	for _, tok := range tokens {
		if !tok.IsNoun() || len(tok.Text) <= 2 || tok.LikeNum() {
			continue
		}
		if !tok.IsTitle() && !tok.IsUpper() {
			continue
		}
		if nounStopWords[strings.ToLower(tok.Text)] {
			continue
		}
		skills.add(tok.Text, CategoryOther)
	}
}

func extractKeywords(skills Skills, text string) {
	lower := strings.ToLower(text)
	for _, p := range fallbackPatterns {
		for _, hit := range p.re.FindAllString(lower, -1) {
			skills.add(displayKeyword(hit), p.category)
		}
	}
}

func displayKeyword(hit string) string {
	switch hit {
	case "aws", "git":
		return strings.ToUpper(hit)
	}
	return strings.ToUpper(hit[:1]) + hit[1:]
}
