package suggest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// Template describes a resume layout.
type Template struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	RecommendedFor []string `json:"recommended_for"`
	ATSScore       int      `json:"ats_score"`
	PriorityAdvice []string `json:"priority_advice,omitempty"`
}

// Template keys.
const (
	TemplateModernProfessional = "modern_professional"
	TemplateExecutive          = "executive"
	TemplateTechnical          = "technical"
	TemplateCreative           = "creative"
)

var templates = []Template{
	{
		Key:         TemplateModernProfessional,
		Name:        "Modern Professional",
		Description: "Clean, ATS-friendly format with clear sections",
		Features: []string{
			"Single column layout for better ATS parsing",
			"Clear section headers (Experience, Education, Skills)",
			"Standard fonts (Arial, Calibri, Times New Roman)",
			"Bullet points for achievements",
			"0.5-1 inch margins",
			"No tables, text boxes, or graphics that confuse ATS",
		},
		RecommendedFor: []string{"Technical roles", "Corporate positions", "Entry to mid-level"},
		ATSScore:       95,
	},
	{
		Key:         TemplateExecutive,
		Name:        "Executive",
		Description: "Leadership-focused format highlighting strategic achievements",
		Features: []string{
			"Executive summary at the top",
			"Emphasis on leadership and business impact",
			"Quantified achievements with metrics",
			"Board positions and speaking engagements",
			"Professional affiliations",
			"Two-page format acceptable",
		},
		RecommendedFor: []string{"C-suite", "Senior management", "15+ years experience"},
		ATSScore:       90,
	},
	{
		Key:         TemplateTechnical,
		Name:        "Technical/Developer",
		Description: "Skills-first format for technical professionals",
		Features: []string{
			"Technical skills section prominently placed",
			"Project highlights with technologies used",
			"GitHub/Portfolio links",
			"Certifications and technical training",
			"Clear technology stack for each role",
			"Keywords aligned with job descriptions",
		},
		RecommendedFor: []string{"Software engineers", "IT professionals", "Data scientists"},
		ATSScore:       92,
	},
	{
		Key:         TemplateCreative,
		Name:        "Creative Professional",
		Description: "Portfolio-focused with personality (use carefully)",
		Features: []string{
			"Portfolio link prominently displayed",
			"Skills and tools section",
			"Project-based experience format",
			"Minimal color accents (if any)",
			"Still ATS-compatible formatting",
			"Links to work samples",
		},
		RecommendedFor: []string{"Designers", "Writers", "Marketing professionals"},
		ATSScore:       85,
	},
}

// Word count bounds used by the format check.
const (
	minWords     = 200
	maxWords     = 1500
	idealMinWord = 400
	idealMaxWord = 1200
)

// FormatAnalysis scores a resume's layout out of 100.
type FormatAnalysis struct {
	FormatScore int      `json:"format_score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Strengths   []string `json:"strengths"`
	WordCount   int      `json:"word_count"`
}

var requiredSectionWords = []string{"experience", "education", "skills"}

// AnalyzeFormat checks contact completeness, length, quantified
// achievements, table characters and the presence of the standard section
// words. Each failed check lowers the score, which never drops below zero.
func AnalyzeFormat(resumeText string, contact parsing.ContactInfo) FormatAnalysis {
	fa := FormatAnalysis{
		Issues:      []string{},
		Suggestions: []string{},
		Strengths:   []string{},
	}
	score := 100

	if contact.Email == "" {
		fa.Issues = append(fa.Issues, "Missing email address")
		fa.Suggestions = append(fa.Suggestions, "Add a professional email address at the top")
		score -= 10
	}
	if contact.Phone == "" {
		fa.Issues = append(fa.Issues, "Missing phone number")
		fa.Suggestions = append(fa.Suggestions, "Include a phone number for easy contact")
		score -= 5
	}

	fa.WordCount = len(strings.Fields(resumeText))
	switch {
	case fa.WordCount < minWords:
		fa.Issues = append(fa.Issues, "Resume appears too short")
		fa.Suggestions = append(fa.Suggestions, "Expand on your experience and achievements (aim for 400-800 words)")
		score -= 15
	case fa.WordCount > maxWords:
		fa.Issues = append(fa.Issues, "Resume may be too long")
		fa.Suggestions = append(fa.Suggestions, "Condense to 1-2 pages (800-1200 words) for better readability")
		score -= 10
	}

	hasNumbers := strings.IndexFunc(resumeText, unicode.IsDigit) >= 0
	if !hasNumbers {
		fa.Issues = append(fa.Issues, "No quantifiable achievements found")
		fa.Suggestions = append(fa.Suggestions, `Add metrics and numbers (e.g., "Increased sales by 25%", "Managed team of 10")`)
		score -= 15
	}

	if strings.ContainsAny(resumeText, "|┃") {
		fa.Issues = append(fa.Issues, "May contain tables or columns that confuse ATS")
		fa.Suggestions = append(fa.Suggestions, "Use simple bullet points instead of tables or multi-column layouts")
		score -= 10
	}

	lower := strings.ToLower(resumeText)
	var missing []string
	for _, s := range requiredSectionWords {
		if !strings.Contains(lower, s) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		list := strings.Join(missing, ", ")
		fa.Issues = append(fa.Issues, "Missing common sections: "+list)
		fa.Suggestions = append(fa.Suggestions, "Add sections for: "+cases.Title(language.English).String(list))
		score -= 10
	}

	if contact.Email != "" && contact.Phone != "" {
		fa.Strengths = append(fa.Strengths, "Contact information is complete")
	}
	if fa.WordCount >= idealMinWord && fa.WordCount <= idealMaxWord {
		fa.Strengths = append(fa.Strengths, "Resume length is appropriate")
	}
	if hasNumbers {
		fa.Strengths = append(fa.Strengths, "Includes quantifiable achievements")
	}

	fa.FormatScore = max(0, score)
	return fa
}

// TemplateRecommendation is the suggested template and two alternatives.
type TemplateRecommendation struct {
	Recommended  Template   `json:"recommended_template"`
	Alternatives []Template `json:"alternative_templates"`
}

var (
	technicalJobWords = []string{"engineer", "developer", "programmer", "software", "data scientist", "devops"}
	executiveJobWords = []string{"chief", "director", "vp", "vice president", "head of", "executive"}
	creativeJobWords  = []string{"designer", "creative", "writer", "artist", "marketing", "brand"}
)

// RecommendTemplate picks a template from the kind of role the job
// describes, checking executive, technical and creative wording in that
// order. matchPercentage selects the priority advice.
func RecommendTemplate(matchPercentage float64, jobText string) TemplateRecommendation {
	lower := strings.ToLower(jobText)
	key := TemplateModernProfessional
	switch {
	case containsAnyWord(lower, executiveJobWords):
		key = TemplateExecutive
	case containsAnyWord(lower, technicalJobWords):
		key = TemplateTechnical
	case containsAnyWord(lower, creativeJobWords):
		key = TemplateCreative
	}

	rec := TemplateRecommendation{Alternatives: []Template{}}
	for _, t := range templates {
		if t.Key == key {
			rec.Recommended = t
		} else if len(rec.Alternatives) < 2 {
			rec.Alternatives = append(rec.Alternatives, t)
		}
	}

	switch {
	case matchPercentage < 60:
		rec.Recommended.PriorityAdvice = []string{
			"Restructure resume to emphasize skills matching the job description",
			"Use keywords from the job posting throughout your resume",
			"Quantify achievements relevant to this role",
		}
	case matchPercentage < 80:
		rec.Recommended.PriorityAdvice = []string{
			"Good match! Fine-tune keywords to improve ATS compatibility",
			"Add more specific examples of relevant experience",
		}
	default:
		rec.Recommended.PriorityAdvice = []string{
			"Excellent match! Maintain current keyword usage",
			"Ensure formatting is ATS-friendly for submission",
		}
	}
	return rec
}

var atsTips = []string{
	"Use standard section headers: Summary, Experience, Education, Skills",
	"Avoid headers, footers, tables, and text boxes",
	"Use standard fonts: Arial, Calibri, Times New Roman (10-12pt)",
	"Save as .docx or .pdf (check job posting requirements)",
	"Use standard bullet points (•, -, or *)",
	"Spell out acronyms at least once",
	"Include keywords from job description naturally",
	"Use reverse chronological order for experience",
	"Avoid images, logos, and graphics",
	"Keep margins between 0.5-1 inch",
	"Use simple formatting (bold for headers, regular for text)",
	"Test your resume with an ATS checker before submitting",
}

// ATSTips returns general ATS formatting tips.
func ATSTips() []string {
	return append([]string(nil), atsTips...)
}
