package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const advisorResume = `John Doe
john@example.com

Education
BS Computer Science, MIT 2020

Work Experience
• Led team of 5 engineers

Technical Skills
Python, Go

HeaderOnly
`

func TestIdentifySections(t *testing.T) {
	assert.Equal(t, map[string]string{
		SectionEducation:  "BS Computer Science, MIT 2020",
		SectionExperience: "• Led team of 5 engineers",
		SectionSkills:     "Python, Go",
	}, IdentifySections(advisorResume))
}

func TestSectionAdvisor_AnalyzeSection(t *testing.T) {
	a := NewSectionAdvisor()

	tests := []struct {
		name     string
		section  string
		content  string
		job      string
		contains []string
		excludes []string
	}{
		{
			name:    "experience without numbers or strong verbs",
			section: SectionExperience,
			content: "• Helped with tasks",
			contains: []string{
				"Add company name to your experience section",
				"Add quantifiable achievements (e.g., increased efficiency by 25%, managed $1M budget)",
				"Start bullet points with strong action verbs (e.g., Led, Developed, Implemented)",
			},
		},
		{
			name:    "experience with metrics",
			section: SectionExperience,
			content: "• Led 5 engineers at Acme",
			excludes: []string{
				"Add quantifiable achievements (e.g., increased efficiency by 25%, managed $1M budget)",
				"Start bullet points with strong action verbs (e.g., Led, Developed, Implemented)",
			},
		},
		{
			name:     "skills missing job terms",
			section:  SectionSkills,
			content:  "Python, Go",
			job:      "Python Kubernetes Terraform",
			contains: []string{"Consider adding these relevant skills if you have them: kubernetes, terraform"},
		},
		{
			name:    "education without gpa",
			section: SectionEducation,
			content: "BS Computer Science, MIT 2020",
			job:     "GPA 3.5 preferred",
			contains: []string{
				"Include GPA if it's 3.0 or higher",
				"List relevant coursework that aligns with job requirements",
			},
		},
		{
			name:    "summary",
			section: SectionSummary,
			content: "Backend engineer",
			job:     "Kubernetes Kubernetes Terraform",
			contains: []string{
				"Mention your years of experience in the summary",
				"Align summary with job requirements by mentioning: kubernetes, terraform",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeSection(tt.section, tt.content, tt.job)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestSectionAdvisor_GenerateSuggestions(t *testing.T) {
	got := NewSectionAdvisor().GenerateSuggestions(advisorResume, "Python Kubernetes")

	assert.Equal(t, []string{"Add a Projects section to your resume"}, got[SectionProjects])
	assert.Equal(t, []string{"Add a Summary section to your resume"}, got[SectionSummary])
	assert.Contains(t, got[SectionSkills], "Consider adding these relevant skills if you have them: kubernetes")
	assert.Contains(t, got, SectionEducation)
}

func TestMostCommon(t *testing.T) {
	assert.Equal(t, []string{"c", "b"}, mostCommon([]string{"a", "b", "b", "c", "c", "c", "d"}, 2))
	assert.Equal(t, []string{"x", "y"}, mostCommon([]string{"x", "y"}, 5))
}
