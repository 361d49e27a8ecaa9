package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/batch"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/education"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer line of text", 10, "a longe..."},
		{"• ünïcode bullets here", 10, "• ünïco..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.width))
		})
	}
}

func TestPrintBox_LineWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "• short\n"+strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(parsing.Segment("Experience\n- Built APIs\n- Led team\n\nSkills\nGo, SQL"))
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "Built APIs")
	assert.Contains(t, output, "SKILLS")
}

func TestPrintDocument_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(parsing.Segment(""))

	assert.Contains(t, buf.String(), "No sections found")
}

func TestPrintFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFields(analysis.Fields{
		Contact: parsing.ContactInfo{Name: "Jane Roe", Email: "jane@example.com"},
		Skills:  skills.Skills{"python": {Count: 2}, "go": {Count: 1}},
		Jobs:    []experience.Job{{Title: "Engineer", Company: "Acme", Duration: "2 years"}},
		Education: []education.Degree{
			{Degree: "Bachelor of Science", Major: "Computer Science", School: "State University"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED FIELDS")
	assert.Contains(t, output, "Email:    jane@example.com")
	assert.Contains(t, output, "Skills (2)")
	assert.Less(t, strings.Index(output, "• go"), strings.Index(output, "• python"))
	assert.Contains(t, output, "Engineer at Acme (2 years)")
	assert.Contains(t, output, "State University")
	assert.NotContains(t, output, "Phone:")
}

func TestPrintFields_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFields(analysis.Fields{})

	assert.Contains(t, buf.String(), "No fields found")
}

func TestPrintBullets(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBullets([]string{"Built APIs", "Led team"})
	assert.Contains(t, buf.String(), "BULLET POINTS (2)")
	assert.Contains(t, buf.String(), " 2. Led team")

	buf.Reset()
	p.PrintBullets(nil)
	assert.Contains(t, buf.String(), "No bullet points found")
}

func TestPrintJobProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.JobProfile{
		Industry:      "technology",
		Level:         "senior",
		YearsRequired: 5,
		HardRequirements: []types.Requirement{
			{Skill: "Go"}, {Skill: "Kubernetes"}, {Skill: "SQL"},
			{Skill: "AWS"}, {Skill: "Docker"}, {Skill: "Terraform"},
		},
		NiceToHaves: []types.Requirement{
			{Skill: "Rust"},
		},
		EducationRequirements: &types.EducationRequirements{MinDegree: "Bachelors", IsRequired: true},
	}

	p.PrintJobProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "JOB PROFILE")
	assert.Contains(t, output, "technology")
	assert.Contains(t, output, "5+")
	assert.Contains(t, output, "Bachelors (required)")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "Rust")
	assert.NotContains(t, output, "Terraform")
}

func TestPrintJobProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := &analysis.Analysis{
		Similarity:     62.5,
		MatchingSkills: []string{"Python"},
		MissingSkills:  []string{"Kubernetes"},
		Feedback: analysis.Feedback{
			Overall:     scoring.FeedbackGood,
			Suggestions: []string{"Add missing skills: Kubernetes"},
		},
		FormatAnalysis: &suggest.FormatAnalysis{FormatScore: 85},
		SkillCoverage:  &types.SkillCoverage{Score: 0.5},
		VerbEnhancements: []suggest.Enhancement{
			{Original: "Worked on APIs", HasVerb: true, Verb: "Worked on", Suggestions: []string{"Developed", "Engineered"}, Examples: []string{"Developed APIs"}},
		},
		VerbSummary: suggest.EnhancementSummary{
			Status: suggest.StatusNeedsImprovement,
			Stats:  &suggest.EnhancementStats{TotalPoints: 1, StrongVerbRatio: 0},
		},
		Warnings: []string{analysis.WarnNoJobSkills},
	}

	p.PrintAnalysis(a)
	output := buf.String()

	assert.Contains(t, output, "62.5%")
	assert.Contains(t, output, "85/100")
	assert.Contains(t, output, "Coverage: 50%")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "ACTION VERBS")
	assert.Contains(t, output, "Worked on → Developed, Engineered")
	assert.Contains(t, output, analysis.WarnNoJobSkills)
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	best := "jane.txt"
	report := &batch.Report{
		Results: []batch.Result{
			{Success: true, Filename: "jane.txt", Analysis: &analysis.Analysis{Similarity: 71.2}},
			{Filename: "empty.txt", Error: "bad input"},
		},
		Summary: batch.Summary{TotalResumes: 2, Successful: 1, Failed: 1, AverageScore: 71.2, MaxScore: 71.2, MinScore: 71.2, BestCandidate: &best},
	}

	p.PrintBatch(report)
	output := buf.String()

	assert.Contains(t, output, "71.2%")
	assert.Contains(t, output, "FAILED: bad input")
	assert.Contains(t, output, "Processed: 2 (1 ok, 1 failed)")
	assert.Contains(t, output, "Best:      jane.txt")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	id := uuid.New()
	p.PrintHistory([]db.Analysis{{
		ID:              id,
		ResumeFilename:  "jane.txt",
		SimilarityScore: 0.42,
		CreatedAt:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}})
	output := buf.String()

	assert.Contains(t, output, "2024-03-01 09:30")
	assert.Contains(t, output, "42.0%")
	assert.Contains(t, output, id.String())

	buf.Reset()
	p.PrintHistory(nil)
	assert.Contains(t, buf.String(), "No analyses found")
}

func TestPrintTips(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTips([]string{"Use standard headings"})

	assert.Contains(t, buf.String(), " 1. Use standard headings")
}
