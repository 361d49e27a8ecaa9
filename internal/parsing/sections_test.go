package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_BulletSections(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		section  SectionName
		expected []string
	}{
		{
			name: "experience entries with preambles",
			input: `
        Work Experience

        Senior Software Engineer at TechCorp
        • Led development of cloud-based platform
        • Implemented CI/CD pipeline
        • Mentored junior developers

        Software Engineer at StartupCo
        - Developed RESTful APIs
        - Improved test coverage by 40%
        - Optimized database queries
        `,
			section: SectionExperience,
			expected: []string{
				"Led development of cloud-based platform.",
				"Implemented CI/CD pipeline.",
				"Mentored junior developers.",
				"Developed RESTful APIs.",
				"Improved test coverage by 40%.",
				"Optimized database queries.",
			},
		},
		{
			name: "education entries with school preambles",
			input: `
        Education

        University of Technology
        Master of Computer Science
        • Specialized in Machine Learning
        • Research assistant in NLP lab
        • Published 2 conference papers

        Tech College
        Bachelor of Engineering
        - Dean's List all semesters
        - Led student coding club
        - Completed capstone project
        `,
			section: SectionEducation,
			expected: []string{
				"Specialized in Machine Learning.",
				"Research assistant in NLP lab.",
				"Published 2 conference papers.",
				"Dean's List all semesters.",
				"Led student coding club.",
				"Completed capstone project.",
			},
		},
		{
			name: "skills with nested headings",
			input: `
        Skills

        Programming Languages:
        • Python (Expert)
        • Java (Advanced)
        • JavaScript (Intermediate)

        Tools and Technologies:
        - Git
        - Docker
        - Kubernetes
        `,
			section: SectionSkills,
			expected: []string{
				"Programming Languages:",
				"Python (Expert).",
				"Java (Advanced).",
				"JavaScript (Intermediate).",
				"Tools and Technologies:",
				"Git.",
				"Docker.",
				"Kubernetes.",
			},
		},
		{
			name: "experience heading with colon",
			input: `Experience:
• Led team of 5 developers on cloud migration project
• Implemented CI/CD pipeline using Jenkins
• Reduced deployment time by 60%`,
			section: SectionExperience,
			expected: []string{
				"Led team of 5 developers on cloud migration project.",
				"Implemented CI/CD pipeline using Jenkins.",
				"Reduced deployment time by 60%.",
			},
		},
		{
			name: "skills nested headings without blank lines",
			input: `Skills
Programming Languages:
• Python (Expert)
• Java (Advanced)
Tools and Technologies:
- Git
- Docker`,
			section: SectionSkills,
			expected: []string{
				"Programming Languages:",
				"Python (Expert).",
				"Java (Advanced).",
				"Tools and Technologies:",
				"Git.",
				"Docker.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Segment(tt.input)
			require.True(t, doc.Has(tt.section), "sections: %v", doc.Names())
			assert.Equal(t, tt.expected, doc.Bullets(tt.section))
		})
	}
}

func TestSegment_MixedSections(t *testing.T) {
	input := `
        Experience
        Software Engineer
        • Built scalable APIs
        • Led team of 3

        Education
        University
        - Bachelor's in CS
        - Dean's List

        Skills
        • Python
        • Java
        `

	doc := Segment(input)

	assert.Equal(t, []string{"Built scalable APIs.", "Led team of 3."}, doc.Bullets(SectionExperience))
	assert.Equal(t, []string{"Bachelor's in CS.", "Dean's List."}, doc.Bullets(SectionEducation))
	assert.Equal(t, []string{"Python.", "Java."}, doc.Bullets(SectionSkills))
	assert.Equal(t, "Software Engineer\n• Built scalable APIs\n• Led team of 3", doc.Text(SectionExperience))
}

func TestSegment_NoBulletPoints(t *testing.T) {
	input := `
        Summary
        Experienced software engineer with passion for clean code.

        Contact
        email@example.com
        (123) 456-7890
        `

	doc := Segment(input)

	require.True(t, doc.Has(SectionSummary))
	require.True(t, doc.Has(SectionContact))
	assert.Equal(t, []string{}, doc.Bullets(SectionSummary))
	assert.Equal(t, []string{}, doc.Section(SectionContact).BulletPoints)
	assert.Equal(t, "Experienced software engineer with passion for clean code.", doc.Text(SectionSummary))
	assert.Equal(t, "email@example.com\n(123) 456-7890", doc.Text(SectionContact))
}

func TestSegment_ProseOnlyBulletSection(t *testing.T) {
	input := `Experience
Worked on distributed systems for five years.
Mostly on storage engines and replication.`

	doc := Segment(input)

	section := doc.Section(SectionExperience)
	require.NotNil(t, section)
	assert.Equal(t, []string{}, section.BulletPoints)
	assert.Equal(t, "Worked on distributed systems for five years.\nMostly on storage engines and replication.", section.Text)
}

func TestSegment_AllSections(t *testing.T) {
	input := `
    John Doe
    Email: john@example.com
    Phone: 123-456-7890

    Summary
    Experienced software developer

    Education
    BS in Computer Science

    Experience
    Software Engineer at Tech Corp

    Skills
    Python, JavaScript, SQL
    `

	doc := Segment(input)

	assert.Equal(t, []SectionName{
		SectionContact, SectionSummary, SectionEducation, SectionExperience, SectionSkills, SectionUnknown,
	}, doc.Names())
	assert.Contains(t, strings.ToLower(doc.Text(SectionContact)), "john@example.com")
	assert.Contains(t, strings.ToLower(doc.Text(SectionSummary)), "software developer")
	assert.Contains(t, strings.ToLower(doc.Text(SectionEducation)), "computer science")
	assert.Contains(t, strings.ToLower(doc.Text(SectionExperience)), "software engineer")
	assert.Contains(t, strings.ToLower(doc.Text(SectionSkills)), "python")
	assert.Equal(t, "John Doe", doc.Text(SectionUnknown))
}

func TestSegment_HeaderRetention(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		section  SectionName
		expected string
	}{
		{
			name:     "bare keyword is swallowed",
			input:    "Summary\nBuilds things.",
			section:  SectionSummary,
			expected: "Builds things.",
		},
		{
			name:     "multi-word keyword is swallowed",
			input:    "Technical Skills\nGo, Rust",
			section:  SectionSkills,
			expected: "Go, Rust",
		},
		{
			name:     "header with extra text is dropped from text block",
			input:    "Professional Summary\nBuilds things.",
			section:  SectionSummary,
			expected: "Builds things.",
		},
		{
			name:     "contact keeps its header line",
			input:    "Contact Details\nJane Roe",
			section:  SectionContact,
			expected: "Contact Details\nJane Roe",
		},
		{
			name:     "keyword line inside the same section stays",
			input:    "Education\nState University\nBS Physics",
			section:  SectionEducation,
			expected: "State University\nBS Physics",
		},
		{
			name:     "whole word match only",
			input:    "Summary\nExperienced engineer\nSkilled mentor",
			section:  SectionSummary,
			expected: "Experienced engineer\nSkilled mentor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Segment(tt.input).Text(tt.section))
		})
	}
}

func TestSegment_CategoryTieBreak(t *testing.T) {
	doc := Segment("Education and work history\nMIT")

	assert.True(t, doc.Has(SectionEducation))
	assert.False(t, doc.Has(SectionExperience))
}

func TestSegment_ContactRulePersists(t *testing.T) {
	input := `Experience
Built payment systems
reach me at jane@example.com
Available for relocation
Skills
Go`

	doc := Segment(input)

	assert.Equal(t, "Built payment systems", doc.Text(SectionExperience))
	assert.Equal(t, "reach me at jane@example.com\nAvailable for relocation", doc.Text(SectionContact))
	assert.Equal(t, "Go", doc.Text(SectionSkills))
}

func TestSegment_EveryNonBlankLineAssignedOnce(t *testing.T) {
	input := `Jane Roe
jane@example.com

Summary
Backend engineer.

Experience:
- Built things
  at scale
Skills
Go, Rust
Technical Skills`

	doc := Segment(input)

	lines := splitLines(input)
	nonBlank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonBlank++
		}
	}
	require.Len(t, doc.Lines, nonBlank)

	seen := make(map[int]bool)
	for _, a := range doc.Lines {
		assert.False(t, seen[a.Index], "line %d assigned twice", a.Index)
		seen[a.Index] = true
		assert.NotEmpty(t, strings.TrimSpace(lines[a.Index]))
		assert.Contains(t, SectionOrder, a.Section)
	}

	assert.Equal(t, LineAssignment{Index: 0, Section: SectionUnknown, Rule: "append", Retained: true}, doc.Lines[0])
	assert.Equal(t, LineAssignment{Index: 1, Section: SectionContact, Rule: "contact", Retained: true}, doc.Lines[1])
	assert.Equal(t, LineAssignment{Index: 3, Section: SectionSummary, Rule: "heading", Retained: false}, doc.Lines[2])
}

func TestSegment_Dedent(t *testing.T) {
	input := "Experience\n    Lead Engineer\n      - Built pipelines\n    Staff Engineer"

	doc := Segment(input)

	assert.Equal(t, "Lead Engineer\n  - Built pipelines\nStaff Engineer", doc.Text(SectionExperience))
	assert.Equal(t, []string{"Built pipelines Staff Engineer."}, doc.Bullets(SectionExperience))
}

func TestSegment_IndentedContinuation(t *testing.T) {
	input := "Experience\n  - Led migration\n  Kubernetes rollout across regions"

	doc := Segment(input)

	assert.Equal(t, []string{"Led migration Kubernetes rollout across regions."}, doc.Bullets(SectionExperience))
	assert.Equal(t, ExtractBullets("  - Led migration\n  Kubernetes rollout across regions"), doc.Bullets(SectionExperience))
}

func TestSegment_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		doc := Segment(input)
		assert.True(t, doc.Empty())
		assert.Empty(t, doc.Names())
		assert.Equal(t, "", doc.Text(SectionSummary))
		assert.Equal(t, []string{}, doc.Bullets(SectionSkills))
	}
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := Segment("Summary\nBuilds things.\nSkills\n- Go")

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"summary":{"text":"Builds things.","bullet_points":[]}`)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Sections, decoded.Sections)
	assert.Equal(t, SectionSkills, decoded.Section(SectionSkills).Name)
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	err     error
}

func (c *stubCache) Fetch(_ context.Context, content string, compute func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if data, ok := c.entries[content]; ok {
		c.hits++
		return data, nil
	}
	data, err := compute()
	if err != nil {
		return nil, err
	}
	c.entries[content] = data
	return data, nil
}

func TestParser_Parse(t *testing.T) {
	text := "Skills\n- Go\n- Rust"

	t.Run("without cache", func(t *testing.T) {
		doc, err := NewParser().Parse(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go.", "Rust."}, doc.Bullets(SectionSkills))
	})

	t.Run("cache hit returns equal document", func(t *testing.T) {
		cache := &stubCache{entries: map[string][]byte{}}
		parser := NewParser(WithCache(cache))

		first, err := parser.Parse(context.Background(), text)
		require.NoError(t, err)
		second, err := parser.Parse(context.Background(), text)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, first.Sections, second.Sections)
		assert.Equal(t, first.Lines, second.Lines)
	})

	t.Run("cache failure falls back to parsing", func(t *testing.T) {
		parser := NewParser(WithCache(&stubCache{err: errors.New("redis down")}))

		doc, err := parser.Parse(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go.", "Rust."}, doc.Bullets(SectionSkills))
	})

	t.Run("corrupt entry falls back to parsing", func(t *testing.T) {
		cache := &stubCache{entries: map[string][]byte{text: []byte("{not json")}}
		doc, err := NewParser(WithCache(cache)).Parse(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go.", "Rust."}, doc.Bullets(SectionSkills))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewParser().Parse(ctx, text)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
