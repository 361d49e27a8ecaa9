package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name: "unicode bullets under reserved heading",
			input: `Experience:
        • Led team of 5 developers on cloud migration project
        • Implemented CI/CD pipeline using Jenkins
        • Reduced deployment time by 60%`,
			expected: []string{
				"Led team of 5 developers on cloud migration project.",
				"Implemented CI/CD pipeline using Jenkins.",
				"Reduced deployment time by 60%.",
			},
		},
		{
			name: "dashes",
			input: `Key Achievements:
        - Increased test coverage to 95%
        - Fixed 100+ critical bugs
        - Mentored 3 junior developers`,
			expected: []string{
				"Increased test coverage to 95%.",
				"Fixed 100+ critical bugs.",
				"Mentored 3 junior developers.",
			},
		},
		{
			name: "numbered",
			input: `Project Highlights:
        1. Designed scalable microservices architecture
        2. Implemented OAuth2 authentication
        3) Deployed to AWS using Terraform`,
			expected: []string{
				"Designed scalable microservices architecture.",
				"Implemented OAuth2 authentication.",
				"Deployed to AWS using Terraform.",
			},
		},
		{
			name: "lettered",
			input: `a) shipped the billing service
b. owned on-call rotation`,
			expected: []string{
				"Shipped the billing service.",
				"Owned on-call rotation.",
			},
		},
		{
			name: "mixed formats",
			input: `Experience:
        • Backend Development
        - Python/Django API development
        1. Implemented RESTful endpoints
        * Wrote comprehensive tests
        → Deployed to production
        + Automated releases
        ✓ Passed security review`,
			expected: []string{
				"Backend Development.",
				"Python/Django API development.",
				"Implemented RESTful endpoints.",
				"Wrote comprehensive tests.",
				"Deployed to production.",
				"Automated releases.",
				"Passed security review.",
			},
		},
		{
			name: "multi-line continuation",
			input: `Experience:
        • Led development team working on
          high-performance trading platform
        • Implemented advanced features for
          real-time market data analysis`,
			expected: []string{
				"Led development team working on high-performance trading platform.",
				"Implemented advanced features for real-time market data analysis.",
			},
		},
		{
			name: "nested headings with marker prefix",
			input: `Skills:
        • Programming Languages:
          - Python
          - Java
          - JavaScript
        • Tools:
          - Git
          - Docker
          - Jenkins`,
			expected: []string{
				"Programming Languages:",
				"Python.",
				"Java.",
				"JavaScript.",
				"Tools:",
				"Git.",
				"Docker.",
				"Jenkins.",
			},
		},
		{
			name: "nested heading followed by blank line then marker",
			input: `Languages:

- Go
- Rust`,
			expected: []string{"Languages:", "Go.", "Rust."},
		},
		{
			name: "blank lines neither close nor continue",
			input: `- first item

  still first item
- second item`,
			expected: []string{"First item still first item.", "Second item."},
		},
		{
			name: "lowercase unindented continuation",
			input: `- Built a cache
that scales`,
			expected: []string{"Built a cache that scales."},
		},
		{
			name: "capitalized unindented line closes the bullet",
			input: `- Integrated payments with
Stripe and PayPal`,
			expected: []string{"Integrated payments with."},
		},
		{
			name: "colon line outside a list is plain content",
			input: `Note:
Nothing to see here`,
			expected: []string{},
		},
		{
			name: "existing terminal punctuation is kept",
			input: `- Won the hackathon!
- Why not?
- Done.`,
			expected: []string{"Won the hackathon!", "Why not?", "Done."},
		},
		{
			name:     "no markers",
			input:    "Experienced engineer with a passion for clean code.\nLoves Go.",
			expected: []string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "marker without content",
			input:    "- \n-  .",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractBullets(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExtractBullets_ContinuationMergesWithSinglePeriod(t *testing.T) {
	input := "- Built a distributed cache that\n  handles 1M requests per second."

	result := ExtractBullets(input)

	require.Len(t, result, 1)
	assert.Equal(t, "Built a distributed cache that handles 1M requests per second.", result[0])
}

func TestExtractBullets_NestedHeadingNeverMerged(t *testing.T) {
	input := `- Shipped v2
Backend:
- Rewrote scheduler`

	result := ExtractBullets(input)

	assert.Equal(t, []string{"Shipped v2.", "Backend:", "Rewrote scheduler."}, result)
}

func TestBulletExtractor_CustomContinuation(t *testing.T) {
	extractor := &BulletExtractor{
		Continuation: func(line Line) bool { return line.Indent > 0 },
	}
	input := "- Integrated payments\nwith Stripe"

	assert.Equal(t, []string{"Integrated payments."}, extractor.Extract(input))
	assert.Equal(t, []string{"Integrated payments with Stripe."}, ExtractBullets(input))
}

func TestBulletExtractor_ZeroValueUsesDefaultPredicate(t *testing.T) {
	var extractor BulletExtractor
	assert.Equal(t, []string{"Built a cache that scales."}, extractor.Extract("- Built a cache\nthat scales"))
}

func TestBulletExtractor_Classify(t *testing.T) {
	input := `Skills:
Languages:
- Go
  and Rust
1. first
b) second

Plain Line`

	lines := NewBulletExtractor().Classify(input)

	kinds := make([]LineKind, len(lines))
	for i, l := range lines {
		kinds[i] = l.Kind
	}
	assert.Equal(t, []LineKind{
		LineHeading,
		LineHeading,
		LineBulletMarker,
		LineContinuation,
		LineNumberedMarker,
		LineLetterMarker,
		LineBlank,
		LinePlain,
	}, kinds)
	require.NotNil(t, lines[2].Marker)
	assert.Equal(t, "-", lines[2].Marker.Text)
}

func TestIsContinuation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"indented with spaces", "  Stripe", true},
		{"indented with tab", "\tStripe", true},
		{"lowercase first rune", "and more", true},
		{"lowercase non-ascii", "évolution", true},
		{"uppercase unindented", "Stripe", false},
		{"digit unindented", "2020 release", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsContinuation(NewLine(tt.raw)))
		})
	}
}

func TestCleanBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"capitalizes and adds period", []string{"led the team"}, []string{"Led the team."}},
		{"strips leftover marker", []string{"• - nested marker"}, []string{"Nested marker."}},
		{"collapses whitespace", []string{"too    many\tspaces"}, []string{"Too many spaces."}},
		{"keeps headings verbatim", []string{"tools:"}, []string{"tools:"}},
		{"drops punctuation-only items", []string{"", "   ", ":", "."}, []string{}},
		{"keeps question mark", []string{"why?"}, []string{"Why?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanBullets(tt.input))
		})
	}
}

func TestCleanBullets_Idempotent(t *testing.T) {
	inputs := [][]string{
		{"led the team", "Programming Languages:", "• done!", "1. numbered", "a) lettered item", "e.g. examples"},
		ExtractBullets("- Built a distributed cache that\n  handles 1M requests per second."),
		{"  spaced   out  ", "- - double marker"},
		{"-\u00a0- shipped it", "•\u00a0led team"},
	}

	for _, input := range inputs {
		once := CleanBullets(input)
		twice := CleanBullets(once)
		assert.Equal(t, once, twice)
	}
}

func TestExtractBullets_NoBreakSpaceMarkers(t *testing.T) {
	bullets := ExtractBullets("•\u00a0Led team of 5\n•\u00a0Reduced cost")
	assert.Equal(t, []string{"Led team of 5.", "Reduced cost."}, bullets)

	assert.Equal(t, []string{"Shipped it."}, CleanBullets([]string{"-\u00a0- shipped it"}))
}

func TestFormatBullets(t *testing.T) {
	input := []string{"Led development team.", "Implemented new features.", "Improved performance."}

	result := FormatBullets(input)

	assert.Equal(t, []string{
		"• Led development team.",
		"• Implemented new features.",
		"• Improved performance.",
	}, result)
}
