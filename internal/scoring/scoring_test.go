package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitTransform(t *testing.T) {
	v := NewVectorizer()

	vectors, err := v.FitTransform("Go and Go services", "Go services")
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "go go", "go services", "services"}, vectors.Features)
	assert.Equal(t, []int{2, 1, 1, 1}, vectors.Counts[0])
	assert.Equal(t, []int{1, 0, 1, 1}, vectors.Counts[1])
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	v := NewVectorizer()
	v.maxFeatures = 2

	vectors, err := v.FitTransform("alpha alpha beta gamma gamma gamma")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma"}, vectors.Features)
}

func TestWithMaxFeatures(t *testing.T) {
	c := NewCountScorer(WithMaxFeatures(2)).Compare("alpha alpha beta", "gamma gamma gamma")
	assert.Equal(t, []string{"alpha", "gamma"}, c.Features)

	assert.Equal(t, DefaultMaxFeatures, NewCountScorer(WithMaxFeatures(0)).vectorizer.maxFeatures)
}

func TestVectorizer_EmptyVocabulary(t *testing.T) {
	_, err := NewVectorizer().FitTransform("the and of", "a")
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		job    string
		min    float64
		max    float64
	}{
		{"identical", "Python developer with SQL", "Python developer with SQL", 1, 1},
		{"disjoint", "Python developer", "Accountant bookkeeping", 0, 0},
		{"stop words only", "the and of", "with a", 0, 0},
		{"empty", "", "", 0, 0},
		{
			"partial overlap",
			"Experienced software engineer with Python, SQL, Docker and AWS. Built machine learning models with TensorFlow.",
			"Looking for a Python developer with machine learning experience. Required skills: Python, TensorFlow, SQL.",
			0.2, 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.resume, tt.job)
			assert.GreaterOrEqual(t, got, tt.min-1e-9)
			assert.LessOrEqual(t, got, tt.max+1e-9)
		})
	}
}

func TestComparison_ImportantTerms(t *testing.T) {
	c := NewCountScorer().Compare(
		"Python engineer. Python tooling and Python services.",
		"Python developer needed.",
	)

	assert.Equal(t, []string{"python"}, c.ImportantTerms(1).Resume)
	assert.Equal(t, []string{"developer", "developer needed"}, c.ImportantTerms(2).Job)

	empty := NewCountScorer().Compare("", "")
	assert.Empty(t, empty.ImportantTerms(5).Resume)
	assert.Empty(t, empty.ImportantTerms(5).Job)
}

func TestComparison_SkillsGap(t *testing.T) {
	resume := "Python developer with SQL and Docker experience"
	job := "Kubernetes is required for this role.\n" +
		"Our team ships software daily across many regions worldwide.\n" +
		"React knowledge is a plus."

	gap := NewCountScorer().Compare(resume, job).SkillsGap(resume, job)

	assert.Contains(t, gap.Gaps.CriticalMissing, "kubernetes")
	assert.Contains(t, gap.Gaps.NiceToHaveMissing, "react")
	assert.NotContains(t, gap.Gaps.NiceToHaveMissing, "kubernetes")
	assert.Empty(t, gap.Matches.MatchedSkills)
	assert.Contains(t, gap.Matches.AdditionalSkills, "python")
	assert.Contains(t, gap.Matches.AdditionalSkills, "docker")
}

func TestComparison_SkillsGap_FrequencyFallback(t *testing.T) {
	resume := "Python"
	job := "Golang services. Golang tooling. Golang APIs."

	gap := NewCountScorer().Compare(resume, job).SkillsGap(resume, job)

	assert.Contains(t, gap.Gaps.CriticalMissing, "golang")
	assert.Contains(t, gap.Gaps.NiceToHaveMissing, "services")
}

func TestComparison_SkillsGap_Matches(t *testing.T) {
	resume := "Python and SQL developer"
	job := "Python developer needed"

	gap := NewCountScorer().Compare(resume, job).SkillsGap(resume, job)

	assert.ElementsMatch(t, []string{"developer", "python"}, gap.Matches.MatchedSkills)
	assert.Contains(t, gap.Matches.AdditionalSkills, "sql")
	assert.NotContains(t, gap.Gaps.CriticalMissing, "python")
	assert.NotContains(t, gap.Gaps.NiceToHaveMissing, "python")
}

func TestComparison_SkillsGap_EmptyTexts(t *testing.T) {
	gap := NewCountScorer().Compare("", "").SkillsGap("", "")

	assert.Equal(t, emptySkillsGap(), gap)
	assert.NotNil(t, gap.Gaps.CriticalMissing)
}

func TestMissingSkills(t *testing.T) {
	missing := MissingSkills([]string{"Python", "JavaScript", "sql"}, []string{"Python", "Java", "C++", "SQL"})
	assert.Equal(t, []string{"Java", "C++"}, missing)
	assert.Equal(t, []string{}, MissingSkills(nil, nil))
}

func TestGenerateFeedback(t *testing.T) {
	terms := ImportantTerms{
		Resume: []string{"python"},
		Job:    []string{"python", "java", "developer", "needed", "cloud", "scale"},
	}

	tests := []struct {
		name        string
		similarity  float64
		percentage  float64
		overall     string
		suggestions []string
	}{
		{
			name:       "excellent",
			similarity: 0.85,
			percentage: 85,
			overall:    FeedbackExcellent,
			suggestions: []string{
				"Add missing skills: Java",
			},
		},
		{
			name:       "good",
			similarity: 0.654,
			percentage: 65.4,
			overall:    FeedbackGood,
			suggestions: []string{
				"Add missing skills: Java",
				"Consider elaborating on your experience with: Python",
			},
		},
		{
			name:       "moderate",
			similarity: 0.4,
			percentage: 40,
			overall:    FeedbackModerate,
			suggestions: []string{
				"Add missing skills: Java",
				"Emphasize these key terms from the job description: python, java, developer, needed, cloud",
				"Consider elaborating on your experience with: Python",
			},
		},
		{
			name:       "low",
			similarity: 0.12345,
			percentage: 12.3,
			overall:    FeedbackLow,
			suggestions: []string{
				"Add missing skills: Java",
				"Emphasize these key terms from the job description: python, java, developer, needed, cloud",
				"Consider elaborating on your experience with: Python",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := GenerateFeedback(tt.similarity, []string{"Python", "SQL"}, []string{"Python", "Java"}, terms)

			assert.InDelta(t, tt.percentage, fb.MatchPercentage, 1e-9)
			assert.Equal(t, tt.overall, fb.OverallFeedback)
			assert.Equal(t, tt.suggestions, fb.Suggestions)
			assert.Equal(t, []string{"Java"}, fb.MissingSkills)
			assert.Equal(t, terms.Job, fb.KeyTerms.Job)
		})
	}
}

func TestVectorizer_Tokens(t *testing.T) {
	assert.Equal(t, []string{"led", "team", "engineers"}, NewVectorizer().Tokens("Led a team of 5 engineers"))
}
