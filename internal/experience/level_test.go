package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		found    bool
	}{
		{"plus years", "5+ years of experience", 5, true},
		{"minimum", "Minimum 3 years required", 3, true},
		{"experience first", "Experience: 7 years", 7, true},
		{"at least", "At least 10 years", 10, true},
		{"surrounding text", "Looking for a developer with 8+ years of Python experience", 8, true},
		{"background", "4 yrs in a quantitative background", 4, true},
		{"none", "Experienced developer", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, found := YearsOfExperience(tt.input)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, years)
		})
	}
}

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Level
		minConfidence float64
		maxConfidence float64
	}{
		{"entry", "Entry level position for recent graduates", LevelEntry, 0.5, 1},
		{"senior", "Senior developer position requiring expert knowledge", LevelSenior, 0.5, 1},
		{"no indicators", "Software developer position", LevelMid, 0, 0.5},
		{"capped", "Senior lead principal architect and expert", LevelSenior, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, confidence := DetectLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.GreaterOrEqual(t, confidence, tt.minConfidence)
			assert.LessOrEqual(t, confidence, tt.maxConfidence)
		})
	}
}

func TestDetectLevel_TieGoesToEarlierLevel(t *testing.T) {
	level, confidence := DetectLevel("Junior role with senior mentors")
	assert.Equal(t, LevelEntry, level)
	assert.InDelta(t, 1.0/3, confidence, 1e-9)
}

func TestRoleProgression(t *testing.T) {
	resume := `
    Work Experience

    Senior Software Engineer at Tech Corp (2020-Present)
    Lead development team of 5 engineers

    Software Developer at StartUp Inc (2018-2020)
    Full-stack development

    Junior Developer at First Co (2016-2018)
    Entry level position
    `

	roles := RoleProgression(resume)
	require.GreaterOrEqual(t, len(roles), 2)

	for i := 1; i < len(roles); i++ {
		assert.LessOrEqual(t, roles[i-1].Level, roles[i].Level)
	}
	assert.Contains(t, roles, Role{Title: "senior software engineer", Level: 3})
	assert.Contains(t, roles, Role{Title: "junior developer", Level: 2})
}

func TestRoleProgression_DirectTerms(t *testing.T) {
	roles := RoleProgression("Worked as an intern on the payments team during college")
	require.Len(t, roles, 1)
	assert.Equal(t, Role{Title: "as an intern on the", Level: 0}, roles[0])
}

func TestMatch(t *testing.T) {
	job := `
    Position: Senior Software Engineer
    Required:
    - 5+ years of experience in software development
    - Proven leadership experience
    - Strong technical background
    `
	resume := `
    Work Experience:

    Senior Software Engineer (2020-Present)
    - Leading team of developers
    - Architecting solutions

    Software Developer (2018-2020)
    - Full-stack development
    `

	result := Match(resume, job)

	assert.Equal(t, 1.0, result.Match.Years)
	assert.Equal(t, 1.0, result.Match.Level)
	assert.Equal(t, 1.0, result.Match.Overall)
	assert.Equal(t, 5, result.Details.JobRequirements.Years)
	assert.Equal(t, LevelSenior, result.Details.JobRequirements.Level)
	assert.Equal(t, LevelSenior, result.Details.ResumeExperience.Level)
	assert.NotEmpty(t, result.Details.ResumeExperience.Roles)
	assert.Contains(t, result.Feedback, "Job requires 5+ years of experience")
}

func TestMatch_Mismatch(t *testing.T) {
	job := `
    Senior Architect Position
    Minimum 10 years of experience required
    Expert-level technical leadership
    `
	resume := `
    Junior Developer with 2 years of experience
    Currently working on web applications
    `

	result := Match(resume, job)

	assert.InDelta(t, 0.2, result.Match.Years, 1e-9)
	assert.InDelta(t, 0.4, result.Match.Level, 1e-9)
	assert.InDelta(t, 0.3, result.Match.Overall, 1e-9)
	assert.Contains(t, result.Feedback, "Job requires 10+ years of experience")
	assert.Contains(t, result.Feedback, "Job requires senior-level experience")
}
