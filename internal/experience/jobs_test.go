package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

var testNow = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

const twoJobs = `
            Senior Software Engineer at Google, Mountain View, CA
            January 2020 - Present
            • Led development of machine learning infrastructure serving 100M+ users
            • Optimized data pipeline reducing processing time by 40%
            • Mentored 5 junior engineers and conducted technical interviews

            Software Engineer at Microsoft, Redmond, WA
            June 2018 - December 2019
            • Developed new features for Azure Cloud Services
            • Improved system reliability by implementing automated testing
            • Collaborated with cross-functional teams on service integration
            `

func TestExtractJobs(t *testing.T) {
	jobs := ExtractJobs(twoJobs, testNow)
	require.Len(t, jobs, 2)

	google := jobs[0]
	assert.Equal(t, "Google", google.Company)
	assert.Equal(t, "Senior Software Engineer", google.Title)
	assert.Equal(t, "January 2020", google.StartDate)
	assert.Equal(t, PresentLabel, google.EndDate)
	assert.Equal(t, "4 years 6 months", google.Duration)
	assert.Equal(t, "Mountain View, CA", google.Location)
	require.Len(t, google.Achievements, 3)
	assert.Contains(t, google.Achievements[0], "machine learning")
	assert.Empty(t, google.Technologies)
	assert.Empty(t, google.Impact)

	microsoft := jobs[1]
	assert.Equal(t, "Microsoft", microsoft.Company)
	assert.Equal(t, "Software Engineer", microsoft.Title)
	assert.Equal(t, "June 2018", microsoft.StartDate)
	assert.Equal(t, "December 2019", microsoft.EndDate)
	assert.Equal(t, "1 years 6 months", microsoft.Duration)
	assert.Equal(t, "Redmond, WA", microsoft.Location)
	require.Len(t, microsoft.Achievements, 3)
	assert.Contains(t, microsoft.Achievements[0], "Azure")
	assert.Equal(t, []string{"Collaborated with cross-functional teams on service integration."}, microsoft.Technologies)
	assert.Equal(t, []string{"Improved system reliability by implementing automated testing."}, microsoft.Impact)
}

func TestExtractJobs_DateLineStartsNewEntry(t *testing.T) {
	text := "Data Analyst at Acme 2019-01 to 2020-06\n- Built dashboards\nBackend Developer at Initech 2020-07 to 2022-01\n- Shipped APIs"

	jobs := ExtractJobs(text, testNow)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "2019-01", jobs[0].StartDate)
	assert.Equal(t, "2020-06", jobs[0].EndDate)
	assert.Equal(t, "Initech", jobs[1].Company)
	assert.Equal(t, "1 years 6 months", jobs[1].Duration)
}

func TestExtractJobs_DropsEntriesWithoutCompanyOrTitle(t *testing.T) {
	assert.Empty(t, ExtractJobs("Volunteered on weekends\n\nEnjoyed hiking", testNow))
	assert.Empty(t, ExtractJobs("", testNow))
}

func TestExtractJobs_SingleDate(t *testing.T) {
	jobs := ExtractJobs("Engineer at Globex\nMarch 2021", testNow)
	require.Len(t, jobs, 1)
	assert.Equal(t, "March 2021", jobs[0].StartDate)
	assert.Empty(t, jobs[0].EndDate)
	assert.Empty(t, jobs[0].Duration)
	assert.Equal(t, []string{}, jobs[0].Achievements)
}

func TestExtractDocumentJobs(t *testing.T) {
	doc := parsing.Segment("Jane Roe\njane@example.com\n\nExperience\n" + twoJobs)
	jobs := ExtractDocumentJobs(doc, testNow)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Google", jobs[0].Company)
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"after title and company", "Senior Software Engineer at Google, Mountain View, CA", "Mountain View, CA"},
		{"own line with zip", "Austin, TX 78701", "Austin, TX 78701"},
		{"second line", "Engineer at Acme\nBrooklyn, NY\nJan 2020 - Present", "Brooklyn, NY"},
		{"state spelled out", "Seattle, Washington", ""},
		{"no location", "Remote", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractLocation(tt.input))
		})
	}
}
