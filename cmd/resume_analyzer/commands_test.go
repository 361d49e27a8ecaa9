package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_JSON(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)

	output, err := executeCommand(t, "parse", resume, "--format", "json", "--validate", "--fields")
	require.NoError(t, err, output)

	var result struct {
		File     string `json:"file"`
		Document struct {
			Sections map[string]struct {
				Text         string   `json:"text"`
				BulletPoints []string `json:"bullet_points"`
			} `json:"sections"`
		} `json:"document"`
		Fields *struct {
			Contact struct {
				Email string `json:"email"`
			} `json:"contact"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))

	assert.Equal(t, resume, result.File)
	require.Contains(t, result.Document.Sections, "experience")
	assert.Len(t, result.Document.Sections["experience"].BulletPoints, 2)
	assert.Contains(t, result.Document.Sections, "skills")
	require.NotNil(t, result.Fields)
	assert.Equal(t, "jane@example.com", result.Fields.Contact.Email)
}

func TestParseCommand_Text(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)

	output, err := executeCommand(t, "parse", resume, "--fields")
	require.NoError(t, err)

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "EXTRACTED FIELDS")
}

func TestParseCommand_OutFile(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)
	outPath := filepath.Join(t.TempDir(), "parsed.json")

	_, err := executeCommand(t, "parse", resume, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sections"`)
	assert.NotContains(t, string(data), `"fields"`)
}

func TestParseCommand_UnsupportedFormatIsEmpty(t *testing.T) {
	resume := writeFile(t, "resume.pdf", "%PDF-1.4 binary")

	output, err := executeCommand(t, "parse", resume)
	require.NoError(t, err)
	assert.Contains(t, output, "No sections found")
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"missing file argument", []string{"parse"}, "accepts 1 arg"},
		{"file not found", []string{"parse", "/nonexistent/resume.txt"}, "file not found"},
		{"bad format flag", []string{"parse", "x.txt", "--format", "xml"}, "invalid --format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestBulletsCommand(t *testing.T) {
	doc := writeFile(t, "notes.txt", "Highlights:\n- shipped the billing service\n- owned on-call rotation\n")

	output, err := executeCommand(t, "bullets", doc, "--format", "json")
	require.NoError(t, err)

	var result bulletsOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, []string{"Highlights:", "Shipped the billing service.", "Owned on-call rotation."}, result.Bullets)
	assert.Equal(t, 3, result.Count)
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)
	job := writeFile(t, "backend.txt", sampleJob)

	output, err := executeCommand(t, "analyze", resume, job, "--format", "json", "--validate")
	require.NoError(t, err, output)

	var result struct {
		ResumeFilename string   `json:"resume_filename"`
		JobFilename    string   `json:"job_filename"`
		MatchingSkills []string `json:"matching_skills"`
		MissingSkills  []string `json:"missing_skills"`
		Similarity     float64  `json:"similarity"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))

	assert.Equal(t, "jane.txt", result.ResumeFilename)
	assert.Equal(t, "backend.txt", result.JobFilename)
	assert.Contains(t, result.MatchingSkills, "Python")
	assert.Contains(t, result.MissingSkills, "Kubernetes")
	assert.Greater(t, result.Similarity, 0.0)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)
	job := writeFile(t, "backend.txt", sampleJob)

	output, err := executeCommand(t, "analyze", resume, job)
	require.NoError(t, err)

	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "Kubernetes")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)
	job := writeFile(t, "backend.txt", sampleJob)
	blank := writeFile(t, "blank.txt", "   \n\n")

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"one argument", []string{"analyze", resume}, "accepts 2 arg"},
		{"bad session", []string{"analyze", resume, job, "--session", "abc"}, "must be a UUID"},
		{"session without database", []string{"analyze", resume, job, "--session", "0b6c1b3e-8f3a-4d6e-9a53-2a7d9c1e4f10"}, "database URL is required"},
		{"blank resume", []string{"analyze", blank, job}, "no text could be extracted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestBatchCommand(t *testing.T) {
	job := writeFile(t, "backend.txt", sampleJob)
	jane := writeFile(t, "jane.txt", sampleResume)
	blank := writeFile(t, "blank.txt", " ")

	output, err := executeCommand(t, "batch", job, jane, blank, "--concurrency", "2", "--format", "json")
	require.NoError(t, err, output)

	var report struct {
		Results []struct {
			Success  bool   `json:"success"`
			Filename string `json:"filename"`
		} `json:"results"`
		Summary struct {
			TotalResumes  int     `json:"total_resumes"`
			Failed        int     `json:"failed"`
			BestCandidate *string `json:"best_candidate"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	require.Len(t, report.Results, 2)
	assert.Equal(t, "jane.txt", report.Results[0].Filename)
	assert.True(t, report.Results[0].Success)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, 2, report.Summary.TotalResumes)
	assert.Equal(t, 1, report.Summary.Failed)
	require.NotNil(t, report.Summary.BestCandidate)
	assert.Equal(t, "jane.txt", *report.Summary.BestCandidate)
}

func TestBatchCommand_TooMany(t *testing.T) {
	job := writeFile(t, "backend.txt", sampleJob)
	jane := writeFile(t, "jane.txt", sampleResume)
	cfgPath := writeFile(t, "config.yaml", "analysis:\n  max_batch_size: 1\n")

	_, err := executeCommand(t, "--config", cfgPath, "batch", job, jane, jane)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 1 per batch")
}

func TestTipsCommand(t *testing.T) {
	output, err := executeCommand(t, "tips")
	require.NoError(t, err)
	assert.Contains(t, output, "ATS TIPS")
	assert.Contains(t, output, " 1. ")

	output, err = executeCommand(t, "tips", "--format", "json")
	require.NoError(t, err)
	var tips map[string][]string
	require.NoError(t, json.Unmarshal([]byte(output), &tips))
	assert.NotEmpty(t, tips["tips"])
}

func TestValidateCommand(t *testing.T) {
	valid := writeFile(t, "doc.json", `{"sections": {"skills": {"text": "Go, SQL", "bullet_points": []}}}`)
	invalid := writeFile(t, "bad.json", `{"sections": {"hobbies": {"text": "", "bullet_points": []}}}`)

	output, err := executeCommand(t, "validate", "document", valid)
	require.NoError(t, err, output)
	assert.Contains(t, output, "is valid")

	output, err = executeCommand(t, "validate", "document", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema document")
	assert.NotEmpty(t, output)
}

func TestCacheClearCommand(t *testing.T) {
	output, err := executeCommand(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "Removed 0 cached entries")

	cfgPath := writeFile(t, "config.yaml", "cache:\n  backend: none\n")
	output, err = executeCommand(t, "--config", cfgPath, "cache", "clear", "--max-age", "1h")
	require.NoError(t, err)
	assert.Contains(t, output, "Cache is disabled")
}

func TestHistoryCommand_RequiresDatabase(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"list", []string{"history", "--session", "s1"}, "database URL is required"},
		{"missing session", []string{"history"}, "required flag(s) \"session\" not set"},
		{"show bad id", []string{"history", "show", "nope"}, "invalid analysis ID"},
		{"show", []string{"history", "show", "0b6c1b3e-8f3a-4d6e-9a53-2a7d9c1e4f10"}, "database URL is required"},
		{"prune", []string{"history", "prune", "--days", "7"}, "database URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfigFile_Invalid(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "analysis:\n  nlp: spacy\n")

	_, err := executeCommand(t, "--config", cfgPath, "tips")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.nlp")
}

func TestAnalyzeCommand_HTMLJobPosting(t *testing.T) {
	resume := writeFile(t, "jane.txt", sampleResume)
	job := writeFile(t, "posting.html", `<html><body><nav>Jobs</nav><main>
<h1>Senior Backend Engineer</h1>
<ul><li>Strong Python and Kubernetes experience required</li></ul>
</main></body></html>`)

	output, err := executeCommand(t, "analyze", resume, job, "--format", "json")
	require.NoError(t, err, output)

	var result struct {
		MatchingSkills []string `json:"matching_skills"`
		MissingSkills  []string `json:"missing_skills"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Contains(t, result.MatchingSkills, "Python")
	assert.Contains(t, result.MissingSkills, "Kubernetes")
}
