package experience

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// Job is one position extracted from an experience section.
type Job struct {
	Company      string   `json:"company,omitempty"`
	Title        string   `json:"title,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Impact       []string `json:"impact"`
}

var (
	yearRe = regexp.MustCompile(`(?:19|20)\d{2}`)

	titleHintRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:senior|lead|principal|staff)?\s*(?:software|systems?|data)`),
		regexp.MustCompile(`(?i)(?:engineer|developer|architect|scientist|analyst)`),
		regexp.MustCompile(`(?i)(?:tech|engineering|development|product|program|project)`),
		regexp.MustCompile(`(?i)(?:lead|manager|director|head|chief|vp|supervisor)`),
		regexp.MustCompile(`(?i)(?:frontend|backend|full\s*stack|web|mobile)\s*developer`),
	}

	companyHintRe = regexp.MustCompile(`(?i)(?:@|at|\bat\b)\s+[A-Z][a-zA-Z0-9\s&.,]+`)
	companyRe     = regexp.MustCompile(`(?i)(?:@|at|\bat\b)\s+([A-Z][a-zA-Z0-9\s&.,]+)(?:,|\s|$)`)
	atSplitRe     = regexp.MustCompile(`(?i)\s+at\s+`)
	titleRe       = regexp.MustCompile(`(?i)((?:senior|lead|principal|staff)\s+)?(?:software|data)\s+engineer`)
	currentRe     = regexp.MustCompile(`(?i)present|current|now`)

	// jobLocationRe anchors "City, ST" at a line start or after a comma so
	// the title and company before it are not taken as the city.
	jobLocationRe = regexp.MustCompile(`(?m)(?:^|,)[ \t]*([A-Z][a-zA-Z \t-]*[a-zA-Z],[ \t]*[A-Z]{2}\b(?:[ \t]*\d{5})?)`)

	jobDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}`),
		regexp.MustCompile(`\d{4}-\d{2}`),
		regexp.MustCompile(`\d{2}/\d{4}`),
	}

	technologyRe = regexp.MustCompile(`(?i)using|with|through|via|built\s+(?:with|using)`)
	impactRe     = regexp.MustCompile(`(?i)increased|decreased|reduced|improved|achieved|won`)
)

var titleCaser = cases.Title(language.English)

// ExtractJobs splits experience text into positions and extracts their
// fields. A new position starts after a blank line or at a line that carries
// a year together with a title or "at Company" hint. Positions with neither a
// company nor a title are dropped. now resolves "Present" end dates.
func ExtractJobs(text string, now time.Time) []Job {
	jobs := []Job{}
	for _, entry := range splitJobEntries(text) {
		if job, ok := parseJob(entry, now); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// ExtractDocumentJobs extracts positions from the document's experience section.
func ExtractDocumentJobs(doc *parsing.Document, now time.Time) []Job {
	return ExtractJobs(doc.Text(parsing.SectionExperience), now)
}

func splitJobEntries(text string) [][]string {
	var entries [][]string
	var current []string
	closeEntry := func() {
		if len(current) > 0 {
			entries = append(entries, current)
			current = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			closeEntry()
			continue
		}
		if startsJob(line) {
			closeEntry()
		}
		current = append(current, line)
	}
	closeEntry()
	return entries
}

func startsJob(line string) bool {
	if !yearRe.MatchString(line) {
		return false
	}
	if companyHintRe.MatchString(line) {
		return true
	}
	for _, re := range titleHintRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func parseJob(lines []string, now time.Time) (Job, bool) {
	job := Job{
		Achievements: []string{},
		Technologies: []string{},
		Impact:       []string{},
	}
	header := strings.Join(lines[:min(2, len(lines))], " ")

	job.Company = extractCompany(header)
	job.Title = extractTitle(header)
	job.StartDate, job.EndDate = extractDates(header)
	if job.StartDate != "" && job.EndDate != "" {
		job.Duration = Duration(job.StartDate, job.EndDate, now)
	}

	locationText := header + "\n" + strings.Join(lines[:min(3, len(lines))], "\n")
	job.Location = extractLocation(locationText)

	if len(lines) > 2 {
		bullets := parsing.ExtractBullets(strings.Join(lines[2:], "\n"))
		job.Achievements = bullets
		for _, b := range bullets {
			if technologyRe.MatchString(b) {
				job.Technologies = append(job.Technologies, b)
			}
			if impactRe.MatchString(b) {
				job.Impact = append(job.Impact, b)
			}
		}
	}

	return job, job.Company != "" || job.Title != ""
}

// extractCompany takes the name after "at" or "@" up to the first comma.
func extractCompany(header string) string {
	m := companyRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	company := strings.TrimSpace(m[1])
	if name, _, found := strings.Cut(company, ","); found {
		company = name
	}
	return strings.TrimSpace(company)
}

func extractLocation(text string) string {
	if m := jobLocationRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractTitle(header string) string {
	titlePart := header
	if strings.Contains(strings.ToLower(header), " at ") {
		titlePart = atSplitRe.Split(header, 2)[0]
	}
	if m := titleRe.FindString(titlePart); m != "" {
		return strings.TrimSpace(m)
	}
	for _, re := range titleHintRes {
		if m := re.FindString(header); strings.TrimSpace(m) != "" {
			return titleCaser.String(strings.TrimSpace(m))
		}
	}
	return ""
}

// extractDates collects dates pattern by pattern, so a month-name date always
// precedes a numeric one. A current-position marker sets the end to Present.
func extractDates(header string) (start, end string) {
	var dates []string
	for _, re := range jobDateRes {
		dates = append(dates, re.FindAllString(header, -1)...)
	}
	if len(dates) == 0 {
		return "", ""
	}
	if currentRe.MatchString(header) {
		return dates[0], PresentLabel
	}
	if len(dates) >= 2 {
		return dates[0], dates[1]
	}
	return dates[0], ""
}
