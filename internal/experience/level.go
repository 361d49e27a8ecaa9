package experience

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Level is a coarse seniority band.
type Level string

const (
	LevelEntry  Level = "entry"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// defaultConfidence is reported when no level term is found.
const defaultConfidence = 0.3

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?).+?experience`),
	regexp.MustCompile(`experience.+?(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?).+?background`),
	regexp.MustCompile(`minimum.+?(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`at least.+?(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?).+?minimum`),
}

var levelTerms = []struct {
	level Level
	terms []string
}{
	{LevelEntry, []string{
		"entry level", "junior", "fresh graduate", "recent graduate",
		"no experience required", "0-2 years", "starting position",
	}},
	{LevelMid, []string{
		"mid level", "intermediate", "associate", "2-5 years",
		"3-5 years", "experienced",
	}},
	{LevelSenior, []string{
		"senior", "lead", "principal", "architect", "5+ years",
		"7+ years", "10+ years", "expert",
	}},
}

var levelRank = map[Level]int{LevelEntry: 1, LevelMid: 2, LevelSenior: 3}

// roleHierarchy ranks role words; order matters for the direct-term scan.
var roleHierarchy = []struct {
	role  string
	level int
}{
	{"intern", 0}, {"trainee", 0},
	{"junior", 1},
	{"associate", 2}, {"developer", 2}, {"engineer", 2}, {"analyst", 2}, {"consultant", 2},
	{"senior", 3},
	{"lead", 4}, {"manager", 4}, {"architect", 4},
	{"principal", 5}, {"director", 5}, {"head", 5},
	{"chief", 6}, {"vp", 6}, {"president", 6},
}

var roleTitleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:senior|lead|principal|junior)?\s*(?:software|systems?)?\s*(?:engineer|developer|architect)`),
	regexp.MustCompile(`(?i)(?:technical|team|project)?\s*(?:lead|manager|director)`),
	regexp.MustCompile(`(?i)(?:full\s*stack|backend|frontend)\s*(?:engineer|developer)`),
	regexp.MustCompile(`(?i)(?:data|machine learning|devops)\s*(?:engineer|scientist|specialist)`),
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|\n+`)

// YearsOfExperience returns the first year count stated next to
// "experience", "background", "minimum" or "at least".
func YearsOfExperience(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, re := range yearPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if years, err := strconv.Atoi(m[1]); err == nil {
				return years, true
			}
		}
	}
	return 0, false
}

// DetectLevel counts level terms in text. The level with the most hits wins,
// earlier levels winning ties, and confidence grows by a third per hit.
// Text without any term is reported as mid level with low confidence.
func DetectLevel(text string) (Level, float64) {
	lower := strings.ToLower(text)
	best, bestHits := LevelMid, 0
	for _, lt := range levelTerms {
		hits := 0
		for _, term := range lt.terms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = lt.level, hits
		}
	}
	if bestHits == 0 {
		return LevelMid, defaultConfidence
	}
	return best, math.Min(1, float64(bestHits)/3)
}

// Role is a job title found in resume text with its hierarchy level.
type Role struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

// RoleProgression finds job titles sentence by sentence and returns them in
// ascending level order.
func RoleProgression(text string) []Role {
	roles := []Role{}
	for _, sentence := range sentenceSplitRe.Split(strings.ToLower(text), -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		for _, re := range roleTitleRes {
			title := strings.TrimSpace(re.FindString(sentence))
			if title == "" {
				continue
			}
			level := highestRole(title)
			if ctx := highestRole(strings.ReplaceAll(sentence, title, "")); ctx > level {
				level = ctx
			}
			roles = append(roles, Role{Title: title, Level: level})
		}

		if mentionsKnownRole(sentence, roles) {
			continue
		}
		for _, rh := range roleHierarchy {
			if strings.Contains(sentence, rh.role) {
				roles = append(roles, Role{Title: roleWindow(sentence, rh.role), Level: rh.level})
			}
		}
	}

	sort.SliceStable(roles, func(i, j int) bool { return roles[i].Level < roles[j].Level })
	return roles
}

func highestRole(s string) int {
	level := 0
	for _, rh := range roleHierarchy {
		if rh.level > level && strings.Contains(s, rh.role) {
			level = rh.level
		}
	}
	return level
}

func mentionsKnownRole(sentence string, roles []Role) bool {
	for _, r := range roles {
		if strings.Contains(sentence, r.Title) {
			return true
		}
	}
	return false
}

// roleWindow returns the two words before and after the first word
// containing role.
func roleWindow(sentence, role string) string {
	words := strings.Fields(sentence)
	for i, w := range words {
		if strings.Contains(w, role) {
			return strings.Join(words[max(0, i-2):min(len(words), i+3)], " ")
		}
	}
	return role
}

// Requirements is the experience a job description asks for.
type Requirements struct {
	Years      int     `json:"years,omitempty"`
	Level      Level   `json:"level"`
	Confidence float64 `json:"confidence"`
}

// Profile is the experience a resume shows.
type Profile struct {
	Years      int     `json:"years,omitempty"`
	Level      Level   `json:"level"`
	Confidence float64 `json:"confidence"`
	Roles      []Role  `json:"roles"`
}

// MatchScores are fractions in [0, 1].
type MatchScores struct {
	Years   float64 `json:"years"`
	Level   float64 `json:"level"`
	Overall float64 `json:"overall"`
}

// MatchDetails carries what each side stated.
type MatchDetails struct {
	JobRequirements  Requirements `json:"job_requirements"`
	ResumeExperience Profile      `json:"resume_experience"`
}

// MatchResult compares resume experience against job requirements.
type MatchResult struct {
	Match    MatchScores  `json:"match"`
	Details  MatchDetails `json:"details"`
	Feedback []string     `json:"feedback"`
}

// Match scores resume experience against a job description. Years score is
// the resume/job ratio capped at 1 when both state years; level score drops
// 0.3 per band of difference.
func Match(resumeText, jobText string) MatchResult {
	jobYears, jobHasYears := YearsOfExperience(jobText)
	resumeYears, resumeHasYears := YearsOfExperience(resumeText)
	jobLevel, jobConfidence := DetectLevel(jobText)
	resumeLevel, resumeConfidence := DetectLevel(resumeText)
	roles := RoleProgression(resumeText)

	yearsScore := 1.0
	if jobYears > 0 && resumeYears > 0 {
		yearsScore = math.Min(1, float64(resumeYears)/float64(jobYears))
	}

	diff := levelRank[jobLevel] - levelRank[resumeLevel]
	if diff < 0 {
		diff = -diff
	}
	levelScore := math.Max(0, 1-float64(diff)*0.3)

	feedback := []string{}
	if jobHasYears && jobYears > 0 && (!resumeHasYears || resumeYears < jobYears) {
		feedback = append(feedback, fmt.Sprintf("Job requires %d+ years of experience", jobYears))
	}
	if jobLevel != resumeLevel && jobConfidence > 0.5 {
		feedback = append(feedback, fmt.Sprintf("Job requires %s-level experience", jobLevel))
	}
	if len(roles) > 0 {
		feedback = append(feedback, "Most senior role: "+roles[len(roles)-1].Title)
	}

	return MatchResult{
		Match: MatchScores{
			Years:   yearsScore,
			Level:   levelScore,
			Overall: (yearsScore + levelScore) / 2,
		},
		Details: MatchDetails{
			JobRequirements: Requirements{Years: jobYears, Level: jobLevel, Confidence: jobConfidence},
			ResumeExperience: Profile{
				Years:      resumeYears,
				Level:      resumeLevel,
				Confidence: resumeConfidence,
				Roles:      roles,
			},
		},
		Feedback: feedback,
	}
}
