package analysis

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/education"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var (
	jobSentenceRe = regexp.MustCompile(`[^.!?\n]+`)
	niceToHaveRe  = regexp.MustCompile(`(?i)\b(?:preferred|nice to have|plus|bonus|desirable|helpful|ideally)\b`)
)

// BuildJobProfile derives a structured profile from job text. Each skill is
// a hard requirement unless the first sentence naming it carries a
// nice-to-have word; skills the text never names verbatim are hard
// requirements without evidence. keywords are recorded as given.
func BuildJobProfile(jobText string, jobSkills, keywords []string) *types.JobProfile {
	profile := &types.JobProfile{
		HardRequirements:      []types.Requirement{},
		NiceToHaves:           []types.Requirement{},
		Keywords:              append([]string{}, keywords...),
		EducationRequirements: education.DetectRequirement(jobText),
	}

	level, _ := experience.DetectLevel(jobText)
	profile.Level = string(level)
	if years, ok := experience.YearsOfExperience(jobText); ok {
		profile.YearsRequired = float64(years)
	}
	if industries := suggest.DetectIndustry(jobText); len(industries) > 0 {
		profile.Industry = industries[0].Industry
	}

	sentences := jobSentenceRe.FindAllString(jobText, -1)
	for _, skill := range jobSkills {
		evidence := findSentence(sentences, skill)
		req := types.Requirement{Skill: skill, Evidence: evidence}
		if evidence != "" && niceToHaveRe.MatchString(evidence) {
			profile.NiceToHaves = append(profile.NiceToHaves, req)
			continue
		}
		profile.HardRequirements = append(profile.HardRequirements, req)
	}
	return profile
}

func findSentence(sentences []string, skill string) string {
	needle := strings.ToLower(skill)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), needle) {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
