package skills

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// Weight constants for skill sources (requirement level)
	weightHardRequirement = 1.0
	weightNiceToHave      = 0.5
	weightKeyword         = 0.3

	// Source constants
	SourceHardRequirement = "hard_requirement"
	SourceNiceToHave      = "nice_to_have"
	SourceKeyword         = "keyword"
)

// BuildSkillTargets builds a weighted list of target skills from a JobProfile.
// Skills are normalized, deduplicated (taking max weight when duplicates exist),
// and sorted by weight (descending), then name.
func BuildSkillTargets(profile *types.JobProfile) (*types.SkillTargets, error) {
	skillMap := make(map[string]*skillInfo)

	for _, req := range profile.HardRequirements {
		addOrUpdateSkill(skillMap, req.Skill, weightHardRequirement, SourceHardRequirement)
	}
	for _, req := range profile.NiceToHaves {
		addOrUpdateSkill(skillMap, req.Skill, weightNiceToHave, SourceNiceToHave)
	}
	for _, keyword := range profile.Keywords {
		addOrUpdateSkill(skillMap, keyword, weightKeyword, SourceKeyword)
	}

	if len(skillMap) == 0 {
		return nil, fmt.Errorf("no skills found in job profile")
	}

	targets := make([]types.Skill, 0, len(skillMap))
	for _, info := range skillMap {
		targets = append(targets, types.Skill{
			Name:   info.name,
			Weight: info.weight,
			Source: info.source,
		})
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Weight != targets[j].Weight {
			return targets[i].Weight > targets[j].Weight
		}
		return targets[i].Name < targets[j].Name
	})

	return &types.SkillTargets{Skills: targets}, nil
}

// Coverage measures the weighted share of targets present in a resume. A
// target is present when it is one of resumeSkills or appears as a whole
// word in resumeText, case-insensitively.
func Coverage(targets *types.SkillTargets, resumeSkills []string, resumeText string) types.SkillCoverage {
	coverage := types.SkillCoverage{Matched: []string{}, Missing: []string{}}
	if targets == nil || len(targets.Skills) == 0 {
		return coverage
	}

	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[Key(s)] = true
	}
	lowerText := strings.ToLower(resumeText)

	var total, matched float64
	for _, target := range targets.Skills {
		total += target.Weight
		if have[Key(target.Name)] || containsWord(lowerText, strings.ToLower(target.Name)) {
			matched += target.Weight
			coverage.Matched = append(coverage.Matched, target.Name)
			continue
		}
		coverage.Missing = append(coverage.Missing, target.Name)
	}
	if total > 0 {
		coverage.Score = matched / total
	}
	return coverage
}

// containsWord reports whether word occurs in text delimited by non-word
// characters. Words like "c++" that end in punctuation are handled.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	re, err := regexp.Compile(`(?:^|[^\w])` + regexp.QuoteMeta(word) + `(?:$|[^\w])`)
	if err != nil {
		return strings.Contains(text, word)
	}
	return re.MatchString(text)
}

// skillInfo holds temporary information about a skill during building
type skillInfo struct {
	name   string
	weight float64
	source string
}

// addOrUpdateSkill adds a skill to the map or updates it if it exists,
// taking the maximum weight when duplicates are found.
func addOrUpdateSkill(skillMap map[string]*skillInfo, rawName string, weight float64, source string) {
	name := NormalizeSkillName(rawName)
	if name == "" {
		return
	}
	key := strings.ToLower(name)

	existing, exists := skillMap[key]
	if !exists {
		skillMap[key] = &skillInfo{name: name, weight: weight, source: source}
		return
	}
	if weight > existing.weight {
		existing.weight = weight
		existing.source = source
	}
	// If weights are equal, prioritize source by: hard_requirement > nice_to_have > keyword
	if weight == existing.weight && sourcePriority(source) > sourcePriority(existing.source) {
		existing.source = source
	}
}

// sourcePriority returns a numeric priority for source types.
// Higher numbers indicate higher priority.
func sourcePriority(source string) int {
	switch source {
	case SourceHardRequirement:
		return 3
	case SourceNiceToHave:
		return 2
	case SourceKeyword:
		return 1
	default:
		return 0
	}
}
