//nolint:revive // types is a standard Go package name pattern
package types

// SkillTargets is a weighted list of skills a resume is measured against.
type SkillTargets struct {
	Skills []Skill `json:"skills"`
}

// Skill is a single target skill with weight and source.
type Skill struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Source string  `json:"source"`
}

// SkillCoverage reports how much of the weighted target list a resume covers.
type SkillCoverage struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}
