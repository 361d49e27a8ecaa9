// Package types provides type definitions for structured data shared across the resume-analyzer packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobProfile is the structured view of a job description derived by the
// analyzer's heuristics.
type JobProfile struct {
	Industry              string                 `json:"industry,omitempty"`
	Level                 string                 `json:"level,omitempty"`
	YearsRequired         float64                `json:"years_required,omitempty"`
	HardRequirements      []Requirement          `json:"hard_requirements"`
	NiceToHaves           []Requirement          `json:"nice_to_haves"`
	Keywords              []string               `json:"keywords"`
	EducationRequirements *EducationRequirements `json:"education_requirements,omitempty"`
}

// Requirement is a skill named by the job description with the sentence
// fragment it was found in.
type Requirement struct {
	Skill    string `json:"skill"`
	Evidence string `json:"evidence,omitempty"`
}

// EducationRequirements is the degree the job description asks for.
type EducationRequirements struct {
	MinDegree  string `json:"min_degree,omitempty"` // Bachelors, Masters or Phd
	Evidence   string `json:"evidence,omitempty"`
	IsRequired bool   `json:"is_required,omitempty"`
}
