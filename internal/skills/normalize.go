package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// aliases maps common skill spellings to a canonical name.
var aliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mongo":      "MongoDB",
	"mongodb":    "MongoDB",
	"gcp":        "GCP",
	"aws":        "AWS",
	"sql":        "SQL",
	"c++":        "C++",
	"c#":         "C#",
	"ci/cd":      "CI/CD",
}

// NormalizeSkillName maps a skill to its canonical spelling. Known aliases
// are resolved case-insensitively; single lowercase or shouting words are
// title-cased; mixed-case and multi-word names are returned trimmed.
func NormalizeSkillName(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}

	upper := strings.ToUpper(normalized)
	singleWord := !strings.Contains(normalized, " ")

	switch {
	case normalized == upper && len(normalized) > 1 && singleWord:
		return titleWord(lower)
	case normalized != upper && normalized != lower:
		return normalized
	case normalized == lower && singleWord:
		return titleWord(lower)
	}
	return normalized
}

func titleWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Key folds a skill name for comparisons.
func Key(name string) string {
	return strings.ToLower(NormalizeSkillName(name))
}
