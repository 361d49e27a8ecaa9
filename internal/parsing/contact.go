package parsing

import (
	"regexp"
	"strings"
)

// ContactInfo holds the contact fields found in a resume. Missing fields are
// left empty.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

var (
	emailRe    = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInRe = regexp.MustCompile(`linkedin\.com/in/[\w\-]+`)
	gitHubRe   = regexp.MustCompile(`github\.com/[\w\-]+`)

	// LocationRe matches a US-style "City, ST" location with an optional ZIP
	// on a single line.
	LocationRe = regexp.MustCompile(`[A-Z][a-zA-Z \t-]+,[ \t]*[A-Z]{2}(?:[ \t]*\d{5})?`)
)

var nameStopWords = []string{"resume", "cv", "curriculum", "vitae"}

// ExtractContact pulls contact fields out of text, normally the contact
// section. The name is the first non-empty line unless it is too short or
// looks like a document title.
func ExtractContact(text string) ContactInfo {
	var info ContactInfo
	info.Email = emailRe.FindString(text)
	info.Phone = phoneRe.FindString(text)
	info.LinkedIn = linkedInRe.FindString(text)
	info.GitHub = gitHubRe.FindString(text)
	info.Location = LocationRe.FindString(text)

	for _, line := range splitLines(text) {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if len(name) > 3 && !containsAny(strings.ToLower(name), nameStopWords) {
			info.Name = name
		}
		break
	}
	return info
}

// Contact extracts contact fields from the document's contact section,
// falling back to the whole document text when the section is missing.
func (d *Document) Contact(fullText string) ContactInfo {
	if text := d.Text(SectionContact); text != "" {
		return ExtractContact(text)
	}
	return ExtractContact(fullText)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
