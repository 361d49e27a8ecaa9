package analysis

import (
	"github.com/jonathan/resume-analyzer/internal/education"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

// Fields are the structured values extracted from a parsed resume.
type Fields struct {
	Contact   parsing.ContactInfo `json:"contact"`
	Skills    skills.Skills       `json:"skills"`
	Jobs      []experience.Job    `json:"experience"`
	Education []education.Degree  `json:"education"`
}

// Fields runs the field extractors over doc. Each extractor reads its own
// section and falls back to fullText where it supports that.
func (a *Analyzer) Fields(doc *parsing.Document, fullText string) Fields {
	return Fields{
		Contact:   doc.Contact(fullText),
		Skills:    a.extractor.ExtractDocument(doc, fullText),
		Jobs:      experience.ExtractDocumentJobs(doc, a.now()),
		Education: education.ExtractDocumentDegrees(doc),
	}
}
