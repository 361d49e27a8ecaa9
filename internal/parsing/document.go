package parsing

import (
	"encoding/json"
	"fmt"
)

// Section is one named block of a resume with its cleaned bullets.
type Section struct {
	Name         SectionName `json:"-"`
	Text         string      `json:"text"`
	BulletPoints []string    `json:"bullet_points"`
}

// LineAssignment records which section a non-blank input line was assigned
// to and which rule made the decision.
type LineAssignment struct {
	Index    int         `json:"index"`
	Section  SectionName `json:"section"`
	Rule     string      `json:"rule"`
	Retained bool        `json:"retained"`
}

// Document is the structured result of segmenting one resume. It is built
// once per parse and not modified afterwards.
type Document struct {
	Sections map[SectionName]*Section `json:"sections"`
	Lines    []LineAssignment         `json:"lines,omitempty"`
}

// Section returns the named section, or nil if the document has none.
func (d *Document) Section(name SectionName) *Section {
	if d == nil {
		return nil
	}
	return d.Sections[name]
}

// Has reports whether the document contains the named section.
func (d *Document) Has(name SectionName) bool {
	return d.Section(name) != nil
}

// Text returns the text block of the named section, or "".
func (d *Document) Text(name SectionName) string {
	if s := d.Section(name); s != nil {
		return s.Text
	}
	return ""
}

// Bullets returns the bullets of the named section. The result is never nil.
func (d *Document) Bullets(name SectionName) []string {
	if s := d.Section(name); s != nil && s.BulletPoints != nil {
		return s.BulletPoints
	}
	return []string{}
}

// Names returns the names of the present sections in canonical order.
func (d *Document) Names() []SectionName {
	var names []SectionName
	for _, name := range SectionOrder {
		if d.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// Empty reports whether no section was recognized.
func (d *Document) Empty() bool {
	return d == nil || len(d.Sections) == 0
}

// SectionMap returns the plain section mapping, the shape exposed to callers
// that do not need line assignments.
func (d *Document) SectionMap() map[SectionName]*Section {
	out := make(map[SectionName]*Section, len(d.Sections))
	for name, s := range d.Sections {
		out[name] = s
	}
	return out
}

// UnmarshalJSON restores section names from map keys.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	for name, s := range raw.Sections {
		if s == nil {
			continue
		}
		s.Name = name
		if s.BulletPoints == nil {
			s.BulletPoints = []string{}
		}
	}
	if raw.Sections == nil {
		raw.Sections = make(map[SectionName]*Section)
	}
	*d = Document(raw)
	return nil
}
