// Package sections splits a markdown-like document into named sections.
package sections

import "strings"

// HeaderSection is the name given to everything before the first level-2
// header, including an optional level-1 title line.
const HeaderSection = "header"

// Map is an ordered mapping from section name to body. Insertion order
// follows document order; a repeated section name keeps its first position
// but takes the last body.
type Map struct {
	names  []string
	bodies map[string]string
}

// Names returns the section names in document order.
func (m *Map) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Body returns the body of a named section.
func (m *Map) Body(name string) (string, bool) {
	body, ok := m.bodies[name]
	return body, ok
}

// Len returns the number of sections.
func (m *Map) Len() int { return len(m.names) }

func (m *Map) set(name, body string) {
	if _, exists := m.bodies[name]; !exists {
		m.names = append(m.names, name)
	}
	m.bodies[name] = body
}

// Parse splits the document on level-2 header lines ("## ..."). Text before
// the first header becomes the "header" section. Section names are the
// header text, lowercased and trimmed. Interior blank lines are preserved;
// only the leading/trailing whitespace of each final body is trimmed.
//
// A document without level-2 headers yields a single "header" section
// holding the whole text.
func Parse(document string) *Map {
	m := &Map{bodies: map[string]string{}}

	trimmed := strings.TrimSpace(document)
	if trimmed == "" {
		return m
	}

	// Non-empty input always carries a header entry, even when the document
	// opens directly with a level-2 header.
	m.set(HeaderSection, "")

	current := HeaderSection
	var content []string

	flush := func() {
		if len(content) > 0 {
			m.set(current, strings.TrimSpace(strings.Join(content, "\n")))
		}
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			current = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "## ")))
			content = nil
			continue
		}
		content = append(content, line)
	}
	flush()

	return m
}
