package cv

import "unicode/utf8"

// Summary is an overview of the loaded document.
type Summary struct {
	Sections        []Section          `json:"sections"`
	Entities        Entities           `json:"entities"`
	WordCount       int                `json:"word_count"`
	SectionPreviews map[Section]string `json:"sections_preview"`
}

// previewLen caps per-section preview length in the summary.
const previewLen = 100

// GetSummary returns an overview of the loaded document, or ErrNotLoaded
// when nothing is loaded.
func (p *Parser) GetSummary() (Summary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return Summary{}, ErrNotLoaded
	}

	sections := make([]Section, 0, len(p.doc.Sections))
	previews := make(map[Section]string, len(p.doc.Sections))
	for _, sec := range sectionOrder {
		content, ok := p.doc.Sections[sec]
		if !ok {
			continue
		}
		sections = append(sections, sec)
		if utf8.RuneCountInString(content) > previewLen {
			previews[sec] = clip(content, previewLen) + "..."
		} else {
			previews[sec] = content
		}
	}

	return Summary{
		Sections:        sections,
		Entities:        p.doc.Entities,
		WordCount:       len(tokenize(p.doc.Raw)),
		SectionPreviews: previews,
	}, nil
}
