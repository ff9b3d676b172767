// Package cv owns the loaded resume: its raw text, derived sections and
// entities, and the question-answering heuristics over them.
package cv

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/dgallion1/cvserve/internal/extract"
	"github.com/dgallion1/cvserve/internal/ner"
)

// ErrNotLoaded is returned by operations that need a loaded document.
var ErrNotLoaded = errors.New("no CV loaded")

// Section is a labeled contiguous run of document lines.
type Section string

const (
	SectionPersonalInfo Section = "personal_info"
	SectionSummary      Section = "summary"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionSkills       Section = "skills"
	SectionClubs        Section = "clubs"
	SectionProjects     Section = "projects"
	SectionAchievements Section = "achievements"
	SectionOther        Section = "other"
)

// sectionOrder is the canonical enumeration order. Header patterns are
// tested in this order, and any per-section iteration follows it so that
// answers are deterministic.
var sectionOrder = []Section{
	SectionPersonalInfo,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionClubs,
	SectionProjects,
	SectionAchievements,
	SectionOther,
}

// Entities holds the classified spans extracted from a document, in
// first-seen order.
type Entities struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Dates         []string `json:"dates"`
	Technologies  []string `json:"technologies"`
}

// Document is one parsed resume. Sections and Entities are derived from Raw
// at load time and never mutated afterwards.
type Document struct {
	Raw      string
	Sections map[Section]string
	Entities Entities
}

// Parser holds the single loaded document shared across requests. A mutex
// serializes loads against reads; a load swaps the document wholesale.
type Parser struct {
	mu     sync.Mutex
	doc    *Document
	tagger ner.Tagger
	log    *slog.Logger
}

// NewParser creates a Parser with no document loaded.
func NewParser(tagger ner.Tagger, log *slog.Logger) *Parser {
	return &Parser{
		tagger: tagger,
		log:    log,
	}
}

// Load extracts text from the file at path and replaces the current
// document. It returns false, leaving any prior document intact, when the
// format is unsupported, extraction fails, or the file holds no text.
func (p *Parser) Load(path string) bool {
	content, err := extract.FromFile(path)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			p.log.Warn("unsupported CV format", "path", path, "error", err)
		} else {
			p.log.Error("failed to extract CV text", "path", path, "error", err)
		}
		return false
	}
	if strings.TrimSpace(content) == "" {
		p.log.Warn("CV file contained no text", "path", path)
		return false
	}

	doc := &Document{Raw: content}
	doc.Sections = segmentSections(content)
	doc.Entities = extractEntities(content, doc.Sections, p.tagger)

	p.mu.Lock()
	p.doc = doc
	p.mu.Unlock()
	return true
}

// Loaded reports whether a document is currently loaded.
func (p *Parser) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc != nil
}
