package cv

import (
	"fmt"
	"strings"
)

// Answer is the result of a question against the loaded document.
type Answer struct {
	Text       string    `json:"answer"`
	Confidence float64   `json:"confidence"`
	Sources    []Section `json:"source_sections"`
}

// Question-category keyword tables, tested in this order; the first category
// whose keywords appear in the question wins. Matching is substring-based,
// so "skill" also catches "skills".
var (
	roleKeywords       = []string{"role", "position", "job", "title"}
	educationKeywords  = []string{"education", "degree", "study", "university", "college"}
	skillsKeywords     = []string{"skill", "technology", "programming", "tech"}
	experienceKeywords = []string{"experience", "work", "company", "employer"}
	projectKeywords    = []string{"project", "built", "developed"}

	// Words that mark a line in the experience section as a job title.
	roleIndicators = []string{"engineer", "developer", "manager", "analyst", "director", "lead", "senior", "junior"}
)

// AnswerQuestion answers a free-text question about the loaded document.
// It never fails: with no document loaded it returns a fixed answer at zero
// confidence, and missing data degrades to low-confidence canned answers.
func (p *Parser) AnswerQuestion(question string) Answer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return Answer{Text: "No CV loaded", Confidence: 0.0, Sources: []Section{}}
	}

	lower := strings.ToLower(question)
	switch {
	case containsAny(lower, roleKeywords):
		return p.doc.answerRole(lower)
	case containsAny(lower, educationKeywords):
		return p.doc.answerEducation()
	case containsAny(lower, skillsKeywords):
		return p.doc.answerSkills()
	case containsAny(lower, experienceKeywords):
		return p.doc.answerExperience()
	case containsAny(lower, projectKeywords):
		return p.doc.answerProjects()
	default:
		return p.doc.generalSearch(question)
	}
}

func (d *Document) answerRole(questionLower string) Answer {
	experience := d.Sections[SectionExperience]
	if experience == "" {
		return Answer{
			Text:       "No work experience information found in the CV.",
			Confidence: 0.3,
			Sources:    []Section{},
		}
	}

	var roles []string
	for _, line := range strings.Split(experience, "\n") {
		lineLower := strings.ToLower(line)
		for _, word := range roleIndicators {
			if strings.Contains(lineLower, word) {
				roles = append(roles, strings.TrimSpace(line))
				break
			}
		}
	}

	if len(roles) == 0 {
		return Answer{
			Text:       "Could not identify specific roles in your CV.",
			Confidence: 0.4,
			Sources:    []Section{SectionExperience},
		}
	}

	var text string
	if strings.Contains(questionLower, "last") || strings.Contains(questionLower, "recent") || strings.Contains(questionLower, "current") {
		text = fmt.Sprintf("Your most recent role appears to be: %s", roles[0])
	} else {
		if len(roles) > 3 {
			roles = roles[:3]
		}
		text = fmt.Sprintf("Your roles include: %s", strings.Join(roles, ", "))
	}
	return Answer{Text: text, Confidence: 0.8, Sources: []Section{SectionExperience}}
}

func (d *Document) answerEducation() Answer {
	education := d.Sections[SectionEducation]
	if education == "" {
		return Answer{
			Text:       "No education information found in the CV.",
			Confidence: 0.3,
			Sources:    []Section{},
		}
	}
	return Answer{
		Text:       fmt.Sprintf("Education details: %s", education),
		Confidence: 0.7,
		Sources:    []Section{SectionEducation},
	}
}

func (d *Document) answerSkills() Answer {
	if len(d.Entities.Technologies) > 0 {
		techs := dedupe(d.Entities.Technologies)
		return Answer{
			Text:       fmt.Sprintf("Technologies and skills mentioned: %s", strings.Join(techs, ", ")),
			Confidence: 0.8,
			Sources:    []Section{SectionSkills},
		}
	}
	if skills := d.Sections[SectionSkills]; skills != "" {
		return Answer{
			Text:       fmt.Sprintf("Skills section: %s...", clip(skills, 200)),
			Confidence: 0.7,
			Sources:    []Section{SectionSkills},
		}
	}
	return Answer{
		Text:       "No specific skills section found, but may be mentioned throughout the CV.",
		Confidence: 0.4,
		Sources:    []Section{SectionSkills},
	}
}

func (d *Document) answerExperience() Answer {
	if len(d.Entities.Organizations) > 0 {
		orgs := dedupe(d.Entities.Organizations)
		return Answer{
			Text:       fmt.Sprintf("Companies/organizations mentioned: %s", strings.Join(orgs, ", ")),
			Confidence: 0.8,
			Sources:    []Section{SectionExperience},
		}
	}
	if experience := d.Sections[SectionExperience]; experience != "" {
		return Answer{
			Text:       fmt.Sprintf("Work experience: %s...", clip(experience, 200)),
			Confidence: 0.7,
			Sources:    []Section{SectionExperience},
		}
	}
	return Answer{
		Text:       "No work experience section found.",
		Confidence: 0.3,
		Sources:    []Section{SectionExperience},
	}
}

func (d *Document) answerProjects() Answer {
	projects := d.Sections[SectionProjects]
	if projects == "" {
		return Answer{
			Text:       "No dedicated projects section found.",
			Confidence: 0.3,
			Sources:    []Section{},
		}
	}
	return Answer{
		Text:       fmt.Sprintf("Projects: %s...", clip(projects, 200)),
		Confidence: 0.7,
		Sources:    []Section{SectionProjects},
	}
}

// generalSearch scores every section by lexical overlap with the question
// and answers from the single best one. Sections are visited in canonical
// order, so ties keep the first section encountered and repeated questions
// give identical answers.
func (d *Document) generalSearch(question string) Answer {
	questionWords := contentWords(question)

	var best Answer
	bestScore := 0.0
	for _, sec := range sectionOrder {
		content := d.Sections[sec]
		if content == "" {
			continue
		}
		sectionWords := contentWords(content)

		overlap := 0
		for w := range questionWords {
			if sectionWords[w] {
				overlap++
			}
		}
		score := float64(overlap) / float64(max(len(questionWords), 1))

		if score > bestScore {
			bestScore = score
			best = Answer{
				Text:       clip(content, 300) + "...",
				Confidence: score,
				Sources:    []Section{sec},
			}
		}
	}

	if bestScore > 0.1 {
		return best
	}
	return Answer{
		Text:       "I couldn't find relevant information in the CV to answer that question.",
		Confidence: 0.2,
		Sources:    []Section{},
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// clip returns the first n runes of s.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
