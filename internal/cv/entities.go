package cv

import (
	"regexp"
	"strings"

	"github.com/dgallion1/cvserve/internal/ner"
)

// companyRe pulls an organization name out of pipe-delimited experience
// lines such as "Engineer | Acme Corp | 2020-2022".
var companyRe = regexp.MustCompile(`\|\s*([A-Za-z0-9 &.,-]+)\s*\|`)

// techKeywords is the fixed technology vocabulary matched as substrings of
// the lower-cased document.
var techKeywords = []string{
	"python", "java", "javascript", "react", "node.js", "sql", "mongodb",
	"aws", "docker", "kubernetes", "git", "linux", "tensorflow", "pytorch",
	"html", "css", "angular", "vue", "django", "flask", "fastapi",
}

// extractEntities builds the entity lists for a document: tagger spans
// routed by label, a second organization pass over the experience section,
// and technology keyword detection over the whole text.
func extractEntities(content string, sections map[Section]string, tagger ner.Tagger) Entities {
	e := Entities{
		Persons:       []string{},
		Organizations: []string{},
		Locations:     []string{},
		Dates:         []string{},
		Technologies:  []string{},
	}

	for _, span := range tagger.Tag(content) {
		switch span.Label {
		case ner.LabelPerson:
			e.Persons = append(e.Persons, span.Text)
		case ner.LabelOrg, ner.LabelCompany:
			e.Organizations = append(e.Organizations, span.Text)
		case ner.LabelGPE, ner.LabelLocation:
			e.Locations = append(e.Locations, span.Text)
		case ner.LabelDate:
			e.Dates = append(e.Dates, span.Text)
		}
	}

	for _, line := range strings.Split(sections[SectionExperience], "\n") {
		m := companyRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		company := strings.TrimSpace(m[1])
		if company != "" && !contains(e.Organizations, company) {
			e.Organizations = append(e.Organizations, company)
		}
	}

	lower := strings.ToLower(content)
	for _, tech := range techKeywords {
		if strings.Contains(lower, tech) {
			e.Technologies = append(e.Technologies, tech)
		}
	}

	return e
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
