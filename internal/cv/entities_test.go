package cv

import (
	"reflect"
	"testing"

	"github.com/dgallion1/cvserve/internal/ner"
)

type stubTagger struct {
	spans []ner.Span
}

func (s stubTagger) Tag(text string) []ner.Span { return s.spans }

func TestExtractEntities_LabelRouting(t *testing.T) {
	tagger := stubTagger{spans: []ner.Span{
		{Text: "John Smith", Label: ner.LabelPerson},
		{Text: "Acme Inc", Label: ner.LabelOrg},
		{Text: "Globex", Label: ner.LabelCompany},
		{Text: "Austin", Label: ner.LabelGPE},
		{Text: "Texas", Label: ner.LabelLocation},
		{Text: "2020", Label: ner.LabelDate},
	}}

	e := extractEntities("irrelevant", map[Section]string{}, tagger)

	if !reflect.DeepEqual(e.Persons, []string{"John Smith"}) {
		t.Errorf("persons: got %v", e.Persons)
	}
	if !reflect.DeepEqual(e.Organizations, []string{"Acme Inc", "Globex"}) {
		t.Errorf("organizations: got %v", e.Organizations)
	}
	if !reflect.DeepEqual(e.Locations, []string{"Austin", "Texas"}) {
		t.Errorf("locations: got %v", e.Locations)
	}
	if !reflect.DeepEqual(e.Dates, []string{"2020"}) {
		t.Errorf("dates: got %v", e.Dates)
	}
}

func TestExtractEntities_PipeDelimitedCompany(t *testing.T) {
	sections := map[Section]string{
		SectionExperience: "Engineer | Acme Corp | 2020-2022\nSenior Engineer",
	}
	e := extractEntities("", sections, stubTagger{})

	if !reflect.DeepEqual(e.Organizations, []string{"Acme Corp"}) {
		t.Errorf("organizations: expected [Acme Corp], got %v", e.Organizations)
	}
}

func TestExtractEntities_CompanyDedup(t *testing.T) {
	tagger := stubTagger{spans: []ner.Span{{Text: "Acme Corp", Label: ner.LabelOrg}}}
	sections := map[Section]string{
		SectionExperience: "Engineer | Acme Corp | 2020\nManager | Acme Corp | 2021\nAnalyst | Initech | 2022",
	}
	e := extractEntities("", sections, tagger)

	want := []string{"Acme Corp", "Initech"}
	if !reflect.DeepEqual(e.Organizations, want) {
		t.Errorf("organizations: expected %v, got %v", want, e.Organizations)
	}
}

func TestExtractEntities_CompanyOutsideExperienceIgnored(t *testing.T) {
	sections := map[Section]string{
		SectionProjects: "Widget | Acme Corp | 2020",
	}
	e := extractEntities("", sections, stubTagger{})

	if len(e.Organizations) != 0 {
		t.Errorf("expected no organizations from projects section, got %v", e.Organizations)
	}
}

func TestExtractEntities_TechnologyKeywords(t *testing.T) {
	content := "Built services in Python and Go, deployed with Docker on AWS. SQL everywhere."
	e := extractEntities(content, map[Section]string{}, stubTagger{})

	want := []string{"python", "sql", "aws", "docker"}
	if !reflect.DeepEqual(e.Technologies, want) {
		t.Errorf("technologies: expected %v, got %v", want, e.Technologies)
	}
}

func TestExtractEntities_TechnologyListedOnce(t *testing.T) {
	content := "python python python"
	e := extractEntities(content, map[Section]string{}, stubTagger{})

	if !reflect.DeepEqual(e.Technologies, []string{"python"}) {
		t.Errorf("technologies: expected [python], got %v", e.Technologies)
	}
}
