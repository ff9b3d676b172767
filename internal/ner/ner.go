// Package ner provides named-entity tagging over resume text.
package ner

// Span is a labeled piece of text found by a tagger.
type Span struct {
	Text  string
	Label string
}

// Labels emitted by taggers. PERSON, ORG, GPE (or LOC) and DATE follow the
// usual NER label scheme; consumers merge ORG/COMPANY and GPE/LOC.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelCompany  = "COMPANY"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
	LabelDate     = "DATE"
)

// Tagger finds entity spans in a block of text. Implementations must be
// deterministic: the same text yields the same spans in the same order.
type Tagger interface {
	Tag(text string) []Span
}
