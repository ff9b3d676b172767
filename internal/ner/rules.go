package ner

import (
	"regexp"
	"strings"
)

// RuleTagger is a regex-based Tagger. It is far cruder than a statistical
// model but deterministic and dependency-free, which is what the rest of the
// system needs: entity lists feed keyword answers, not ranking.
type RuleTagger struct{}

// NewRuleTagger returns a tagger backed by the fixed rule set below.
func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

var (
	dateRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\b|\b(19|20)\d{2}\s*[-\x{2013}]\s*((19|20)\d{2}|present|current)\b|\b(19|20)\d{2}\b`)

	// Title-case runs ending in a company or institution suffix.
	orgRe = regexp.MustCompile(`\b([A-Z][A-Za-z&.]*(?:\s+[A-Z][A-Za-z&.]*)*\s+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|GmbH|Technologies|Labs|Systems|Solutions|University|College|Institute))\b`)

	// "City, ST" or "City, Country" pairs.
	locRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?),\s([A-Z]{2}|[A-Z][a-z]+)\b`)

	nameWordRe = regexp.MustCompile(`^[A-Z][a-z'-]+$`)
)

// Tag runs the rule passes in a fixed order: dates, organizations,
// locations, then a person heuristic over the top of the document.
func (t *RuleTagger) Tag(text string) []Span {
	var spans []Span

	for _, m := range dateRe.FindAllString(text, -1) {
		spans = append(spans, Span{Text: strings.TrimSpace(m), Label: LabelDate})
	}
	for _, m := range orgRe.FindAllString(text, -1) {
		spans = append(spans, Span{Text: strings.TrimSpace(m), Label: LabelOrg})
	}
	for _, m := range locRe.FindAllString(text, -1) {
		spans = append(spans, Span{Text: strings.TrimSpace(m), Label: LabelGPE})
	}
	if name := findName(text); name != "" {
		spans = append(spans, Span{Text: name, Label: LabelPerson})
	}

	return spans
}

// findName looks for a 2-4 word title-case line near the top of the
// document, the usual place a resume states its owner.
func findName(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			return ""
		}
		if strings.ContainsAny(line, "@0123456789/:") {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		ok := true
		for _, w := range words {
			if !nameWordRe.MatchString(w) {
				ok = false
				break
			}
		}
		if ok {
			return line
		}
	}
	return ""
}
