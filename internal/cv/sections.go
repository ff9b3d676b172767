package cv

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxHeaderLen caps how long a line may be and still count as a section
// header. Longer lines that happen to contain a header keyword are body text.
const maxHeaderLen = 50

// headerPatterns maps header keywords to sections. Order matters: when a
// line matches more than one pattern, the first match in this table wins.
var headerPatterns = []struct {
	section Section
	re      *regexp.Regexp
}{
	{SectionPersonalInfo, regexp.MustCompile(`(personal|contact|details)`)},
	{SectionSummary, regexp.MustCompile(`(summary|profile|objective|about)`)},
	{SectionExperience, regexp.MustCompile(`(experience|employment|work|career|professional)`)},
	{SectionEducation, regexp.MustCompile(`(education|academic|qualification|degree)`)},
	{SectionSkills, regexp.MustCompile(`(skills|competencies|technologies|technical)`)},
	{SectionClubs, regexp.MustCompile(`(clubs|unions)`)},
	{SectionProjects, regexp.MustCompile(`(projects|portfolio)`)},
	{SectionAchievements, regexp.MustCompile(`(achievements|awards|honors|accomplishments)`)},
}

// segmentSections splits resume text into labeled sections, line by line.
// Lines that look like section headers switch the current section and are
// not included in any body; everything else accumulates under the current
// section, starting in "other". Sections that end up empty are dropped.
func segmentSections(content string) map[Section]string {
	bodies := make(map[Section][]string)
	current := SectionOther

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		isHeader := false
		if utf8.RuneCountInString(line) < maxHeaderLen {
			for _, hp := range headerPatterns {
				if hp.re.MatchString(lower) {
					current = hp.section
					isHeader = true
					break
				}
			}
		}
		if !isHeader {
			bodies[current] = append(bodies[current], line)
		}
	}

	sections := make(map[Section]string, len(bodies))
	for sec, lines := range bodies {
		if len(lines) > 0 {
			sections[sec] = strings.Join(lines, "\n")
		}
	}
	return sections
}
