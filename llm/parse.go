package llm

import "strings"

// Analysis is the parsed model reply. A field the model did not label is an
// empty string, never absent: callers treat "" as unknown, not as an error.
type Analysis struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

const (
	labelSubject = "Subject:"
	labelTitle   = "Title:"
	labelSummary = "Summary:"
)

// ParseAnalysis recovers labeled sections from free text, one pass over the
// lines. A line starting with a known label opens that section and the rest
// of the line is its initial content; non-empty unlabeled lines are joined
// onto the open section with a space. Lines before the first label are
// discarded. Sections may appear in any order.
func ParseAnalysis(text string) Analysis {
	sections := map[string]string{
		labelSubject: "",
		labelTitle:   "",
		labelSummary: "",
	}
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if label, rest, ok := matchLabel(line); ok {
			current = label
			sections[label] = rest

			continue
		}

		if current != "" && line != "" {
			sections[current] += " " + line
		}
	}

	return Analysis{
		Subject: strings.TrimSpace(sections[labelSubject]),
		Title:   strings.TrimSpace(sections[labelTitle]),
		Summary: strings.TrimSpace(sections[labelSummary]),
	}
}

func matchLabel(line string) (label, rest string, ok bool) {
	for _, l := range []string{labelSubject, labelTitle, labelSummary} {
		if strings.HasPrefix(line, l) {
			return l, strings.TrimSpace(line[len(l):]), true
		}
	}

	return "", "", false
}
