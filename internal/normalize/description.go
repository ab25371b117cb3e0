package normalize

import "strings"

// Answer is one survey question with the value the lead filled in.
type Answer struct {
	Label string
	Value string
}

// Description renders the survey answers into the free-text description
// stored on the lead. Empty answers are dropped; the rest keep their
// field order and are rendered as "label:\nvalue" blocks separated by a
// blank line.
func Description(answers []Answer) string {
	blocks := make([]string, 0, len(answers))
	for _, a := range answers {
		if a.Value == "" {
			continue
		}
		blocks = append(blocks, a.Label+":\n"+a.Value)
	}
	return strings.Join(blocks, "\n\n")
}
