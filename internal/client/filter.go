package client

import (
	"strings"

	"notesvc/internal/model"
)

// Filter returns the notes whose content contains query, ignoring case.
// An empty query returns notes unchanged. Order is preserved.
func Filter(notes []model.Note, query string) []model.Note {
	if query == "" {
		return notes
	}
	q := strings.ToLower(query)
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
