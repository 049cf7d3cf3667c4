package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notesvc/internal/model"
)

func TestFilter(t *testing.T) {
	notes := []model.Note{
		{Content: "Buy MILK"},
		{Content: "call mom"},
		{Content: "milkshake recipe"},
		{Content: ""},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps all", "", []string{"Buy MILK", "call mom", "milkshake recipe", ""}},
		{"case insensitive", "milk", []string{"Buy MILK", "milkshake recipe"}},
		{"upper query", "MOM", []string{"call mom"}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(notes, tt.query)
			contents := make([]string, 0, len(got))
			for _, n := range got {
				contents = append(contents, n.Content)
			}
			assert.Equal(t, tt.want, contents)
		})
	}
}
