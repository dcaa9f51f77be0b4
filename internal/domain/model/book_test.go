package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBook_Matches(t *testing.T) {
	b := Book{
		ID:          "b1",
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		Description: "A hobbit goes on an unexpected journey.",
		Category:    "fantasy",
		Price:       "12.99",
	}

	tests := []struct {
		name     string
		query    string
		category string
		want     bool
	}{
		{"empty query all", "", CategoryAll, true},
		{"empty category", "", "", true},
		{"title case insensitive", "HOBBIT", CategoryAll, true},
		{"author", "tolkien", "", true},
		{"description", "unexpected", "fantasy", true},
		{"no match", "dune", CategoryAll, false},
		{"other category", "hobbit", "science", false},
		{"category only", "", "fantasy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Matches(tt.query, tt.category))
		})
	}
}

func TestBook_CartLine(t *testing.T) {
	b := Book{ID: "b2", Title: "Dune", Price: "9.50"}
	assert.Equal(t, CartLine{ID: "b2", Title: "Dune", Price: "9.50"}, b.CartLine())
}
