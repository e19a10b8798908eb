package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormattedDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date: time.Date(2024, time.May, 14, 9, 0, 0, 0, time.UTC), want: "may 14"},
		{date: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), want: "jan 1"},
		{date: time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), want: "dec 31"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			note := NewNote("t", "c", tt.date)
			assert.Equal(t, tt.want, note.FormattedDate())
		})
	}
}

func TestMatchFilter(t *testing.T) {
	note := NewNote("Shopping List", "Buy Milk", time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		filter string
		want   bool
	}{
		{filter: "shopping", want: true},
		{filter: "MILK", want: true},
		{filter: "may", want: true},
		{filter: "may 14", want: true},
		{filter: "june", want: false},
		{filter: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, note.MatchFilter(tt.filter))
		})
	}
}

func TestApply(t *testing.T) {
	note := NewNote("A", "B", time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC))
	same := note

	later := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	note.Apply(Note{Title: "A", Content: "C", CreatedAt: later})

	assert.Same(t, same, note)
	assert.Equal(t, "C", note.Content)
	assert.Equal(t, later, note.CreatedAt)
}
