package models

import (
	"fmt"
	"strings"
	"time"
)

// Note is a single note held in memory. Notes are identified by pointer;
// two notes with the same fields are still different notes.
type Note struct {
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewNote creates a note
func NewNote(title, content string, createdAt time.Time) *Note {
	return &Note{
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}
}

// FormattedDate returns the short date shown in the list, e.g. "may 14"
func (n *Note) FormattedDate() string {
	return fmt.Sprintf("%s %d", strings.ToLower(n.CreatedAt.Format("Jan")), n.CreatedAt.Day())
}

// MatchFilter reports whether the title, content or formatted date contains
// the filter, ignoring case
func (n *Note) MatchFilter(filter string) bool {
	filter = strings.ToLower(filter)
	return strings.Contains(strings.ToLower(n.Title), filter) ||
		strings.Contains(strings.ToLower(n.Content), filter) ||
		strings.Contains(n.FormattedDate(), filter)
}

// Apply replaces every field with the draft's
func (n *Note) Apply(draft Note) {
	n.Title = draft.Title
	n.Content = draft.Content
	n.CreatedAt = draft.CreatedAt
}
