package models

import "time"

// Settings represents the application configuration
type Settings struct {
	UI     UISettings     `yaml:"ui" mapstructure:"ui"`
	Labels LabelSettings  `yaml:"labels" mapstructure:"labels"`
	Layout LayoutSettings `yaml:"layout" mapstructure:"layout"`
	Log    LogSettings    `yaml:"log" mapstructure:"log"`
	Notes  []SeedNote     `yaml:"notes" mapstructure:"notes"`
}

// UISettings controls terminal presentation
type UISettings struct {
	AccentColor string `yaml:"accent_color" mapstructure:"accent_color"`
	MutedColor  string `yaml:"muted_color" mapstructure:"muted_color"`
	Width       int    `yaml:"width" mapstructure:"width"` // 0 follows the terminal
}

// LabelSettings holds the composition panel headings and submit labels
type LabelSettings struct {
	AddHeading  string `yaml:"add_heading" mapstructure:"add_heading"`
	EditHeading string `yaml:"edit_heading" mapstructure:"edit_heading"`
	AddButton   string `yaml:"add_button" mapstructure:"add_button"`
	EditButton  string `yaml:"edit_button" mapstructure:"edit_button"`
}

// LayoutSettings points at a custom page layout
type LayoutSettings struct {
	Path string `yaml:"path" mapstructure:"path"` // empty uses the built-in layout
}

// LogSettings controls the debug log
type LogSettings struct {
	File  string `yaml:"file" mapstructure:"file"` // empty discards logs
	Level string `yaml:"level" mapstructure:"level"`
}

// SeedNote is a note loaded at start-up
type SeedNote struct {
	Title     string    `yaml:"title" mapstructure:"title"`
	Content   string    `yaml:"content" mapstructure:"content"`
	CreatedAt time.Time `yaml:"created_at" mapstructure:"created_at"`
}

// Note converts the seed into a note
func (s SeedNote) Note() *Note {
	return NewNote(s.Title, s.Content, s.CreatedAt)
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	seedDate := time.Date(2024, time.May, 14, 0, 0, 0, 0, time.Local)
	return &Settings{
		UI: UISettings{
			AccentColor: "170",
			MutedColor:  "245",
		},
		Labels: DefaultLabels(),
		Log: LogSettings{
			Level: "info",
		},
		Notes: []SeedNote{
			{Title: "Note 1", Content: "Body 1", CreatedAt: seedDate},
			{Title: "Note 2", Content: "Body 2", CreatedAt: seedDate},
			{Title: "Note 3", Content: "Body 3", CreatedAt: seedDate},
		},
	}
}

// DefaultLabels returns the built-in composition panel labels
func DefaultLabels() LabelSettings {
	return LabelSettings{
		AddHeading:  "Add new note",
		EditHeading: "Edit note",
		AddButton:   "Add",
		EditButton:  "Confirm",
	}
}
