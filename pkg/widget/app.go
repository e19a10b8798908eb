// Package widget is the note list controller. It owns the notes, renders
// them through the note template and drives the composition panel.
package widget

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/pluqqy/quicknotes/internal/logging"
	"github.com/pluqqy/quicknotes/pkg/composition"
	"github.com/pluqqy/quicknotes/pkg/dom"
	"github.com/pluqqy/quicknotes/pkg/models"
	"github.com/pluqqy/quicknotes/pkg/template"
)

// Element addresses inside the page layout
const (
	SearchBarID    = "#search-bar"
	AddNoteID      = "#add-note"
	RendererRootID = "#note-renderer"
	DisclaimerID   = "#empty-disclaimer"
	NoteTemplateID = "#template-note"
)

// Note template action slots
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionCopy   = "copy"
)

// ErrNoteNotFound is returned when an action targets a note the app does not hold
var ErrNoteNotFound = errors.New("note is not applicable")

// App is the note list controller
type App struct {
	doc          *dom.Document
	searchBar    *dom.Field
	addButton    *dom.Button
	renderRoot   *dom.Handle
	disclaimer   *Disclaimer
	panel        *composition.Panel
	noteTemplate *template.Template

	notes   []*models.Note
	visible []*models.Note
	err     error

	copyText func(string) error
	logger   *logrus.Entry
	panelOpt []composition.Option
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger shared with the composition panel
func WithLogger(logger *logrus.Entry) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithClipboard replaces the function used by the copy action
func WithClipboard(copyText func(string) error) Option {
	return func(a *App) {
		a.copyText = copyText
	}
}

// WithPanelOptions passes options through to the composition panel
func WithPanelOptions(opts ...composition.Option) Option {
	return func(a *App) {
		a.panelOpt = append(a.panelOpt, opts...)
	}
}

// New locates every element the widget needs. Any missing element or
// template mismatch fails the whole construction.
func New(doc *dom.Document, opts ...Option) (*App, error) {
	a := &App{
		doc:      doc,
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}

	var err error
	if a.searchBar, err = doc.LocateField(SearchBarID); err != nil {
		return nil, fmt.Errorf("search bar: %w", err)
	}
	if a.addButton, err = doc.LocateButton(AddNoteID); err != nil {
		return nil, fmt.Errorf("add note button: %w", err)
	}
	if a.renderRoot, err = doc.Locate(RendererRootID); err != nil {
		return nil, fmt.Errorf("note renderer: %w", err)
	}
	if a.disclaimer, err = NewDisclaimer(doc, DisclaimerID); err != nil {
		return nil, fmt.Errorf("empty disclaimer: %w", err)
	}

	panelOpts := append([]composition.Option{composition.WithLogger(a.logger)}, a.panelOpt...)
	if a.panel, err = composition.New(doc, panelOpts...); err != nil {
		return nil, err
	}

	a.noteTemplate, err = template.New(doc, NoteTemplateID,
		template.RequireActions(ActionEdit, ActionDelete, ActionCopy))
	if err != nil {
		return nil, fmt.Errorf("note template: %w", err)
	}

	a.logger = a.logger.WithField("component", "widget")
	return a, nil
}

// Initialize loads the starting notes, renders them and wires the page events.
// It is called once, after the surface is ready.
func (a *App) Initialize(seed []*models.Note) error {
	a.notes = append([]*models.Note(nil), seed...)

	if err := a.render(""); err != nil {
		return err
	}
	a.setupEvents()

	a.logger.WithField("notes", len(a.notes)).Info("widget initialized")
	return nil
}

func (a *App) setupEvents() {
	a.searchBar.OnChange(func(filter string) { a.rerender(filter) })
	a.addButton.OnClick(a.addNewNote)
	a.panel.OnCancel(func() { a.rerender("") })
}

// Notes returns the notes in insertion order
func (a *App) Notes() []*models.Note {
	return a.notes
}

// Visible returns the notes shown by the last render
func (a *App) Visible() []*models.Note {
	return a.visible
}

// Panel returns the composition panel
func (a *App) Panel() *composition.Panel {
	return a.panel
}

// Document returns the page the widget renders into
func (a *App) Document() *dom.Document {
	return a.doc
}

// Err returns the first error raised while handling an event
func (a *App) Err() error {
	return a.err
}

// Filter re-renders the list with the given filter, as typing in the search
// bar does
func (a *App) Filter(filter string) error {
	a.searchBar.SetValue(filter)
	return a.render(filter)
}

// AddNewNote opens the composition panel for a new note
func (a *App) AddNewNote() {
	a.addNewNote()
}

// EditNote opens the composition panel for an existing note
func (a *App) EditNote(note *models.Note) {
	a.editNote(note)
}

// DeleteNote removes a note
func (a *App) DeleteNote(note *models.Note) error {
	return a.deleteNote(note)
}

// rerender renders from an event callback, where the error cannot be returned
func (a *App) rerender(filter string) {
	if err := a.render(filter); err != nil {
		a.fail(err)
	}
}

func (a *App) fail(err error) {
	a.logger.WithError(err).Error("event handling failed")
	if a.err == nil {
		a.err = err
	}
}

func (a *App) render(filter string) error {
	a.clearListView()
	a.visible = nil

	if len(a.notes) == 0 {
		a.disclaimer.QueryConfirm(a.addNewNote)
		a.addButton.Hide()
		return nil
	}
	a.disclaimer.Dismiss()
	if a.panel.IsHidden() {
		a.addButton.Show()
	}

	notes := a.notes
	if filter != "" {
		notes = nil
		for _, note := range a.notes {
			if note.MatchFilter(filter) {
				notes = append(notes, note)
			}
		}
	}

	// Items are staged off-document so a failed build leaves the list empty
	staging := a.doc.CreateElement("ul")
	items := make([]*dom.Handle, 0, len(notes))
	for _, note := range notes {
		item, err := a.renderNote(note)
		if err != nil {
			staging.Empty()
			return err
		}
		staging.Append(item)
		items = append(items, item)
	}
	for _, item := range items {
		a.renderRoot.Append(item)
	}
	a.visible = notes

	a.logger.WithFields(logrus.Fields{
		"filter":  filter,
		"visible": len(notes),
		"total":   len(a.notes),
	}).Debug("rendered notes")
	return nil
}

// renderNote builds the list item for one note. Note text is user input, so
// it is escaped before it reaches the template markup.
func (a *App) renderNote(note *models.Note) (*dom.Handle, error) {
	instance, err := a.noteTemplate.Build(
		template.Properties{
			"title":     html.EscapeString(note.Title),
			"content":   html.EscapeString(note.Content),
			"createdAt": html.EscapeString(note.FormattedDate()),
		},
		template.Actions{
			ActionEdit:   func() { a.editNote(note) },
			ActionDelete: func() { a.onDelete(note) },
			ActionCopy:   func() { a.copyNote(note) },
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render note %q: %w", note.Title, err)
	}

	li := a.doc.CreateElement("li")
	li.Append(instance.Root())
	return li, nil
}

func (a *App) clearListView() {
	a.renderRoot.Empty()
}

func (a *App) prepareViewForComposition() {
	a.searchBar.Clear()
	a.addButton.Hide()
	a.disclaimer.Dismiss()
}

func (a *App) addNewNote() {
	a.prepareViewForComposition()

	a.panel.QueryNew(func(draft models.Note) {
		note := draft
		a.notes = append(a.notes, &note)
		a.logger.WithField("title", note.Title).Info("note added")
		a.rerender("")
	})
}

func (a *App) editNote(existing *models.Note) {
	a.prepareViewForComposition()

	a.panel.QueryEdit(existing, func(draft models.Note) {
		existing.Apply(draft)
		a.logger.WithField("title", existing.Title).Info("note edited")
		a.rerender("")
	})
}

func (a *App) onDelete(note *models.Note) {
	if err := a.deleteNote(note); err != nil {
		a.fail(err)
	}
}

func (a *App) deleteNote(note *models.Note) error {
	index := -1
	for i, candidate := range a.notes {
		if candidate == note {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNoteNotFound
	}

	a.notes = append(a.notes[:index], a.notes[index+1:]...)
	a.logger.WithField("title", note.Title).Info("note deleted")
	return a.render(a.searchBar.Value())
}

func (a *App) copyNote(note *models.Note) {
	if err := a.copyText(note.Content); err != nil {
		// Clipboard access depends on the host; a failed copy is not fatal
		a.logger.WithError(err).Warn("failed to copy note to clipboard")
		return
	}
	a.logger.WithField("title", note.Title).Debug("note copied")
}
