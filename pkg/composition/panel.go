// Package composition implements the modal panel used to add and edit notes.
package composition

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pluqqy/quicknotes/internal/logging"
	"github.com/pluqqy/quicknotes/pkg/dom"
	"github.com/pluqqy/quicknotes/pkg/models"
)

// Element addresses inside the page layout
const (
	RootID          = "#note-composition-panel"
	HeadingSelector = RootID + " h2"
	TitleFieldID    = "#note-composition-panel-title"
	ContentFieldID  = "#note-composition-panel-content"
	CancelButtonID  = "#note-composition-panel-cancel"
	SubmitButtonID  = "#note-composition-panel-add-button"
)

// Mode is the kind of composition session
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// State is the panel's position in the state machine
type State int

const (
	StateClosed State = iota
	StateOpenAdd
	StateOpenEdit
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenAdd:
		return "open(add)"
	case StateOpenEdit:
		return "open(edit)"
	default:
		return "unknown"
	}
}

// SubmitFunc receives the composed note. For an add session it is the new
// note; for an edit session the caller applies it to the original.
type SubmitFunc func(draft models.Note)

// session is the transient state of one open panel
type session struct {
	mode     Mode
	target   *models.Note
	onSubmit SubmitFunc
	submit   *dom.Subscription
}

// Panel is the composition panel. It is Closed until QueryNew or QueryEdit
// opens a session, and at most one session is open at a time.
type Panel struct {
	root         *dom.Handle
	heading      *dom.TextBlock
	titleField   *dom.Field
	contentField *dom.Field
	cancelButton *dom.Button
	submitButton *dom.Button

	labels   models.LabelSettings
	clock    func() time.Time
	logger   *logrus.Entry
	session  *session
	onCancel func()
}

// Option configures a Panel
type Option func(*Panel)

// WithLabels overrides the headings and submit labels
func WithLabels(labels models.LabelSettings) Option {
	return func(p *Panel) {
		p.labels = labels
	}
}

// WithClock sets the time source used to stamp submitted notes
func WithClock(clock func() time.Time) Option {
	return func(p *Panel) {
		p.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Entry) Option {
	return func(p *Panel) {
		p.logger = logger
	}
}

// New locates the panel's elements, wires validation and cancel handling,
// and leaves the panel closed
func New(doc *dom.Document, opts ...Option) (*Panel, error) {
	p := &Panel{
		labels: models.DefaultLabels(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	p.logger = p.logger.WithField("component", "composition")

	var err error
	if p.root, err = doc.Locate(RootID); err != nil {
		return nil, fmt.Errorf("composition panel: %w", err)
	}
	if p.heading, err = doc.LocateText(HeadingSelector); err != nil {
		return nil, fmt.Errorf("composition panel heading: %w", err)
	}
	if p.titleField, err = doc.LocateField(TitleFieldID); err != nil {
		return nil, fmt.Errorf("composition panel title: %w", err)
	}
	if p.contentField, err = doc.LocateField(ContentFieldID); err != nil {
		return nil, fmt.Errorf("composition panel content: %w", err)
	}
	if p.cancelButton, err = doc.LocateButton(CancelButtonID); err != nil {
		return nil, fmt.Errorf("composition panel cancel: %w", err)
	}
	if p.submitButton, err = doc.LocateButton(SubmitButtonID); err != nil {
		return nil, fmt.Errorf("composition panel submit: %w", err)
	}

	p.titleField.OnChange(func(string) { p.validate() })
	p.contentField.OnChange(func(string) { p.validate() })
	p.cancelButton.OnClick(p.Cancel)

	p.close()
	return p, nil
}

// OnCancel sets the callback run after the user cancels a session
func (p *Panel) OnCancel(fn func()) {
	p.onCancel = fn
}

// QueryNew opens an add session with empty fields
func (p *Panel) QueryNew(onSubmit SubmitFunc) {
	p.close()

	p.heading.SetText(p.labels.AddHeading)
	p.submitButton.SetLabel(p.labels.AddButton)

	p.open(&session{mode: ModeAdd, onSubmit: onSubmit})
}

// QueryEdit opens an edit session pre-filled from an existing note
func (p *Panel) QueryEdit(existing *models.Note, onSubmit SubmitFunc) {
	p.close()

	p.heading.SetText(p.labels.EditHeading)
	p.submitButton.SetLabel(p.labels.EditButton)
	p.titleField.SetValue(existing.Title)
	p.contentField.SetValue(existing.Content)

	p.open(&session{mode: ModeEdit, target: existing, onSubmit: onSubmit})
}

// Cancel closes an open session without submitting and runs the cancel
// callback. It does nothing while the panel is closed.
func (p *Panel) Cancel() {
	if p.session == nil {
		return
	}
	p.logger.WithField("mode", p.session.mode).Debug("composition cancelled")
	p.close()

	if p.onCancel != nil {
		p.onCancel()
	}
}

// State returns the current state
func (p *Panel) State() State {
	if p.session == nil {
		return StateClosed
	}
	if p.session.mode == ModeEdit {
		return StateOpenEdit
	}
	return StateOpenAdd
}

// IsOpen reports whether a session is open
func (p *Panel) IsOpen() bool {
	return p.session != nil
}

// Mode returns the open session's mode
func (p *Panel) Mode() (Mode, bool) {
	if p.session == nil {
		return 0, false
	}
	return p.session.mode, true
}

// Target returns the note being edited, or nil
func (p *Panel) Target() *models.Note {
	if p.session == nil {
		return nil
	}
	return p.session.target
}

// IsHidden reports whether the panel element is hidden
func (p *Panel) IsHidden() bool {
	return p.root.IsHidden()
}

// CanSubmit reports whether the submit button is enabled
func (p *Panel) CanSubmit() bool {
	return !p.submitButton.IsDisabled()
}

// open arms the submit handler for the new session and shows the panel.
// The previous session has already been closed, so its handler is disarmed.
func (p *Panel) open(s *session) {
	p.session = s
	p.validate()

	s.submit = p.submitButton.OnClick(func() { p.submit(s) }, dom.Once())
	p.root.Show()

	p.logger.WithField("mode", s.mode).Debug("composition opened")
}

func (p *Panel) submit(s *session) {
	if p.session != s {
		return
	}

	draft := models.Note{
		Title:     p.titleField.Value(),
		Content:   p.contentField.Value(),
		CreatedAt: p.clock(),
	}
	p.close()

	p.logger.WithFields(logrus.Fields{
		"mode":  s.mode,
		"title": draft.Title,
	}).Debug("composition submitted")

	if s.onSubmit != nil {
		s.onSubmit(draft)
	}
}

// close disarms the session's submit handler, then resets the panel
func (p *Panel) close() {
	if p.session != nil {
		p.submitButton.OffClick(p.session.submit)
		p.session = nil
	}

	p.root.Hide()
	p.titleField.Clear()
	p.contentField.Clear()
	p.submitButton.Disable()
}

// validate enables submit iff a session is open and both fields are filled
func (p *Panel) validate() {
	valid := p.session != nil &&
		p.titleField.Value() != "" &&
		p.contentField.Value() != ""
	p.submitButton.SetEnabled(valid)
}
