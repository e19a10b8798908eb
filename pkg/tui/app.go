// Package tui hosts the note widget in a terminal. It draws the document,
// moves keyboard focus between its controls and turns key presses into click
// and input events.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/pluqqy/quicknotes/internal/logging"
	"github.com/pluqqy/quicknotes/pkg/composition"
	"github.com/pluqqy/quicknotes/pkg/dom"
	"github.com/pluqqy/quicknotes/pkg/widget"
)

// statusHeight is the number of lines below the viewport
const statusHeight = 2

// App is the bubbletea model driving a widget
type App struct {
	widget   *widget.App
	doc      *dom.Document
	theme    Theme
	keys     KeyMap
	focus    *focusRing
	editor   *fieldEditor
	render   *renderer
	viewport viewport.Model
	confirm  *ConfirmationModel
	logger   *logrus.Entry

	width      int
	height     int
	fixedWidth int
	panelOpen  bool
	err        error
}

// Option configures an App
type Option func(*App)

// WithTheme sets the styles
func WithTheme(theme Theme) Option {
	return func(a *App) {
		a.theme = theme
	}
}

// WithKeyMap replaces the key bindings
func WithKeyMap(keys KeyMap) Option {
	return func(a *App) {
		a.keys = keys
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Entry) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithWidth fixes the content width instead of following the terminal
func WithWidth(width int) Option {
	return func(a *App) {
		a.fixedWidth = width
	}
}

// NewApp creates the terminal host for an initialized widget
func NewApp(w *widget.App, opts ...Option) *App {
	a := &App{
		widget:   w,
		doc:      w.Document(),
		theme:    DefaultTheme(),
		keys:     DefaultKeyMap(),
		editor:   newFieldEditor(),
		viewport: viewport.New(80, 20),
		confirm:  NewConfirmation(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	a.logger = a.logger.WithField("component", "tui")

	a.focus = newFocusRing(a.doc)
	a.render = &renderer{theme: a.theme, editor: a.editor}
	a.panelOpen = w.Panel().IsOpen()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("quicknotes")
}

// Err returns the error that stopped the program, if any
func (a *App) Err() error {
	return a.err
}

// Focused returns the focused control, or nil
func (a *App) Focused() *dom.Handle {
	return a.focus.focused()
}

// Confirming reports whether the quit confirmation is shown
func (a *App) Confirming() bool {
	return a.confirm.Active()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-statusHeight, 1)
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		cmd := a.handleKey(msg)
		if quit := a.afterEvent(); quit != nil {
			return a, quit
		}
		return a, cmd
	}

	var cmd tea.Cmd
	if a.editor.bound() != nil {
		cmd, _ = a.editor.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a.requestQuit()
	case key.Matches(msg, a.keys.Next):
		a.focus.next()
		return a.bindEditor()
	case key.Matches(msg, a.keys.Prev):
		a.focus.prev()
		return a.bindEditor()
	case key.Matches(msg, a.keys.Cancel):
		if a.widget.Panel().IsOpen() {
			a.widget.Panel().Cancel()
			return nil
		}
		a.focus.blur()
		return a.bindEditor()
	case key.Matches(msg, a.keys.PageUp):
		a.viewport.SetYOffset(a.viewport.YOffset - a.viewport.Height/2)
		return nil
	case key.Matches(msg, a.keys.PageDown):
		a.viewport.SetYOffset(a.viewport.YOffset + a.viewport.Height/2)
		return nil
	}

	if field := a.editor.bound(); field != nil {
		if field.Tag() == "input" && key.Matches(msg, a.keys.LeaveField) {
			a.focus.next()
			return a.bindEditor()
		}
		cmd, err := a.editor.Update(msg)
		if err != nil {
			a.logger.WithError(err).Error("failed to edit field")
		}
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Click):
		if h := a.focus.focused(); h != nil {
			h.Click()
		}
	case key.Matches(msg, a.keys.Search):
		a.focus.refresh()
		a.focus.focusSelector(widget.SearchBarID)
		return a.bindEditor()
	case key.Matches(msg, a.keys.New):
		if !a.widget.Panel().IsOpen() {
			a.widget.AddNewNote()
		}
	case key.Matches(msg, a.keys.Quit):
		return a.requestQuit()
	}
	return nil
}

// requestQuit quits, asking first while a note is being composed
func (a *App) requestQuit() tea.Cmd {
	if !a.widget.Panel().IsOpen() {
		return tea.Quit
	}
	a.confirm.ShowInline("Discard the note being composed and quit?", true,
		func() tea.Cmd { return tea.Quit },
		nil,
	)
	return nil
}

// afterEvent brings focus and the view in line with the document after an
// event ran. It returns tea.Quit when the widget recorded an error.
func (a *App) afterEvent() tea.Cmd {
	if err := a.widget.Err(); err != nil {
		a.err = err
		a.logger.WithError(err).Error("stopping on widget error")
		return tea.Quit
	}

	a.focus.refresh()
	open := a.widget.Panel().IsOpen()
	switch {
	case open && !a.panelOpen:
		a.focus.focusSelector(composition.TitleFieldID)
	case !open && a.panelOpen:
		if !a.focus.focusSelector(widget.AddNoteID) {
			a.focus.blur()
		}
	}
	a.panelOpen = open

	a.bindEditor()
	a.refresh()
	return nil
}

// bindEditor attaches the field editor to the focused control when it is a
// field, and detaches it otherwise
func (a *App) bindEditor() tea.Cmd {
	h := a.focus.focused()
	if h == nil || !h.Can(dom.CanValue) {
		a.editor.unbind()
		return nil
	}
	if a.editor.isBoundTo(h) {
		a.editor.sync()
		return nil
	}
	field, err := dom.AsField(h)
	if err != nil {
		a.editor.unbind()
		return nil
	}
	return a.editor.bind(field)
}

func (a *App) contentWidth() int {
	width := a.width
	if a.fixedWidth > 0 && (width == 0 || a.fixedWidth < width) {
		width = a.fixedWidth
	}
	if width <= 0 {
		width = 80
	}
	return width - 2
}

// refresh re-renders the document into the viewport and scrolls the focused
// control into view
func (a *App) refresh() {
	width := a.contentWidth()
	a.editor.SetWidth(width - 8)
	a.render.focused = a.focus.focused()

	content, focusLine := a.render.Render(a.doc, width)
	a.viewport.SetContent(lipgloss.NewStyle().PaddingLeft(1).Render(content))

	if focusLine < 0 {
		return
	}
	switch {
	case focusLine < a.viewport.YOffset:
		a.viewport.SetYOffset(focusLine)
	case focusLine >= a.viewport.YOffset+a.viewport.Height-2:
		a.viewport.SetYOffset(focusLine - a.viewport.Height + 3)
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	// The editor cursor blinks, so the focused field is redrawn every frame
	if a.editor.bound() != nil {
		a.refresh()
	}

	var status string
	switch {
	case a.err != nil:
		status = a.theme.Error.Render(a.err.Error())
	case a.confirm.Active():
		status = a.confirm.ViewWithWidth(a.width)
	default:
		status = a.theme.Status.Render(helpLine(a.keys.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.viewport.View(), "", status)
}
