package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/quicknotes/pkg/dom"
)

// fieldEditor edits the focused document field. Single-line inputs use a
// textinput, textareas use a textarea. Every change is fed back to the field
// as an input event.
type fieldEditor struct {
	field     *dom.Field
	multiline bool
	input     textinput.Model
	area      textarea.Model
	width     int
}

func newFieldEditor() *fieldEditor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Width = 50

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(50)
	ta.SetHeight(4)

	return &fieldEditor{input: ti, area: ta}
}

// bind attaches the editor to a field and focuses it
func (e *fieldEditor) bind(field *dom.Field) tea.Cmd {
	e.field = field
	e.multiline = field.Tag() == "textarea"

	placeholder, _ := field.Attr("placeholder")
	if e.multiline {
		e.input.Blur()
		e.area.Placeholder = placeholder
		e.area.SetValue(field.Value())
		return e.area.Focus()
	}
	e.area.Blur()
	e.input.Placeholder = placeholder
	e.input.SetValue(field.Value())
	e.input.CursorEnd()
	return e.input.Focus()
}

// unbind detaches the editor
func (e *fieldEditor) unbind() {
	e.field = nil
	e.input.Blur()
	e.area.Blur()
}

// bound returns the edited field, or nil
func (e *fieldEditor) bound() *dom.Field {
	return e.field
}

// isBoundTo reports whether the editor edits the element h
func (e *fieldEditor) isBoundTo(h *dom.Handle) bool {
	return e.field != nil && e.field.Same(h)
}

func (e *fieldEditor) value() string {
	if e.multiline {
		return e.area.Value()
	}
	return e.input.Value()
}

// sync pulls a value changed by the document (a cleared panel) into the editor
func (e *fieldEditor) sync() {
	if e.field == nil || e.field.Value() == e.value() {
		return
	}
	if e.multiline {
		e.area.SetValue(e.field.Value())
	} else {
		e.input.SetValue(e.field.Value())
	}
}

// SetWidth sets the editing width
func (e *fieldEditor) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	e.width = width
	e.input.Width = width
	e.area.SetWidth(width)
}

// Update forwards a message to the active editor and dispatches an input
// event on the field when its value changed
func (e *fieldEditor) Update(msg tea.Msg) (tea.Cmd, error) {
	if e.field == nil {
		return nil, nil
	}
	e.sync()

	var cmd tea.Cmd
	if e.multiline {
		e.area, cmd = e.area.Update(msg)
	} else {
		e.input, cmd = e.input.Update(msg)
	}

	if value := e.value(); value != e.field.Value() {
		if err := e.field.Input(value); err != nil {
			return cmd, err
		}
	}
	return cmd, nil
}

// View renders the active editor
func (e *fieldEditor) View() string {
	if e.multiline {
		return e.area.View()
	}
	return e.input.View()
}
