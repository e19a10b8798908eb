package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/quicknotes/pkg/dom"
)

// block is a rendered piece of the document. focusLine is the line the
// focused control starts on, or -1.
type block struct {
	text      string
	focusLine int
}

func (b block) height() int {
	if b.text == "" {
		return 0
	}
	return lipgloss.Height(b.text)
}

// inline elements are laid out side by side
var inlineTags = map[string]bool{
	"button": true,
	"time":   true,
	"span":   true,
	"a":      true,
}

// renderer draws the visible part of a document as terminal text
type renderer struct {
	theme   Theme
	focused *dom.Handle
	editor  *fieldEditor
}

// Render draws the document body at the given width. It returns the text and
// the line the focused control starts on, or -1.
func (r *renderer) Render(doc *dom.Document, width int) (string, int) {
	body, err := doc.Locate("body")
	if err != nil {
		return "", -1
	}
	b := r.children(body, width)
	return b.text, b.focusLine
}

func (r *renderer) element(h *dom.Handle, width int) block {
	if h.IsHidden() {
		return block{focusLine: -1}
	}

	switch h.Tag() {
	case "template", "head", "script", "style":
		return block{focusLine: -1}
	case "h1":
		return r.text(r.theme.Title, h.Text(), width)
	case "h2":
		return r.text(r.theme.Heading, h.Text(), width)
	case "h3", "h4":
		return r.text(r.theme.NoteTitle, h.Text(), width)
	case "p":
		return r.text(r.theme.Text, h.Text(), width)
	case "time", "span", "a":
		return block{text: r.theme.Muted.Render(strings.TrimSpace(h.Text())), focusLine: -1}
	case "button":
		return r.button(h)
	case "input", "textarea":
		return r.field(h, width)
	case "article":
		return r.boxed(r.theme.Card, h, width)
	case "section":
		if id, _ := h.Attr("id"); id == "note-composition-panel" {
			return r.boxed(r.theme.Panel, h, width)
		}
		return r.children(h, width)
	default:
		return r.children(h, width)
	}
}

// children stacks block children vertically and runs of inline children
// horizontally
func (r *renderer) children(h *dom.Handle, width int) block {
	var (
		lines  []string
		height int
		focus  = -1
		row    []block
	)

	flushRow := func() {
		if len(row) == 0 {
			return
		}
		parts := make([]string, 0, len(row)*2)
		for i, b := range row {
			if i > 0 {
				parts = append(parts, " ")
			}
			parts = append(parts, b.text)
			if b.focusLine >= 0 && focus < 0 {
				focus = height + b.focusLine
			}
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		lines = append(lines, joined)
		height += lipgloss.Height(joined)
		row = row[:0]
	}

	for _, child := range h.Children() {
		b := r.element(child, width)
		if b.text == "" {
			continue
		}
		if inlineTags[child.Tag()] {
			row = append(row, b)
			continue
		}
		flushRow()
		if b.focusLine >= 0 && focus < 0 {
			focus = height + b.focusLine
		}
		lines = append(lines, b.text)
		height += b.height()
	}
	flushRow()

	return block{text: strings.Join(lines, "\n"), focusLine: focus}
}

func (r *renderer) text(style lipgloss.Style, text string, width int) block {
	text = strings.TrimSpace(text)
	if text == "" {
		return block{focusLine: -1}
	}
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	return block{text: style.Render(text), focusLine: -1}
}

func (r *renderer) button(h *dom.Handle) block {
	label := strings.TrimSpace(h.Text())
	style := r.theme.Button
	focused := h.Same(r.focused)
	switch {
	case h.IsDisabled():
		style = r.theme.DisabledButton
	case focused:
		style = r.theme.FocusedButton
	}

	b := block{text: style.Render("[" + label + "]"), focusLine: -1}
	if focused {
		b.focusLine = 0
	}
	return b
}

func (r *renderer) field(h *dom.Handle, width int) block {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	if h.Same(r.focused) && r.editor != nil && r.editor.isBoundTo(h) {
		return block{text: r.theme.FocusedField.Width(inner).Render(r.editor.View()), focusLine: 0}
	}

	value, _ := h.Value()
	content := value
	style := r.theme.Text
	if content == "" {
		content, _ = h.Attr("placeholder")
		style = r.theme.Muted
	}
	if h.Tag() == "input" {
		content = strings.ReplaceAll(content, "\n", " ")
	}
	text := r.theme.Field.Width(inner).Render(style.Render(wordwrap.String(content, inner-2)))

	b := block{text: text, focusLine: -1}
	if h.Same(r.focused) {
		b.focusLine = 0
	}
	return b
}

// boxed renders the children inside a bordered style
func (r *renderer) boxed(style lipgloss.Style, h *dom.Handle, width int) block {
	inner := width - style.GetHorizontalFrameSize()
	content := r.children(h, inner)
	if content.text == "" {
		return block{focusLine: -1}
	}

	b := block{text: style.Width(width - style.GetHorizontalBorderSize()).Render(content.text), focusLine: -1}
	if content.focusLine >= 0 {
		b.focusLine = content.focusLine + style.GetBorderTopSize() + style.GetPaddingTop()
	}
	return b
}
