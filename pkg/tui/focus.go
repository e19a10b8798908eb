package tui

import (
	"github.com/pluqqy/quicknotes/pkg/dom"
)

// focusableSelector matches the elements keyboard focus can land on
const focusableSelector = "button, input, textarea"

// focusRing tracks the visible, enabled controls of the document in
// document order and which of them has focus
type focusRing struct {
	doc     *dom.Document
	items   []*dom.Handle
	current *dom.Handle
	index   int
}

func newFocusRing(doc *dom.Document) *focusRing {
	r := &focusRing{doc: doc, index: -1}
	r.refresh()
	return r
}

// refresh re-collects the controls after the document changed. When the
// focused control is gone, focus moves to the control now at its position.
func (r *focusRing) refresh() {
	r.items = r.items[:0]
	if all, err := r.doc.Root().FindAll(focusableSelector); err == nil {
		for _, h := range all {
			if h.Visible() && !h.IsDisabled() {
				r.items = append(r.items, h)
			}
		}
	}

	if r.current == nil {
		return
	}
	for i, h := range r.items {
		if h.Same(r.current) {
			r.index = i
			return
		}
	}

	if len(r.items) == 0 {
		r.current, r.index = nil, -1
		return
	}
	if r.index >= len(r.items) {
		r.index = len(r.items) - 1
	}
	r.current = r.items[r.index]
}

// next moves focus forward, wrapping around
func (r *focusRing) next() {
	r.step(1)
}

// prev moves focus backward, wrapping around
func (r *focusRing) prev() {
	r.step(-1)
}

func (r *focusRing) step(delta int) {
	if len(r.items) == 0 {
		return
	}
	if r.current == nil {
		if delta > 0 {
			r.index = 0
		} else {
			r.index = len(r.items) - 1
		}
	} else {
		r.index = (r.index + delta + len(r.items)) % len(r.items)
	}
	r.current = r.items[r.index]
}

// focus moves focus to h. It reports false when h is not focusable.
func (r *focusRing) focus(h *dom.Handle) bool {
	for i, item := range r.items {
		if item.Same(h) {
			r.index = i
			r.current = item
			return true
		}
	}
	return false
}

// focusSelector focuses the element matching selector, if focusable
func (r *focusRing) focusSelector(selector string) bool {
	h, err := r.doc.Locate(selector)
	if err != nil {
		return false
	}
	return r.focus(h)
}

// blur drops focus
func (r *focusRing) blur() {
	r.current = nil
	r.index = -1
}

// focused returns the focused control, or nil
func (r *focusRing) focused() *dom.Handle {
	return r.current
}

// size returns the number of focusable controls
func (r *focusRing) size() int {
	return len(r.items)
}
