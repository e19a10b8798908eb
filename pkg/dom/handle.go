package dom

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

const hiddenClass = "hidden"

// Capability is a set of operations an element kind supports
type Capability uint8

const (
	CanToggle Capability = 1 << iota // show / hide
	CanEnable                        // enable / disable
	CanValue                         // get / set value
	CanText                          // replace text content
)

// Handle addresses a single element node
type Handle struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying node
func (h *Handle) Node() *html.Node {
	return h.node
}

// Document returns the document the handle belongs to
func (h *Handle) Document() *Document {
	return h.doc
}

// Tag returns the lower-case element name
func (h *Handle) Tag() string {
	if h.node.Type != html.ElementNode {
		return ""
	}
	return h.node.Data
}

// Same reports whether both handles address the same node
func (h *Handle) Same(other *Handle) bool {
	return other != nil && h.node == other.node
}

// Capabilities returns what the element kind supports
func (h *Handle) Capabilities() Capability {
	if h.node.Type != html.ElementNode {
		return 0
	}
	caps := CanToggle
	switch h.node.Data {
	case "input":
		caps |= CanEnable | CanValue
	case "textarea":
		caps |= CanEnable | CanValue | CanText
	case "button", "select", "fieldset":
		caps |= CanEnable | CanText
	case "br", "hr", "img", "meta", "link", "template":
	default:
		caps |= CanText
	}
	return caps
}

// Can reports whether the element supports every capability in c
func (h *Handle) Can(c Capability) bool {
	return h.Capabilities()&c == c
}

// Find resolves the first element in the handle's subtree (the handle's own
// element included) that matches the selector.
func (h *Handle) Find(selector string) (*Handle, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &AddressingError{Selector: selector, Err: err}
	}
	n := sel.MatchFirst(h.node)
	if n == nil {
		return nil, &AddressingError{Selector: selector, Err: ErrNotFound}
	}
	return h.doc.handle(n), nil
}

// FindAll resolves every element in the subtree that matches the selector
func (h *Handle) FindAll(selector string) ([]*Handle, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &AddressingError{Selector: selector, Err: err}
	}
	var handles []*Handle
	for _, n := range sel.MatchAll(h.node) {
		handles = append(handles, h.doc.handle(n))
	}
	return handles, nil
}

// Attr returns an attribute value and whether it is present
func (h *Handle) Attr(name string) (string, bool) {
	for _, a := range h.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func (h *Handle) SetAttr(name, value string) {
	for i, a := range h.node.Attr {
		if a.Namespace == "" && a.Key == name {
			h.node.Attr[i].Val = value
			return
		}
	}
	h.node.Attr = append(h.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes an attribute if present
func (h *Handle) RemoveAttr(name string) {
	attrs := h.node.Attr[:0]
	for _, a := range h.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	h.node.Attr = attrs
}

// HasClass reports whether the class attribute contains the class
func (h *Handle) HasClass(class string) bool {
	value, _ := h.Attr("class")
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a class unless already present
func (h *Handle) AddClass(class string) {
	if h.HasClass(class) {
		return
	}
	value, _ := h.Attr("class")
	h.SetAttr("class", strings.TrimSpace(value+" "+class))
}

// RemoveClass removes every occurrence of a class
func (h *Handle) RemoveClass(class string) {
	value, ok := h.Attr("class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(value) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		h.RemoveAttr("class")
		return
	}
	h.SetAttr("class", strings.Join(kept, " "))
}

// Show removes the hidden marker
func (h *Handle) Show() {
	h.RemoveClass(hiddenClass)
}

// Hide adds the hidden marker
func (h *Handle) Hide() {
	h.AddClass(hiddenClass)
}

// IsHidden reports whether the element itself carries the hidden marker
func (h *Handle) IsHidden() bool {
	return h.HasClass(hiddenClass)
}

// Visible reports whether neither the element nor any ancestor is hidden.
// Content of a <template> is never visible.
func (h *Handle) Visible() bool {
	for n := h.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data == "template" {
			return false
		}
		if h.doc.handle(n).IsHidden() {
			return false
		}
	}
	return true
}

// IsDisabled reports whether the disabled attribute is present
func (h *Handle) IsDisabled() bool {
	_, ok := h.Attr("disabled")
	return ok
}

// SetEnabled toggles the disabled attribute
func (h *Handle) SetEnabled(enabled bool) error {
	if !h.Can(CanEnable) {
		return &CapabilityError{Tag: h.Tag(), Operation: "enable"}
	}
	if enabled {
		h.RemoveAttr("disabled")
	} else {
		h.SetAttr("disabled", "")
	}
	return nil
}

// Enable removes the disabled attribute
func (h *Handle) Enable() error {
	return h.SetEnabled(true)
}

// Disable sets the disabled attribute
func (h *Handle) Disable() error {
	return h.SetEnabled(false)
}

// Value returns the value of an input or the text of a textarea
func (h *Handle) Value() (string, error) {
	if !h.Can(CanValue) {
		return "", &CapabilityError{Tag: h.Tag(), Operation: "get value"}
	}
	if h.node.Data == "textarea" {
		return h.Text(), nil
	}
	value, _ := h.Attr("value")
	return value, nil
}

// SetValue replaces the value of an input or textarea
func (h *Handle) SetValue(value string) error {
	if !h.Can(CanValue) {
		return &CapabilityError{Tag: h.Tag(), Operation: "set value"}
	}
	if h.node.Data == "textarea" {
		h.replaceText(value)
		return nil
	}
	h.SetAttr("value", value)
	return nil
}

// Clear empties the value of an input or textarea
func (h *Handle) Clear() error {
	return h.SetValue("")
}

// Text returns the concatenated text of the subtree
func (h *Handle) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(h.node)
	return sb.String()
}

// SetText replaces the element's children with a single text node
func (h *Handle) SetText(text string) error {
	if !h.Can(CanText) {
		return &CapabilityError{Tag: h.Tag(), Operation: "set text"}
	}
	h.replaceText(text)
	return nil
}

func (h *Handle) replaceText(text string) {
	h.Empty()
	if text != "" {
		h.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Children returns the element children in order
func (h *Handle) Children() []*Handle {
	var children []*Handle
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, h.doc.handle(c))
		}
	}
	return children
}

// Append attaches a detached element as the last child. An element that is
// still attached elsewhere is moved.
func (h *Handle) Append(child *Handle) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	h.node.AppendChild(child.node)
}

// Empty removes every child. Listeners registered inside the removed
// subtrees are dropped with them.
func (h *Handle) Empty() {
	for c := h.node.FirstChild; c != nil; {
		next := c.NextSibling
		h.node.RemoveChild(c)
		h.doc.listeners.forget(c)
		c = next
	}
}

// InnerHTML renders the element's children
func (h *Handle) InnerHTML() string {
	var buf bytes.Buffer
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// OuterHTML renders the element itself
func (h *Handle) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, h.node); err != nil {
		return ""
	}
	return buf.String()
}

// OnClick registers a click listener
func (h *Handle) OnClick(fn func(), opts ...ListenOption) *Subscription {
	return h.doc.listeners.add(h.node, EventClick, func(Event) { fn() }, opts)
}

// OffClick removes a click listener registered on this element. Removing a
// listener that is not registered here is a no-op.
func (h *Handle) OffClick(s *Subscription) {
	if s == nil || s.node != h.node || s.event != EventClick {
		return
	}
	s.Cancel()
}

// OnInput registers an input listener that receives the new value
func (h *Handle) OnInput(fn func(value string), opts ...ListenOption) *Subscription {
	return h.doc.listeners.add(h.node, EventInput, func(ev Event) { fn(ev.Value) }, opts)
}

// Listeners returns the number of live listeners for an event
func (h *Handle) Listeners(event EventType) int {
	return h.doc.listeners.count(h.node, event)
}

// Click dispatches a click. Disabled elements swallow the click, as a browser
// does. Returns whether the click was delivered.
func (h *Handle) Click() bool {
	if h.IsDisabled() {
		return false
	}
	h.doc.listeners.dispatch(h.node, Event{Type: EventClick, Target: h})
	return true
}

// Input replaces the value and dispatches an input event, the way a user
// typing into the field would.
func (h *Handle) Input(value string) error {
	if err := h.SetValue(value); err != nil {
		return err
	}
	h.doc.listeners.dispatch(h.node, Event{Type: EventInput, Target: h, Value: value})
	return nil
}
