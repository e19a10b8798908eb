// Package template instantiates markup templates: it substitutes {name}
// placeholders with property values and binds data-action slots to callbacks.
package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pluqqy/quicknotes/pkg/dom"
)

// ActionAttr marks an action slot inside template markup
const ActionAttr = "data-action"

// Template structure errors
var (
	ErrTemplateNotFound  = errors.New("template source not found")
	ErrNotATemplate      = errors.New("element is not a template")
	ErrEmptyTemplate     = errors.New("template produced no element")
	ErrMissingActionSlot = errors.New("action slot missing in template")
)

// MissingActionSlotError names the action that has no slot in the template
type MissingActionSlotError struct {
	Name string
}

func (e *MissingActionSlotError) Error() string {
	return fmt.Sprintf("action %q: %v", e.Name, ErrMissingActionSlot)
}

func (e *MissingActionSlotError) Unwrap() error {
	return ErrMissingActionSlot
}

// Properties maps placeholder names to the text substituted for them
type Properties map[string]string

// Actions maps action slot names to click callbacks
type Actions map[string]func()

var placeholderRegex = regexp.MustCompile(`\{(.*?)\}`)

// Template is a parsed template. The source markup is read once at
// construction and never changes afterwards.
type Template struct {
	doc      *dom.Document
	selector string
	markup   string
}

// Option configures a Template at construction
type Option func(*options)

type options struct {
	required []string
}

// RequireActions fails construction unless every named action slot is
// present in the template markup.
func RequireActions(names ...string) Option {
	return func(o *options) {
		o.required = append(o.required, names...)
	}
}

// New locates the <template> element addressed by selector and caches its markup
func New(doc *dom.Document, selector string, opts ...Option) (*Template, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	source, err := doc.Locate(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	}
	if source.Tag() != "template" {
		return nil, fmt.Errorf("element of query %s is <%s>: %w", selector, source.Tag(), ErrNotATemplate)
	}

	t := &Template{
		doc:      doc,
		selector: selector,
		markup:   source.InnerHTML(),
	}

	for _, name := range o.required {
		if !t.hasActionSlot(name) {
			return nil, fmt.Errorf("template %s: %w", selector, &MissingActionSlotError{Name: name})
		}
	}

	return t, nil
}

// Markup returns the cached template source
func (t *Template) Markup() string {
	return t.markup
}

// Placeholders returns the distinct placeholder names in order of first use
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderRegex.FindAllStringSubmatch(t.markup, -1) {
		name := strings.TrimSpace(match[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Substitute replaces every {name} placeholder with its property value in a
// single pass. Names without a value become the empty string.
func (t *Template) Substitute(properties Properties) string {
	return placeholderRegex.ReplaceAllStringFunc(t.markup, func(token string) string {
		name := strings.TrimSpace(token[1 : len(token)-1])
		return properties[name]
	})
}

// Build substitutes the properties, materializes the first element of the
// result and binds each action to the click event of its slot. A missing slot
// fails the whole build and leaves none of the actions bound.
func (t *Template) Build(properties Properties, actions Actions) (*Instance, error) {
	text := t.Substitute(properties)

	elements, err := t.doc.ParseElements(text)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.selector, err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("template %s: %w", t.selector, ErrEmptyTemplate)
	}
	root := elements[0]

	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	subs := make([]*dom.Subscription, 0, len(names))
	for _, name := range names {
		slot, err := root.Find(actionSelector(name))
		if err != nil {
			for _, s := range subs {
				s.Cancel()
			}
			return nil, fmt.Errorf("template %s: %w", t.selector, &MissingActionSlotError{Name: name})
		}
		subs = append(subs, slot.OnClick(actions[name]))
	}

	return &Instance{root: root, text: text}, nil
}

func (t *Template) hasActionSlot(name string) bool {
	elements, err := t.doc.ParseElements(t.markup)
	if err != nil || len(elements) == 0 {
		return false
	}
	_, err = elements[0].Find(actionSelector(name))
	return err == nil
}

func actionSelector(name string) string {
	return fmt.Sprintf("[%s=%q]", ActionAttr, name)
}

// Instance is the subtree produced by one Build call. It belongs to the caller.
type Instance struct {
	root *dom.Handle
	text string
}

// Root returns the instance's root element
func (i *Instance) Root() *dom.Handle {
	return i.root
}

// Text returns the substituted markup the instance was parsed from
func (i *Instance) Text() string {
	return i.text
}
