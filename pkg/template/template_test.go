package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/quicknotes/pkg/dom"
)

const templatePage = `<!DOCTYPE html>
<html><body>
<template id="note"><article class="note"><h3>{title}</h3><p>{ content }</p><time>{createdAt}</time><button data-action="edit">Edit</button><button data-action="delete">Delete</button></article></template>
<template id="two-roots"><p>{first}</p><p>{second}</p></template>
<template id="empty">   </template>
<template id="no-actions"><p>{title}</p></template>
<div id="not-a-template"></div>
</body></html>`

func newTestDocument(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(templatePage)
	require.NoError(t, err)
	return doc
}

func newTestTemplate(t *testing.T, selector string, opts ...Option) *Template {
	t.Helper()
	tmpl, err := New(newTestDocument(t), selector, opts...)
	require.NoError(t, err)
	return tmpl
}

func TestNew(t *testing.T) {
	doc := newTestDocument(t)

	tests := []struct {
		name     string
		selector string
		opts     []Option
		wantErr  error
	}{
		{name: "template element", selector: "#note"},
		{name: "missing source", selector: "#missing", wantErr: ErrTemplateNotFound},
		{name: "wrong element kind", selector: "#not-a-template", wantErr: ErrNotATemplate},
		{name: "required actions present", selector: "#note", opts: []Option{RequireActions("edit", "delete")}},
		{name: "required action absent", selector: "#note", opts: []Option{RequireActions("edit", "copy")}, wantErr: ErrMissingActionSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := New(doc, tt.selector, tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tmpl)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tmpl.Markup())
		})
	}

	t.Run("missing source keeps the addressing error", func(t *testing.T) {
		_, err := New(doc, "#missing")
		assert.ErrorIs(t, err, dom.ErrNotFound)
	})
}

func TestPlaceholders(t *testing.T) {
	tmpl := newTestTemplate(t, "#note")
	assert.Equal(t, []string{"title", "content", "createdAt"}, tmpl.Placeholders())
}

func TestSubstitutionTotality(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
	}{
		{name: "plain values", props: Properties{"title": "Groceries", "content": "milk", "createdAt": "may 14"}},
		{name: "empty values", props: Properties{"title": "", "content": "", "createdAt": ""}},
		{name: "extra values", props: Properties{"title": "a", "content": "b", "createdAt": "c", "unused": "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := newTestTemplate(t, "#note")
			inst, err := tmpl.Build(tt.props, nil)
			require.NoError(t, err)

			assert.False(t, placeholderRegex.MatchString(inst.Text()), "no placeholder token survives substitution")
			assert.False(t, placeholderRegex.MatchString(inst.Root().OuterHTML()))
		})
	}
}

func TestSubstituteTrimsNames(t *testing.T) {
	tmpl := newTestTemplate(t, "#note")
	inst, err := tmpl.Build(Properties{"title": "T", "content": "C", "createdAt": "D"}, nil)
	require.NoError(t, err)

	p, err := inst.Root().Find("p")
	require.NoError(t, err)
	assert.Equal(t, "C", p.Text(), "{ content } resolves to the content property")

	want := `<article class="note"><h3>T</h3><p>C</p><time>D</time><button data-action="edit">Edit</button><button data-action="delete">Delete</button></article>`
	if diff := cmp.Diff(want, inst.Root().OuterHTML()); diff != "" {
		t.Errorf("built markup mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingPropertyLeniency(t *testing.T) {
	tmpl := newTestTemplate(t, "#note")

	inst, err := tmpl.Build(Properties{}, nil)
	require.NoError(t, err)

	h3, err := inst.Root().Find("h3")
	require.NoError(t, err)
	p, err := inst.Root().Find("p")
	require.NoError(t, err)
	assert.Equal(t, "", h3.Text())
	assert.Equal(t, "", p.Text())
	assert.NotContains(t, inst.Text(), "{")
}

func TestSingleRootEnforcement(t *testing.T) {
	t.Run("first of two roots", func(t *testing.T) {
		tmpl := newTestTemplate(t, "#two-roots")
		inst, err := tmpl.Build(Properties{"first": "one", "second": "two"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "p", inst.Root().Tag())
		assert.Equal(t, "one", inst.Root().Text())
		assert.NotContains(t, inst.Root().OuterHTML(), "two")
	})

	t.Run("zero roots", func(t *testing.T) {
		tmpl := newTestTemplate(t, "#empty")
		inst, err := tmpl.Build(Properties{}, nil)
		assert.ErrorIs(t, err, ErrEmptyTemplate)
		assert.Nil(t, inst)
	})
}

func TestActionBinding(t *testing.T) {
	tmpl := newTestTemplate(t, "#note")

	var calls []string
	inst, err := tmpl.Build(Properties{"title": "t"}, Actions{
		"edit":   func() { calls = append(calls, "edit") },
		"delete": func() { calls = append(calls, "delete") },
	})
	require.NoError(t, err)

	edit, err := inst.Root().Find(`[data-action="edit"]`)
	require.NoError(t, err)
	del, err := inst.Root().Find(`[data-action="delete"]`)
	require.NoError(t, err)

	edit.Click()
	del.Click()
	edit.Click()
	assert.Equal(t, []string{"edit", "delete", "edit"}, calls)
}

func TestActionBindingExactness(t *testing.T) {
	tmpl := newTestTemplate(t, "#no-actions")

	called := false
	inst, err := tmpl.Build(Properties{"title": "t"}, Actions{
		"delete": func() { called = true },
	})
	require.Error(t, err)
	assert.Nil(t, inst)

	var slotErr *MissingActionSlotError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "delete", slotErr.Name)
	assert.True(t, errors.Is(err, ErrMissingActionSlot))
	assert.False(t, called)
}

func TestBuildsAreIndependent(t *testing.T) {
	tmpl := newTestTemplate(t, "#note")

	var edited []string
	build := func(title string) *Instance {
		inst, err := tmpl.Build(Properties{"title": title}, Actions{
			"edit": func() { edited = append(edited, title) },
		})
		require.NoError(t, err)
		return inst
	}

	first := build("first")
	second := build("second")
	assert.False(t, first.Root().Same(second.Root()))

	h3, err := first.Root().Find("h3")
	require.NoError(t, err)
	require.NoError(t, h3.SetText("changed"))
	secondH3, err := second.Root().Find("h3")
	require.NoError(t, err)
	assert.Equal(t, "second", secondH3.Text())

	button, err := second.Root().Find(`[data-action="edit"]`)
	require.NoError(t, err)
	button.Click()
	assert.Equal(t, []string{"second"}, edited)

	again, err := tmpl.Build(Properties{"title": "first"}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Text(), again.Text(), "same inputs produce the same markup")
	assert.True(t, strings.HasPrefix(tmpl.Markup(), "<article"), "template source is unchanged by builds")
}
