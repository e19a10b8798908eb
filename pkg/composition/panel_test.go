package composition

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/quicknotes/pkg/dom"
	"github.com/pluqqy/quicknotes/pkg/layout"
	"github.com/pluqqy/quicknotes/pkg/models"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type panelFixture struct {
	panel   *Panel
	title   *dom.Field
	content *dom.Field
	submit  *dom.Button
	cancel  *dom.Button
	heading *dom.Handle
}

func newPanelFixture(t *testing.T, opts ...Option) *panelFixture {
	t.Helper()
	doc, err := layout.Load("")
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	panel, err := New(doc, opts...)
	require.NoError(t, err)

	f := &panelFixture{panel: panel}
	f.title, err = doc.LocateField(TitleFieldID)
	require.NoError(t, err)
	f.content, err = doc.LocateField(ContentFieldID)
	require.NoError(t, err)
	f.submit, err = doc.LocateButton(SubmitButtonID)
	require.NoError(t, err)
	f.cancel, err = doc.LocateButton(CancelButtonID)
	require.NoError(t, err)
	f.heading, err = doc.Locate(HeadingSelector)
	require.NoError(t, err)
	return f
}

func (f *panelFixture) fill(t *testing.T, title, content string) {
	t.Helper()
	require.NoError(t, f.title.Input(title))
	require.NoError(t, f.content.Input(content))
}

func TestNewStartsClosed(t *testing.T) {
	f := newPanelFixture(t)

	assert.Equal(t, StateClosed, f.panel.State())
	assert.True(t, f.panel.IsHidden())
	assert.False(t, f.panel.CanSubmit())
	assert.Equal(t, 0, f.submit.Listeners(dom.EventClick))
}

func TestNewFailsOnMissingElement(t *testing.T) {
	doc, err := dom.ParseString(strings.Replace(layout.Default(), `id="note-composition-panel-cancel"`, `id="elsewhere"`, 1))
	require.NoError(t, err)

	panel, err := New(doc)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	assert.Nil(t, panel)
}

func TestValidationGating(t *testing.T) {
	f := newPanelFixture(t)
	f.panel.QueryNew(func(models.Note) {})

	assert.False(t, f.panel.CanSubmit(), "both fields empty")

	require.NoError(t, f.content.Input("content"))
	assert.False(t, f.panel.CanSubmit(), "content only")

	require.NoError(t, f.title.Input("title"))
	assert.True(t, f.panel.CanSubmit(), "both fields set")

	require.NoError(t, f.title.Input(""))
	assert.False(t, f.panel.CanSubmit(), "title cleared")

	require.NoError(t, f.title.Input("title"))
	require.NoError(t, f.content.Input(""))
	assert.False(t, f.panel.CanSubmit(), "content cleared")
}

func TestValidationIgnoredWhileClosed(t *testing.T) {
	f := newPanelFixture(t)
	f.fill(t, "title", "content")
	assert.False(t, f.panel.CanSubmit())
}

func TestQueryNewSubmit(t *testing.T) {
	f := newPanelFixture(t)

	var drafts []models.Note
	f.panel.QueryNew(func(draft models.Note) { drafts = append(drafts, draft) })

	assert.Equal(t, StateOpenAdd, f.panel.State())
	assert.False(t, f.panel.IsHidden())
	assert.Equal(t, "Add new note", f.heading.Text())
	assert.Equal(t, "Add", f.submit.Text())

	f.fill(t, "Groceries", "milk, eggs")
	assert.True(t, f.submit.Click())

	require.Len(t, drafts, 1)
	assert.Equal(t, models.Note{Title: "Groceries", Content: "milk, eggs", CreatedAt: fixedNow}, drafts[0])

	assert.Equal(t, StateClosed, f.panel.State())
	assert.True(t, f.panel.IsHidden())
	assert.Equal(t, "", f.title.Value())
	assert.Equal(t, "", f.content.Value())
	assert.False(t, f.panel.CanSubmit())

	// A second physical click in the same session finds nothing armed
	f.submit.Enable()
	f.submit.Click()
	assert.Len(t, drafts, 1)
}

func TestQueryNewClearsFields(t *testing.T) {
	f := newPanelFixture(t)
	f.panel.QueryNew(func(models.Note) {})
	f.fill(t, "draft", "left over")

	f.panel.QueryNew(func(models.Note) {})
	assert.Equal(t, "", f.title.Value())
	assert.Equal(t, "", f.content.Value())
	assert.False(t, f.panel.CanSubmit())
}

func TestAtMostOneArmedSubmit(t *testing.T) {
	f := newPanelFixture(t)

	var first, second []models.Note
	f.panel.QueryNew(func(draft models.Note) { first = append(first, draft) })
	f.fill(t, "first", "first body")

	f.panel.QueryNew(func(draft models.Note) { second = append(second, draft) })
	assert.Equal(t, 1, f.submit.Listeners(dom.EventClick))
	f.fill(t, "second", "second body")

	f.submit.Click()

	assert.Empty(t, first)
	require.Len(t, second, 1)
	assert.Equal(t, "second", second[0].Title)
	assert.Equal(t, "second body", second[0].Content)
	assert.Equal(t, 0, f.submit.Listeners(dom.EventClick))
}

func TestEditReplacesAddSession(t *testing.T) {
	f := newPanelFixture(t)
	note := models.NewNote("A", "B", time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC))

	addCalls := 0
	var edits []models.Note
	f.panel.QueryNew(func(models.Note) { addCalls++ })
	f.panel.QueryEdit(note, func(draft models.Note) { edits = append(edits, draft) })

	assert.Equal(t, StateOpenEdit, f.panel.State())
	assert.Same(t, note, f.panel.Target())

	f.submit.Click()
	assert.Equal(t, 0, addCalls)
	assert.Len(t, edits, 1)
}

func TestEditScenario(t *testing.T) {
	f := newPanelFixture(t)
	note := models.NewNote("A", "B", time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC))

	var drafts []models.Note
	f.panel.QueryEdit(note, func(draft models.Note) {
		drafts = append(drafts, draft)
		note.Apply(draft)
	})

	assert.Equal(t, "A", f.title.Value())
	assert.Equal(t, "B", f.content.Value())
	assert.True(t, f.panel.CanSubmit(), "a valid note starts with submit enabled")
	assert.Equal(t, "Edit note", f.heading.Text())
	assert.Equal(t, "Confirm", f.submit.Text())

	require.NoError(t, f.content.Input("C"))
	f.submit.Click()

	require.Len(t, drafts, 1)
	assert.Equal(t, "A", drafts[0].Title)
	assert.Equal(t, "C", drafts[0].Content)
	assert.Equal(t, "C", note.Content)
	assert.Equal(t, fixedNow, note.CreatedAt)

	assert.Equal(t, StateClosed, f.panel.State())
	assert.Equal(t, "", f.title.Value())
	assert.Equal(t, "", f.content.Value())
	assert.False(t, f.panel.CanSubmit())
}

func TestEditOfInvalidNoteStartsDisabled(t *testing.T) {
	f := newPanelFixture(t)
	f.panel.QueryEdit(models.NewNote("", "body", fixedNow), func(models.Note) {})
	assert.False(t, f.panel.CanSubmit())
}

func TestCancelDisarmsSubmit(t *testing.T) {
	f := newPanelFixture(t)

	submitted := 0
	cancelled := 0
	f.panel.OnCancel(func() { cancelled++ })
	f.panel.QueryNew(func(models.Note) { submitted++ })
	f.fill(t, "title", "content")

	f.cancel.Click()

	assert.Equal(t, 1, cancelled)
	assert.Equal(t, StateClosed, f.panel.State())
	assert.True(t, f.panel.IsHidden())
	assert.Equal(t, "", f.title.Value())
	assert.Equal(t, 0, f.submit.Listeners(dom.EventClick))

	// A stale click after cancel cannot fire the retracted handler
	f.submit.Enable()
	f.submit.Click()
	assert.Equal(t, 0, submitted)
}

func TestCancelWhileClosedIsNoop(t *testing.T) {
	f := newPanelFixture(t)

	cancelled := 0
	f.panel.OnCancel(func() { cancelled++ })

	f.panel.Cancel()
	f.cancel.Click()
	assert.Equal(t, 0, cancelled)
}

func TestRepeatedSessionsKeepOneCancelListener(t *testing.T) {
	f := newPanelFixture(t)

	for i := 0; i < 5; i++ {
		f.panel.QueryNew(func(models.Note) {})
		f.panel.Cancel()
	}
	assert.Equal(t, 1, f.cancel.Listeners(dom.EventClick))
}

func TestCustomLabels(t *testing.T) {
	f := newPanelFixture(t, WithLabels(models.LabelSettings{
		AddHeading:  "Nouvelle note",
		EditHeading: "Modifier",
		AddButton:   "Ajouter",
		EditButton:  "Valider",
	}))

	f.panel.QueryNew(func(models.Note) {})
	assert.Equal(t, "Nouvelle note", f.heading.Text())
	assert.Equal(t, "Ajouter", f.submit.Text())

	f.panel.QueryEdit(models.NewNote("a", "b", fixedNow), func(models.Note) {})
	assert.Equal(t, "Modifier", f.heading.Text())
	assert.Equal(t, "Valider", f.submit.Text())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open(add)", StateOpenAdd.String())
	assert.Equal(t, "open(edit)", StateOpenEdit.String())
	assert.Equal(t, "edit", ModeEdit.String())
}
