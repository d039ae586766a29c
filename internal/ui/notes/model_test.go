package notes

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/listing"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { c.t = c.t.Add(time.Minute); return c.t }

func setup() (Model, *state.NoteStore) {
	c := &clock{t: time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)}
	n := 0
	st := state.NewNoteStore(state.NoteSnapshot{}, state.Options{
		Now:   c.now,
		NewID: func() string { n++; return "n" + strconv.Itoa(n) },
	}, nil)
	st.Add("Groceries", "milk, eggs", []string{"home"})
	st.Add("Standup", "blockers: none", []string{"work"})
	st.Add("Ideas", "owl stickers", nil)
	return New(st, keys.DefaultKeyMap(), c.now, 80, 30), st
}

func rowIDs(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(listing.Row).ID)
	}
	return out
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSortPinnedThenRecent(t *testing.T) {
	m, st := setup()
	assert.Equal(t, []string{"n3", "n2", "n1"}, rowIDs(m))

	st.TogglePin("n1")
	m.Refresh()
	assert.Equal(t, []string{"n1", "n3", "n2"}, rowIDs(m))
}

func TestSearchAndTagFilter(t *testing.T) {
	m, _ := setup()

	m = typeKeys(m, "/")
	require.True(t, m.Capturing())
	m = typeKeys(m, "EGGS")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Capturing())
	assert.Equal(t, []string{"n1"}, rowIDs(m))

	m = typeKeys(m, "/")
	m.searchInput.SetValue("#work")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"n2"}, rowIDs(m))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, rowIDs(m), 3)
}

func TestPinDeleteAndEdit(t *testing.T) {
	m, st := setup()

	m = typeKeys(m, "p")
	n, _ := st.Get("n3")
	assert.True(t, n.Pinned)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	open, ok := cmd().(ui.OpenFormMsg)
	require.True(t, ok)
	assert.Equal(t, "Edit Note", open.Form.Title())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, ui.FlashMsg(`Deleted note "Ideas"`), cmd())
	assert.Len(t, st.All(), 2)
	assert.Contains(t, m.View(), "blockers")
}

func TestFocusClearsSearch(t *testing.T) {
	m, _ := setup()
	m.query = "eggs"
	m.Refresh()
	require.Len(t, rowIDs(m), 1)

	require.True(t, m.Focus("n2"))
	assert.Len(t, rowIDs(m), 3)
	r, _ := listing.Selected(m.list)
	assert.Equal(t, "n2", r.ID)
	assert.Empty(t, m.query)
}
