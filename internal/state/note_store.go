package state

import (
	"slices"
	"strings"

	"github.com/nhle/prodowl/internal/model"
)

// NoteSnapshot is the persisted form of NoteStore.
type NoteSnapshot struct {
	Notes []model.Note `json:"notes"`
}

// NotePatch is a partial update.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    []string
	Pinned  *bool
}

// NoteStore owns free-form notes.
type NoteStore struct {
	notes []model.Note
	opts  Options
	hook  Hook[NoteSnapshot]
}

// NewNoteStore creates a NoteStore seeded with initial.
func NewNoteStore(initial NoteSnapshot, opts Options, hook Hook[NoteSnapshot]) *NoteStore {
	return &NoteStore{notes: slices.Clone(initial.Notes), opts: opts.withDefaults(), hook: hook}
}

// Snapshot returns a copy of the store's state.
func (s *NoteStore) Snapshot() NoteSnapshot {
	return NoteSnapshot{Notes: slices.Clone(s.notes)}
}

func (s *NoteStore) commit() { emit(s.hook, s.Snapshot()) }

func (s *NoteStore) index(id string) int {
	return slices.IndexFunc(s.notes, func(n model.Note) bool { return n.ID == id })
}

// Add creates a note. A blank title is ignored.
func (s *NoteStore) Add(title, content string, tags []string) (model.Note, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Note{}, false
	}
	if tags == nil {
		tags = []string{}
	}
	now := s.opts.Now()
	n := model.Note{
		ID:        s.opts.NewID(),
		Title:     title,
		Content:   content,
		Tags:      slices.Clone(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	s.commit()
	return n, true
}

// Update merges p into the note and refreshes UpdatedAt.
func (s *NoteStore) Update(id string, p NotePatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return false
	}
	n := s.notes[i]
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = slices.Clone(p.Tags)
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	n.UpdatedAt = s.opts.Now()
	s.notes[i] = n
	s.commit()
	return true
}

// Delete removes the note with id.
func (s *NoteStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.commit()
	return true
}

// TogglePin flips the pinned flag.
func (s *NoteStore) TogglePin(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes[i].Pinned = !s.notes[i].Pinned
	s.commit()
	return true
}

// All returns every note in insertion order.
func (s *NoteStore) All() []model.Note { return slices.Clone(s.notes) }

// Get returns the note with id.
func (s *NoteStore) Get(id string) (model.Note, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Note{}, false
	}
	return s.notes[i], true
}

// Pinned returns pinned notes.
func (s *NoteStore) Pinned() []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if n.Pinned {
			out = append(out, n)
		}
	}
	return out
}

// Search matches q case-insensitively against title, content and tags.
func (s *NoteStore) Search(q string) []model.Note {
	q = strings.ToLower(q)
	var out []model.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			slices.ContainsFunc(n.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) }) {
			out = append(out, n)
		}
	}
	return out
}

// ByTag returns notes carrying exactly tag.
func (s *NoteStore) ByTag(tag string) []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if slices.Contains(n.Tags, tag) {
			out = append(out, n)
		}
	}
	return out
}
