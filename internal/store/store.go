// Package store owns the to-do items: id assignment, selection, filtering
// and write-through persistence of the whole collection under one key.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tickbox/internal/model"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "todoItems"

// Backend is a key/value store holding one serialized blob per key.
type Backend interface {
	// Get returns the value under key. ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the value under key.
	Set(key, value string) error
}

// Store keeps the ordered item sequence and mirrors it to a Backend.
// It is not safe for concurrent use; callers drive it from one event loop.
type Store struct {
	backend   Backend
	key       string
	items     []model.Item
	currentID int // 0 until the first NextID call
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and flush diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the collection stored under key, or starts empty when the key
// holds nothing. A blob that fails schema validation is reported as
// ErrMalformed.
func Open(backend Backend, key string, opts ...Option) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		backend: backend,
		key:     key,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	s.items = items
	s.logger.Debug("store loaded", "key", key, "items", len(items))
	return s, nil
}

// Key returns the storage key this store reads and writes.
func (s *Store) Key() string { return s.key }

func (s *Store) load() ([]model.Item, error) {
	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", s.key, err)
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || raw == "null" {
		return []model.Item{}, nil
	}
	if err := validateBlob(s.key, []byte(raw)); err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &MalformedError{Key: s.key, Message: err.Error()}
	}
	return items, nil
}

func (s *Store) save() error {
	b, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.backend.Set(s.key, string(b)); err != nil {
		return fmt.Errorf("save %q: %w", s.key, err)
	}
	s.logger.Debug("store flushed", "key", s.key, "items", len(s.items))
	return nil
}

// NextID advances the id cursor and returns it. The first call seeds the
// cursor from the last item in the sequence, not the highest id.
func (s *Store) NextID() int {
	if s.currentID == 0 && len(s.items) > 0 {
		s.currentID = s.items[len(s.items)-1].ID
	}
	s.currentID++
	return s.currentID
}

// AddItem assigns an id to draft, appends it and persists.
func (s *Store) AddItem(draft model.Item) (model.Item, error) {
	draft.ID = s.NextID()
	s.items = append(s.items, draft)
	if err := s.save(); err != nil {
		return draft, err
	}
	return draft, nil
}

// RemoveSelectedItems drops every selected item.
func (s *Store) RemoveSelectedItems() error {
	return s.processSelected(func(i int) {
		s.items = append(s.items[:i], s.items[i+1:]...)
	})
}

// CompleteSelectedItems marks every selected item complete.
func (s *Store) CompleteSelectedItems() error {
	return s.processSelected(func(i int) {
		s.items[i].IsComplete = true
	})
}

// processSelected applies fn to the current index of each id selected at
// call time, then persists once.
func (s *Store) processSelected(fn func(index int)) error {
	for _, id := range s.SelectedIDs() {
		if i := s.Index(id); i > -1 {
			fn(i)
		}
	}
	return s.save()
}

// SelectItem sets the selection flag of the item with id. Unknown ids are
// ignored.
func (s *Store) SelectItem(id int, selected bool) error {
	i := s.Index(id)
	if i < 0 {
		return nil
	}
	s.items[i].IsSelected = selected
	return s.save()
}

// Index returns the position of id, or -1.
func (s *Store) Index(id int) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Item returns a copy of the item with id.
func (s *Store) Item(id int) (model.Item, bool) {
	if i := s.Index(id); i > -1 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// SelectedIDs returns the ids of selected items in collection order.
func (s *Store) SelectedIDs() []int {
	ids := []int{}
	for _, it := range s.items {
		if it.IsSelected {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// FilterItems returns the items whose text contains phrase. The match is
// literal and case-sensitive; an empty phrase matches everything.
func (s *Store) FilterItems(phrase string) []model.Item {
	out := []model.Item{}
	for _, it := range s.items {
		if strings.Contains(it.Text, phrase) {
			out = append(out, it)
		}
	}
	return out
}

// Items returns a copy of the whole sequence.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports how many items the store holds.
func (s *Store) Len() int { return len(s.items) }
