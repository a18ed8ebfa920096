package snapshot

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/platform/sentinel"
)

// InMemory holds the three collections for in-process collaborators. Every
// write bumps the version so memoized results are never served stale.
//
// Deleting a person or item leaves its links in place; they become dangling
// and are excluded by the engine.
type InMemory struct {
	mu      sync.RWMutex
	version uint64
	people  map[id.PersonID]models.Person
	items   map[id.ItemID]models.LearningItem
	links   map[id.LinkID]models.Link
}

func NewInMemory() *InMemory {
	return &InMemory{
		people: make(map[id.PersonID]models.Person),
		items:  make(map[id.ItemID]models.LearningItem),
		links:  make(map[id.LinkID]models.Link),
	}
}

// Version is the current snapshot version.
func (s *InMemory) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a consistent copy of all collections ordered by ID.
func (s *InMemory) Snapshot(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := slices.SortedFunc(maps.Values(s.people), func(a, b models.Person) int { return a.ID.Compare(b.ID) })
	items := slices.SortedFunc(maps.Values(s.items), func(a, b models.LearningItem) int { return a.ID.Compare(b.ID) })
	links := slices.SortedFunc(maps.Values(s.links), func(a, b models.Link) int { return a.ID.Compare(b.ID) })

	return Snapshot{Version: s.version, People: people, Items: items, Links: links}, nil
}

// Replace swaps every collection for the contents of snap. Duplicate IDs in
// snap keep the last record.
func (s *InMemory) Replace(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people = make(map[id.PersonID]models.Person, len(snap.People))
	for _, p := range snap.People {
		s.people[p.ID] = p
	}
	s.items = make(map[id.ItemID]models.LearningItem, len(snap.Items))
	for _, it := range snap.Items {
		s.items[it.ID] = it
	}
	s.links = make(map[id.LinkID]models.Link, len(snap.Links))
	for _, l := range snap.Links {
		s.links[l.ID] = l
	}
	s.version++
	return nil
}

func (s *InMemory) SavePerson(_ context.Context, p models.Person) error {
	if p.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "person_id cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people[p.ID] = p
	s.version++
	return nil
}

func (s *InMemory) SaveItem(_ context.Context, it models.LearningItem) error {
	if it.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "item_id cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
	s.version++
	return nil
}

// SaveLink stores l. A link whose ID is taken by another person/item pair
// is rejected with sentinel.ErrConflict; links are replaced whole, never moved.
func (s *InMemory) SaveLink(_ context.Context, l models.Link) error {
	if l.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "link_id cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.links[l.ID]; ok && (existing.PersonID != l.PersonID || existing.ItemID != l.ItemID) {
		return fmt.Errorf("link %s: %w", l.ID, sentinel.ErrConflict)
	}
	s.links[l.ID] = l
	s.version++
	return nil
}

func (s *InMemory) FindLink(_ context.Context, linkID id.LinkID) (models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.links[linkID]; ok {
		return l, nil
	}
	return models.Link{}, fmt.Errorf("link %s: %w", linkID, sentinel.ErrNotFound)
}

func (s *InMemory) DeletePerson(_ context.Context, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[personID]; !ok {
		return fmt.Errorf("person %s: %w", personID, sentinel.ErrNotFound)
	}
	delete(s.people, personID)
	s.version++
	return nil
}

func (s *InMemory) DeleteItem(_ context.Context, itemID id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return fmt.Errorf("item %s: %w", itemID, sentinel.ErrNotFound)
	}
	delete(s.items, itemID)
	s.version++
	return nil
}

func (s *InMemory) DeleteLink(_ context.Context, linkID id.LinkID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[linkID]; !ok {
		return fmt.Errorf("link %s: %w", linkID, sentinel.ErrNotFound)
	}
	delete(s.links, linkID)
	s.version++
	return nil
}
