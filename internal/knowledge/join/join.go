// Package join resolves links against the people and items they reference.
//
// The aggregator and the drill-down resolver both read from an Index, so a
// dangling link is excluded from both in exactly the same way.
package join

import (
	"slices"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// Row is a link together with the person and item it references.
type Row struct {
	Person models.Person
	Link   models.Link
	Item   models.LearningItem
}

// Index is an immutable view over one snapshot of the three collections.
// Build it with New; it is safe for concurrent reads.
type Index struct {
	people    []models.Person
	items     []models.LearningItem
	personIdx map[id.PersonID]int
	itemIdx   map[id.ItemID]int
	rows      []Row
	dangling  []models.Link
	invalid   []models.Link
}

// New indexes the collections. Inputs are copied and never mutated.
//
// When two records share an ID the first one wins and later duplicates are
// ignored. A link whose person or item is missing is dangling. A link whose
// binding is outside the closed set is invalid. Neither kind is resolved.
func New(people []models.Person, items []models.LearningItem, links []models.Link) *Index {
	ix := &Index{
		people:    make([]models.Person, 0, len(people)),
		items:     make([]models.LearningItem, 0, len(items)),
		personIdx: make(map[id.PersonID]int, len(people)),
		itemIdx:   make(map[id.ItemID]int, len(items)),
		rows:      make([]Row, 0, len(links)),
	}

	for _, p := range people {
		if _, dup := ix.personIdx[p.ID]; dup {
			continue
		}
		ix.personIdx[p.ID] = len(ix.people)
		ix.people = append(ix.people, p)
	}
	for _, it := range items {
		if _, dup := ix.itemIdx[it.ID]; dup {
			continue
		}
		ix.itemIdx[it.ID] = len(ix.items)
		ix.items = append(ix.items, it)
	}

	for _, l := range links {
		p, okP := ix.Person(l.PersonID)
		it, okI := ix.Item(l.ItemID)
		switch {
		case !okP || !okI:
			ix.dangling = append(ix.dangling, l)
		case !l.Binding.IsValid():
			ix.invalid = append(ix.invalid, l)
		default:
			ix.rows = append(ix.rows, Row{Person: p, Link: l, Item: it})
		}
	}

	slices.SortStableFunc(ix.rows, func(a, b Row) int {
		return a.Link.ID.Compare(b.Link.ID)
	})
	return ix
}

// Person looks up a person by ID.
func (ix *Index) Person(personID id.PersonID) (models.Person, bool) {
	i, ok := ix.personIdx[personID]
	if !ok {
		return models.Person{}, false
	}
	return ix.people[i], true
}

// Item looks up a catalog item by ID.
func (ix *Index) Item(itemID id.ItemID) (models.LearningItem, bool) {
	i, ok := ix.itemIdx[itemID]
	if !ok {
		return models.LearningItem{}, false
	}
	return ix.items[i], true
}

// People returns the distinct people in input order.
func (ix *Index) People() []models.Person {
	return slices.Clone(ix.people)
}

// Items returns the distinct catalog items in input order.
func (ix *Index) Items() []models.LearningItem {
	return slices.Clone(ix.items)
}

// Rows returns every resolved link ordered by link ID ascending.
func (ix *Index) Rows() []Row {
	return slices.Clone(ix.rows)
}

// Each calls fn for every resolved link in link ID order without copying.
func (ix *Index) Each(fn func(Row)) {
	for _, r := range ix.rows {
		fn(r)
	}
}

// Dangling returns the links that reference a missing person or item.
func (ix *Index) Dangling() []models.Link {
	return slices.Clone(ix.dangling)
}

// Invalid returns the resolvable links whose binding is not recognized.
func (ix *Index) Invalid() []models.Link {
	return slices.Clone(ix.invalid)
}

// ValidCount is the number of resolved links.
func (ix *Index) ValidCount() int { return len(ix.rows) }

// DanglingCount is the number of links excluded for a missing reference.
func (ix *Index) DanglingCount() int { return len(ix.dangling) }

// InvalidCount is the number of links excluded for an unknown binding.
func (ix *Index) InvalidCount() int { return len(ix.invalid) }
