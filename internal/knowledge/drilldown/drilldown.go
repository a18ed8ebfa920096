// Package drilldown answers "who holds what" questions behind dashboard counts.
package drilldown

import (
	"slices"
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/join"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/status"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// Kind names a drill-down variant.
type Kind string

const (
	KindItemStatus   Kind = "item_status"
	KindStatus       Kind = "status"
	KindDegreeLevel  Kind = "degree_level"
	KindPersonStatus Kind = "person_status"
)

// Criterion selects the rows of one drill-down. Build it with ByItemStatus,
// ByStatus, ByDegreeLevel or ByPersonStatus.
type Criterion struct {
	Kind        Kind               `json:"kind"`
	ItemID      id.ItemID          `json:"item_id,omitzero"`
	PersonID    id.PersonID        `json:"person_id,omitzero"`
	Status      models.StatusTag   `json:"status,omitempty"`
	DegreeLevel models.DegreeLevel `json:"degree_level,omitempty"`
}

// ByItemStatus selects the links to one item that carry tag.
func ByItemStatus(itemID id.ItemID, tag models.StatusTag) Criterion {
	return Criterion{Kind: KindItemStatus, ItemID: itemID, Status: tag}
}

// ByStatus selects every link that carries tag.
func ByStatus(tag models.StatusTag) Criterion {
	return Criterion{Kind: KindStatus, Status: tag}
}

// ByDegreeLevel selects every link to a DEGREE item of level, whatever its
// binding. Each row carries its own status.
func ByDegreeLevel(level models.DegreeLevel) Criterion {
	return Criterion{Kind: KindDegreeLevel, DegreeLevel: level}
}

// ByPersonStatus selects one person's links that carry tag.
func ByPersonStatus(personID id.PersonID, tag models.StatusTag) Criterion {
	return Criterion{Kind: KindPersonStatus, PersonID: personID, Status: tag}
}

// Row is one matching link with everything needed to render it.
type Row struct {
	Person models.Person       `json:"person"`
	Link   models.Link         `json:"link"`
	Item   models.LearningItem `json:"item"`
	Status models.StatusTag    `json:"status"`
}

// Resolve returns the rows matching criterion ordered by link ID ascending.
// Dangling links never match. No match yields an empty, non-nil slice.
func Resolve(criterion Criterion, ix *join.Index, c status.Classifier, now time.Time) []Row {
	out := make([]Row, 0)
	ix.Each(func(r join.Row) {
		tag := c.Classify(r.Link, r.Item, now)
		if criterion.matches(r, tag) {
			out = append(out, Row{Person: r.Person, Link: r.Link, Item: r.Item, Status: tag})
		}
	})
	return out
}

func (cr Criterion) matches(r join.Row, tag models.StatusTag) bool {
	switch cr.Kind {
	case KindItemStatus:
		return r.Item.ID == cr.ItemID && tag == cr.Status
	case KindStatus:
		return tag == cr.Status
	case KindDegreeLevel:
		return cr.DegreeLevel != models.NoDegreeLevel &&
			r.Item.EffectiveDegreeLevel() == cr.DegreeLevel
	case KindPersonStatus:
		return r.Person.ID == cr.PersonID && tag == cr.Status
	}
	return false
}

// Expiring lists the links expiring within the classifier's window, soonest
// first, ties broken by link ID.
func Expiring(ix *join.Index, c status.Classifier, now time.Time) []Row {
	rows := Resolve(ByStatus(models.StatusObtainedExpiringSoon), ix, c, now)
	slices.SortStableFunc(rows, func(a, b Row) int {
		ea := status.Expiration(a.Link, a.Item)
		eb := status.Expiration(b.Link, b.Item)
		if c := ea.Compare(*eb); c != 0 {
			return c
		}
		return a.Link.ID.Compare(b.Link.ID)
	})
	return rows
}

// CloneRows deep-copies rows so callers can edit the result freely.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Person: r.Person, Link: r.Link.Clone(), Item: r.Item.Clone(), Status: r.Status}
	}
	return out
}
