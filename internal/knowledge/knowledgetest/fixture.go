// Package knowledgetest builds people, catalog items and links for tests.
package knowledgetest

import (
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/join"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// Now is the reference instant used across knowledge tests.
var Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// Fixture accumulates collections. Methods return the created record so
// tests can refer to its ID.
type Fixture struct {
	People []models.Person
	Items  []models.LearningItem
	Links  []models.Link
}

// Person adds a person on the given team.
func (f *Fixture) Person(name, team string) models.Person {
	p := models.Person{ID: id.NewPersonID(), Name: name, Team: team}
	f.People = append(f.People, p)
	return p
}

// Cert adds a certification with the given validity (nil = permanent).
func (f *Fixture) Cert(code, provider, area string, validityMonths *int) models.LearningItem {
	it := models.LearningItem{
		ID:             id.NewItemID(),
		Name:           code + " certification",
		Code:           code,
		Type:           models.ItemTypeCertification,
		Provider:       provider,
		Area:           area,
		ValidityMonths: validityMonths,
	}
	f.Items = append(f.Items, it)
	return it
}

// Course adds a course.
func (f *Fixture) Course(name, provider, area string) models.LearningItem {
	it := models.LearningItem{
		ID:       id.NewItemID(),
		Name:     name,
		Type:     models.ItemTypeCourse,
		Provider: provider,
		Area:     area,
	}
	f.Items = append(f.Items, it)
	return it
}

// Degree adds a degree at the given level.
func (f *Fixture) Degree(name, provider string, level models.DegreeLevel) models.LearningItem {
	it := models.LearningItem{
		ID:          id.NewItemID(),
		Name:        name,
		Type:        models.ItemTypeDegree,
		Provider:    provider,
		DegreeLevel: level,
	}
	f.Items = append(f.Items, it)
	return it
}

// Desired links p to it as DESIRED.
func (f *Fixture) Desired(p models.Person, it models.LearningItem) models.Link {
	return f.add(models.Link{PersonID: p.ID, ItemID: it.ID, Binding: models.BindingDesired})
}

// Required links p to it as REQUIRED.
func (f *Fixture) Required(p models.Person, it models.LearningItem) models.Link {
	return f.add(models.Link{PersonID: p.ID, ItemID: it.ID, Binding: models.BindingRequired})
}

// Obtained links p to it as OBTAINED with an explicit expiration (nil = none).
func (f *Fixture) Obtained(p models.Person, it models.LearningItem, expires *time.Time) models.Link {
	obtainedOn := Now.AddDate(-1, 0, 0)
	return f.add(models.Link{
		PersonID:   p.ID,
		ItemID:     it.ID,
		Binding:    models.BindingObtained,
		ObtainedOn: &obtainedOn,
		ExpiresOn:  expires,
	})
}

// Dangling adds a link to a person and item that do not exist.
func (f *Fixture) Dangling() models.Link {
	return f.add(models.Link{PersonID: id.NewPersonID(), ItemID: id.NewItemID(), Binding: models.BindingDesired})
}

// Index builds a join index over the accumulated collections.
func (f *Fixture) Index() *join.Index {
	return join.New(f.People, f.Items, f.Links)
}

func (f *Fixture) add(l models.Link) models.Link {
	l.ID = id.NewLinkID()
	l.Priority = models.PriorityMedium
	f.Links = append(f.Links, l)
	return l
}

// In returns a pointer to Now shifted by d.
func In(d time.Duration) *time.Time {
	t := Now.Add(d)
	return &t
}

// Days converts whole days to a duration.
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
