package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// Document is the file representation of a snapshot.
type Document struct {
	Version uint64         `json:"version" yaml:"version"`
	People  []PersonRecord `json:"people" yaml:"people"`
	Items   []ItemRecord   `json:"items" yaml:"items"`
	Links   []LinkRecord   `json:"links" yaml:"links"`
}

type PersonRecord struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	JobTitle string `json:"job_title" yaml:"job_title"`
	Team     string `json:"team" yaml:"team"`
}

type ItemRecord struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Code           string `json:"code" yaml:"code"`
	Type           string `json:"type" yaml:"type"`
	Provider       string `json:"provider" yaml:"provider"`
	Area           string `json:"area" yaml:"area"`
	URL            string `json:"url" yaml:"url"`
	ValidityMonths *int   `json:"validity_months" yaml:"validity_months"`
	DegreeLevel    string `json:"degree_level" yaml:"degree_level"`
}

type LinkRecord struct {
	ID          string `json:"id" yaml:"id"`
	PersonID    string `json:"person_id" yaml:"person_id"`
	ItemID      string `json:"item_id" yaml:"item_id"`
	Binding     string `json:"binding" yaml:"binding"`
	TargetDate  string `json:"target_date" yaml:"target_date"`
	ObtainedOn  string `json:"obtained_on" yaml:"obtained_on"`
	ExpiresOn   string `json:"expires_on" yaml:"expires_on"`
	Priority    string `json:"priority" yaml:"priority"`
	EvidenceRef string `json:"evidence_ref" yaml:"evidence_ref"`
	Note        string `json:"note" yaml:"note"`
}

// dateLayouts are tried in order. Date-only values are UTC midnight.
var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

// Convert parses a document into a typed snapshot.
//
// Identifiers and enumerations are parsed strictly: every bad record is
// reported, joined with errors.Join, each carrying a dErrors code. Dates are
// parsed leniently: a malformed date is treated as absent and reported as
// a Warning. An unknown degree level is also dropped with a Warning.
func Convert(doc Document) (Snapshot, []Warning, error) {
	c := converter{}
	snap := Snapshot{
		Version: doc.Version,
		People:  make([]models.Person, 0, len(doc.People)),
		Items:   make([]models.LearningItem, 0, len(doc.Items)),
		Links:   make([]models.Link, 0, len(doc.Links)),
	}

	for i, r := range doc.People {
		if p, ok := c.person(fmt.Sprintf("people[%d]", i), r); ok {
			snap.People = append(snap.People, p)
		}
	}
	for i, r := range doc.Items {
		if it, ok := c.item(fmt.Sprintf("items[%d]", i), r); ok {
			snap.Items = append(snap.Items, it)
		}
	}
	for i, r := range doc.Links {
		if l, ok := c.link(fmt.Sprintf("links[%d]", i), r); ok {
			snap.Links = append(snap.Links, l)
		}
	}

	if err := errors.Join(c.errs...); err != nil {
		return Snapshot{}, c.warnings, err
	}
	return snap, c.warnings, nil
}

type converter struct {
	errs     []error
	warnings []Warning
}

func (c *converter) fail(record string, err error) {
	c.errs = append(c.errs, fmt.Errorf("%s: %w", record, err))
}

func (c *converter) warn(record, field, value, reason string) {
	c.warnings = append(c.warnings, Warning{Record: record, Field: field, Value: value, Reason: reason})
}

func (c *converter) person(record string, r PersonRecord) (models.Person, bool) {
	personID, err := id.ParsePersonID(strings.TrimSpace(r.ID))
	if err != nil {
		c.fail(record, err)
		return models.Person{}, false
	}
	return models.Person{
		ID:       personID,
		Name:     strings.TrimSpace(r.Name),
		JobTitle: strings.TrimSpace(r.JobTitle),
		Team:     strings.TrimSpace(r.Team),
	}, true
}

func (c *converter) item(record string, r ItemRecord) (models.LearningItem, bool) {
	itemID, idErr := id.ParseItemID(strings.TrimSpace(r.ID))
	itemType, typeErr := models.ParseItemType(r.Type)
	if err := errors.Join(idErr, typeErr); err != nil {
		c.fail(record, err)
		return models.LearningItem{}, false
	}

	level, err := models.ParseDegreeLevel(r.DegreeLevel)
	if err != nil {
		c.warn(record, "degree_level", r.DegreeLevel, "unknown degree level")
		level = models.NoDegreeLevel
	}

	return models.LearningItem{
		ID:             itemID,
		Name:           strings.TrimSpace(r.Name),
		Code:           strings.TrimSpace(r.Code),
		Type:           itemType,
		Provider:       strings.TrimSpace(r.Provider),
		Area:           strings.TrimSpace(r.Area),
		URL:            strings.TrimSpace(r.URL),
		ValidityMonths: r.ValidityMonths,
		DegreeLevel:    level,
	}, true
}

func (c *converter) link(record string, r LinkRecord) (models.Link, bool) {
	linkID, idErr := id.ParseLinkID(strings.TrimSpace(r.ID))
	personID, personErr := id.ParsePersonID(strings.TrimSpace(r.PersonID))
	itemID, itemErr := id.ParseItemID(strings.TrimSpace(r.ItemID))
	binding, bindingErr := models.ParseBinding(r.Binding)
	priority, priorityErr := models.ParsePriority(r.Priority)
	if err := errors.Join(idErr, personErr, itemErr, bindingErr, priorityErr); err != nil {
		c.fail(record, err)
		return models.Link{}, false
	}

	return models.Link{
		ID:          linkID,
		PersonID:    personID,
		ItemID:      itemID,
		Binding:     binding,
		TargetDate:  c.date(record, "target_date", r.TargetDate),
		ObtainedOn:  c.date(record, "obtained_on", r.ObtainedOn),
		ExpiresOn:   c.date(record, "expires_on", r.ExpiresOn),
		Priority:    priority,
		EvidenceRef: strings.TrimSpace(r.EvidenceRef),
		Note:        strings.TrimSpace(r.Note),
	}, true
}

func (c *converter) date(record, field, value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if t, ok := ParseDate(v); ok {
		return &t
	}
	c.warn(record, field, value, "malformed date treated as absent")
	return nil
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates (UTC midnight).
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromSnapshot renders a snapshot back into its file representation.
func FromSnapshot(s Snapshot) Document {
	doc := Document{
		Version: s.Version,
		People:  make([]PersonRecord, 0, len(s.People)),
		Items:   make([]ItemRecord, 0, len(s.Items)),
		Links:   make([]LinkRecord, 0, len(s.Links)),
	}
	for _, p := range s.People {
		doc.People = append(doc.People, PersonRecord{ID: p.ID.String(), Name: p.Name, JobTitle: p.JobTitle, Team: p.Team})
	}
	for _, it := range s.Items {
		doc.Items = append(doc.Items, ItemRecord{
			ID:             it.ID.String(),
			Name:           it.Name,
			Code:           it.Code,
			Type:           it.Type.String(),
			Provider:       it.Provider,
			Area:           it.Area,
			URL:            it.URL,
			ValidityMonths: it.ValidityMonths,
			DegreeLevel:    it.DegreeLevel.String(),
		})
	}
	for _, l := range s.Links {
		doc.Links = append(doc.Links, LinkRecord{
			ID:          l.ID.String(),
			PersonID:    l.PersonID.String(),
			ItemID:      l.ItemID.String(),
			Binding:     l.Binding.String(),
			TargetDate:  formatDate(l.TargetDate),
			ObtainedOn:  formatDate(l.ObtainedOn),
			ExpiresOn:   formatDate(l.ExpiresOn),
			Priority:    l.Priority.String(),
			EvidenceRef: l.EvidenceRef,
			Note:        l.Note,
		})
	}
	return doc
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
