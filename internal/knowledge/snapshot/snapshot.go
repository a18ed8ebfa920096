// Package snapshot is the inbound boundary of the knowledge engine.
//
// Collaborators hand the engine one consistent Snapshot of people, catalog
// items and links. Records from files are parsed and validated here so the
// engine only ever sees typed values.
package snapshot

import (
	"slices"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
)

// Snapshot is one consistent view of the three collections. Version changes
// whenever any collection changes.
type Snapshot struct {
	Version uint64
	People  []models.Person
	Items   []models.LearningItem
	Links   []models.Link
}

// Clone returns a copy whose slices do not alias s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Version: s.Version,
		People:  slices.Clone(s.People),
		Items:   slices.Clone(s.Items),
		Links:   slices.Clone(s.Links),
	}
}

// Warning describes a field dropped as malformed during conversion. The
// record is kept without it.
type Warning struct {
	Record string `json:"record"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return w.Record + "." + w.Field + ": " + w.Reason + " (" + w.Value + ")"
}
