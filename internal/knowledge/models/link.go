package models

import (
	"strings"
	"time"

	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// Link is one person's relationship to one catalog item.
//
// Invariants:
//   - exactly one Binding at a time; edits replace the whole link
//   - TargetDate is only meaningful for DESIRED and REQUIRED
//   - ObtainedOn and ExpiresOn are only meaningful for OBTAINED
//   - ExpiresOn is only meaningful when the item has a validity period
type Link struct {
	ID          id.LinkID   `json:"id"`
	PersonID    id.PersonID `json:"person_id"`
	ItemID      id.ItemID   `json:"item_id"`
	Binding     Binding     `json:"binding"`
	TargetDate  *time.Time  `json:"target_date,omitempty"`
	ObtainedOn  *time.Time  `json:"obtained_on,omitempty"`
	ExpiresOn   *time.Time  `json:"expires_on,omitempty"`
	Priority    Priority    `json:"priority"`
	EvidenceRef string      `json:"evidence_ref,omitempty"`
	Note        string      `json:"note,omitempty"`
}

// NewLink normalizes and validates a link against the item it references,
// for collaborators recording a new or replaced link.
//
// Dates that do not apply to the binding are cleared. For OBTAINED links the
// expiration is derived from the item's validity when not supplied, and
// cleared when the item never expires.
func NewLink(spec Link, item LearningItem) (*Link, error) {
	l := spec
	l.EvidenceRef = strings.TrimSpace(l.EvidenceRef)
	l.Note = strings.TrimSpace(l.Note)
	if l.Priority == "" {
		l.Priority = PriorityMedium
	}
	if l.ID.IsNil() {
		l.ID = id.NewLinkID()
	}
	if l.ItemID.IsNil() {
		l.ItemID = item.ID
	}
	if l.ItemID != item.ID {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "link item does not match referenced item")
	}

	switch l.Binding {
	case BindingDesired, BindingRequired:
		l.ObtainedOn = nil
		l.ExpiresOn = nil
	case BindingObtained:
		l.TargetDate = nil
		if l.ObtainedOn == nil || l.ObtainedOn.IsZero() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "obtained links require an obtained date")
		}
		if !item.Expires() {
			l.ExpiresOn = nil
		} else if l.ExpiresOn == nil {
			l.ExpiresOn = ComputeExpiration(item, *l.ObtainedOn)
		}
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate reports the first structural invariant the link violates.
func (l Link) Validate() error {
	if l.PersonID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "link person cannot be empty")
	}
	if l.ItemID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "link item cannot be empty")
	}
	if !l.Binding.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "link binding is invalid")
	}
	if !l.Priority.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "link priority is invalid")
	}
	if l.ObtainedOn != nil && l.ExpiresOn != nil && l.ExpiresOn.Before(*l.ObtainedOn) {
		return dErrors.New(dErrors.CodeInvariantViolation, "link expires before it was obtained")
	}
	return nil
}

// Clone returns a copy that shares no dates with l.
func (l Link) Clone() Link {
	l.TargetDate = cloneTime(l.TargetDate)
	l.ObtainedOn = cloneTime(l.ObtainedOn)
	l.ExpiresOn = cloneTime(l.ExpiresOn)
	return l
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
