package models

import (
	"strings"
	"time"

	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// LearningItem is a certification, course or degree offered in the catalog.
//
// Invariants (enforced by NewLearningItem, checked by Validate):
//   - Name is non-empty
//   - Type is one of the supported item types
//   - CERTIFICATION items carry a non-empty Code
//   - DEGREE items carry a valid DegreeLevel
//   - ValidityMonths, when set, is positive
//
// Items that violate these invariants may still reach the engine from stale
// collections. They are kept in the catalog as-is and treated as having no
// degree level for aggregation.
type LearningItem struct {
	ID             id.ItemID   `json:"id"`
	Name           string      `json:"name"`
	Code           string      `json:"code,omitempty"`
	Type           ItemType    `json:"type"`
	Provider       string      `json:"provider,omitempty"`
	Area           string      `json:"area,omitempty"`
	URL            string      `json:"url,omitempty"`
	ValidityMonths *int        `json:"validity_months,omitempty"`
	DegreeLevel    DegreeLevel `json:"degree_level,omitempty"`
}

// NewLearningItem normalizes and validates a catalog item for insertion.
// Validity is dropped for non-certifications and the degree level for
// non-degrees, so only meaningful fields survive.
func NewLearningItem(spec LearningItem) (*LearningItem, error) {
	item := spec
	item.Name = strings.TrimSpace(item.Name)
	item.Code = strings.TrimSpace(item.Code)
	item.Provider = strings.TrimSpace(item.Provider)
	item.Area = strings.TrimSpace(item.Area)
	item.URL = strings.TrimSpace(item.URL)
	if item.Type != ItemTypeCertification {
		item.ValidityMonths = nil
	}
	if item.Type != ItemTypeDegree {
		item.DegreeLevel = NoDegreeLevel
	}
	if item.ID.IsNil() {
		item.ID = id.NewItemID()
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return &item, nil
}

// Validate reports the first invariant the item violates.
func (i LearningItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "item name cannot be empty")
	}
	if !i.Type.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "item type is invalid")
	}
	if i.Type == ItemTypeCertification && strings.TrimSpace(i.Code) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "certification code cannot be empty")
	}
	if i.Type == ItemTypeDegree && !i.DegreeLevel.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "degree level is required for degrees")
	}
	if i.ValidityMonths != nil && *i.ValidityMonths <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "validity months must be positive")
	}
	return nil
}

// Expires reports whether links to this item can expire. Only certifications
// with a positive validity period do; courses and degrees never expire.
func (i LearningItem) Expires() bool {
	return i.Type == ItemTypeCertification && i.ValidityMonths != nil && *i.ValidityMonths > 0
}

// EffectiveDegreeLevel returns the degree level used for aggregation:
// NoDegreeLevel unless the item is a DEGREE with a valid level.
func (i LearningItem) EffectiveDegreeLevel() DegreeLevel {
	if i.Type != ItemTypeDegree || !i.DegreeLevel.IsValid() {
		return NoDegreeLevel
	}
	return i.DegreeLevel
}

// ComputeExpiration returns the expiration of a link obtained on obtainedOn,
// or nil when the item never expires. Months are calendar months.
func ComputeExpiration(item LearningItem, obtainedOn time.Time) *time.Time {
	if !item.Expires() || obtainedOn.IsZero() {
		return nil
	}
	exp := obtainedOn.AddDate(0, *item.ValidityMonths, 0)
	return &exp
}

// Clone returns a copy that shares no pointers with i.
func (i LearningItem) Clone() LearningItem {
	if i.ValidityMonths != nil {
		n := *i.ValidityMonths
		i.ValidityMonths = &n
	}
	return i
}

// Months is a convenience for building ValidityMonths literals.
func Months(n int) *int {
	return &n
}
