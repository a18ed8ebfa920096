package models

import (
	"strings"

	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// ItemType is the kind of catalog item.
// Invariant: the value must be one of the supported item types.
//
// Usage: construct via ParseItemType at trust boundaries; direct casting
// bypasses validation.
type ItemType string

const (
	ItemTypeCertification ItemType = "CERTIFICATION"
	ItemTypeCourse        ItemType = "COURSE"
	ItemTypeDegree        ItemType = "DEGREE"

	// AnyType selects the whole catalog in facet and filter criteria.
	AnyType ItemType = ""
)

// Binding is a person's relationship to a catalog item.
type Binding string

const (
	BindingDesired  Binding = "DESIRED"
	BindingRequired Binding = "REQUIRED"
	BindingObtained Binding = "OBTAINED"
)

// DegreeLevel tags DEGREE items.
type DegreeLevel string

const (
	DegreeUndergraduate  DegreeLevel = "UNDERGRADUATE"
	DegreeTechnologist   DegreeLevel = "TECHNOLOGIST"
	DegreePostgraduate   DegreeLevel = "POSTGRADUATE"
	DegreeSpecialization DegreeLevel = "SPECIALIZATION"
	DegreeMBA            DegreeLevel = "MBA"
	DegreeMasters        DegreeLevel = "MASTERS"
	DegreeDoctorate      DegreeLevel = "DOCTORATE"

	// NoDegreeLevel marks items without a (valid) level.
	NoDegreeLevel DegreeLevel = ""
)

// Priority ranks DESIRED and REQUIRED links.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// StatusTag is the derived five-way classification of a link.
type StatusTag string

const (
	StatusObtainedActive       StatusTag = "OBTAINED_ACTIVE"
	StatusObtainedExpiringSoon StatusTag = "OBTAINED_EXPIRING_SOON"
	StatusObtainedExpired      StatusTag = "OBTAINED_EXPIRED"
	StatusDesired              StatusTag = "DESIRED"
	StatusRequired             StatusTag = "REQUIRED"

	// StatusUnknown is returned for a binding outside the closed set. It is
	// never counted.
	StatusUnknown StatusTag = ""
)

// validItemTypes, validBindings, validDegreeLevels, validPriorities and
// validStatuses are the single source of truth for each closed set.
var (
	validItemTypes = map[ItemType]bool{
		ItemTypeCertification: true,
		ItemTypeCourse:        true,
		ItemTypeDegree:        true,
	}
	validBindings = map[Binding]bool{
		BindingDesired:  true,
		BindingRequired: true,
		BindingObtained: true,
	}
	validDegreeLevels = map[DegreeLevel]bool{
		DegreeUndergraduate:  true,
		DegreeTechnologist:   true,
		DegreePostgraduate:   true,
		DegreeSpecialization: true,
		DegreeMBA:            true,
		DegreeMasters:        true,
		DegreeDoctorate:      true,
	}
	validPriorities = map[Priority]bool{
		PriorityLow:    true,
		PriorityMedium: true,
		PriorityHigh:   true,
	}
	validStatuses = map[StatusTag]bool{
		StatusObtainedActive:       true,
		StatusObtainedExpiringSoon: true,
		StatusObtainedExpired:      true,
		StatusDesired:              true,
		StatusRequired:             true,
	}
)

// Legacy spellings found in exports of the previous catalog tool.
var (
	legacyItemTypes = map[string]ItemType{
		"CERTIFICACAO": ItemTypeCertification,
		"CURSO":        ItemTypeCourse,
		"FORMACAO":     ItemTypeDegree,
	}
	legacyBindings = map[string]Binding{
		"DESEJADO":    BindingDesired,
		"OBRIGATORIO": BindingRequired,
		"OBTIDO":      BindingObtained,
	}
	legacyDegreeLevels = map[string]DegreeLevel{
		"GRADUACAO":      DegreeUndergraduate,
		"TECNOLOGO":      DegreeTechnologist,
		"POS_GRADUACAO":  DegreePostgraduate,
		"ESPECIALIZACAO": DegreeSpecialization,
		"MESTRADO":       DegreeMasters,
		"DOUTORADO":      DegreeDoctorate,
	}
	legacyPriorities = map[string]Priority{
		"BAIXA": PriorityLow,
		"MEDIA": PriorityMedium,
		"ALTA":  PriorityHigh,
	}
)

// AllItemTypes returns the item types in display order.
func AllItemTypes() []ItemType {
	return []ItemType{ItemTypeCertification, ItemTypeCourse, ItemTypeDegree}
}

// AllDegreeLevels returns the degree levels in display order.
func AllDegreeLevels() []DegreeLevel {
	return []DegreeLevel{
		DegreeUndergraduate,
		DegreeTechnologist,
		DegreePostgraduate,
		DegreeSpecialization,
		DegreeMBA,
		DegreeMasters,
		DegreeDoctorate,
	}
}

// AllStatuses returns the five derived status tags in display order.
func AllStatuses() []StatusTag {
	return []StatusTag{
		StatusObtainedActive,
		StatusObtainedExpiringSoon,
		StatusObtainedExpired,
		StatusDesired,
		StatusRequired,
	}
}

func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// ParseItemType constructs an ItemType from external input. Matching is
// case-insensitive and accepts legacy spellings.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseItemType(s string) (ItemType, error) {
	n := normalize(s)
	if n == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "item type cannot be empty")
	}
	if t, ok := legacyItemTypes[n]; ok {
		return t, nil
	}
	t := ItemType(n)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid item type: "+s)
	}
	return t, nil
}

// ParseItemTypeFacet is ParseItemType that also accepts "" and "ANY" as AnyType.
func ParseItemTypeFacet(s string) (ItemType, error) {
	if n := normalize(s); n == "" || n == "ANY" {
		return AnyType, nil
	}
	return ParseItemType(s)
}

// IsValid checks if the item type is one of the supported enum values.
func (t ItemType) IsValid() bool {
	return validItemTypes[t]
}

func (t ItemType) String() string {
	return string(t)
}

// ParseBinding constructs a Binding from external input.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseBinding(s string) (Binding, error) {
	n := normalize(s)
	if n == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "binding cannot be empty")
	}
	if b, ok := legacyBindings[n]; ok {
		return b, nil
	}
	b := Binding(n)
	if !b.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid binding: "+s)
	}
	return b, nil
}

func (b Binding) IsValid() bool {
	return validBindings[b]
}

func (b Binding) String() string {
	return string(b)
}

// ParseDegreeLevel constructs a DegreeLevel from external input. An empty
// value parses to NoDegreeLevel.
//
// Errors: CodeInvalidInput when the value is unsupported.
func ParseDegreeLevel(s string) (DegreeLevel, error) {
	n := normalize(s)
	if n == "" {
		return NoDegreeLevel, nil
	}
	if l, ok := legacyDegreeLevels[n]; ok {
		return l, nil
	}
	l := DegreeLevel(n)
	if !l.IsValid() {
		return NoDegreeLevel, dErrors.New(dErrors.CodeInvalidInput, "invalid degree level: "+s)
	}
	return l, nil
}

func (l DegreeLevel) IsValid() bool {
	return validDegreeLevels[l]
}

func (l DegreeLevel) String() string {
	return string(l)
}

// ParsePriority constructs a Priority from external input. An empty value
// parses to PriorityMedium.
//
// Errors: CodeInvalidInput when the value is unsupported.
func ParsePriority(s string) (Priority, error) {
	n := normalize(s)
	if n == "" {
		return PriorityMedium, nil
	}
	if p, ok := legacyPriorities[n]; ok {
		return p, nil
	}
	p := Priority(n)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid priority: "+s)
	}
	return p, nil
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func (p Priority) String() string {
	return string(p)
}

// ParseStatusTag constructs a StatusTag from external input such as a CLI flag.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseStatusTag(s string) (StatusTag, error) {
	n := normalize(s)
	if n == "" {
		return StatusUnknown, dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	t := StatusTag(n)
	if !t.IsValid() {
		return StatusUnknown, dErrors.New(dErrors.CodeInvalidInput, "invalid status: "+s)
	}
	return t, nil
}

func (t StatusTag) IsValid() bool {
	return validStatuses[t]
}

// IsObtained reports whether the tag is one of the three OBTAINED_* tags.
func (t StatusTag) IsObtained() bool {
	switch t {
	case StatusObtainedActive, StatusObtainedExpiringSoon, StatusObtainedExpired:
		return true
	}
	return false
}

func (t StatusTag) String() string {
	return string(t)
}
