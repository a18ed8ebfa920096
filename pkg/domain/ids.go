package domain

import (
	"bytes"

	"github.com/google/uuid"

	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// Typed identifiers keep people, catalog items and links from being mixed up
// at compile time. All three share the same parsing rules.
type (
	PersonID uuid.UUID
	ItemID   uuid.UUID
	LinkID   uuid.UUID
)

// NewPersonID, NewItemID and NewLinkID mint random identifiers for collaborators
// that create records.
func NewPersonID() PersonID { return PersonID(uuid.New()) }
func NewItemID() ItemID     { return ItemID(uuid.New()) }
func NewLinkID() LinkID     { return LinkID(uuid.New()) }

// ParsePersonID parses a person identifier from external input.
//
// Errors: CodeInvalidInput when the value is empty, malformed or the nil UUID.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person_id")
	return PersonID(u), err
}

// ParseItemID parses a catalog item identifier from external input.
func ParseItemID(s string) (ItemID, error) {
	u, err := parseUUID(s, "item_id")
	return ItemID(u), err
}

// ParseLinkID parses a link identifier from external input.
func ParseLinkID(s string) (LinkID, error) {
	u, err := parseUUID(s, "link_id")
	return LinkID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field+" format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}

func (id PersonID) String() string { return uuid.UUID(id).String() }
func (id ItemID) String() string   { return uuid.UUID(id).String() }
func (id LinkID) String() string   { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id LinkID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders IDs as canonical UUID strings in JSON and YAML output.
func (id PersonID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ItemID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id LinkID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

// Compare orders IDs by their byte representation. Drill-down and ranking
// results use it as the deterministic tie-breaker.
func (id PersonID) Compare(other PersonID) int { return bytes.Compare(id[:], other[:]) }
func (id ItemID) Compare(other ItemID) int     { return bytes.Compare(id[:], other[:]) }
func (id LinkID) Compare(other LinkID) int     { return bytes.Compare(id[:], other[:]) }
