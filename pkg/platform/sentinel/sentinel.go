package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The snapshot store and loaders return
// these (optionally wrapped) so the engine facade can translate them into domain errors.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: a record with the same identifier already exists
// - ErrInvalidState: store or snapshot in the wrong state for the requested operation
//
// For validation errors (bad input, invariant violations), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
