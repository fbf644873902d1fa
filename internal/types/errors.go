package types

import "errors"

// Sentinel errors for Treeline operations.
var (
	// ErrSchemaNotRegistered indicates a rule-type identifier has no node
	// path schema in the registry. Not retried; a packaging or wiring defect.
	ErrSchemaNotRegistered = errors.New("no node path schema registered for rule type")

	// ErrValueFormat indicates a tuple value could not be parsed into the
	// target field's declared type. A single corrupted field likely means a
	// corrupted configuration snapshot, so decoding fails as a whole.
	ErrValueFormat = errors.New("tuple value format error")

	// ErrBadDescriptor indicates an invalid field descriptor or type entry
	// was supplied at registration time.
	ErrBadDescriptor = errors.New("invalid tuple descriptor registration")

	// ErrSnapshotNotFound indicates no tuple snapshot exists for the
	// requested namespace.
	ErrSnapshotNotFound = errors.New("tuple snapshot not found")
)
