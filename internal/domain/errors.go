package domain

import "errors"

// Sentinel errors shared by the engine. Callers match them with errors.Is;
// operations wrap them with context using fmt.Errorf("...: %w", err).
var (
	// Negative or non-finite distance, malformed observation or rate table.
	ErrInvalidInput = errors.New("invalid input")

	// Neighbor lookup on a reference id that never appears as id_start.
	ErrReferenceNotFound = errors.New("reference location not found")

	// A start slot matched no time window (or more than one).
	ErrUnhandledTimeWindow = errors.New("unhandled time window")

	// Matrix lookup on an id outside the matrix.
	ErrUnknownLocation = errors.New("unknown location id")

	// An externally supplied slot sequence ran out before the records did.
	ErrSlotsExhausted = errors.New("slot source exhausted")
)
