package usecase

import "errors"

var (
	// ErrRelationshipNotFound is returned when no relationship has the requested id.
	ErrRelationshipNotFound = errors.New("relationship not found")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidStatus is returned for a status other than "on track" or "strained".
	ErrInvalidStatus = errors.New("invalid status")
)
