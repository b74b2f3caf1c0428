package entity

import "errors"

var (
	// ErrNotFound is returned when a lookup by id, flight number or role has no match
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a mutation payload is rejected before any state changes
	ErrInvalidInput = errors.New("invalid input")
)
