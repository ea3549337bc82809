package gamedb

import "errors"

var (
	// ErrNotFound is returned when a game or hand row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoRowsAffected is returned when a write matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
