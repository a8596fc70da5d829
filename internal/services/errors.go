package services

import "errors"

var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("record not found")
	// ErrIDMismatch maps to 400: path id and body id disagree.
	ErrIDMismatch = errors.New("path and body id do not match")
	// ErrConflict maps to 500: a concurrent write collided and the record
	// still exists in an unexpected state.
	ErrConflict = errors.New("record was modified concurrently")
	// ErrInvalidCredentials maps to 401 with a deliberately generic message.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBadReference maps to 400: a vital points at a patient or device
	// that does not exist.
	ErrBadReference = errors.New("referenced record does not exist")
)
