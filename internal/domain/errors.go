package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrVersionConflict indicates a concurrent writer won the
	// read-modify-write race; the caller should reload and retry.
	ErrVersionConflict = errors.New("version conflict")
)
