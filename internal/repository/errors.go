package repository

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrNotOwner is returned when a mutation is attempted by a non-owner.
	ErrNotOwner = errors.New("repository: not the owner")
	// ErrAlreadyCancelled is returned when mutating a cancelled meeting.
	ErrAlreadyCancelled = errors.New("repository: meeting already cancelled")
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("repository: email already registered")
)
