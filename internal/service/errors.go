package service

import (
	"errors"

	"github.com/meetsync/meetsync/internal/repository"
)

var (
	// ErrOutsideAvailability rejects a meeting outside the owner's enabled
	// windows for that weekday. The caller can pick another time.
	ErrOutsideAvailability = errors.New("selected time is outside availability")
	// ErrConflict rejects a meeting overlapping another scheduled meeting
	// of the same owner. No alternate slot is suggested.
	ErrConflict = errors.New("conflicting meeting found")
	// ErrValidation reports a malformed request field.
	ErrValidation = errors.New("invalid input")
	// ErrEmailInUse rejects registration with a taken email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials rejects a login with wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Storage-state errors surface unchanged from the repository transaction.
var (
	ErrNotFound         = repository.ErrNotFound
	ErrNotOwner         = repository.ErrNotOwner
	ErrAlreadyCancelled = repository.ErrAlreadyCancelled
)
