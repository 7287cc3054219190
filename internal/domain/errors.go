package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the profile editing state machine.
var (
	ErrNotEditing   = errors.New("profile is not being edited")
	ErrSaveInFlight = errors.New("a profile save is already in progress")
	ErrClosed       = errors.New("profile view has been closed")
	ErrNotFound     = errors.New("requested resource not found")
)
