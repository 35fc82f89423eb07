package lifecycle

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in the current status
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrGuardFailed is returned when every guard for a permitted trigger fails
	ErrGuardFailed = errors.New("guard condition failed")
)
