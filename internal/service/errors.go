package service

import "errors"

var (
	// ErrCooldown is returned when a user verifies again inside the cooldown window
	ErrCooldown = errors.New("verification cooldown active")
	// ErrInactive is returned when verifying a parlay that is no longer active
	ErrInactive = errors.New("parlay is not active")
	// ErrInvalidInput wraps request validation failures
	ErrInvalidInput = errors.New("invalid input")
)
