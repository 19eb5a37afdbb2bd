package service

import "errors"

// Validation failures returned to callers for direct display. None of
// them leaves partial state behind.
var (
	ErrEmptyKey        = errors.New("activation key is empty")
	ErrInvalidKey      = errors.New("unknown activation key")
	ErrMachineMismatch = errors.New("license is locked to another machine")
	ErrEmptyClientName = errors.New("client name is required")
	ErrProtectedKey    = errors.New("the master key cannot be revoked")
)
