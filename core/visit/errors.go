package visit

import "errors"

var (
	ErrRecordingDisabled = errors.New("user visit recording is disabled")
	ErrInvalidRequest    = errors.New("request cannot be fingerprinted")
	ErrAnonymous         = errors.New("request has no authenticated identity")
	ErrDuplicate         = errors.New("visit already recorded")
	ErrTransient         = errors.New("visit could not be persisted")
	ErrNotFound          = errors.New("visit not found")
	ErrInvalidLogLevel   = errors.New("invalid duplicate log level")
	ErrInvalidRecord     = errors.New("invalid visit record")
	ErrMissingStore      = errors.New("visit store is required")
)
