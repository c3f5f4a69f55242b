package chat

import "errors"

var (
	ErrRateLimited    = errors.New("rate limit exceeded, slow down")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrNotParticipant = errors.New("not a participant of this course")
	ErrMissingStore   = errors.New("message store is required")
)
