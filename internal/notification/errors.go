package notification

import "errors"

var (
	ErrMissingRequester = errors.New("requesting user is required")
	ErrNilStore         = errors.New("notification store is required")
)
