package course

import "errors"

var (
	ErrNilStore          = errors.New("course store is required")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrInvalidVideoOrder = errors.New("video order must list every video of the course exactly once")
)
