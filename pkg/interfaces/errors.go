package interfaces

import "errors"

// Common store errors used across components
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrVideoNotFound        = errors.New("video not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled")
)
