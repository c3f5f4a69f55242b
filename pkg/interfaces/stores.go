//go:generate go run go.uber.org/mock/mockgen -source=stores.go -destination=../../internal/mocks/mock_stores.go -package=mocks
package interfaces

import (
	"context"

	"coursechat/pkg/types"
)

// MessageStore is the append-only chat log keyed by course.
type MessageStore interface {
	// StoreMessage persists a new message. Messages are never updated.
	StoreMessage(ctx context.Context, message *types.Message) error

	// GetCourseMessages returns a course's messages ordered by CreatedAt ascending.
	GetCourseMessages(ctx context.Context, courseID string) ([]*types.Message, error)
}

// NotificationStore persists per-user notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *types.Notification) error
	GetNotification(ctx context.Context, notificationID string) (*types.Notification, error)

	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string) ([]*types.Notification, error)

	// MarkNotificationRead flips read to true and returns the updated row.
	MarkNotificationRead(ctx context.Context, notificationID string) (*types.Notification, error)

	// MarkAllNotificationsRead flips every unread row of the user and returns the full list.
	MarkAllNotificationsRead(ctx context.Context, userID string) ([]*types.Notification, error)

	// CountUnread is computed from the rows on every call.
	CountUnread(ctx context.Context, userID string) (int, error)
}

// CourseStore persists courses, their videos and enrollments.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *types.Course) error
	GetCourse(ctx context.Context, courseID string) (*types.Course, error)
	ListCourses(ctx context.Context) ([]*types.Course, error)
	ListCoursesByTutor(ctx context.Context, tutorID string) ([]*types.Course, error)
	// UpdateCourse saves title, description and thumbnail.
	UpdateCourse(ctx context.Context, course *types.Course) error
	// DeleteCourse removes the course with its videos and enrollments.
	DeleteCourse(ctx context.Context, courseID string) error

	AddVideo(ctx context.Context, video *types.Video) error
	DeleteVideo(ctx context.Context, courseID, videoID string) error
	// ReorderVideos assigns positions 1..n following videoIDs.
	ReorderVideos(ctx context.Context, courseID string, videoIDs []string) error
	UpdateTranscript(ctx context.Context, courseID, videoID, transcript string) error

	// CreateEnrollment returns ErrAlreadyEnrolled for a duplicate (student, course).
	CreateEnrollment(ctx context.Context, enrollment *types.Enrollment) error
	GetEnrollment(ctx context.Context, enrollmentID string) (*types.Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]*types.Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*types.Enrollment, error)
	UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, progress int) error
}

// UserStore mirrors identities seen through the auth layer.
type UserStore interface {
	UpsertUser(ctx context.Context, user *types.User) error
	GetUser(ctx context.Context, userID string) (*types.User, error)
}

// ParticipantsProvider resolves who takes part in a course.
type ParticipantsProvider interface {
	GetCourseParticipants(ctx context.Context, courseID string) (types.Participants, error)
}

// EventPublisher forwards persisted events to an external stream.
type EventPublisher interface {
	PublishMessage(ctx context.Context, message *types.Message) error
	PublishNotification(ctx context.Context, notification *types.Notification) error
	Close() error
}
