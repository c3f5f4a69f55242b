package types

import (
	"time"
)

// User roles carried in identity tokens.
const (
	RoleTutor   = "tutor"
	RoleStudent = "student"
)

// NotificationKind enumerates the events that produce a notification row.
type NotificationKind string

const (
	NotificationNewMessage NotificationKind = "new_message"
	NotificationEnrollment NotificationKind = "enrollment"
	NotificationOther      NotificationKind = "other"
)

// IsValid reports whether k is one of the known kinds.
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationNewMessage, NotificationEnrollment, NotificationOther:
		return true
	default:
		return false
	}
}

// User mirrors the identity supplied by the auth layer.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// UnknownAuthorName is shown when no display name was recorded for an author.
const UnknownAuthorName = "Unknown"

// Author is the display projection of a message author.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewAuthor(id, name string) Author {
	if name == "" {
		name = UnknownAuthorName
	}
	return Author{ID: id, Name: name}
}

// Message is an append-only chat entry scoped to a course.
// Content and author never change after creation.
type Message struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	AuthorID  string    `json:"-"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a per-user record whose only mutable field is Read.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId"`
	Kind        NotificationKind `json:"type"`
	CourseID    *string          `json:"courseId,omitempty"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Course is a tutor-owned collection of ordered videos.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	TutorID     string    `json:"tutorId"`
	Videos      []Video   `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Video belongs to exactly one course; Order is 1-based and dense.
type Video struct {
	ID         string `json:"id"`
	CourseID   string `json:"-"`
	Title      string `json:"title"`
	VideoURL   string `json:"videoUrl"`
	Transcript string `json:"transcript"`
	Order      int    `json:"order"`
}

// Enrollment links a student to a course. Unique per (student, course).
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	CourseID   string    `json:"courseId"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Student    *Author   `json:"student,omitempty"`
}

// Participants is the recipient universe for course-level notifications.
type Participants struct {
	TutorID    string   `json:"tutorId"`
	StudentIDs []string `json:"studentIds"`
}

// Includes reports whether userID is the tutor or an enrolled student.
func (p Participants) Includes(userID string) bool {
	if userID == "" {
		return false
	}
	if p.TutorID == userID {
		return true
	}
	for _, id := range p.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// All returns the tutor followed by every student.
func (p Participants) All() []string {
	all := make([]string, 0, len(p.StudentIDs)+1)
	if p.TutorID != "" {
		all = append(all, p.TutorID)
	}
	return append(all, p.StudentIDs...)
}
