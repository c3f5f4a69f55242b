package types

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const MaxContentLength = 4000

var (
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	validate    = validator.New()
)

// ValidateStruct runs the struct tag rules and wraps failures as *ValidationError.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// NormalizeContent trims surrounding whitespace and rejects empty or oversized text.
func NormalizeContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", NewValidationError(ErrEmptyContent)
	}
	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return "", NewValidationError(ErrContentTooLong)
	}
	return trimmed, nil
}

// IsValidUserID checks if a user ID meets format requirements.
func IsValidUserID(userID string) bool {
	if len(userID) < 1 || len(userID) > 64 {
		return false
	}
	return userIDRegex.MatchString(userID)
}

// IsValidRole accepts the two roles the platform knows about.
func IsValidRole(role string) bool {
	return role == RoleTutor || role == RoleStudent
}

// Validate checks a notification before it is persisted.
func (n *Notification) Validate() error {
	if n.RecipientID == "" {
		return NewValidationError(ErrInvalidRecipient)
	}
	if !n.Kind.IsValid() {
		return NewValidationError(ErrInvalidKind)
	}
	if strings.TrimSpace(n.Message) == "" {
		return NewValidationError(ErrEmptyContent)
	}
	return nil
}

// CreateCourseRequest is the body of POST /api/courses.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url"`
}

// UpdateCourseRequest is the body of PUT /api/courses/{id}. Nil fields are left unchanged.
type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=5000"`
	Thumbnail   *string `json:"thumbnail" validate:"omitnil,url"`
}

// ReorderVideosRequest is the body of PUT /api/courses/{id}/videos/reorder.
// It lists every video of the course in the new order.
type ReorderVideosRequest struct {
	VideoIDs []string `json:"videoIds" validate:"required,dive,required"`
}

// AddVideoRequest is the body of POST /api/courses/{id}/videos.
type AddVideoRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	VideoURL string `json:"videoUrl" validate:"required,url"`
}

// UpdateProgressRequest is the body of PUT /api/enrollments/{id}/progress.
type UpdateProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}
