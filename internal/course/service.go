// Package course manages courses, their videos and enrollments, and answers
// who participates in a course.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"coursechat/internal/transcript"
	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Notifier delivers a notification to one user.
type Notifier interface {
	Notify(ctx context.Context, recipientID string, kind types.NotificationKind, courseID *string, message string) (*types.Notification, error)
}

// Service implements course management and the participants lookup used by chat.
type Service struct {
	courses     interfaces.CourseStore
	users       interfaces.UserStore
	notifier    Notifier
	transcripts transcript.Generator
	log         *slog.Logger
	now         func() time.Time

	participants map[string]types.Participants // courseID -> tutor + enrolled students
	generations  map[string]uint64             // bumped on every invalidation
	mu           sync.RWMutex
}

func NewService(courses interfaces.CourseStore, users interfaces.UserStore, notifier Notifier, transcripts transcript.Generator, log *slog.Logger) (*Service, error) {
	if courses == nil || users == nil {
		return nil, ErrNilStore
	}
	if transcripts == nil {
		transcripts = transcript.Disabled{}
	}
	return &Service{
		courses:      courses,
		users:        users,
		notifier:     notifier,
		transcripts:  transcripts,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		participants: make(map[string]types.Participants),
		generations:  make(map[string]uint64),
	}, nil
}

// EnsureUser mirrors an authenticated identity into the user table.
// The write is skipped when the stored record already matches.
func (s *Service) EnsureUser(ctx context.Context, user types.User) error {
	if !types.IsValidUserID(user.ID) {
		return types.NewValidationError(types.ErrInvalidUserID)
	}

	stored, err := s.users.GetUser(ctx, user.ID)
	switch {
	case err == nil && *stored == user:
		return nil
	case err != nil && !errors.Is(err, interfaces.ErrUserNotFound):
		return types.NewPersistenceError("load user", err)
	}

	if err := s.users.UpsertUser(ctx, &user); err != nil {
		return types.NewPersistenceError("save user", err)
	}
	return nil
}

func (s *Service) CreateCourse(ctx context.Context, actor types.User, req types.CreateCourseRequest) (*types.Course, error) {
	if actor.Role != types.RoleTutor {
		return nil, types.NewAuthorizationError("only tutors can create courses")
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	course := &types.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		TutorID:     actor.ID,
		Videos:      []types.Video{},
		CreatedAt:   s.now(),
	}
	if err := s.courses.CreateCourse(ctx, course); err != nil {
		return nil, types.NewPersistenceError("create course", err)
	}

	s.log.Info("Created course", "id", course.ID, "tutor", actor.ID, "title", course.Title)
	return course, nil
}

func (s *Service) GetCourse(ctx context.Context, courseID string) (*types.Course, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, storeError("load course", err)
	}
	return course, nil
}

func (s *Service) ListCourses(ctx context.Context) ([]*types.Course, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, storeError("list courses", err)
	}
	return courses, nil
}

// ListTutorCourses returns the courses taught by the calling tutor.
func (s *Service) ListTutorCourses(ctx context.Context, actor types.User) ([]*types.Course, error) {
	if actor.Role != types.RoleTutor {
		return nil, types.NewAuthorizationError("only tutors have courses")
	}
	courses, err := s.courses.ListCoursesByTutor(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list tutor courses", err)
	}
	return courses, nil
}

// UpdateCourse applies the non-nil fields of req.
func (s *Service) UpdateCourse(ctx context.Context, actor types.User, courseID string, req types.UpdateCourseRequest) (*types.Course, error) {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if err := s.courses.UpdateCourse(ctx, course); err != nil {
		return nil, storeError("update course", err)
	}
	return course, nil
}

// DeleteCourse removes the course and forgets its participants.
func (s *Service) DeleteCourse(ctx context.Context, actor types.User, courseID string) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := s.courses.DeleteCourse(ctx, courseID); err != nil {
		return storeError("delete course", err)
	}
	s.invalidate(courseID)

	s.log.Info("Deleted course", "id", courseID, "tutor", actor.ID)
	return nil
}

// AddVideo appends a video at the end of the course's playlist.
func (s *Service) AddVideo(ctx context.Context, actor types.User, courseID string, req types.AddVideoRequest) (*types.Video, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	video := &types.Video{
		ID:       uuid.NewString(),
		CourseID: courseID,
		Title:    req.Title,
		VideoURL: req.VideoURL,
	}
	if err := s.courses.AddVideo(ctx, video); err != nil {
		return nil, storeError("add video", err)
	}
	return video, nil
}

func (s *Service) DeleteVideo(ctx context.Context, actor types.User, courseID, videoID string) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := s.courses.DeleteVideo(ctx, courseID, videoID); err != nil {
		return storeError("delete video", err)
	}
	return nil
}

// ReorderVideos sets the playlist order. req must be a permutation of the course's videos.
func (s *Service) ReorderVideos(ctx context.Context, actor types.User, courseID string, req types.ReorderVideosRequest) (*types.Course, error) {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	current := lo.Map(course.Videos, func(v types.Video, _ int) string { return v.ID })
	if len(req.VideoIDs) != len(current) || len(lo.Uniq(req.VideoIDs)) != len(current) || !lo.Every(current, req.VideoIDs) {
		return nil, types.NewValidationError(ErrInvalidVideoOrder)
	}

	if err := s.courses.ReorderVideos(ctx, courseID, req.VideoIDs); err != nil {
		return nil, storeError("reorder videos", err)
	}
	return s.GetCourse(ctx, courseID)
}

// GenerateTranscript asks the transcript generator for the video's text and stores it.
func (s *Service) GenerateTranscript(ctx context.Context, actor types.User, courseID, videoID string) (*types.Video, error) {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	video, ok := lo.Find(course.Videos, func(v types.Video) bool { return v.ID == videoID })
	if !ok {
		return nil, interfaces.ErrVideoNotFound
	}

	text, err := s.transcripts.Generate(ctx, video.VideoURL)
	if err != nil {
		return nil, err
	}
	if err := s.courses.UpdateTranscript(ctx, courseID, videoID, text); err != nil {
		return nil, storeError("save transcript", err)
	}

	video.CourseID = courseID
	video.Transcript = text
	return &video, nil
}

// Enroll registers a student in a course and tells the tutor about it.
// A failed notification does not undo the enrollment.
func (s *Service) Enroll(ctx context.Context, actor types.User, courseID string) (*types.Enrollment, error) {
	if actor.Role != types.RoleStudent {
		return nil, types.NewAuthorizationError("only students can enroll")
	}
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &types.Enrollment{
		ID:         uuid.NewString(),
		StudentID:  actor.ID,
		CourseID:   courseID,
		EnrolledAt: s.now(),
	}
	if err := s.courses.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, storeError("create enrollment", err)
	}
	s.invalidate(courseID)

	s.log.Info("Student enrolled", "course", courseID, "student", actor.ID)

	if s.notifier != nil {
		message := fmt.Sprintf("%s enrolled in %s", displayName(actor), course.Title)
		if _, err := s.notifier.Notify(ctx, course.TutorID, types.NotificationEnrollment, &course.ID, message); err != nil {
			s.log.Warn("Failed to notify tutor of enrollment", "course", courseID, "tutor", course.TutorID, "err", err)
		}
	}
	return enrollment, nil
}

// ListCourseEnrollments is restricted to the course's tutor.
func (s *Service) ListCourseEnrollments(ctx context.Context, actor types.User, courseID string) ([]*types.Enrollment, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	list, err := s.courses.ListEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, storeError("list enrollments", err)
	}
	return list, nil
}

func (s *Service) ListMyEnrollments(ctx context.Context, actor types.User) ([]*types.Enrollment, error) {
	list, err := s.courses.ListEnrollmentsByStudent(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list enrollments", err)
	}
	return list, nil
}

// UpdateProgress sets the watch progress of the caller's own enrollment.
func (s *Service) UpdateProgress(ctx context.Context, actor types.User, enrollmentID string, progress int) (*types.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, types.NewValidationError(ErrInvalidProgress)
	}

	enrollment, err := s.courses.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, storeError("load enrollment", err)
	}
	if enrollment.StudentID != actor.ID {
		return nil, types.NewAuthorizationError("enrollment %s belongs to another student", enrollmentID)
	}

	if err := s.courses.UpdateEnrollmentProgress(ctx, enrollmentID, progress); err != nil {
		return nil, storeError("update progress", err)
	}
	enrollment.Progress = progress
	return enrollment, nil
}

// GetCourseParticipants returns the tutor and enrolled students of a course.
// Results are cached until the next enrollment in that course. A load that
// raced with an invalidation is returned but not cached.
func (s *Service) GetCourseParticipants(ctx context.Context, courseID string) (types.Participants, error) {
	s.mu.RLock()
	cached, ok := s.participants[courseID]
	generation := s.generations[courseID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return types.Participants{}, storeError("load course", err)
	}
	enrollments, err := s.courses.ListEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return types.Participants{}, storeError("list enrollments", err)
	}

	participants := types.Participants{
		TutorID: course.TutorID,
		StudentIDs: lo.Uniq(lo.Map(enrollments, func(e *types.Enrollment, _ int) string {
			return e.StudentID
		})),
	}

	s.mu.Lock()
	if s.generations[courseID] == generation {
		s.participants[courseID] = participants
	}
	s.mu.Unlock()
	return participants, nil
}

// CachedCourses is the number of courses whose participants are cached.
func (s *Service) CachedCourses() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

func (s *Service) invalidate(courseID string) {
	s.mu.Lock()
	delete(s.participants, courseID)
	s.generations[courseID]++
	s.mu.Unlock()
}

// ownedCourse loads the course and checks that actor is its tutor.
func (s *Service) ownedCourse(ctx context.Context, actor types.User, courseID string) (*types.Course, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TutorID != actor.ID {
		return nil, types.NewAuthorizationError("course %s belongs to another tutor", courseID)
	}
	return course, nil
}

// storeError passes domain sentinels through and wraps everything else.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, interfaces.ErrCourseNotFound),
		errors.Is(err, interfaces.ErrVideoNotFound),
		errors.Is(err, interfaces.ErrEnrollmentNotFound),
		errors.Is(err, interfaces.ErrAlreadyEnrolled):
		return err
	default:
		return types.NewPersistenceError(op, err)
	}
}

func displayName(u types.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
