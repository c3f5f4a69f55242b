// Package api exposes the REST endpoints, the realtime upgrade route and the health check.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"coursechat/internal/auth"
	"coursechat/internal/course"
	"coursechat/internal/notification"
	"coursechat/internal/transcript"
	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"
)

// HealthChecker reports whether the primary store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatsProvider exposes live connection counts.
type StatsProvider interface {
	GetStats() map[string]int
}

// Dependencies are the collaborators served over HTTP. Realtime may be nil.
type Dependencies struct {
	Courses       *course.Service
	Notifications *notification.Dispatcher
	Messages      interfaces.MessageStore
	Health        HealthChecker
	Stats         StatsProvider
	Realtime      http.Handler
	Tokens        auth.Validator
}

// Server is a thin HTTP layer. It decodes requests, calls the services and maps errors to statuses.
type Server struct {
	courses       *course.Service
	notifications *notification.Dispatcher
	messages      interfaces.MessageStore
	health        HealthChecker
	stats         StatsProvider
	system        *systemStats
	log           *slog.Logger
	router        *http.ServeMux
}

func NewServer(deps Dependencies, log *slog.Logger) *Server {
	s := &Server{
		courses:       deps.Courses,
		notifications: deps.Notifications,
		messages:      deps.Messages,
		health:        deps.Health,
		stats:         deps.Stats,
		system:        newSystemStats(),
		log:           log,
		router:        http.NewServeMux(),
	}
	s.setupRoutes(deps.Realtime, auth.Middleware(deps.Tokens, log))
	return s
}

func (s *Server) setupRoutes(realtime http.Handler, authenticated func(http.Handler) http.Handler) {
	api := func(pattern string, h http.HandlerFunc) {
		s.router.Handle(pattern, s.corsMiddleware(s.jsonMiddleware(authenticated(h))))
	}

	api("POST /api/courses", s.createCourse)
	api("GET /api/courses", s.listCourses)
	api("GET /api/courses/tutor", s.listTutorCourses)
	api("GET /api/courses/{id}", s.getCourse)
	api("PUT /api/courses/{id}", s.updateCourse)
	api("DELETE /api/courses/{id}", s.deleteCourse)
	api("POST /api/courses/{id}/videos", s.addVideo)
	api("PUT /api/courses/{id}/videos/reorder", s.reorderVideos)
	api("DELETE /api/courses/{id}/videos/{videoId}", s.deleteVideo)
	api("POST /api/courses/{id}/videos/{videoId}/transcript", s.generateTranscript)
	api("POST /api/courses/{id}/enroll", s.enroll)
	api("GET /api/courses/{id}/enrollments", s.listCourseEnrollments)
	api("GET /api/courses/{id}/messages", s.listMessages)

	api("GET /api/enrollments", s.listMyEnrollments)
	api("PUT /api/enrollments/{id}/progress", s.updateProgress)

	api("GET /api/notifications", s.listNotifications)
	api("GET /api/notifications/unread-count", s.unreadCount)
	api("PUT /api/notifications/{id}/read", s.markRead)
	api("PUT /api/notifications/read-all", s.markAllRead)

	s.router.Handle("OPTIONS /api/", s.corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	s.router.Handle("GET /health", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.healthCheck))))

	if realtime != nil {
		s.router.Handle("GET /ws", authenticated(realtime))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Database    string         `json:"database"`
	Connections map[string]int `json:"connections"`
	System      map[string]any `json:"system"`
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCourseRequest
	if !s.decode(w, r, &req) {
		return
	}
	created, err := s.courses.CreateCourse(r.Context(), s.actor(r), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, created)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	list, err := s.courses.ListCourses(r.Context())
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.courses.GetCourse(r.Context(), r.PathValue("id"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) listTutorCourses(w http.ResponseWriter, r *http.Request) {
	list, err := s.courses.ListTutorCourses(r.Context(), s.identity(r))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateCourseRequest
	if !s.decode(w, r, &req) {
		return
	}
	updated, err := s.courses.UpdateCourse(r.Context(), s.actor(r), r.PathValue("id"), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.courses.DeleteCourse(r.Context(), s.actor(r), r.PathValue("id")); err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

func (s *Server) addVideo(w http.ResponseWriter, r *http.Request) {
	var req types.AddVideoRequest
	if !s.decode(w, r, &req) {
		return
	}
	video, err := s.courses.AddVideo(r.Context(), s.actor(r), r.PathValue("id"), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, video)
}

func (s *Server) deleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.courses.DeleteVideo(r.Context(), s.actor(r), r.PathValue("id"), r.PathValue("videoId")); err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "Video deleted"})
}

func (s *Server) reorderVideos(w http.ResponseWriter, r *http.Request) {
	var req types.ReorderVideosRequest
	if !s.decode(w, r, &req) {
		return
	}
	reordered, err := s.courses.ReorderVideos(r.Context(), s.actor(r), r.PathValue("id"), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, reordered)
}

func (s *Server) generateTranscript(w http.ResponseWriter, r *http.Request) {
	video, err := s.courses.GenerateTranscript(r.Context(), s.actor(r), r.PathValue("id"), r.PathValue("videoId"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, video)
}

func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	enrollment, err := s.courses.Enroll(r.Context(), s.actor(r), r.PathValue("id"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, enrollment)
}

func (s *Server) listCourseEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := s.courses.ListCourseEnrollments(r.Context(), s.identity(r), r.PathValue("id"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) listMyEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := s.courses.ListMyEnrollments(r.Context(), s.identity(r))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) updateProgress(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProgressRequest
	if !s.decode(w, r, &req) {
		return
	}
	enrollment, err := s.courses.UpdateProgress(r.Context(), s.actor(r), r.PathValue("id"), req.Progress)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, enrollment)
}

// listMessages returns the course history, oldest first. Only participants may read it.
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	participants, err := s.courses.GetCourseParticipants(r.Context(), courseID)
	if err != nil {
		s.sendError(w, err)
		return
	}
	if !participants.Includes(s.identity(r).ID) {
		s.sendError(w, types.NewAuthorizationError("not a participant of course %s", courseID))
		return
	}

	messages, err := s.messages.GetCourseMessages(r.Context(), courseID)
	if err != nil {
		s.sendError(w, types.NewPersistenceError("list messages", err))
		return
	}
	s.respond(w, http.StatusOK, messages)
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := s.notifications.List(r.Context(), s.identity(r).ID)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.notifications.UnreadCount(r.Context(), s.identity(r).ID)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, UnreadCountResponse{Count: count})
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.notifications.MarkRead(r.Context(), r.PathValue("id"), s.identity(r).ID)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, n)
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	list, err := s.notifications.MarkAllRead(r.Context(), s.identity(r).ID)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.respond(w, http.StatusOK, list)
}

// GET /health: 503 when the database is unreachable.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	dbStatus := "healthy"
	if err := s.health.HealthCheck(ctx); err != nil {
		status = "unhealthy"
		dbStatus = fmt.Sprintf("error: %v", err)
	}

	connections := map[string]int{}
	if s.stats != nil {
		connections = s.stats.GetStats()
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	s.respond(w, code, HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC(),
		Database:    dbStatus,
		Connections: connections,
		System:      s.system.snapshot(s.log),
	})
}

func (s *Server) identity(r *http.Request) types.User {
	identity, _ := auth.IdentityFrom(r.Context())
	return *identity.User()
}

// actor is the identity of a mutating request, mirrored into the user table first.
func (s *Server) actor(r *http.Request) types.User {
	user := s.identity(r)
	if err := s.courses.EnsureUser(r.Context(), user); err != nil {
		s.log.Warn("Failed to mirror user", "user", user.ID, "err", err)
	}
	return user
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendError(w, types.NewValidationError(errors.New("invalid JSON body")))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debug("Failed to write response", "err", err)
	}
}

// sendError maps domain errors onto HTTP statuses.
func (s *Server) sendError(w http.ResponseWriter, err error) {
	code, status, message := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "status", status, "err", err)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	})
}

func classify(err error) (code string, status int, message string) {
	var validation *types.ValidationError
	switch {
	case errors.As(err, &validation):
		return validation.Code, http.StatusBadRequest, err.Error()
	case errors.Is(err, interfaces.ErrAlreadyEnrolled):
		return types.CodeValidation, http.StatusBadRequest, "Already enrolled"
	case types.IsAuthorization(err):
		return types.CodeUnauthorized, http.StatusForbidden, err.Error()
	case errors.Is(err, interfaces.ErrCourseNotFound),
		errors.Is(err, interfaces.ErrVideoNotFound),
		errors.Is(err, interfaces.ErrEnrollmentNotFound),
		errors.Is(err, interfaces.ErrNotificationNotFound),
		errors.Is(err, interfaces.ErrUserNotFound):
		return types.CodeNotFound, http.StatusNotFound, err.Error()
	case errors.Is(err, transcript.ErrNotConfigured):
		return types.CodeInternalError, http.StatusServiceUnavailable, err.Error()
	case types.IsPersistence(err):
		return types.CodePersistence, http.StatusInternalServerError, "storage failure"
	default:
		return types.CodeInternalError, http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
