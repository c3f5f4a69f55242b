package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"coursechat/internal/auth"
	"coursechat/internal/course"
	"coursechat/internal/database"
	"coursechat/internal/notification"
	"coursechat/internal/websocket"
	dbconfig "coursechat/pkg/database"
	"coursechat/pkg/types"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server     *Server
	db         *database.Manager
	tokens     *auth.TokenService
	dispatcher *notification.Dispatcher
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	cfg := dbconfig.DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "api.db")
	db, err := database.NewManager(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	registry := websocket.NewRegistry()
	dispatcher, err := notification.NewDispatcher(db, registry, nil, log)
	require.NoError(t, err)
	courses, err := course.NewService(db, db, dispatcher, nil, log)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	server := NewServer(Dependencies{
		Courses:       courses,
		Notifications: dispatcher,
		Messages:      db,
		Health:        db,
		Stats:         registry,
		Tokens:        tokens,
	}, log)
	return &testEnv{server: server, db: db, tokens: tokens, dispatcher: dispatcher}
}

func (e *testEnv) do(t *testing.T, method, path string, who auth.Identity, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if who.UserID != "" {
		token, err := e.tokens.GenerateToken(who)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var (
	tutor    = auth.Identity{UserID: "tutor-1", Name: "Ada", Role: types.RoleTutor}
	student  = auth.Identity{UserID: "student-1", Name: "Linus", Role: types.RoleStudent}
	stranger = auth.Identity{UserID: "student-2", Name: "Ken", Role: types.RoleStudent}
)

func TestServer_RequiresToken(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodGet, "/api/courses", auth.Identity{}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_CourseLifecycle(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)

	w := env.do(t, http.MethodPost, "/api/courses", student, types.CreateCourseRequest{Title: "Go"})
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal(types.CodeUnauthorized, decodeBody[ErrorResponse](t, w).Code)

	w = env.do(t, http.MethodPost, "/api/courses", tutor, types.CreateCourseRequest{})
	req.Equal(http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/courses", tutor, types.CreateCourseRequest{Title: "Go 101"})
	req.Equal(http.StatusCreated, w.Code)
	created := decodeBody[types.Course](t, w)
	req.Equal(tutor.UserID, created.TutorID)

	w = env.do(t, http.MethodPost, "/api/courses/"+created.ID+"/videos", tutor, types.AddVideoRequest{Title: "Intro", VideoURL: "https://v.example/1.mp4"})
	req.Equal(http.StatusCreated, w.Code)
	video := decodeBody[types.Video](t, w)
	req.Equal(1, video.Order)

	w = env.do(t, http.MethodPost, "/api/courses/"+created.ID+"/videos/"+video.ID+"/transcript", tutor, nil)
	req.Equal(http.StatusServiceUnavailable, w.Code)

	w = env.do(t, http.MethodGet, "/api/courses/"+created.ID, student, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Len(decodeBody[types.Course](t, w).Videos, 1)

	w = env.do(t, http.MethodGet, "/api/courses", student, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Len(decodeBody[[]types.Course](t, w), 1)

	w = env.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/videos/"+video.ID, student, nil)
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/videos/"+video.ID, tutor, nil)
	req.Equal(http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/courses/missing", student, nil)
	req.Equal(http.StatusNotFound, w.Code)
	req.Equal(types.CodeNotFound, decodeBody[ErrorResponse](t, w).Code)
}

func TestServer_CourseManagement(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)

	w := env.do(t, http.MethodPost, "/api/courses", tutor, types.CreateCourseRequest{Title: "Go 101"})
	req.Equal(http.StatusCreated, w.Code)
	created := decodeBody[types.Course](t, w)

	var videoIDs []string
	for _, title := range []string{"Intro", "Goroutines"} {
		w = env.do(t, http.MethodPost, "/api/courses/"+created.ID+"/videos", tutor, types.AddVideoRequest{Title: title, VideoURL: "https://v.example/" + title + ".mp4"})
		req.Equal(http.StatusCreated, w.Code)
		videoIDs = append(videoIDs, decodeBody[types.Video](t, w).ID)
	}

	w = env.do(t, http.MethodGet, "/api/courses/tutor", tutor, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Len(decodeBody[[]types.Course](t, w), 1)
	w = env.do(t, http.MethodGet, "/api/courses/tutor", student, nil)
	req.Equal(http.StatusForbidden, w.Code)

	title := "Go 102"
	w = env.do(t, http.MethodPut, "/api/courses/"+created.ID, tutor, types.UpdateCourseRequest{Title: &title})
	req.Equal(http.StatusOK, w.Code)
	req.Equal("Go 102", decodeBody[types.Course](t, w).Title)
	w = env.do(t, http.MethodPut, "/api/courses/"+created.ID, student, types.UpdateCourseRequest{Title: &title})
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/courses/"+created.ID+"/videos/reorder", tutor, types.ReorderVideosRequest{VideoIDs: []string{videoIDs[1], videoIDs[0]}})
	req.Equal(http.StatusOK, w.Code)
	req.Equal("Goroutines", decodeBody[types.Course](t, w).Videos[0].Title)
	w = env.do(t, http.MethodPut, "/api/courses/"+created.ID+"/videos/reorder", tutor, types.ReorderVideosRequest{VideoIDs: []string{videoIDs[0]}})
	req.Equal(http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/courses/"+created.ID+"/enroll", student, nil)
	req.Equal(http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/courses/"+created.ID, student, nil)
	req.Equal(http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodDelete, "/api/courses/"+created.ID, tutor, nil)
	req.Equal(http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/courses/"+created.ID, student, nil)
	req.Equal(http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, "/api/enrollments", student, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Empty(decodeBody[[]types.Enrollment](t, w))
}

func TestServer_EnrollmentFlow(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)

	w := env.do(t, http.MethodPost, "/api/courses", tutor, types.CreateCourseRequest{Title: "Go 101"})
	req.Equal(http.StatusCreated, w.Code)
	c := decodeBody[types.Course](t, w)

	w = env.do(t, http.MethodPost, "/api/courses/"+c.ID+"/enroll", student, nil)
	req.Equal(http.StatusCreated, w.Code)
	enrollment := decodeBody[types.Enrollment](t, w)

	w = env.do(t, http.MethodPost, "/api/courses/"+c.ID+"/enroll", student, nil)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal("Already enrolled", decodeBody[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodGet, "/api/courses/"+c.ID+"/enrollments", student, nil)
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/courses/"+c.ID+"/enrollments", tutor, nil)
	req.Equal(http.StatusOK, w.Code)
	list := decodeBody[[]types.Enrollment](t, w)
	req.Len(list, 1)
	req.Equal("Linus", list[0].Student.Name)

	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", stranger, types.UpdateProgressRequest{Progress: 10})
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", student, types.UpdateProgressRequest{Progress: 40})
	req.Equal(http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/enrollments", student, nil)
	req.Equal(http.StatusOK, w.Code)
	mine := decodeBody[[]types.Enrollment](t, w)
	req.Len(mine, 1)
	req.Equal(40, mine[0].Progress)

	// The tutor was told about the enrollment.
	w = env.do(t, http.MethodGet, "/api/notifications/unread-count", tutor, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(1, decodeBody[UnreadCountResponse](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/notifications", tutor, nil)
	notifications := decodeBody[[]types.Notification](t, w)
	req.Len(notifications, 1)
	req.Equal(types.NotificationEnrollment, notifications[0].Kind)
	req.Equal("Linus enrolled in Go 101", notifications[0].Message)
}

func TestServer_Notifications(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)
	ctx := context.Background()

	first, err := env.dispatcher.Notify(ctx, student.UserID, types.NotificationOther, nil, "first")
	req.NoError(err)
	_, err = env.dispatcher.Notify(ctx, student.UserID, types.NotificationOther, nil, "second")
	req.NoError(err)

	w := env.do(t, http.MethodPut, "/api/notifications/"+first.ID+"/read", stranger, nil)
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/notifications/"+first.ID+"/read", student, nil)
	req.Equal(http.StatusOK, w.Code)
	req.True(decodeBody[types.Notification](t, w).Read)

	w = env.do(t, http.MethodGet, "/api/notifications/unread-count", student, nil)
	req.Equal(1, decodeBody[UnreadCountResponse](t, w).Count)

	for range 2 {
		w = env.do(t, http.MethodPut, "/api/notifications/read-all", student, nil)
		req.Equal(http.StatusOK, w.Code)
		req.Len(decodeBody[[]types.Notification](t, w), 2)

		w = env.do(t, http.MethodGet, "/api/notifications/unread-count", student, nil)
		req.Zero(decodeBody[UnreadCountResponse](t, w).Count)
	}

	w = env.do(t, http.MethodPut, "/api/notifications/missing/read", student, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func TestServer_Messages(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)
	ctx := context.Background()

	w := env.do(t, http.MethodPost, "/api/courses", tutor, types.CreateCourseRequest{Title: "Go"})
	c := decodeBody[types.Course](t, w)

	base := time.Now().UTC()
	for i, content := range []string{"one", "two", "three"} {
		req.NoError(env.db.StoreMessage(ctx, &types.Message{
			ID:        content,
			CourseID:  c.ID,
			AuthorID:  tutor.UserID,
			Author:    types.Author{ID: tutor.UserID, Name: tutor.Name},
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	w = env.do(t, http.MethodGet, "/api/courses/"+c.ID+"/messages", student, nil)
	req.Equal(http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/courses/"+c.ID+"/messages", tutor, nil)
	req.Equal(http.StatusOK, w.Code)
	messages := decodeBody[[]types.Message](t, w)
	req.Len(messages, 3)
	req.Equal("one", messages[0].Content)
	req.Equal("three", messages[2].Content)
	req.Equal("Ada", messages[0].Author.Name)
}

func TestServer_Health(t *testing.T) {
	req := require.New(t)
	env := setupServer(t)

	w := env.do(t, http.MethodGet, "/health", auth.Identity{}, nil)
	req.Equal(http.StatusOK, w.Code)
	health := decodeBody[HealthResponse](t, w)
	req.Equal("healthy", health.Status)
	req.Contains(health.System, "goroutines")
	req.Contains(health.Connections, "total_connections")

	req.NoError(env.db.Close())
	w = env.do(t, http.MethodGet, "/health", auth.Identity{}, nil)
	req.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodOptions, "/api/courses", auth.Identity{}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{types.NewValidationError(types.ErrEmptyContent), http.StatusBadRequest},
		{types.NewAuthorizationError("nope"), http.StatusForbidden},
		{types.NewPersistenceError("store", errors.New("disk")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		_, status, _ := classify(tt.err)
		require.Equal(t, tt.status, status, tt.err.Error())
	}
}
