package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"coursechat/internal/app"
	"coursechat/internal/auth"
	"coursechat/internal/config"
	"coursechat/pkg/types"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const frameTimeout = 5 * time.Second

type harness struct {
	t       *testing.T
	app     *app.Application
	baseURL string
}

// startApp boots the full application on a free loopback port with the
// given message storage backend.
func startApp(t *testing.T, storage string) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	t.Setenv("COURSECHAT_HTTP_HOST", "127.0.0.1")
	t.Setenv("COURSECHAT_HTTP_PORT", fmt.Sprint(port))
	t.Setenv("COURSECHAT_DATABASE_PATH", filepath.Join(dir, "coursechat.db"))
	t.Setenv("COURSECHAT_AUTH_JWT_SECRET", "integration-secret")
	t.Setenv("COURSECHAT_STORAGE_MESSAGES", storage)
	t.Setenv("COURSECHAT_STORAGE_BADGER_DIR", filepath.Join(dir, "messages"))

	cfg, err := config.Load("")
	require.NoError(t, err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()
	application, err := app.NewApplication(ctx, cfg, log)
	require.NoError(t, err)
	require.NoError(t, application.Start(ctx))
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, application.Stop(stopCtx))
	})

	return &harness{t: t, app: application, baseURL: "http://" + application.Addr()}
}

func (h *harness) token(userID, role, name string) string {
	h.t.Helper()
	token, err := h.app.Tokens().GenerateToken(auth.Identity{UserID: userID, Role: role, Name: name})
	require.NoError(h.t, err)
	return token
}

// do sends an authenticated JSON request and decodes the response into out when non-nil.
func (h *harness) do(method, path, token string, body, out any) int {
	h.t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&reader).Encode(body))
	}
	req, err := http.NewRequest(method, h.baseURL+path, &reader)
	require.NoError(h.t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type client struct {
	t    *testing.T
	conn *websocket.Conn
}

func (h *harness) dial(token string) *client {
	h.t.Helper()
	u := url.URL{Scheme: "ws", Host: h.app.Addr(), Path: "/ws", RawQuery: "token=" + url.QueryEscape(token)}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(h.t, err)
	_ = resp.Body.Close()
	h.t.Cleanup(func() { _ = conn.Close() })
	return &client{t: h.t, conn: conn}
}

func (c *client) emit(event string, data any) {
	c.t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(types.Envelope{Event: event, Data: raw}))
}

// next returns the first frame named event, skipping others.
func (c *client) next(event string) json.RawMessage {
	c.t.Helper()
	deadline := time.Now().Add(frameTimeout)
	for {
		require.NoError(c.t, c.conn.SetReadDeadline(deadline))
		var frame types.Envelope
		require.NoError(c.t, c.conn.ReadJSON(&frame), "waiting for %s", event)
		if frame.Event == event {
			return frame.Data
		}
	}
}

// silent asserts no frame named event arrives within wait.
func (c *client) silent(event string, wait time.Duration) {
	c.t.Helper()
	deadline := time.Now().Add(wait)
	for {
		require.NoError(c.t, c.conn.SetReadDeadline(deadline))
		var frame types.Envelope
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		require.NotEqual(c.t, event, frame.Event, "unexpected %s frame: %s", event, frame.Data)
	}
}

func (c *client) join(courseID string) {
	c.t.Helper()
	c.emit(types.EventJoinRoom, types.JoinRoomRequest{CourseID: courseID})
	var joined types.JoinedEvent
	require.NoError(c.t, json.Unmarshal(c.next(types.EventJoined), &joined))
	require.Equal(c.t, courseID, joined.CourseID)
}
