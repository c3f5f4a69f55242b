package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// createTestConnection returns a server-side Connection and the client end talking to it.
func createTestConnection(t *testing.T) (*Connection, *websocket.Conn) {
	t.Helper()
	serverConns := make(chan *websocket.Conn, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(server.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	var serverConn *websocket.Conn
	select {
	case serverConn = <-serverConns:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
	}

	conn := NewConnection(serverConn, "alice", "Alice", "student", time.Second, 10)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, client
}

func TestConnection_WriteJSONDelivers(t *testing.T) {
	req := require.New(t)
	conn, client := createTestConnection(t)

	req.NoError(conn.WriteJSON(map[string]string{"event": "message", "content": "hello"}))
	req.NoError(conn.WriteJSON(map[string]string{"event": "message", "content": "world"}))

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first, second map[string]string
	req.NoError(client.ReadJSON(&first))
	req.NoError(client.ReadJSON(&second))
	req.Equal("hello", first["content"])
	req.Equal("world", second["content"], "frames keep their write order")
}

func TestConnection_Identity(t *testing.T) {
	req := require.New(t)
	conn, _ := createTestConnection(t)

	req.Equal("alice", conn.GetUserID())
	req.Equal("Alice", conn.GetName())
	req.Equal("student", conn.GetRole())
}

func TestConnection_WriteAfterClose(t *testing.T) {
	req := require.New(t)
	conn, _ := createTestConnection(t)

	req.NoError(conn.Close())
	req.NoError(conn.Close(), "close is idempotent")
	req.ErrorIs(conn.WriteJSON(map[string]string{"a": "b"}), ErrConnectionClosed)

	select {
	case <-conn.Done():
	default:
		t.Fatal("Done must be closed after Close")
	}
}

func TestConnection_InvalidJSON(t *testing.T) {
	conn, _ := createTestConnection(t)
	require.ErrorIs(t, conn.WriteJSON(make(chan int)), ErrInvalidJSON)
}

func TestConnection_Ping(t *testing.T) {
	req := require.New(t)
	conn, client := createTestConnection(t)

	pinged := make(chan struct{}, 1)
	client.SetPingHandler(func(string) error {
		pinged <- struct{}{}
		return nil
	})
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	req.NoError(conn.Ping())
	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatal("client never saw the ping")
	}
}
