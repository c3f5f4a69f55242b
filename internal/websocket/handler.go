package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"coursechat/internal/auth"
	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"

	"github.com/gorilla/websocket"
)

const maxFrameSize = 64 * 1024

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

// EventRouter receives the lifecycle and inbound events of every connection.
// HandleEvent is called from the connection's read goroutine, one event at a time.
type EventRouter interface {
	Connect(ctx context.Context, conn interfaces.Connection) error
	HandleEvent(ctx context.Context, conn interfaces.Connection, envelope types.Envelope)
	Disconnect(conn interfaces.Connection)
}

// Settings controls keepalive and buffering of accepted connections.
type Settings struct {
	PingInterval time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BufferSize   int
}

func DefaultSettings() Settings {
	return Settings{
		PingInterval: 30 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		BufferSize:   100,
	}
}

// Handler upgrades authenticated requests and pumps frames into the EventRouter.
type Handler struct {
	router   EventRouter
	settings Settings
	log      *slog.Logger
}

func NewHandler(router EventRouter, settings Settings, log *slog.Logger) *Handler {
	return &Handler{router: router, settings: settings, log: log}
}

// HandleWebSocket expects auth.Middleware to have run.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn("WebSocket upgrade failed", "user_id", identity.UserID, "err", err)
		return
	}

	conn := NewConnection(wsConn, identity.UserID, identity.Name, identity.Role, h.settings.WriteTimeout, h.settings.BufferSize)

	if err := h.router.Connect(r.Context(), conn); err != nil {
		h.log.Error("Failed to register connection", "user_id", identity.UserID, "err", err)
		_ = conn.Close()
		return
	}

	h.log.Info("Client connected", "user_id", identity.UserID, "role", identity.Role)
	go h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *Connection) {
	defer func() {
		h.router.Disconnect(conn)
		_ = conn.Close()
		h.log.Info("Client disconnected", "user_id", conn.GetUserID())
	}()

	wsConn := conn.conn
	wsConn.SetReadLimit(maxFrameSize)
	_ = wsConn.SetReadDeadline(time.Now().Add(h.settings.ReadTimeout))
	wsConn.SetPongHandler(func(string) error {
		return wsConn.SetReadDeadline(time.Now().Add(h.settings.ReadTimeout))
	})

	go h.keepAlive(conn)

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("WebSocket read error", "user_id", conn.GetUserID(), "err", err)
			}
			return
		}

		var envelope types.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Event == "" {
			_ = conn.WriteJSON(types.OutboundEnvelope{
				Event: types.EventError,
				Data:  types.ErrorEvent{Code: types.CodeInvalidFrame, Message: "frame must be a JSON object with an event name"},
			})
			continue
		}

		h.router.HandleEvent(context.Background(), conn, envelope)
	}
}

func (h *Handler) keepAlive(conn *Connection) {
	ticker := time.NewTicker(h.settings.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				_ = conn.Close()
				return
			}
		case <-conn.Done():
			return
		}
	}
}
