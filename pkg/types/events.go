package types

import "encoding/json"

// Realtime event names.
const (
	EventJoinRoom     = "joinRoom"
	EventSendMessage  = "sendMessage"
	EventMessage      = "message"
	EventNotification = "notification"
	EventJoined       = "joined"
	EventError        = "error"
)

// Envelope is the frame exchanged over the realtime channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundEnvelope is the server-side frame with an already typed payload.
type OutboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// JoinRoomRequest is the payload of joinRoom.
type JoinRoomRequest struct {
	CourseID string `json:"courseId" validate:"required,max=64"`
}

// SendMessageRequest is the payload of sendMessage.
type SendMessageRequest struct {
	CourseID string `json:"courseId" validate:"required,max=64"`
	UserID   string `json:"userId" validate:"omitempty,max=64"`
	Message  string `json:"message"`
}

// JoinedEvent acknowledges a successful joinRoom.
type JoinedEvent struct {
	CourseID string `json:"courseId"`
}

// ErrorEvent reports a failed operation to the originating connection only.
type ErrorEvent struct {
	Event   string `json:"event"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
