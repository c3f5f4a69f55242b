package interfaces

// Connection is a realtime client connection bound to one authenticated user.
// WriteJSON must be safe for concurrent use.
type Connection interface {
	WriteJSON(v any) error
	Close() error
	GetUserID() string
	GetName() string
	GetRole() string
}
