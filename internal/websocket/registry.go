package websocket

import (
	"sync"

	"coursechat/pkg/interfaces"

	"github.com/samber/lo"
)

// Registry tracks live connections by user and by course room.
// A connection is in at most one room; joining another room moves it.
// Nothing here is persisted.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]map[interfaces.Connection]struct{} // userID -> connections
	rooms  map[string]map[interfaces.Connection]struct{} // courseID -> connections
	roomOf map[interfaces.Connection]string
}

func NewRegistry() *Registry {
	return &Registry{
		users:  make(map[string]map[interfaces.Connection]struct{}),
		rooms:  make(map[string]map[interfaces.Connection]struct{}),
		roomOf: make(map[interfaces.Connection]string),
	}
}

// Register indexes a freshly authenticated connection by its user.
// A user may hold several connections at once.
func (r *Registry) Register(conn interfaces.Connection) error {
	if conn == nil {
		return ErrNilConnection
	}
	userID := conn.GetUserID()
	if userID == "" {
		return ErrMissingIdentity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.users[userID] == nil {
		r.users[userID] = make(map[interfaces.Connection]struct{})
	}
	r.users[userID][conn] = struct{}{}
	return nil
}

// Unregister removes the connection from its room and from the user index.
// It returns the room the connection was in, if any. Safe to call repeatedly.
func (r *Registry) Unregister(conn interfaces.Connection) string {
	if conn == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.leaveLocked(conn)

	userID := conn.GetUserID()
	if conns, ok := r.users[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(r.users, userID)
		}
	}
	return room
}

// Join moves conn into courseID's room and returns the room it left ("" if none).
func (r *Registry) Join(courseID string, conn interfaces.Connection) (string, error) {
	if conn == nil {
		return "", ErrNilConnection
	}
	if courseID == "" {
		return "", ErrEmptyCourseID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[conn.GetUserID()][conn]; !ok {
		return "", ErrNotRegistered
	}

	previous := r.leaveLocked(conn)

	if r.rooms[courseID] == nil {
		r.rooms[courseID] = make(map[interfaces.Connection]struct{})
	}
	r.rooms[courseID][conn] = struct{}{}
	r.roomOf[conn] = courseID
	return previous, nil
}

func (r *Registry) leaveLocked(conn interfaces.Connection) string {
	room, ok := r.roomOf[conn]
	if !ok {
		return ""
	}
	delete(r.roomOf, conn)
	if members, ok := r.rooms[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	return room
}

// MembersOf returns a snapshot of the room. Later membership changes do not affect it.
func (r *Registry) MembersOf(courseID string) []interfaces.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.rooms[courseID])
}

// RoomOf reports the room conn is currently in.
func (r *Registry) RoomOf(conn interfaces.Connection) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.roomOf[conn]
	return room, ok
}

// UserConnections returns a snapshot of every live connection of userID,
// regardless of room.
func (r *Registry) UserConnections(userID string) []interfaces.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.users[userID])
}

func (r *Registry) GetStats() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, conns := range r.users {
		total += len(conns)
	}
	return map[string]int{
		"total_connections": total,
		"active_users":      len(r.users),
		"active_rooms":      len(r.rooms),
	}
}

// CloseAll closes every registered connection and returns how many there were.
// Read loops observe the close and unregister on their own.
func (r *Registry) CloseAll() int {
	r.mu.RLock()
	var all []interfaces.Connection
	for _, conns := range r.users {
		all = append(all, lo.Keys(conns)...)
	}
	r.mu.RUnlock()

	for _, conn := range all {
		_ = conn.Close()
	}
	return len(all)
}
