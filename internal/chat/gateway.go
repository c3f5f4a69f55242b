// Package chat routes realtime course chat events: room joins, message
// persistence and broadcast, and new-message notifications.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"coursechat/internal/hub"
	"coursechat/internal/websocket"
	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const excerptLength = 80

// Notifier delivers a notification to one user.
type Notifier interface {
	Notify(ctx context.Context, recipientID string, kind types.NotificationKind, courseID *string, message string) (*types.Notification, error)
}

// UserMirror records identities seen on connect.
type UserMirror interface {
	EnsureUser(ctx context.Context, user types.User) error
}

// Dependencies are the collaborators of a Gateway. Users, Publisher and Hub are optional.
type Dependencies struct {
	Registry     *websocket.Registry
	Messages     interfaces.MessageStore
	Participants interfaces.ParticipantsProvider
	Notifier     Notifier
	Users        UserMirror
	Publisher    interfaces.EventPublisher
	Hub          *hub.Hub
}

type handlerFunc func(ctx context.Context, conn interfaces.Connection, data json.RawMessage) error

// Gateway implements websocket.EventRouter. Room membership is only ever
// mutated from here.
type Gateway struct {
	registry     *websocket.Registry
	messages     interfaces.MessageStore
	participants interfaces.ParticipantsProvider
	notifier     Notifier
	users        UserMirror
	publisher    interfaces.EventPublisher
	hub          *hub.Hub
	limiter      *RateLimiter
	log          *slog.Logger
	now          func() time.Time

	handlers map[string]handlerFunc
}

func NewGateway(deps Dependencies, limiter *RateLimiter, log *slog.Logger) (*Gateway, error) {
	if deps.Messages == nil || deps.Participants == nil {
		return nil, ErrMissingStore
	}
	if deps.Registry == nil {
		deps.Registry = websocket.NewRegistry()
	}
	if limiter == nil {
		limiter = NewRateLimiter(0, time.Minute)
	}

	g := &Gateway{
		registry:     deps.Registry,
		messages:     deps.Messages,
		participants: deps.Participants,
		notifier:     deps.Notifier,
		users:        deps.Users,
		publisher:    deps.Publisher,
		hub:          deps.Hub,
		limiter:      limiter,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
	g.handlers = map[string]handlerFunc{
		types.EventJoinRoom:    g.handleJoinRoom,
		types.EventSendMessage: g.handleSendMessage,
	}
	return g, nil
}

// Connect indexes a freshly authenticated connection.
func (g *Gateway) Connect(ctx context.Context, conn interfaces.Connection) error {
	if err := g.registry.Register(conn); err != nil {
		return err
	}
	if g.users != nil {
		user := types.User{ID: conn.GetUserID(), Name: conn.GetName(), Role: conn.GetRole()}
		if err := g.users.EnsureUser(ctx, user); err != nil {
			g.log.Warn("Failed to mirror user", "user", user.ID, "err", err)
		}
	}
	g.log.Debug("Connection registered", "user", conn.GetUserID())
	return nil
}

// HandleEvent dispatches one inbound frame. Failures are reported to conn only.
func (g *Gateway) HandleEvent(ctx context.Context, conn interfaces.Connection, envelope types.Envelope) {
	handler, ok := g.handlers[envelope.Event]
	if !ok {
		g.sendError(conn, envelope.Event, types.CodeUnknownEvent, fmt.Sprintf("%s: %q", ErrUnknownEvent, envelope.Event))
		return
	}
	if err := handler(ctx, conn, envelope.Data); err != nil {
		g.sendError(conn, envelope.Event, errorCode(err), err.Error())
	}
}

// Disconnect removes conn from its room and the user index. Idempotent.
func (g *Gateway) Disconnect(conn interfaces.Connection) {
	if room := g.registry.Unregister(conn); room != "" {
		g.log.Debug("Connection left room", "user", conn.GetUserID(), "course", room)
	}
}

func (g *Gateway) handleJoinRoom(ctx context.Context, conn interfaces.Connection, data json.RawMessage) error {
	var req types.JoinRoomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	return g.Join(ctx, conn, req.CourseID)
}

func (g *Gateway) handleSendMessage(ctx context.Context, conn interfaces.Connection, data json.RawMessage) error {
	var req types.SendMessageRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	_, err := g.Send(ctx, conn, req)
	return err
}

// Join moves conn into the course room, leaving any previous room.
// Only the course tutor and enrolled students may join.
func (g *Gateway) Join(ctx context.Context, conn interfaces.Connection, courseID string) error {
	if err := types.ValidateStruct(types.JoinRoomRequest{CourseID: courseID}); err != nil {
		return err
	}
	if err := g.authorize(ctx, conn.GetUserID(), courseID); err != nil {
		return err
	}

	previous, err := g.registry.Join(courseID, conn)
	if err != nil {
		return err
	}
	if previous != "" && previous != courseID {
		g.log.Debug("Connection switched room", "user", conn.GetUserID(), "from", previous, "to", courseID)
	}

	if err := conn.WriteJSON(types.OutboundEnvelope{Event: types.EventJoined, Data: types.JoinedEvent{CourseID: courseID}}); err != nil {
		g.log.Debug("Failed to acknowledge join", "user", conn.GetUserID(), "err", err)
	}
	return nil
}

// Send persists a message and then broadcasts the stored copy to every
// connection in the course room, the sender's included. Nothing is
// broadcast when persistence fails.
func (g *Gateway) Send(ctx context.Context, conn interfaces.Connection, req types.SendMessageRequest) (*types.Message, error) {
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}
	content, err := types.NormalizeContent(req.Message)
	if err != nil {
		return nil, err
	}

	userID := conn.GetUserID()
	if req.UserID != "" && req.UserID != userID {
		return nil, types.NewAuthorizationError("cannot send messages as %s", req.UserID)
	}
	participants, err := g.lookupParticipants(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !participants.Includes(userID) {
		return nil, types.NewAuthorizationError("%s: %s", ErrNotParticipant, req.CourseID)
	}
	if !g.limiter.Allow(userID) {
		return nil, &types.ValidationError{Code: types.CodeRateLimited, Err: ErrRateLimited}
	}

	message := &types.Message{
		ID:        uuid.NewString(),
		CourseID:  req.CourseID,
		AuthorID:  userID,
		Author:    types.NewAuthor(userID, conn.GetName()),
		Content:   content,
		CreatedAt: g.now(),
	}

	// The sender going away must not abort a write that has started.
	persistCtx := context.WithoutCancel(ctx)
	if err := g.messages.StoreMessage(persistCtx, message); err != nil {
		g.log.Error("Failed to persist message", "course", req.CourseID, "user", userID, "err", err)
		return nil, types.NewPersistenceError("store message", err)
	}

	g.broadcast(message)

	if g.publisher != nil {
		if err := g.publisher.PublishMessage(persistCtx, message); err != nil {
			g.log.Warn("Failed to publish message", "id", message.ID, "err", err)
		}
	}

	recipients := notificationRecipients(participants, message)
	if len(recipients) > 0 {
		g.scheduleNotifications(persistCtx, message, recipients)
	}
	return message, nil
}

// broadcast writes to a snapshot of the room. Dead connections are skipped.
func (g *Gateway) broadcast(message *types.Message) {
	frame := types.OutboundEnvelope{Event: types.EventMessage, Data: message}
	members := g.registry.MembersOf(message.CourseID)
	for _, member := range members {
		if err := member.WriteJSON(frame); err != nil {
			g.log.Debug("Dropped broadcast to connection", "user", member.GetUserID(), "course", message.CourseID, "err", err)
		}
	}
	g.log.Debug("Message broadcast", "id", message.ID, "course", message.CourseID, "members", len(members))
}

// notificationRecipients are the course participants other than the author,
// whether or not they are in the room.
func notificationRecipients(participants types.Participants, message *types.Message) []string {
	return lo.Without(lo.Uniq(participants.All()), message.AuthorID)
}

func (g *Gateway) scheduleNotifications(ctx context.Context, message *types.Message, recipients []string) {
	if g.notifier == nil {
		return
	}
	job := hub.Job{
		Name: "new_message:" + message.ID,
		Run: func(ctx context.Context) error {
			return g.notifyRecipients(ctx, message, recipients)
		},
	}
	if g.hub != nil {
		err := g.hub.Submit(job)
		if err == nil {
			return
		}
		g.log.Warn("Notification queue unavailable, notifying inline", "id", message.ID, "err", err)
	}
	if err := job.Run(ctx); err != nil {
		g.log.Warn("Failed to notify recipients", "id", message.ID, "err", err)
	}
}

func (g *Gateway) notifyRecipients(ctx context.Context, message *types.Message, recipients []string) error {
	text := fmt.Sprintf("New message from %s: %s", message.Author.Name, excerpt(message.Content))
	courseID := message.CourseID

	var errs []error
	for _, recipient := range recipients {
		if _, err := g.notifier.Notify(ctx, recipient, types.NotificationNewMessage, &courseID, text); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", recipient, err))
		}
	}
	return errors.Join(errs...)
}

func (g *Gateway) authorize(ctx context.Context, userID, courseID string) error {
	participants, err := g.lookupParticipants(ctx, courseID)
	if err != nil {
		return err
	}
	if !participants.Includes(userID) {
		return types.NewAuthorizationError("%s: %s", ErrNotParticipant, courseID)
	}
	return nil
}

func (g *Gateway) lookupParticipants(ctx context.Context, courseID string) (types.Participants, error) {
	participants, err := g.participants.GetCourseParticipants(ctx, courseID)
	if err != nil {
		if errors.Is(err, interfaces.ErrCourseNotFound) {
			return types.Participants{}, err
		}
		if types.IsPersistence(err) {
			return types.Participants{}, err
		}
		return types.Participants{}, types.NewPersistenceError("load course participants", err)
	}
	return participants, nil
}

// RunCleanup prunes idle rate limit entries until ctx is done.
func (g *Gateway) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.limiter.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// Stats reports live connection counts.
func (g *Gateway) Stats() map[string]int {
	return g.registry.GetStats()
}

func (g *Gateway) sendError(conn interfaces.Connection, event, code, message string) {
	frame := types.OutboundEnvelope{
		Event: types.EventError,
		Data:  types.ErrorEvent{Event: event, Code: code, Message: message},
	}
	if err := conn.WriteJSON(frame); err != nil {
		g.log.Debug("Failed to deliver error event", "user", conn.GetUserID(), "err", err)
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return types.NewValidationError(errors.New("missing event data"))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return types.NewValidationError(fmt.Errorf("malformed event data: %w", err))
	}
	return nil
}

func errorCode(err error) string {
	if errors.Is(err, interfaces.ErrCourseNotFound) {
		return types.CodeNotFound
	}
	return types.ErrorCode(err)
}

func excerpt(content string) string {
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:excerptLength]) + "..."
}
