// Package notification persists per-user notifications and pushes them to live connections.
package notification

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"

	"github.com/google/uuid"
)

// ConnectionLookup finds every live connection of a user, whatever room they are in.
type ConnectionLookup interface {
	UserConnections(userID string) []interfaces.Connection
}

// Dispatcher owns the notification lifecycle: create, push, mark read.
// Unread counts are always read from the store.
type Dispatcher struct {
	store       interfaces.NotificationStore
	connections ConnectionLookup
	publisher   interfaces.EventPublisher
	log         *slog.Logger
	now         func() time.Time
}

func NewDispatcher(store interfaces.NotificationStore, connections ConnectionLookup, publisher interfaces.EventPublisher, log *slog.Logger) (*Dispatcher, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &Dispatcher{
		store:       store,
		connections: connections,
		publisher:   publisher,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Notify persists a notification for recipientID and pushes it to each of their connections.
// Push failures are logged; only validation and persistence failures are returned.
func (d *Dispatcher) Notify(ctx context.Context, recipientID string, kind types.NotificationKind, courseID *string, message string) (*types.Notification, error) {
	n := &types.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Kind:        kind,
		CourseID:    courseID,
		Message:     strings.TrimSpace(message),
		CreatedAt:   d.now(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := d.store.CreateNotification(ctx, n); err != nil {
		d.log.Error("Failed to persist notification", "recipient", recipientID, "kind", kind, "err", err)
		return nil, types.NewPersistenceError("create notification", err)
	}

	d.push(n)

	if d.publisher != nil {
		if err := d.publisher.PublishNotification(ctx, n); err != nil {
			d.log.Warn("Failed to publish notification", "id", n.ID, "err", err)
		}
	}
	return n, nil
}

func (d *Dispatcher) push(n *types.Notification) {
	if d.connections == nil {
		return
	}
	frame := types.OutboundEnvelope{Event: types.EventNotification, Data: n}
	for _, conn := range d.connections.UserConnections(n.RecipientID) {
		if err := conn.WriteJSON(frame); err != nil {
			d.log.Debug("Dropped notification push", "user", n.RecipientID, "id", n.ID, "err", err)
		}
	}
}

// List returns the user's notifications, newest first.
func (d *Dispatcher) List(ctx context.Context, userID string) ([]*types.Notification, error) {
	if userID == "" {
		return nil, ErrMissingRequester
	}
	list, err := d.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, types.NewPersistenceError("list notifications", err)
	}
	return list, nil
}

func (d *Dispatcher) UnreadCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingRequester
	}
	count, err := d.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, types.NewPersistenceError("count unread notifications", err)
	}
	return count, nil
}

// MarkRead flips one notification to read. Only its recipient may do so.
func (d *Dispatcher) MarkRead(ctx context.Context, notificationID, requestingUserID string) (*types.Notification, error) {
	if requestingUserID == "" {
		return nil, ErrMissingRequester
	}

	n, err := d.store.GetNotification(ctx, notificationID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotificationNotFound) {
			return nil, err
		}
		return nil, types.NewPersistenceError("load notification", err)
	}
	if n.RecipientID != requestingUserID {
		return nil, types.NewAuthorizationError("notification %s belongs to another user", notificationID)
	}
	if n.Read {
		return n, nil
	}

	updated, err := d.store.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotificationNotFound) {
			return nil, err
		}
		return nil, types.NewPersistenceError("mark notification read", err)
	}
	return updated, nil
}

// MarkAllRead flips every unread notification of the user and returns the full list.
func (d *Dispatcher) MarkAllRead(ctx context.Context, requestingUserID string) ([]*types.Notification, error) {
	if requestingUserID == "" {
		return nil, ErrMissingRequester
	}
	list, err := d.store.MarkAllNotificationsRead(ctx, requestingUserID)
	if err != nil {
		return nil, types.NewPersistenceError("mark all notifications read", err)
	}
	return list, nil
}
