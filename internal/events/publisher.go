// Package events forwards persisted chat messages and notifications to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"coursechat/pkg/types"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const SubjectPrefix = "coursechat"

// MessageSubject is where a course's chat messages are published.
func MessageSubject(courseID string) string {
	return fmt.Sprintf("%s.messages.%s", SubjectPrefix, courseID)
}

// NotificationSubject is where a user's notifications are published.
func NotificationSubject(userID string) string {
	return fmt.Sprintf("%s.notifications.%s", SubjectPrefix, userID)
}

// NatsPublisher publishes to a JetStream stream covering every coursechat subject.
type NatsPublisher struct {
	nc  *nats.Conn
	js  jetstream.JetStream
	log *slog.Logger
}

// NewNatsPublisher connects and makes sure the stream exists.
func NewNatsPublisher(ctx context.Context, url, stream string, log *slog.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("coursechat"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(setupCtx, jetstream.StreamConfig{
		Name:        stream,
		Description: "Course chat messages and notifications",
		Subjects:    []string{SubjectPrefix + ".>"},
		MaxAge:      7 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %q: %w", stream, err)
	}

	log.Info("Publishing events to NATS", "url", url, "stream", stream)
	return &NatsPublisher{nc: nc, js: js, log: log}, nil
}

func (p *NatsPublisher) PublishMessage(ctx context.Context, message *types.Message) error {
	return p.publish(ctx, MessageSubject(message.CourseID), message.ID, message)
}

func (p *NatsPublisher) PublishNotification(ctx context.Context, notification *types.Notification) error {
	return p.publish(ctx, NotificationSubject(notification.RecipientID), notification.ID, notification)
}

func (p *NatsPublisher) publish(ctx context.Context, subject, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	// The id doubles as the JetStream dedup key.
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(id)); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *NatsPublisher) Close() error {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
			return err
		}
	}
	return nil
}

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(context.Context, *types.Message) error           { return nil }
func (NoopPublisher) PublishNotification(context.Context, *types.Notification) error { return nil }
func (NoopPublisher) Close() error                                                   { return nil }
