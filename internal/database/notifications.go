package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"
)

const notificationColumns = `id, recipient_id, kind, course_id, message, read, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*types.Notification, error) {
	var n types.Notification
	var courseID sql.NullString
	if err := row.Scan(&n.ID, &n.RecipientID, &n.Kind, &courseID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	if courseID.Valid {
		n.CourseID = &courseID.String
	}
	return &n, nil
}

func (m *Manager) CreateNotification(ctx context.Context, notification *types.Notification) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO notifications (id, recipient_id, kind, course_id, message, read, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			notification.ID,
			notification.RecipientID,
			string(notification.Kind),
			notification.CourseID,
			notification.Message,
			notification.Read,
			notification.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
		return nil
	})
}

func (m *Manager) GetNotification(ctx context.Context, notificationID string) (*types.Notification, error) {
	return getNotification(ctx, m.db, notificationID)
}

func getNotification(ctx context.Context, db *sql.DB, notificationID string) (*types.Notification, error) {
	row := db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, notificationID)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns the user's notifications, newest first.
func (m *Manager) ListNotifications(ctx context.Context, userID string) ([]*types.Notification, error) {
	return listNotifications(ctx, m.db, userID)
}

func listNotifications(ctx context.Context, db *sql.DB, userID string) ([]*types.Notification, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notifications := make([]*types.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips read and returns the row as stored afterwards.
func (m *Manager) MarkNotificationRead(ctx context.Context, notificationID string) (*types.Notification, error) {
	var updated *types.Notification
	err := m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, notificationID)
		if err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return interfaces.ErrNotificationNotFound
		}

		updated, err = getNotification(ctx, db, notificationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkAllNotificationsRead flips every unread row of the user and returns the full list.
func (m *Manager) MarkAllNotificationsRead(ctx context.Context, userID string) ([]*types.Notification, error) {
	var all []*types.Notification
	err := m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		if _, err := db.ExecContext(ctx,
			`UPDATE notifications SET read = 1 WHERE recipient_id = ? AND read = 0`, userID); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}

		var err error
		all, err = listNotifications(ctx, db, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// CountUnread is always computed from the rows.
func (m *Manager) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
