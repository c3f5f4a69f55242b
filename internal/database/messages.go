package database

import (
	"context"
	"database/sql"
	"fmt"

	"coursechat/pkg/types"
)

// StoreMessage appends a message to its course log.
func (m *Manager) StoreMessage(ctx context.Context, message *types.Message) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO messages (id, course_id, author_id, author_name, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			message.ID,
			message.CourseID,
			message.AuthorID,
			message.Author.Name,
			message.Content,
			message.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
}

// GetCourseMessages returns the course log oldest first. Insertion order breaks timestamp ties.
func (m *Manager) GetCourseMessages(ctx context.Context, courseID string) ([]*types.Message, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, course_id, author_id, author_name, content, created_at
		FROM messages
		WHERE course_id = ?
		ORDER BY created_at ASC, rowid ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*types.Message, 0)
	for rows.Next() {
		var msg types.Message
		if err := rows.Scan(&msg.ID, &msg.CourseID, &msg.AuthorID, &msg.Author.Name, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msg.Author = types.NewAuthor(msg.AuthorID, msg.Author.Name)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}
