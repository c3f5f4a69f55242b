package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"
)

// UpsertUser records the latest name and role seen for an identity.
func (m *Manager) UpsertUser(ctx context.Context, user *types.User) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (id, name, role, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name, role = excluded.role, updated_at = excluded.updated_at`,
			user.ID, user.Name, user.Role, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}
		return nil
	})
}

func (m *Manager) GetUser(ctx context.Context, userID string) (*types.User, error) {
	var u types.User
	err := m.db.QueryRowContext(ctx, `SELECT id, name, role FROM users WHERE id = ?`, userID).Scan(&u.ID, &u.Name, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}
