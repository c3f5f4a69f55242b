package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", cfg.DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty path", func(c *Config) { c.DatabasePath = "" }, true},
		{"zero connections", func(c *Config) { c.MaxConnections = 0 }, true},
		{"zero lifetime", func(c *Config) { c.ConnMaxLifetime = 0 }, true},
		{"zero idle time", func(c *Config) { c.ConnMaxIdleTime = 0 }, true},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				require.Error(t, cfg.Validate())
			} else {
				require.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestMigrationManager_ApplyMigrations(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	manager := NewMigrationManager(db)

	req.NoError(manager.ApplyMigrations())
	// Second run is a no-op.
	req.NoError(manager.ApplyMigrations())

	version, dirty, err := manager.Version()
	req.NoError(err)
	req.False(dirty)
	req.Equal(uint(1), version)

	req.NoError(NewSchemaValidator(db).Validate())
}

func TestSchemaValidator_DetectsMissingTable(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	_, err := db.Exec(`CREATE TABLE messages (id TEXT PRIMARY KEY)`)
	req.NoError(err)

	req.Error(NewSchemaValidator(db).ValidateTables())
	req.Error(NewSchemaValidator(db).ValidateIndexes())
}

func TestSchema_Constraints(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	req.NoError(NewMigrationManager(db).ApplyMigrations())

	_, err := db.Exec(`INSERT INTO messages (id, course_id, author_id, content, created_at)
		VALUES ('m1', 'c1', 'u1', '   ', CURRENT_TIMESTAMP)`)
	req.Error(err, "blank content must be rejected")

	_, err = db.Exec(`INSERT INTO notifications (id, recipient_id, kind, message, created_at)
		VALUES ('n1', 'u1', 'bogus', 'x', CURRENT_TIMESTAMP)`)
	req.Error(err, "unknown kind must be rejected")

	_, err = db.Exec(`INSERT INTO enrollments (id, student_id, course_id, enrolled_at)
		VALUES ('e1', 's1', 'missing', CURRENT_TIMESTAMP)`)
	req.Error(err, "enrollment must reference a course")
}
