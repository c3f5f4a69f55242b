package database

import (
	"database/sql"
	"fmt"
)

// SchemaValidator checks that the migrated schema is what the stores expect.
type SchemaValidator struct {
	db *sql.DB
}

func NewSchemaValidator(db *sql.DB) *SchemaValidator {
	return &SchemaValidator{db: db}
}

var requiredTables = map[string]map[string]string{
	"users": {
		"id": "TEXT", "name": "TEXT", "role": "TEXT", "updated_at": "DATETIME",
	},
	"courses": {
		"id": "TEXT", "title": "TEXT", "description": "TEXT", "thumbnail": "TEXT",
		"tutor_id": "TEXT", "created_at": "DATETIME",
	},
	"videos": {
		"id": "TEXT", "course_id": "TEXT", "title": "TEXT", "video_url": "TEXT",
		"transcript": "TEXT", "position": "INTEGER",
	},
	"enrollments": {
		"id": "TEXT", "student_id": "TEXT", "course_id": "TEXT", "progress": "INTEGER",
		"enrolled_at": "DATETIME",
	},
	"messages": {
		"id": "TEXT", "course_id": "TEXT", "author_id": "TEXT", "author_name": "TEXT",
		"content": "TEXT", "created_at": "DATETIME",
	},
	"notifications": {
		"id": "TEXT", "recipient_id": "TEXT", "kind": "TEXT", "course_id": "TEXT",
		"message": "TEXT", "read": "INTEGER", "created_at": "DATETIME",
	},
}

var requiredIndexes = []string{
	"idx_courses_tutor",
	"idx_videos_course_position",
	"idx_enrollments_course",
	"idx_messages_course_time",
	"idx_notifications_recipient_read",
}

// Validate runs every table, column and index check.
func (v *SchemaValidator) Validate() error {
	if err := v.ValidateTables(); err != nil {
		return err
	}
	return v.ValidateIndexes()
}

// ValidateTables verifies each required table exists with the expected column types.
func (v *SchemaValidator) ValidateTables() error {
	for table, columns := range requiredTables {
		exists, err := v.exists("table", table)
		if err != nil {
			return fmt.Errorf("error checking table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %s does not exist", table)
		}
		if err := v.validateColumns(table, columns); err != nil {
			return fmt.Errorf("%s table structure invalid: %w", table, err)
		}
	}
	return nil
}

func (v *SchemaValidator) ValidateIndexes() error {
	for _, index := range requiredIndexes {
		exists, err := v.exists("index", index)
		if err != nil {
			return fmt.Errorf("error checking index %s: %w", index, err)
		}
		if !exists {
			return fmt.Errorf("required index %s does not exist", index)
		}
	}
	return nil
}

func (v *SchemaValidator) exists(kind, name string) (bool, error) {
	var count int
	err := v.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?",
		kind, name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (v *SchemaValidator) validateColumns(tableName string, expectedColumns map[string]string) error {
	rows, err := v.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	foundColumns := make(map[string]string)
	for rows.Next() {
		var cid, notNull, pk int
		var name, dataType string
		var defaultValue any

		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return err
		}
		foundColumns[name] = dataType
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for expectedCol, expectedType := range expectedColumns {
		foundType, ok := foundColumns[expectedCol]
		if !ok {
			return fmt.Errorf("column %s not found", expectedCol)
		}
		if foundType != expectedType {
			return fmt.Errorf("column %s has type %s, expected %s", expectedCol, foundType, expectedType)
		}
	}
	return nil
}
