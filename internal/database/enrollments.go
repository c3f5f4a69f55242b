package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"
)

// CreateEnrollment maps the (student, course) uniqueness violation onto ErrAlreadyEnrolled.
func (m *Manager) CreateEnrollment(ctx context.Context, enrollment *types.Enrollment) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO enrollments (id, student_id, course_id, progress, enrolled_at)
			VALUES (?, ?, ?, ?, ?)`,
			enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.Progress, enrollment.EnrolledAt.UTC(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return interfaces.ErrAlreadyEnrolled
			}
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
		return nil
	})
}

const enrollmentSelect = `
	SELECT e.id, e.student_id, e.course_id, e.progress, e.enrolled_at, COALESCE(u.name, '')
	FROM enrollments e
	LEFT JOIN users u ON u.id = e.student_id`

func scanEnrollment(row rowScanner) (*types.Enrollment, error) {
	var e types.Enrollment
	var name string
	if err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Progress, &e.EnrolledAt, &name); err != nil {
		return nil, err
	}
	e.Student = &types.Author{ID: e.StudentID, Name: name}
	return &e, nil
}

func (m *Manager) GetEnrollment(ctx context.Context, enrollmentID string) (*types.Enrollment, error) {
	e, err := scanEnrollment(m.db.QueryRowContext(ctx, enrollmentSelect+` WHERE e.id = ?`, enrollmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to query enrollment: %w", err)
	}
	return e, nil
}

func (m *Manager) ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]*types.Enrollment, error) {
	return m.listEnrollments(ctx, enrollmentSelect+` WHERE e.course_id = ? ORDER BY e.enrolled_at ASC, e.rowid ASC`, courseID)
}

func (m *Manager) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*types.Enrollment, error) {
	return m.listEnrollments(ctx, enrollmentSelect+` WHERE e.student_id = ? ORDER BY e.enrolled_at DESC, e.rowid DESC`, studentID)
}

func (m *Manager) listEnrollments(ctx context.Context, query string, arg string) ([]*types.Enrollment, error) {
	rows, err := m.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	enrollments := make([]*types.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

func (m *Manager) UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, progress int) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `UPDATE enrollments SET progress = ? WHERE id = ?`, progress, enrollmentID)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return interfaces.ErrEnrollmentNotFound
		}
		return nil
	})
}
