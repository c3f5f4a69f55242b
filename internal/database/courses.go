package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursechat/pkg/interfaces"
	"coursechat/pkg/types"
)

// CreateCourse inserts the course and any initial videos atomically.
func (m *Manager) CreateCourse(ctx context.Context, course *types.Course) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO courses (id, title, description, thumbnail, tutor_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			course.ID, course.Title, course.Description, course.Thumbnail, course.TutorID, course.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert course: %w", err)
		}

		for i := range course.Videos {
			v := &course.Videos[i]
			v.CourseID = course.ID
			v.Order = i + 1
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO videos (id, course_id, title, video_url, transcript, position)
				VALUES (?, ?, ?, ?, ?, ?)`,
				v.ID, v.CourseID, v.Title, v.VideoURL, v.Transcript, v.Order,
			); err != nil {
				return fmt.Errorf("failed to insert video: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit course creation: %w", err)
		}
		return nil
	})
}

func (m *Manager) GetCourse(ctx context.Context, courseID string) (*types.Course, error) {
	var course types.Course
	err := m.db.QueryRowContext(ctx, `
		SELECT id, title, description, thumbnail, tutor_id, created_at
		FROM courses WHERE id = ?`, courseID,
	).Scan(&course.ID, &course.Title, &course.Description, &course.Thumbnail, &course.TutorID, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	videos, err := m.videosByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Videos = videos[courseID]
	if course.Videos == nil {
		course.Videos = []types.Video{}
	}
	return &course, nil
}

// ListCourses returns every course, newest first, with videos attached.
func (m *Manager) ListCourses(ctx context.Context) ([]*types.Course, error) {
	return m.listCourses(ctx, "")
}

// ListCoursesByTutor returns the courses taught by tutorID, newest first.
func (m *Manager) ListCoursesByTutor(ctx context.Context, tutorID string) ([]*types.Course, error) {
	return m.listCourses(ctx, tutorID)
}

func (m *Manager) listCourses(ctx context.Context, tutorID string) ([]*types.Course, error) {
	query := `SELECT id, title, description, thumbnail, tutor_id, created_at FROM courses`
	var args []any
	if tutorID != "" {
		query += ` WHERE tutor_id = ?`
		args = append(args, tutorID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	courses := make([]*types.Course, 0)
	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.TutorID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	videos, err := m.videosByCourse(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		c.Videos = videos[c.ID]
		if c.Videos == nil {
			c.Videos = []types.Video{}
		}
	}
	return courses, nil
}

func (m *Manager) UpdateCourse(ctx context.Context, course *types.Course) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`UPDATE courses SET title = ?, description = ?, thumbnail = ? WHERE id = ?`,
			course.Title, course.Description, course.Thumbnail, course.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		return requireAffected(res, interfaces.ErrCourseNotFound)
	})
}

// DeleteCourse relies on ON DELETE CASCADE for videos and enrollments.
// Chat history and notifications are kept.
func (m *Manager) DeleteCourse(ctx context.Context, courseID string) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, courseID)
		if err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return requireAffected(res, interfaces.ErrCourseNotFound)
	})
}

// videosByCourse groups videos by course id. An empty courseID loads all of them.
func (m *Manager) videosByCourse(ctx context.Context, courseID string) (map[string][]types.Video, error) {
	query := `SELECT id, course_id, title, video_url, transcript, position FROM videos`
	var args []any
	if courseID != "" {
		query += ` WHERE course_id = ?`
		args = append(args, courseID)
	}
	query += ` ORDER BY course_id, position ASC`

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	grouped := make(map[string][]types.Video)
	for rows.Next() {
		var v types.Video
		if err := rows.Scan(&v.ID, &v.CourseID, &v.Title, &v.VideoURL, &v.Transcript, &v.Order); err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		grouped[v.CourseID] = append(grouped[v.CourseID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video rows: %w", err)
	}
	return grouped, nil
}

// AddVideo appends the video at the end of the course and sets its Order.
func (m *Manager) AddVideo(ctx context.Context, video *types.Video) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		var exists int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses WHERE id = ?`, video.CourseID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check course: %w", err)
		}
		if exists == 0 {
			return interfaces.ErrCourseNotFound
		}

		var next int
		if err := db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM videos WHERE course_id = ?`, video.CourseID,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to compute video position: %w", err)
		}
		video.Order = next

		if _, err := db.ExecContext(ctx, `
			INSERT INTO videos (id, course_id, title, video_url, transcript, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			video.ID, video.CourseID, video.Title, video.VideoURL, video.Transcript, video.Order,
		); err != nil {
			return fmt.Errorf("failed to insert video: %w", err)
		}
		return nil
	})
}

// DeleteVideo removes a video and closes the gap in the ordering.
func (m *Manager) DeleteVideo(ctx context.Context, courseID, videoID string) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var position int
		err = tx.QueryRowContext(ctx,
			`SELECT position FROM videos WHERE id = ? AND course_id = ?`, videoID, courseID,
		).Scan(&position)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return interfaces.ErrVideoNotFound
			}
			return fmt.Errorf("failed to query video: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, videoID); err != nil {
			return fmt.Errorf("failed to delete video: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE videos SET position = position - 1 WHERE course_id = ? AND position > ?`, courseID, position,
		); err != nil {
			return fmt.Errorf("failed to reorder videos: %w", err)
		}
		return tx.Commit()
	})
}

func (m *Manager) ReorderVideos(ctx context.Context, courseID string, videoIDs []string) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		for i, videoID := range videoIDs {
			res, err := tx.ExecContext(ctx,
				`UPDATE videos SET position = ? WHERE id = ? AND course_id = ?`, i+1, videoID, courseID)
			if err != nil {
				return fmt.Errorf("failed to reorder video: %w", err)
			}
			if err := requireAffected(res, interfaces.ErrVideoNotFound); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

func (m *Manager) UpdateTranscript(ctx context.Context, courseID, videoID, transcript string) error {
	return m.executeWrite(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`UPDATE videos SET transcript = ? WHERE id = ? AND course_id = ?`, transcript, videoID, courseID)
		if err != nil {
			return fmt.Errorf("failed to update transcript: %w", err)
		}
		return requireAffected(res, interfaces.ErrVideoNotFound)
	})
}

// requireAffected returns notFound when the statement touched no rows.
func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
