package repository

import (
	"context"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const lessonColumns = `id, title, description, teacher_id, student_id, start_time, end_time,
		       duration_minutes, lesson_type, level, status, max_participants,
		       current_participants, price, currency, meeting_url, meeting_id,
		       meeting_password, created_at, updated_at`

type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entity.Lesson, error)
	CountByStudentID(ctx context.Context, studentID uuid.UUID) (int64, error)
	Update(ctx context.Context, lesson *entity.Lesson) error

	// Scheduling queries
	FindActiveByTeacherAndWindow(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]*entity.Lesson, error)
	CountConflicting(ctx context.Context, teacherID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error)
}

type lessonRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLessonRepository(db database.PgxIface, log *zap.Logger) LessonRepository {
	return &lessonRepository{
		db:  db,
		log: log.With(zap.String("repository", "lesson")),
	}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	query := `
		INSERT INTO lessons (id, title, description, teacher_id, student_id, start_time, end_time,
		                     duration_minutes, lesson_type, level, status, max_participants,
		                     current_participants, price, currency, meeting_url, meeting_id,
		                     meeting_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Description,
		lesson.TeacherID,
		lesson.StudentID,
		lesson.StartTime,
		lesson.EndTime,
		lesson.DurationMinutes,
		lesson.LessonType,
		lesson.Level,
		lesson.Status,
		lesson.MaxParticipants,
		lesson.CurrentParticipants,
		lesson.Price,
		lesson.Currency,
		lesson.MeetingURL,
		lesson.MeetingID,
		lesson.MeetingPassword,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)

	if err != nil {
		if database.IsExclusionViolation(err) {
			// lessons_no_overlap fired: a concurrent writer took the window
			// between our conflict check and this insert.
			r.log.Warn("Lesson insert lost overlap race",
				zap.String("teacher_id", lesson.TeacherID.String()),
				zap.Time("start_time", lesson.StartTime),
			)
			return fmt.Errorf("create lesson: %w", err)
		}
		r.log.Error("Failed to create lesson",
			zap.Error(err),
			zap.String("teacher_id", lesson.TeacherID.String()),
		)
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

func (r *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lesson by ID",
			zap.Error(err),
			zap.String("lesson_id", id.String()),
		)
		return nil, fmt.Errorf("find lesson by ID %s: %w", id.String(), err)
	}

	return lesson, nil
}

func (r *lessonRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entity.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE student_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, studentID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find lessons by student ID",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, fmt.Errorf("find lessons by student ID %s: %w", studentID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *lessonRepository) CountByStudentID(ctx context.Context, studentID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE student_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, studentID).Scan(&count); err != nil {
		r.log.Error("Failed to count lessons by student ID",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return 0, fmt.Errorf("count lessons by student ID %s: %w", studentID.String(), err)
	}

	return count, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, description = $3, start_time = $4, end_time = $5,
		    duration_minutes = $6, lesson_type = $7, level = $8, status = $9,
		    max_participants = $10, current_participants = $11, price = $12,
		    currency = $13, meeting_url = $14, meeting_id = $15,
		    meeting_password = $16, updated_at = $17
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Description,
		lesson.StartTime,
		lesson.EndTime,
		lesson.DurationMinutes,
		lesson.LessonType,
		lesson.Level,
		lesson.Status,
		lesson.MaxParticipants,
		lesson.CurrentParticipants,
		lesson.Price,
		lesson.Currency,
		lesson.MeetingURL,
		lesson.MeetingID,
		lesson.MeetingPassword,
		lesson.UpdatedAt,
	)

	if err != nil {
		if database.IsExclusionViolation(err) {
			r.log.Warn("Lesson update lost overlap race",
				zap.String("lesson_id", lesson.ID.String()),
			)
			return fmt.Errorf("update lesson %s: %w", lesson.ID.String(), err)
		}
		r.log.Error("Failed to update lesson",
			zap.Error(err),
			zap.String("lesson_id", lesson.ID.String()),
		)
		return fmt.Errorf("update lesson %s: %w", lesson.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson %s not found", lesson.ID.String())
	}

	return nil
}

func (r *lessonRepository) FindActiveByTeacherAndWindow(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]*entity.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE teacher_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, teacherID, from, to)
	if err != nil {
		r.log.Error("Failed to find active lessons in window",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find active lessons for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// CountConflicting counts the teacher's non-cancelled lessons overlapping the
// half-open window [start, end). Pass uuid.Nil as excludeID unless validating
// an update against itself; no persisted row carries the nil UUID, so the
// exclusion predicate is a no-op in that case.
func (r *lessonRepository) CountConflicting(ctx context.Context, teacherID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM lessons
		WHERE teacher_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		  AND id <> $4
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, teacherID, start, end, excludeID).Scan(&count); err != nil {
		r.log.Error("Failed to count conflicting lessons",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return 0, fmt.Errorf("count conflicting lessons for teacher %s: %w", teacherID.String(), err)
	}

	return count, nil
}

func (r *lessonRepository) scanRow(row pgx.Row) (*entity.Lesson, error) {
	var lesson entity.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Description,
		&lesson.TeacherID,
		&lesson.StudentID,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.DurationMinutes,
		&lesson.LessonType,
		&lesson.Level,
		&lesson.Status,
		&lesson.MaxParticipants,
		&lesson.CurrentParticipants,
		&lesson.Price,
		&lesson.Currency,
		&lesson.MeetingURL,
		&lesson.MeetingID,
		&lesson.MeetingPassword,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) scanRows(rows pgx.Rows) ([]*entity.Lesson, error) {
	var lessons []*entity.Lesson
	for rows.Next() {
		lesson, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan lesson row", zap.Error(err))
			return nil, fmt.Errorf("scan lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}
