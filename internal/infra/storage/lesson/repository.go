package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/dbmetrics"
	"github.com/sunstate-driving/scheduling-service/pkg/psqlbuilder"
)

var lessonColumns = []string{
	"id",
	"reference",
	"student_id",
	"instructor_id",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"lesson_type",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с уроками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уроков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый урок.
// Если в контексте есть активная транзакция, использует её — так
// create_lesson перепроверяет лимиты и пишет урок атомарно.
func (r *Repository) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lessons").
		Columns(
			"reference",
			"student_id",
			"instructor_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"lesson_type",
			"notes",
		).
		Values(
			l.Reference,
			l.StudentID,
			l.InstructorID,
			l.StartTime,
			l.EndTime,
			l.DurationMinutes,
			l.Status,
			l.LessonType,
			l.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time
	return l, nil
}

// GetByID получает урок по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLesson(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrScanRow, err)
	}
	return l, nil
}

// GetByStudentBetween получает уроки студента, начинающиеся в [from, to).
// Используется валидатором для выборки недельного окна.
func (r *Repository) GetByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*domain.Lesson, error) {
	return r.getBetween(ctx, squirrel.Eq{"student_id": studentID}, from, to)
}

// GetByInstructorBetween получает уроки инструктора, начинающиеся в [from, to)
func (r *Repository) GetByInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) ([]*domain.Lesson, error) {
	return r.getBetween(ctx, squirrel.Eq{"instructor_id": instructorID}, from, to)
}

func (r *Repository) getBetween(ctx context.Context, owner squirrel.Eq, from, to time.Time) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(owner).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBetween - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryLessons(ctx, executor, query, args)
}

// GetByStudent получает уроки студента с фильтрацией по статусу и периоду
func (r *Repository) GetByStudent(ctx context.Context, filter domain.StudentLessonsFilter) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"student_id": filter.StudentID}).
		OrderBy("start_time DESC")

	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		qb = qb.Where(squirrel.Lt{"start_time": *filter.To})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudent - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryLessons(ctx, executor, query, args)
}

// Cancel отменяет урок. Уже отмененный урок повторно не отменяется.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Suffix("RETURNING " + joinColumns(lessonColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	l, err := scanLesson(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Либо урока нет, либо он уже отменен — различаем отдельным чтением
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCannotCancel
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel: %v", ErrScanRow, err)
	}
	return l, nil
}

func (r *Repository) queryLessons(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Lesson, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}
	return lessons, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var l domain.Lesson
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.Reference,
		&l.StudentID,
		&l.InstructorID,
		&l.StartTime,
		&l.EndTime,
		&l.DurationMinutes,
		&l.Status,
		&l.LessonType,
		&l.Notes,
		&l.CancellationReason,
		&l.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time
	return &l, nil
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
