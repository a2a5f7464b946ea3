package lesson

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func lessonRows(lessons ...*domain.Lesson) *sqlmock.Rows {
	rows := sqlmock.NewRows(lessonColumns)
	for _, l := range lessons {
		rows.AddRow(
			l.ID, l.Reference, l.StudentID, l.InstructorID,
			l.StartTime, l.EndTime, l.DurationMinutes, string(l.Status),
			l.LessonType, l.Notes, l.CancellationReason, l.CancelledAt,
			l.CreatedAt, l.UpdatedAt,
		)
	}
	return rows
}

func sampleLesson(id int64) *domain.Lesson {
	start := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Lesson{
		ID:              id,
		Reference:       "0d4c1f2e-9a1b-4c3d-8e5f-6a7b8c9d0e1f",
		StudentID:       42,
		InstructorID:    7,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		CreatedAt:       start.Add(-72 * time.Hour),
		UpdatedAt:       start.Add(-72 * time.Hour),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	l := sampleLesson(0)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO lessons`).
		WithArgs(
			l.Reference, l.StudentID, l.InstructorID,
			l.StartTime, l.EndTime, l.DurationMinutes,
			string(l.Status), nil, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(15), now, now))

	created, err := repo.Create(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, int64(15), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	want := sampleLesson(15)
	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
		WithArgs(int64(15)).
		WillReturnRows(lessonRows(want))

	got, err := repo.GetByID(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, want.Reference, got.Reference)
	assert.Equal(t, want.StartTime, got.StartTime)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(lessonRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestRepository_GetByStudentBetween(t *testing.T) {
	repo, mock := newMockRepo(t)

	from := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	want := sampleLesson(15)

	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE student_id = \$1 AND start_time >= \$2 AND start_time < \$3 ORDER BY start_time ASC`).
		WithArgs(int64(42), from, to).
		WillReturnRows(lessonRows(want))

	got, err := repo.GetByStudentBetween(context.Background(), 42, from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
}

func TestRepository_GetByStudent_Filtered(t *testing.T) {
	repo, mock := newMockRepo(t)

	status := domain.StatusConfirmed
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE student_id = \$1 AND status = \$2 AND start_time >= \$3`).
		WithArgs(int64(42), string(status), from).
		WillReturnRows(lessonRows(sampleLesson(15), sampleLesson(16)))

	got, err := repo.GetByStudent(context.Background(), domain.StudentLessonsFilter{
		StudentID: 42,
		Status:    &status,
		From:      &from,
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepository_Cancel(t *testing.T) {
	repo, mock := newMockRepo(t)

	want := sampleLesson(15)
	want.Status = domain.StatusCancelled
	want.CancellationReason = ptr.Ptr("student unwell")

	mock.ExpectQuery(`UPDATE lessons SET .+ RETURNING`).
		WithArgs(string(domain.StatusCancelled), "student unwell", int64(15), string(domain.StatusCancelled)).
		WillReturnRows(lessonRows(want))

	got, err := repo.Cancel(context.Background(), 15, ptr.Ptr("student unwell"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "student unwell", *got.CancellationReason)
}

func TestRepository_Cancel_AlreadyCancelled(t *testing.T) {
	repo, mock := newMockRepo(t)

	cancelled := sampleLesson(15)
	cancelled.Status = domain.StatusCancelled

	mock.ExpectQuery(`UPDATE lessons SET`).
		WillReturnRows(lessonRows())
	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
		WithArgs(int64(15)).
		WillReturnRows(lessonRows(cancelled))

	_, err := repo.Cancel(context.Background(), 15, nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE lessons SET`).
		WillReturnRows(lessonRows())
	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(lessonRows())

	_, err := repo.Cancel(context.Background(), 99, nil)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}
