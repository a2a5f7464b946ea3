package constraints

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_GetConstraints(t *testing.T) {
	repo, mock := newMockRepo(t)

	updatedAt := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(constraintColumns).AddRow(
		10, 8, 2, 3, 2,
		"08:00", "18:00",
		15, 120, 30, 120,
		"{60,90}",
		30, 2, 8, 4, 30,
		updatedAt,
	)

	mock.ExpectQuery(`SELECT .+ FROM scheduling_constraints WHERE id = \$1`).
		WithArgs(int64(singletonID)).
		WillReturnRows(rows)

	got, err := repo.GetConstraints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, got.MaxHoursPerWeek)
	assert.Equal(t, "08:00", got.EarliestStartTime.String())
	assert.Equal(t, []int{60, 90}, got.AllowedDurations)
	assert.Equal(t, updatedAt, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetConstraints_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM scheduling_constraints`).
		WillReturnRows(sqlmock.NewRows(constraintColumns))

	_, err := repo.GetConstraints(context.Background())
	assert.ErrorIs(t, err, ErrConstraintsNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveConstraints(t *testing.T) {
	repo, mock := newMockRepo(t)

	c := domain.DefaultConstraints()
	mock.ExpectExec(`INSERT INTO scheduling_constraints .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveConstraints(context.Background(), &c)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWeeklySchedule(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"day_of_week", "enabled", "start_time", "end_time"})
	for dow := 0; dow <= 6; dow++ {
		enabled := dow != 0 // воскресенье выключено
		rows.AddRow(dow, enabled, "07:00", "19:00")
	}

	mock.ExpectQuery(`SELECT .+ FROM weekly_schedule ORDER BY day_of_week ASC`).
		WillReturnRows(rows)

	got, err := repo.GetWeeklySchedule(context.Background())
	require.NoError(t, err)
	assert.False(t, got[int(time.Sunday)].Enabled)
	assert.True(t, got[int(time.Monday)].Enabled)
	assert.Equal(t, "07:00", got[int(time.Monday)].StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWeeklySchedule_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM weekly_schedule`).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "enabled", "start_time", "end_time"}))

	_, err := repo.GetWeeklySchedule(context.Background())
	assert.ErrorIs(t, err, ErrConstraintsNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
