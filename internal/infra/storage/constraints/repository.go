package constraints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/dbmetrics"
	"github.com/sunstate-driving/scheduling-service/pkg/psqlbuilder"
)

// Единственная строка настроек школы. Upsert всегда идет по этому id.
const singletonID = 1

var constraintColumns = []string{
	"max_hours_per_week",
	"max_lessons_per_week",
	"max_consecutive_lessons",
	"max_hours_per_day",
	"max_lessons_per_day",
	"earliest_start_time",
	"latest_end_time",
	"min_buffer_minutes",
	"max_buffer_minutes",
	"min_lesson_duration_minutes",
	"max_lesson_duration_minutes",
	"allowed_durations",
	"max_advance_booking_days",
	"min_advance_booking_hours",
	"max_instructor_hours_per_day",
	"required_break_after_hours",
	"min_break_duration_minutes",
	"updated_at",
}

// Repository репозиторий настроек планирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConstraints читает текущие настройки школы.
// Если настройки еще не сохранялись, возвращает ErrConstraintsNotFound —
// подстановку значений по умолчанию делает сервисный слой.
func (r *Repository) GetConstraints(ctx context.Context) (*domain.SchedulingConstraints, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(constraintColumns...).
		From("scheduling_constraints").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConstraints - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.SchedulingConstraints
	var durations pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.MaxHoursPerWeek,
		&c.MaxLessonsPerWeek,
		&c.MaxConsecutiveLessons,
		&c.MaxHoursPerDay,
		&c.MaxLessonsPerDay,
		&c.EarliestStartTime,
		&c.LatestEndTime,
		&c.MinBufferMinutes,
		&c.MaxBufferMinutes,
		&c.MinLessonDurationMinutes,
		&c.MaxLessonDurationMinutes,
		&durations,
		&c.MaxAdvanceBookingDays,
		&c.MinAdvanceBookingHours,
		&c.MaxInstructorHoursPerDay,
		&c.RequiredBreakAfterHours,
		&c.MinBreakDurationMinutes,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConstraintsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConstraints: %v", ErrScanRow, err)
	}

	c.AllowedDurations = make([]int, 0, len(durations))
	for _, d := range durations {
		c.AllowedDurations = append(c.AllowedDurations, int(d))
	}
	return &c, nil
}

// SaveConstraints сохраняет настройки целиком (upsert единственной строки)
func (r *Repository) SaveConstraints(ctx context.Context, c *domain.SchedulingConstraints) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	durations := make(pq.Int64Array, 0, len(c.AllowedDurations))
	for _, d := range c.AllowedDurations {
		durations = append(durations, int64(d))
	}

	setClause := ""
	for i, col := range constraintColumns[:len(constraintColumns)-1] {
		if i > 0 {
			setClause += ", "
		}
		setClause += col + " = EXCLUDED." + col
	}
	setClause += ", updated_at = NOW()"

	query, args, err := psqlbuilder.Insert("scheduling_constraints").
		Columns(append([]string{"id"}, constraintColumns[:len(constraintColumns)-1]...)...).
		Values(
			singletonID,
			c.MaxHoursPerWeek,
			c.MaxLessonsPerWeek,
			c.MaxConsecutiveLessons,
			c.MaxHoursPerDay,
			c.MaxLessonsPerDay,
			c.EarliestStartTime,
			c.LatestEndTime,
			c.MinBufferMinutes,
			c.MaxBufferMinutes,
			c.MinLessonDurationMinutes,
			c.MaxLessonDurationMinutes,
			durations,
			c.MaxAdvanceBookingDays,
			c.MinAdvanceBookingHours,
			c.MaxInstructorHoursPerDay,
			c.RequiredBreakAfterHours,
			c.MinBreakDurationMinutes,
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + setClause).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveConstraints - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveConstraints: %v", ErrExecQuery, err)
	}
	return nil
}

// GetWeeklySchedule читает рабочее расписание школы на неделю.
// Отсутствующие дни остаются выключенными.
func (r *Repository) GetWeeklySchedule(ctx context.Context) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "enabled", "start_time", "end_time").
		From("weekly_schedule").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	found := false
	var schedule domain.WeeklySchedule
	for rows.Next() {
		var dow int
		var day domain.DaySchedule
		if err := rows.Scan(&dow, &day.Enabled, &day.StartTime, &day.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule: %v", ErrScanRow, err)
		}
		if dow < 0 || dow > 6 {
			return nil, fmt.Errorf("%w: GetWeeklySchedule: day_of_week %d out of range", ErrScanRow, dow)
		}
		schedule[dow] = day
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule: %v", ErrScanRow, err)
	}
	if !found {
		return nil, ErrConstraintsNotFound
	}
	return &schedule, nil
}

// SaveWeeklySchedule сохраняет расписание на неделю (upsert по дням)
func (r *Repository) SaveWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Insert("weekly_schedule").
		Columns("day_of_week", "enabled", "start_time", "end_time")
	for dow, day := range schedule {
		qb = qb.Values(dow, day.Enabled, day.StartTime, day.EndTime)
	}

	query, args, err := qb.
		Suffix("ON CONFLICT (day_of_week) DO UPDATE SET " +
			"enabled = EXCLUDED.enabled, " +
			"start_time = EXCLUDED.start_time, " +
			"end_time = EXCLUDED.end_time").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveWeeklySchedule - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveWeeklySchedule: %v", ErrExecQuery, err)
	}
	return nil
}
