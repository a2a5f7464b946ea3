package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
)

const (
	testStudentID    = int64(42)
	testInstructorID = int64(7)
)

func brisbane(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Brisbane")
	require.NoError(t, err)
	return loc
}

func at(t *testing.T, loc *time.Location, date, tm string) time.Time {
	t.Helper()
	ts, err := civiltime.DateTime(date, tm, loc)
	require.NoError(t, err)
	return ts
}

func newTestValidator(t *testing.T, loc *time.Location) *Validator {
	t.Helper()
	v, err := NewValidator(domain.DefaultConstraints(), loc)
	require.NoError(t, err)
	return v
}

func confirmedLesson(t *testing.T, loc *time.Location, id int64, date, from, to string) *domain.Lesson {
	t.Helper()
	return &domain.Lesson{
		ID:           id,
		StudentID:    testStudentID,
		InstructorID: testInstructorID,
		StartTime:    at(t, loc, date, from),
		EndTime:      at(t, loc, date, to),
		Status:       domain.StatusConfirmed,
	}
}

func lessonRequest(t *testing.T, loc *time.Location, date, from string, durationMinutes int) *domain.LessonRequest {
	t.Helper()
	start := at(t, loc, date, from)
	return &domain.LessonRequest{
		StudentID:       testStudentID,
		InstructorID:    testInstructorID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
	}
}

func hasErrorContaining(result *domain.ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(strings.ToLower(e), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func TestNewValidator_RejectsBadConstraints(t *testing.T) {
	loc := brisbane(t)

	c := domain.DefaultConstraints()
	c.EarliestStartTime = "19:00"
	c.LatestEndTime = "07:00"
	_, err := NewValidator(c, loc)
	require.ErrorIs(t, err, domain.ErrInvalidConstraints)

	c = domain.DefaultConstraints()
	c.EarliestStartTime = "7am"
	_, err = NewValidator(c, loc)
	require.ErrorIs(t, err, domain.ErrInvalidConstraints)

	c = domain.DefaultConstraints()
	c.MaxHoursPerWeek = -1
	_, err = NewValidator(c, loc)
	require.ErrorIs(t, err, domain.ErrInvalidConstraints)

	_, err = NewValidator(domain.DefaultConstraints(), nil)
	require.ErrorIs(t, err, ErrNilLocation)
}

// Валидный запрос без существующих уроков, за сутки и больше до начала
func TestValidateBooking_CleanRequestIsValid(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	now := at(t, loc, "2025-11-17", "09:00")
	req := lessonRequest(t, loc, "2025-11-20", "10:00", 60)

	result := v.ValidateBooking(req, nil, now)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateBooking_BeforeEarliestStart(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	now := at(t, loc, "2025-11-17", "09:00")
	req := lessonRequest(t, loc, "2025-11-20", "06:00", 60)

	result := v.ValidateBooking(req, nil, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "cannot start before 07:00"))
}

func TestValidateBooking_AfterLatestEnd(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	now := at(t, loc, "2025-11-17", "09:00")
	req := lessonRequest(t, loc, "2025-11-20", "18:30", 60)

	result := v.ValidateBooking(req, nil, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "cannot end after 19:00"))
}

func TestValidateBooking_WeekendIsWarningOnly(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	now := at(t, loc, "2025-11-17", "09:00")
	// 2025-11-22 — суббота
	req := lessonRequest(t, loc, "2025-11-22", "10:00", 60)

	result := v.ValidateBooking(req, nil, now)

	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidateBooking_DurationBounds(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	tooShort := lessonRequest(t, loc, "2025-11-20", "10:00", 30)
	result := v.ValidateBooking(tooShort, nil, now)
	assert.True(t, hasErrorContaining(result, "at least 60 minutes"))

	tooLong := lessonRequest(t, loc, "2025-11-20", "10:00", 240)
	result = v.ValidateBooking(tooLong, nil, now)
	assert.True(t, hasErrorContaining(result, "longer than 180"))
}

// Длительность в границах, но не из стандартного набора — только предупреждение
func TestValidateBooking_NonStandardDurationIsWarning(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	req := lessonRequest(t, loc, "2025-11-20", "10:00", 75)
	result := v.ValidateBooking(req, nil, now)

	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[0], "60, 90, 120, 180")
}

func TestValidateBooking_DurationMismatch(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	req := lessonRequest(t, loc, "2025-11-20", "10:00", 60)
	req.DurationMinutes = 90

	result := v.ValidateBooking(req, nil, now)
	assert.True(t, hasErrorContaining(result, "does not match"))
}

func TestValidateBooking_AdvanceNotice(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	// Меньше 24 часов до начала
	now := at(t, loc, "2025-11-20", "09:00")
	req := lessonRequest(t, loc, "2025-11-20", "15:00", 60)
	result := v.ValidateBooking(req, nil, now)
	assert.True(t, hasErrorContaining(result, "at least 24 hours in advance"))

	// Дальше 90 дней вперед
	now = at(t, loc, "2025-11-17", "09:00")
	req = lessonRequest(t, loc, "2026-04-01", "10:00", 60)
	result = v.ValidateBooking(req, nil, now)
	assert.True(t, hasErrorContaining(result, "more than 90 days in advance"))
}

// Горизонт бронирования — гражданские сутки: переход на летнее время
// (Сидней, 2025-10-05) не добавляет лишний день к 90-дневному лимиту
func TestValidateBooking_AdvanceDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	v := newTestValidator(t, loc)

	now := at(t, loc, "2025-09-10", "09:00")

	// Ровно 90 дней вперед — проходит
	req := lessonRequest(t, loc, "2025-12-09", "10:00", 60)
	result := v.ValidateBooking(req, nil, now)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)

	// 91 день вперед — не проходит, хотя разница моментов меньше 91*24h
	req = lessonRequest(t, loc, "2025-12-10", "10:00", 60)
	result = v.ValidateBooking(req, nil, now)
	assert.True(t, hasErrorContaining(result, "more than 90 days in advance"))
}

// Студент уже выбрал недельный лимит часов — еще один урок не проходит
func TestValidateBooking_WeeklyHoursLimit(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "07:00")

	// Неделя 2025-11-17 (пн) .. 2025-11-23 (вс): по 4 часа в пн-пт = 20 часов
	existing := []*domain.Lesson{}
	days := []string{"2025-11-17", "2025-11-18", "2025-11-19", "2025-11-20", "2025-11-21"}
	for i, day := range days {
		existing = append(existing,
			confirmedLesson(t, loc, int64(i*2+1), day, "08:00", "10:00"),
			confirmedLesson(t, loc, int64(i*2+2), day, "13:00", "15:00"),
		)
	}

	req := lessonRequest(t, loc, "2025-11-22", "10:00", 60)
	result := v.ValidateBooking(req, existing, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "weekly limit exceeded"))

	// Тот же запрос на следующей неделе проходит
	nextWeek := lessonRequest(t, loc, "2025-11-25", "10:00", 60)
	result = v.ValidateBooking(nextWeek, existing, now)
	assert.True(t, result.IsValid)
}

func TestValidateBooking_DailyLimits(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "07:00")

	// 4 часа уже забронировано на день (дневной лимит часов)
	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "08:00", "10:00"),
		confirmedLesson(t, loc, 2, "2025-11-20", "13:00", "15:00"),
	}

	req := lessonRequest(t, loc, "2025-11-20", "16:00", 60)
	result := v.ValidateBooking(req, existing, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "daily limit exceeded"))
}

// Урок соседствует с существующим через 5 минут при требуемых 15
func TestValidateBooking_BufferTooSmall(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}
	req := lessonRequest(t, loc, "2025-11-20", "11:05", 60)

	result := v.ValidateBooking(req, existing, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "at least 15 minutes are required"))
	assert.NotEmpty(t, result.Suggestions)
}

func TestValidateBooking_LiteralOverlap(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}
	req := lessonRequest(t, loc, "2025-11-20", "10:30", 60)

	result := v.ValidateBooking(req, existing, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "overlaps an existing lesson"))
}

// Ровно minBuffer между уроками — достаточно, ошибки нет
func TestValidateBooking_ExactBufferIsEnough(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}
	req := lessonRequest(t, loc, "2025-11-20", "11:15", 60)

	result := v.ValidateBooking(req, existing, now)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

// Pending и cancelled уроки не участвуют в лимитах
func TestValidateBooking_OnlyConfirmedCount(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	pending := confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00")
	pending.Status = domain.StatusPending
	cancelled := confirmedLesson(t, loc, 2, "2025-11-20", "11:00", "12:00")
	cancelled.Status = domain.StatusCancelled

	req := lessonRequest(t, loc, "2025-11-20", "10:30", 60)
	result := v.ValidateBooking(req, []*domain.Lesson{pending, cancelled}, now)

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

// Уроки другого студента не влияют на его лимиты
func TestValidateBooking_OtherStudentsIgnored(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	other := confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00")
	other.StudentID = testStudentID + 1
	other.InstructorID = testInstructorID + 1

	req := lessonRequest(t, loc, "2025-11-20", "10:30", 60)
	result := v.ValidateBooking(req, []*domain.Lesson{other}, now)

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

// Урок другого студента у того же инструктора в то же время — блокирующий
// конфликт: инструктор не может вести два урока одновременно
func TestValidateBooking_InstructorDoubleBooked(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	other := confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00")
	other.StudentID = testStudentID + 1

	req := lessonRequest(t, loc, "2025-11-20", "10:00", 60)
	result := v.ValidateBooking(req, []*domain.Lesson{other}, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "instructor is already booked"))
}

// Буфер действует и между уроками инструктора с разными студентами
func TestValidateBooking_InstructorBufferTooSmall(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	other := confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00")
	other.StudentID = testStudentID + 1

	req := lessonRequest(t, loc, "2025-11-20", "11:05", 60)
	result := v.ValidateBooking(req, []*domain.Lesson{other}, now)

	assert.False(t, result.IsValid)
	assert.True(t, hasErrorContaining(result, "instructor's lesson"))
	assert.True(t, hasErrorContaining(result, "at least 15 minutes are required"))

	// Ровно minBuffer — достаточно
	req = lessonRequest(t, loc, "2025-11-20", "11:15", 60)
	result = v.ValidateBooking(req, []*domain.Lesson{other}, now)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestValidateBooking_ConsecutiveLessonsWarning(t *testing.T) {
	loc := brisbane(t)

	c := domain.DefaultConstraints()
	c.MaxHoursPerDay = 8 // чтобы сработала именно проверка серий
	c.MaxLessonsPerDay = 6
	v, err := NewValidator(c, loc)
	require.NoError(t, err)

	now := at(t, loc, "2025-11-17", "07:00")

	// Три урока впритык (разрыв 15 минут = minBuffer), запрос — четвертый
	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "08:00", "09:00"),
		confirmedLesson(t, loc, 2, "2025-11-20", "09:15", "10:15"),
		confirmedLesson(t, loc, 3, "2025-11-20", "10:30", "11:30"),
	}
	req := lessonRequest(t, loc, "2025-11-20", "11:45", 60)

	result := v.ValidateBooking(req, existing, now)

	assert.True(t, result.IsValid, "errors: %v", result.Errors)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "consecutive") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", result.Warnings)
}

// Добавление подтвержденного урока может только перевести результат
// из valid в invalid, но не наоборот
func TestValidateBooking_Monotonicity(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "07:00")

	req := lessonRequest(t, loc, "2025-11-20", "10:00", 60)

	existing := []*domain.Lesson{}
	wasValid := v.ValidateBooking(req, existing, now).IsValid
	require.True(t, wasValid)

	// Постепенно заполняем день
	adds := []struct{ from, to string }{
		{"07:00", "08:00"},
		{"08:15", "09:15"},
		{"13:00", "14:00"},
		{"15:00", "16:00"},
	}
	for i, a := range adds {
		existing = append(existing, confirmedLesson(t, loc, int64(i+1), "2025-11-20", a.from, a.to))
		isValid := v.ValidateBooking(req, existing, now).IsValid
		if !wasValid {
			assert.False(t, isValid, "result went invalid->valid after adding a booking")
		}
		wasValid = isValid
	}
	assert.False(t, wasValid)
}

// Повторный вызов с теми же входами дает идентичный результат
func TestValidateBooking_Idempotent(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	now := at(t, loc, "2025-11-17", "09:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}
	req := lessonRequest(t, loc, "2025-11-20", "11:05", 45)

	first := v.ValidateBooking(req, existing, now)
	second := v.ValidateBooking(req, existing, now)

	require.Equal(t, first, second)
}
