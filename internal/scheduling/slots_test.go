package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
	"github.com/sunstate-driving/scheduling-service/pkg/types"
)

func workingDay(from, to string) domain.DaySchedule {
	return domain.DaySchedule{
		Enabled:   true,
		StartTime: types.TimeString(from),
		EndTime:   types.TimeString(to),
	}
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	slots, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 60, nil)
	require.NoError(t, err)

	// Один слот-кандидат на промежуток: пустой день дает один слот от начала окна
	require.Len(t, slots, 1)
	assert.Equal(t, at(t, loc, "2025-11-20", "09:00"), slots[0].Start)
	assert.Equal(t, at(t, loc, "2025-11-20", "10:00"), slots[0].End)
}

func TestAvailableSlots_AroundExistingLesson(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "12:00", "13:00"),
	}

	slots, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 60, existing)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Слот до урока: начинается в начале окна и заканчивается не позже 11:45
	// (12:00 минус 15 минут буфера)
	assert.Equal(t, at(t, loc, "2025-11-20", "09:00"), slots[0].Start)
	assert.False(t, slots[0].End.After(at(t, loc, "2025-11-20", "11:45")))

	// Слот после урока: не раньше 13:15 (конец урока плюс буфер)
	assert.Equal(t, at(t, loc, "2025-11-20", "13:15"), slots[1].Start)
	assert.Equal(t, at(t, loc, "2025-11-20", "14:15"), slots[1].End)
}

func TestAvailableSlots_GapTooSmallForLesson(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	// Между началом окна и уроком 60 минут: урока (60) + буфера (15) не влезает
	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}

	slots, err := v.AvailableSlots(day, workingDay("09:00", "12:30"), 60, existing)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, at(t, loc, "2025-11-20", "11:15"), slots[0].Start)
}

func TestAvailableSlots_FullyBookedDay(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 1, "2025-11-20", "09:00", "17:00"),
	}

	slots, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 60, existing)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Генератор сортирует вход сам
func TestAvailableSlots_UnsortedInput(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	existing := []*domain.Lesson{
		confirmedLesson(t, loc, 2, "2025-11-20", "14:00", "15:00"),
		confirmedLesson(t, loc, 1, "2025-11-20", "10:00", "11:00"),
	}

	slots, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 60, existing)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Промежуток 11:15..14:00 дает один слот, хвост 15:15..17:00 — второй
	assert.Equal(t, at(t, loc, "2025-11-20", "11:15"), slots[0].Start)
	assert.Equal(t, at(t, loc, "2025-11-20", "15:15"), slots[1].Start)
}

// Неподтвержденные уроки не занимают время
func TestAvailableSlots_IgnoresPendingAndCancelled(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	pending := confirmedLesson(t, loc, 1, "2025-11-20", "09:00", "17:00")
	pending.Status = domain.StatusPending

	slots, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 60, []*domain.Lesson{pending})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, at(t, loc, "2025-11-20", "09:00"), slots[0].Start)
}

func TestAvailableSlots_DisabledDay(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-23", "00:00")

	window := workingDay("09:00", "17:00")
	window.Enabled = false

	slots, err := v.AvailableSlots(day, window, 60, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_InvalidInput(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)
	day := at(t, loc, "2025-11-20", "00:00")

	_, err := v.AvailableSlots(day, workingDay("09:00", "17:00"), 0, nil)
	require.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = v.AvailableSlots(day, workingDay("17:00", "09:00"), 60, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConstraints)

	_, err = v.AvailableSlots(day, workingDay("9am", "17:00"), 60, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConstraints)
}

// Слоты — абсолютные моменты: день, пришедший в другой зоне,
// интерпретируется по гражданскому дню зоны планирования
func TestAvailableSlots_DayFromOtherZone(t *testing.T) {
	loc := brisbane(t)
	v := newTestValidator(t, loc)

	// 2025-11-20 14:30 UTC = 2025-11-21 00:30 в Брисбене
	day := time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC)

	slots, err := v.AvailableSlots(day, workingDay("09:00", "10:00"), 60, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2025-11-21", civiltime.FormatDate(slots[0].Start, loc))
}
