package domain

import "github.com/sunstate-driving/scheduling-service/pkg/types"

// Default scheduling constraint values
const (
	DefaultMaxHoursPerWeek       = 20
	DefaultMaxLessonsPerWeek     = 10
	DefaultMaxConsecutiveLessons = 3

	DefaultMaxHoursPerDay   = 4
	DefaultMaxLessonsPerDay = 3

	DefaultEarliestStartTime = types.TimeString("07:00")
	DefaultLatestEndTime     = types.TimeString("19:00")

	DefaultMinBufferMinutes = 15
	DefaultMaxBufferMinutes = 120

	DefaultMinLessonDurationMinutes = 60
	DefaultMaxLessonDurationMinutes = 180

	DefaultMaxAdvanceBookingDays  = 90
	DefaultMinAdvanceBookingHours = 24

	DefaultMaxInstructorHoursPerDay = 8

	DefaultRequiredBreakAfterHours = 4
	DefaultMinBreakDurationMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone таймзона планирования по умолчанию.
// Все wall-clock вычисления привязаны к явной зоне, никогда к локали хоста.
const DefaultTimezone = "Australia/Brisbane"

// Ограничения длины текстовых полей
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)
