package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/sunstate-driving/scheduling-service/pkg/types"
)

// ErrInvalidConstraints возвращается при некорректной конфигурации ограничений.
// Это ошибка конфигурации (администратора), а не отказ в бронировании:
// она никогда не попадает в ValidationResult.
var ErrInvalidConstraints = errors.New("domain: invalid scheduling constraints")

// SchedulingConstraints плоская запись всех настраиваемых лимитов планирования.
// Загружается один раз на проверку и в течение проверки не изменяется;
// обновление администратором заменяет запись целиком.
type SchedulingConstraints struct {
	MaxHoursPerWeek       int
	MaxLessonsPerWeek     int
	MaxConsecutiveLessons int

	MaxHoursPerDay   int
	MaxLessonsPerDay int

	EarliestStartTime types.TimeString // Wall-clock "HH:MM"
	LatestEndTime     types.TimeString

	MinBufferMinutes int // Минимальный перерыв между уроками
	MaxBufferMinutes int

	MinLessonDurationMinutes int
	MaxLessonDurationMinutes int
	AllowedDurations         []int // Стандартные длительности уроков в минутах

	MaxAdvanceBookingDays  int
	MinAdvanceBookingHours int

	MaxInstructorHoursPerDay int

	RequiredBreakAfterHours int // Часы подряд, после которых инструктору нужен перерыв
	MinBreakDurationMinutes int

	UpdatedAt time.Time
}

// Validate проверяет инварианты конфигурации.
// Возвращает ошибку, обернутую в ErrInvalidConstraints, при первом нарушении.
func (c *SchedulingConstraints) Validate() error {
	if err := c.EarliestStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: earliestStartTime: %v", ErrInvalidConstraints, err)
	}
	if err := c.LatestEndTime.Validate(); err != nil {
		return fmt.Errorf("%w: latestEndTime: %v", ErrInvalidConstraints, err)
	}
	if !c.EarliestStartTime.IsBefore(c.LatestEndTime) {
		return fmt.Errorf("%w: earliestStartTime %s must be before latestEndTime %s",
			ErrInvalidConstraints, c.EarliestStartTime, c.LatestEndTime)
	}
	if c.MinLessonDurationMinutes > c.MaxLessonDurationMinutes {
		return fmt.Errorf("%w: minLessonDuration %d exceeds maxLessonDuration %d",
			ErrInvalidConstraints, c.MinLessonDurationMinutes, c.MaxLessonDurationMinutes)
	}
	if c.MinBufferMinutes > c.MaxBufferMinutes {
		return fmt.Errorf("%w: minBuffer %d exceeds maxBuffer %d",
			ErrInvalidConstraints, c.MinBufferMinutes, c.MaxBufferMinutes)
	}

	for name, v := range map[string]int{
		"maxHoursPerWeek":          c.MaxHoursPerWeek,
		"maxLessonsPerWeek":        c.MaxLessonsPerWeek,
		"maxConsecutiveLessons":    c.MaxConsecutiveLessons,
		"maxHoursPerDay":           c.MaxHoursPerDay,
		"maxLessonsPerDay":         c.MaxLessonsPerDay,
		"minBufferMinutes":         c.MinBufferMinutes,
		"maxBufferMinutes":         c.MaxBufferMinutes,
		"minLessonDurationMinutes": c.MinLessonDurationMinutes,
		"maxLessonDurationMinutes": c.MaxLessonDurationMinutes,
		"maxAdvanceBookingDays":    c.MaxAdvanceBookingDays,
		"minAdvanceBookingHours":   c.MinAdvanceBookingHours,
		"maxInstructorHoursPerDay": c.MaxInstructorHoursPerDay,
		"requiredBreakAfterHours":  c.RequiredBreakAfterHours,
		"minBreakDurationMinutes":  c.MinBreakDurationMinutes,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidConstraints, name, v)
		}
	}

	for _, d := range c.AllowedDurations {
		if d < c.MinLessonDurationMinutes || d > c.MaxLessonDurationMinutes {
			return fmt.Errorf("%w: allowed duration %d is outside [%d, %d]",
				ErrInvalidConstraints, d, c.MinLessonDurationMinutes, c.MaxLessonDurationMinutes)
		}
	}

	return nil
}

// DurationAllowed проверяет, входит ли длительность в набор стандартных.
// Пустой набор означает отсутствие ограничения.
func (c *SchedulingConstraints) DurationAllowed(minutes int) bool {
	if len(c.AllowedDurations) == 0 {
		return true
	}
	for _, d := range c.AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// DefaultConstraints возвращает конфигурацию по умолчанию
func DefaultConstraints() SchedulingConstraints {
	return SchedulingConstraints{
		MaxHoursPerWeek:          DefaultMaxHoursPerWeek,
		MaxLessonsPerWeek:        DefaultMaxLessonsPerWeek,
		MaxConsecutiveLessons:    DefaultMaxConsecutiveLessons,
		MaxHoursPerDay:           DefaultMaxHoursPerDay,
		MaxLessonsPerDay:         DefaultMaxLessonsPerDay,
		EarliestStartTime:        DefaultEarliestStartTime,
		LatestEndTime:            DefaultLatestEndTime,
		MinBufferMinutes:         DefaultMinBufferMinutes,
		MaxBufferMinutes:         DefaultMaxBufferMinutes,
		MinLessonDurationMinutes: DefaultMinLessonDurationMinutes,
		MaxLessonDurationMinutes: DefaultMaxLessonDurationMinutes,
		AllowedDurations:         []int{60, 90, 120, 180},
		MaxAdvanceBookingDays:    DefaultMaxAdvanceBookingDays,
		MinAdvanceBookingHours:   DefaultMinAdvanceBookingHours,
		MaxInstructorHoursPerDay: DefaultMaxInstructorHoursPerDay,
		RequiredBreakAfterHours:  DefaultRequiredBreakAfterHours,
		MinBreakDurationMinutes:  DefaultMinBreakDurationMinutes,
	}
}

// ConstraintsUpdate частичное обновление ограничений.
// Применяются только непустые (not nil) поля; результат валидируется целиком
// перед сохранением, частичных некорректных состояний не бывает.
type ConstraintsUpdate struct {
	MaxHoursPerWeek       *int
	MaxLessonsPerWeek     *int
	MaxConsecutiveLessons *int

	MaxHoursPerDay   *int
	MaxLessonsPerDay *int

	EarliestStartTime *types.TimeString
	LatestEndTime     *types.TimeString

	MinBufferMinutes *int
	MaxBufferMinutes *int

	MinLessonDurationMinutes *int
	MaxLessonDurationMinutes *int
	AllowedDurations         []int // nil = не менять, пустой срез = снять ограничение

	MaxAdvanceBookingDays  *int
	MinAdvanceBookingHours *int

	MaxInstructorHoursPerDay *int

	RequiredBreakAfterHours *int
	MinBreakDurationMinutes *int
}

// Apply возвращает новую запись с примененными изменениями.
// Исходная запись не мутируется.
func (u *ConstraintsUpdate) Apply(base SchedulingConstraints) SchedulingConstraints {
	out := base
	out.AllowedDurations = append([]int(nil), base.AllowedDurations...)

	if u.MaxHoursPerWeek != nil {
		out.MaxHoursPerWeek = *u.MaxHoursPerWeek
	}
	if u.MaxLessonsPerWeek != nil {
		out.MaxLessonsPerWeek = *u.MaxLessonsPerWeek
	}
	if u.MaxConsecutiveLessons != nil {
		out.MaxConsecutiveLessons = *u.MaxConsecutiveLessons
	}
	if u.MaxHoursPerDay != nil {
		out.MaxHoursPerDay = *u.MaxHoursPerDay
	}
	if u.MaxLessonsPerDay != nil {
		out.MaxLessonsPerDay = *u.MaxLessonsPerDay
	}
	if u.EarliestStartTime != nil {
		out.EarliestStartTime = *u.EarliestStartTime
	}
	if u.LatestEndTime != nil {
		out.LatestEndTime = *u.LatestEndTime
	}
	if u.MinBufferMinutes != nil {
		out.MinBufferMinutes = *u.MinBufferMinutes
	}
	if u.MaxBufferMinutes != nil {
		out.MaxBufferMinutes = *u.MaxBufferMinutes
	}
	if u.MinLessonDurationMinutes != nil {
		out.MinLessonDurationMinutes = *u.MinLessonDurationMinutes
	}
	if u.MaxLessonDurationMinutes != nil {
		out.MaxLessonDurationMinutes = *u.MaxLessonDurationMinutes
	}
	if u.AllowedDurations != nil {
		out.AllowedDurations = append([]int(nil), u.AllowedDurations...)
	}
	if u.MaxAdvanceBookingDays != nil {
		out.MaxAdvanceBookingDays = *u.MaxAdvanceBookingDays
	}
	if u.MinAdvanceBookingHours != nil {
		out.MinAdvanceBookingHours = *u.MinAdvanceBookingHours
	}
	if u.MaxInstructorHoursPerDay != nil {
		out.MaxInstructorHoursPerDay = *u.MaxInstructorHoursPerDay
	}
	if u.RequiredBreakAfterHours != nil {
		out.RequiredBreakAfterHours = *u.RequiredBreakAfterHours
	}
	if u.MinBreakDurationMinutes != nil {
		out.MinBreakDurationMinutes = *u.MinBreakDurationMinutes
	}
	return out
}
