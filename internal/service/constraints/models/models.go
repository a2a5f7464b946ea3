package models

import (
	"errors"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/types"
)

var (
	// ErrUnknownDay возвращается при неизвестном имени дня недели
	ErrUnknownDay = errors.New("unknown day of week")
)

// Дни недели в порядке вывода: учебная неделя начинается с понедельника
var weekDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Request модели

// UpdateConstraintsRequest частичное обновление настроек планирования.
// Отсутствующие поля не изменяются.
type UpdateConstraintsRequest struct {
	MaxHoursPerWeek       *int `json:"maxHoursPerWeek,omitempty"`
	MaxLessonsPerWeek     *int `json:"maxLessonsPerWeek,omitempty"`
	MaxConsecutiveLessons *int `json:"maxConsecutiveLessons,omitempty"`

	MaxHoursPerDay   *int `json:"maxHoursPerDay,omitempty"`
	MaxLessonsPerDay *int `json:"maxLessonsPerDay,omitempty"`

	EarliestStartTime *string `json:"earliestStartTime,omitempty"` // "HH:MM"
	LatestEndTime     *string `json:"latestEndTime,omitempty"`

	MinBufferMinutes *int `json:"minBufferMinutes,omitempty"`
	MaxBufferMinutes *int `json:"maxBufferMinutes,omitempty"`

	MinLessonDurationMinutes *int  `json:"minLessonDurationMinutes,omitempty"`
	MaxLessonDurationMinutes *int  `json:"maxLessonDurationMinutes,omitempty"`
	AllowedDurations         []int `json:"allowedDurations,omitempty"` // Пустой массив снимает ограничение

	MaxAdvanceBookingDays  *int `json:"maxAdvanceBookingDays,omitempty"`
	MinAdvanceBookingHours *int `json:"minAdvanceBookingHours,omitempty"`

	MaxInstructorHoursPerDay *int `json:"maxInstructorHoursPerDay,omitempty"`

	RequiredBreakAfterHours *int `json:"requiredBreakAfterHours,omitempty"`
	MinBreakDurationMinutes *int `json:"minBreakDurationMinutes,omitempty"`

	WeeklySchedule []ScheduleDay `json:"weeklySchedule,omitempty"`
}

// ToDomainUpdate конвертирует request в domain обновление
func (r *UpdateConstraintsRequest) ToDomainUpdate() (*domain.ConstraintsUpdate, error) {
	update := &domain.ConstraintsUpdate{
		MaxHoursPerWeek:          r.MaxHoursPerWeek,
		MaxLessonsPerWeek:        r.MaxLessonsPerWeek,
		MaxConsecutiveLessons:    r.MaxConsecutiveLessons,
		MaxHoursPerDay:           r.MaxHoursPerDay,
		MaxLessonsPerDay:         r.MaxLessonsPerDay,
		MinBufferMinutes:         r.MinBufferMinutes,
		MaxBufferMinutes:         r.MaxBufferMinutes,
		MinLessonDurationMinutes: r.MinLessonDurationMinutes,
		MaxLessonDurationMinutes: r.MaxLessonDurationMinutes,
		AllowedDurations:         r.AllowedDurations,
		MaxAdvanceBookingDays:    r.MaxAdvanceBookingDays,
		MinAdvanceBookingHours:   r.MinAdvanceBookingHours,
		MaxInstructorHoursPerDay: r.MaxInstructorHoursPerDay,
		RequiredBreakAfterHours:  r.RequiredBreakAfterHours,
		MinBreakDurationMinutes:  r.MinBreakDurationMinutes,
	}

	if r.EarliestStartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EarliestStartTime)
		if err != nil {
			return nil, err
		}
		update.EarliestStartTime = &ts
	}
	if r.LatestEndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.LatestEndTime)
		if err != nil {
			return nil, err
		}
		update.LatestEndTime = &ts
	}

	return update, nil
}

// ToDomainSchedule применяет изменения дней к существующему расписанию
func (r *UpdateConstraintsRequest) ToDomainSchedule(base domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	out := base
	for _, day := range r.WeeklySchedule {
		dow, ok := dayNames[day.Day]
		if !ok {
			return nil, ErrUnknownDay
		}
		start, err := types.NewTimeStringFromString(day.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(day.EndTime)
		if err != nil {
			return nil, err
		}
		out[dow] = domain.DaySchedule{
			Enabled:   day.Enabled,
			StartTime: start,
			EndTime:   end,
		}
	}
	return &out, nil
}

// Response модели

// ScheduleDay рабочие часы одного дня недели
type ScheduleDay struct {
	Day       string `json:"day"` // "monday" .. "sunday"
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConstraintsResponse ответ с текущими настройками планирования
type ConstraintsResponse struct {
	MaxHoursPerWeek       int `json:"maxHoursPerWeek"`
	MaxLessonsPerWeek     int `json:"maxLessonsPerWeek"`
	MaxConsecutiveLessons int `json:"maxConsecutiveLessons"`

	MaxHoursPerDay   int `json:"maxHoursPerDay"`
	MaxLessonsPerDay int `json:"maxLessonsPerDay"`

	EarliestStartTime string `json:"earliestStartTime"`
	LatestEndTime     string `json:"latestEndTime"`

	MinBufferMinutes int `json:"minBufferMinutes"`
	MaxBufferMinutes int `json:"maxBufferMinutes"`

	MinLessonDurationMinutes int   `json:"minLessonDurationMinutes"`
	MaxLessonDurationMinutes int   `json:"maxLessonDurationMinutes"`
	AllowedDurations         []int `json:"allowedDurations"`

	MaxAdvanceBookingDays  int `json:"maxAdvanceBookingDays"`
	MinAdvanceBookingHours int `json:"minAdvanceBookingHours"`

	MaxInstructorHoursPerDay int `json:"maxInstructorHoursPerDay"`

	RequiredBreakAfterHours int `json:"requiredBreakAfterHours"`
	MinBreakDurationMinutes int `json:"minBreakDurationMinutes"`

	WeeklySchedule []ScheduleDay `json:"weeklySchedule"`

	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConstraints конвертирует domain модели в DTO
func FromDomainConstraints(c *domain.SchedulingConstraints, schedule *domain.WeeklySchedule) *ConstraintsResponse {
	resp := &ConstraintsResponse{
		MaxHoursPerWeek:          c.MaxHoursPerWeek,
		MaxLessonsPerWeek:        c.MaxLessonsPerWeek,
		MaxConsecutiveLessons:    c.MaxConsecutiveLessons,
		MaxHoursPerDay:           c.MaxHoursPerDay,
		MaxLessonsPerDay:         c.MaxLessonsPerDay,
		EarliestStartTime:        c.EarliestStartTime.String(),
		LatestEndTime:            c.LatestEndTime.String(),
		MinBufferMinutes:         c.MinBufferMinutes,
		MaxBufferMinutes:         c.MaxBufferMinutes,
		MinLessonDurationMinutes: c.MinLessonDurationMinutes,
		MaxLessonDurationMinutes: c.MaxLessonDurationMinutes,
		AllowedDurations:         append([]int{}, c.AllowedDurations...),
		MaxAdvanceBookingDays:    c.MaxAdvanceBookingDays,
		MinAdvanceBookingHours:   c.MinAdvanceBookingHours,
		MaxInstructorHoursPerDay: c.MaxInstructorHoursPerDay,
		RequiredBreakAfterHours:  c.RequiredBreakAfterHours,
		MinBreakDurationMinutes:  c.MinBreakDurationMinutes,
		WeeklySchedule:           make([]ScheduleDay, 0, len(weekDays)),
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	for _, dow := range weekDays {
		day := schedule.ForDay(dow)
		resp.WeeklySchedule = append(resp.WeeklySchedule, ScheduleDay{
			Day:       dayName(dow),
			Enabled:   day.Enabled,
			StartTime: day.StartTime.String(),
			EndTime:   day.EndTime.String(),
		})
	}

	return resp
}

func dayName(dow time.Weekday) string {
	for name, d := range dayNames {
		if d == dow {
			return name
		}
	}
	return ""
}
