package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
	"github.com/sunstate-driving/scheduling-service/pkg/types"
)

// checkRequestShape проверяет согласованность самого запроса
func (v *Validator) checkRequestShape(req *domain.LessonRequest, result *domain.ValidationResult) {
	if !req.EndTime.After(req.StartTime) {
		result.AddError("lesson end time must be after its start time")
		return
	}
	if actual := int(req.EndTime.Sub(req.StartTime) / time.Minute); actual != req.DurationMinutes {
		result.AddError(fmt.Sprintf(
			"lesson duration %d minutes does not match its start and end times (%d minutes apart)",
			req.DurationMinutes, actual))
	}
}

// checkTimeWindow проверяет попадание урока в дневное окно [earliest, latest].
// Выходной день — только предупреждение, не блокировка.
func (v *Validator) checkTimeWindow(req *domain.LessonRequest, result *domain.ValidationResult) {
	start := types.NewTimeString(req.StartTime.In(v.loc))
	end := types.NewTimeString(req.EndTime.In(v.loc))

	if start.IsBefore(v.constraints.EarliestStartTime) {
		result.AddError(fmt.Sprintf("lesson cannot start before %s", v.constraints.EarliestStartTime))
	}
	// Урок, переваливающий за полночь, здесь не ловится отдельно:
	// его wall-clock конец окажется меньше latest только если latest близок к 24:00,
	// а такие конфигурации отсекает MaxLessonDuration.
	if end.IsAfter(v.constraints.LatestEndTime) {
		result.AddError(fmt.Sprintf("lesson cannot end after %s", v.constraints.LatestEndTime))
	}

	wd := req.StartTime.In(v.loc).Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		result.AddWarning("lesson falls on a weekend; availability may be limited")
	}
}

// checkDuration проверяет границы длительности; нестандартная длительность
// в допустимых границах — предупреждение с подсказкой, не ошибка
func (v *Validator) checkDuration(req *domain.LessonRequest, result *domain.ValidationResult) {
	d := req.DurationMinutes

	switch {
	case d < v.constraints.MinLessonDurationMinutes:
		result.AddError(fmt.Sprintf("lesson must be at least %d minutes long", v.constraints.MinLessonDurationMinutes))
	case d > v.constraints.MaxLessonDurationMinutes:
		result.AddError(fmt.Sprintf("lesson cannot be longer than %d minutes", v.constraints.MaxLessonDurationMinutes))
	case !v.constraints.DurationAllowed(d):
		result.AddWarning(fmt.Sprintf("%d minutes is not a standard lesson length", d))
		result.AddSuggestion(fmt.Sprintf("standard lesson lengths are %s minutes", formatDurations(v.constraints.AllowedDurations)))
	}
}

// checkAdvanceNotice проверяет окно заблаговременности: не слишком поздно
// и не слишком далеко вперед. Нулевые лимиты означают отсутствие ограничения.
func (v *Validator) checkAdvanceNotice(req *domain.LessonRequest, now time.Time, result *domain.ValidationResult) {
	if min := v.constraints.MinAdvanceBookingHours; min > 0 {
		if req.StartTime.Sub(now) < time.Duration(min)*time.Hour {
			result.AddError(fmt.Sprintf("lessons must be booked at least %d hours in advance", min))
		}
	}

	// Горизонт считается в гражданских сутках через AddDate: сутки с переходом
	// на летнее время длиннее или короче 24 часов, и деление на 24h здесь врет.
	if max := v.constraints.MaxAdvanceBookingDays; max > 0 {
		horizon := civiltime.StartOfDay(now, v.loc).AddDate(0, 0, max)
		if civiltime.StartOfDay(req.StartTime, v.loc).After(horizon) {
			result.AddError(fmt.Sprintf("lessons cannot be booked more than %d days in advance", max))
		}
	}
}

// checkWeeklyLimits проверяет недельные лимиты часов и количества уроков.
// Неделя начинается с понедельника (гражданская полночь в зоне планирования).
func (v *Validator) checkWeeklyLimits(req *domain.LessonRequest, existing []*domain.Lesson, result *domain.ValidationResult) {
	weekStart := civiltime.StartOfWeek(req.StartTime, v.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	minutes, count := 0, 0
	for _, l := range studentConfirmed(req, existing) {
		if l.StartTime.Before(weekStart) || !l.StartTime.Before(weekEnd) {
			continue
		}
		minutes += lessonMinutes(l)
		count++
	}

	if max := v.constraints.MaxHoursPerWeek; max > 0 {
		total := float64(minutes+req.DurationMinutes) / 60
		if total > float64(max) {
			result.AddError(fmt.Sprintf(
				"weekly limit exceeded: %.1f hours would be booked this week, maximum is %d", total, max))
			result.AddSuggestion("try booking this lesson in a following week")
		}
	}
	if max := v.constraints.MaxLessonsPerWeek; max > 0 && count+1 > max {
		result.AddError(fmt.Sprintf(
			"weekly limit exceeded: %d lessons would be booked this week, maximum is %d", count+1, max))
	}
}

// checkDailyLimits проверяет дневные лимиты студента и инструктора.
// День — гражданские сутки в зоне планирования.
func (v *Validator) checkDailyLimits(req *domain.LessonRequest, existing []*domain.Lesson, result *domain.ValidationResult) {
	dayStart := civiltime.StartOfDay(req.StartTime, v.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	inDay := func(l *domain.Lesson) bool {
		return !l.StartTime.Before(dayStart) && l.StartTime.Before(dayEnd)
	}

	minutes, count := 0, 0
	for _, l := range studentConfirmed(req, existing) {
		if inDay(l) {
			minutes += lessonMinutes(l)
			count++
		}
	}

	if max := v.constraints.MaxHoursPerDay; max > 0 {
		total := float64(minutes+req.DurationMinutes) / 60
		if total > float64(max) {
			result.AddError(fmt.Sprintf(
				"daily limit exceeded: %.1f hours would be booked on this day, maximum is %d", total, max))
		}
	}
	if max := v.constraints.MaxLessonsPerDay; max > 0 && count+1 > max {
		result.AddError(fmt.Sprintf(
			"daily limit exceeded: %d lessons would be booked on this day, maximum is %d", count+1, max))
	}

	if max := v.constraints.MaxInstructorHoursPerDay; max > 0 && req.InstructorID > 0 {
		instructorMinutes := 0
		for _, l := range instructorConfirmed(req, existing) {
			if inDay(l) {
				instructorMinutes += lessonMinutes(l)
			}
		}
		if total := float64(instructorMinutes+req.DurationMinutes) / 60; total > float64(max) {
			result.AddError(fmt.Sprintf(
				"instructor daily limit exceeded: %.1f hours would be booked, maximum is %d", total, max))
		}
	}
}

// checkBuffers проверяет буфер вокруг соседних уроков студента и инструктора.
// Соседи ищутся пересечением с запасом minBuffer: это ловит и буквальные
// пересечения, и уроки "слишком близко" (разрыв меньше буфера).
// Урок другого студента у того же инструктора — такой же блокирующий сосед:
// инструктор не может вести два урока одновременно.
func (v *Validator) checkBuffers(req *domain.LessonRequest, existing []*domain.Lesson, result *domain.ValidationResult) {
	buffer := time.Duration(v.constraints.MinBufferMinutes) * time.Minute
	tooClose := false

	for _, l := range neighborConfirmed(req, existing) {
		if !civiltime.Overlaps(req.StartTime, req.EndTime, l.StartTime, l.EndTime, buffer) {
			continue
		}

		whose := "the lesson"
		if l.StudentID != req.StudentID {
			whose = "the instructor's lesson"
		}

		if civiltime.Overlaps(req.StartTime, req.EndTime, l.StartTime, l.EndTime, 0) {
			if l.StudentID == req.StudentID {
				result.AddError(fmt.Sprintf("lesson overlaps an existing lesson from %s to %s",
					civiltime.FormatTime(l.StartTime, v.loc), civiltime.FormatTime(l.EndTime, v.loc)))
			} else {
				result.AddError(fmt.Sprintf("instructor is already booked from %s to %s",
					civiltime.FormatTime(l.StartTime, v.loc), civiltime.FormatTime(l.EndTime, v.loc)))
			}
			continue
		}

		tooClose = true
		if !l.EndTime.After(req.StartTime) {
			gap := int(req.StartTime.Sub(l.EndTime) / time.Minute)
			result.AddError(fmt.Sprintf(
				"only %d minutes after %s ending at %s; at least %d minutes are required between lessons",
				gap, whose, civiltime.FormatTime(l.EndTime, v.loc), v.constraints.MinBufferMinutes))
		} else {
			gap := int(l.StartTime.Sub(req.EndTime) / time.Minute)
			result.AddError(fmt.Sprintf(
				"only %d minutes before %s starting at %s; at least %d minutes are required between lessons",
				gap, whose, civiltime.FormatTime(l.StartTime, v.loc), v.constraints.MinBufferMinutes))
		}
	}

	if tooClose {
		result.AddSuggestion(fmt.Sprintf("leave at least %d minutes between lessons", v.constraints.MinBufferMinutes))
	}
}

// checkConsecutiveLessons объединяет запрос с уроками дня и считает серии
// уроков "впритык" (разрыв не больше minBuffer). Превышение — предупреждение:
// разрежение расписания носит рекомендательный характер.
func (v *Validator) checkConsecutiveLessons(req *domain.LessonRequest, existing []*domain.Lesson, result *domain.ValidationResult) {
	dayStart := civiltime.StartOfDay(req.StartTime, v.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	slots := []domain.TimeSlot{{Start: req.StartTime, End: req.EndTime}}
	for _, l := range studentConfirmed(req, existing) {
		if l.StartTime.Before(dayStart) || !l.StartTime.Before(dayEnd) {
			continue
		}
		slots = append(slots, domain.TimeSlot{Start: l.StartTime, End: l.EndTime})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })

	buffer := time.Duration(v.constraints.MinBufferMinutes) * time.Minute

	run := 1
	runMinutes := slots[0].DurationMinutes()
	maxRun := run
	maxRunMinutes := runMinutes

	for i := 1; i < len(slots); i++ {
		gap := slots[i].Start.Sub(slots[i-1].End)
		if gap >= 0 && gap <= buffer {
			run++
			runMinutes += slots[i].DurationMinutes()
		} else {
			run = 1
			runMinutes = slots[i].DurationMinutes()
		}
		if run > maxRun {
			maxRun = run
		}
		if runMinutes > maxRunMinutes {
			maxRunMinutes = runMinutes
		}
	}

	if max := v.constraints.MaxConsecutiveLessons; max > 0 && maxRun > max {
		result.AddWarning(fmt.Sprintf(
			"%d consecutive lessons scheduled; no more than %d back-to-back lessons are recommended", maxRun, max))
	}

	if after := v.constraints.RequiredBreakAfterHours; after > 0 && maxRunMinutes > after*60 {
		result.AddWarning(fmt.Sprintf(
			"more than %d continuous hours scheduled; a break of at least %d minutes is recommended",
			after, v.constraints.MinBreakDurationMinutes))
	}
}

func formatDurations(durations []int) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, ", ")
}
