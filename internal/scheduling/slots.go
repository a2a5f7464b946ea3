package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
)

// AvailableSlots вычисляет упорядоченный список свободных окон длительности
// durationMinutes на гражданский день момента day в рабочем окне window,
// с учетом minBuffer вокруг существующих подтвержденных уроков.
//
// Курсор идет от начала окна; на каждый промежуток между уроками предлагается
// не более одного слота-кандидата, даже если промежуток вместил бы несколько.
// Неподтвержденные уроки не занимают время.
func (v *Validator) AvailableSlots(day time.Time, window domain.DaySchedule, durationMinutes int, existing []*domain.Lesson) ([]domain.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlotDuration, durationMinutes)
	}
	if !window.Enabled {
		return []domain.TimeSlot{}, nil
	}

	dateStr := civiltime.FormatDate(day, v.loc)
	windowStart, err := civiltime.DateTime(dateStr, window.StartTime.String(), v.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: working hours: %v", domain.ErrInvalidConstraints, err)
	}
	windowEnd, err := civiltime.DateTime(dateStr, window.EndTime.String(), v.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: working hours: %v", domain.ErrInvalidConstraints, err)
	}
	if !windowEnd.After(windowStart) {
		return nil, fmt.Errorf("%w: working hours %s-%s are empty",
			domain.ErrInvalidConstraints, window.StartTime, window.EndTime)
	}

	// Вход может прийти неотсортированным — сортируем сами
	busy := make([]*domain.Lesson, 0, len(existing))
	for _, l := range existing {
		if l.CountsTowardLimits() {
			busy = append(busy, l)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].StartTime.Before(busy[j].StartTime) })

	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(v.constraints.MinBufferMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0)
	cursor := windowStart

	for _, l := range busy {
		if !l.StartTime.Before(windowEnd) {
			break
		}
		if l.StartTime.Sub(cursor) >= duration+buffer {
			slots = append(slots, domain.TimeSlot{Start: cursor, End: cursor.Add(duration)})
		}
		if next := l.EndTime.Add(buffer); next.After(cursor) {
			cursor = next
		}
	}

	if windowEnd.Sub(cursor) >= duration {
		slots = append(slots, domain.TimeSlot{Start: cursor, End: cursor.Add(duration)})
	}

	return slots, nil
}
