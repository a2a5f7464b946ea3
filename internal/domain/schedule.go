package domain

import (
	"time"

	"github.com/sunstate-driving/scheduling-service/pkg/types"
)

// DaySchedule рабочее окно одного дня недели
type DaySchedule struct {
	Enabled   bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// WeeklySchedule рабочие окна по дням недели.
// Массив индексируется time.Weekday (Sunday = 0) — структурная замена
// динамических строковых ключей вида settings["mondayEnabled"].
type WeeklySchedule [7]DaySchedule

// ForDay возвращает рабочее окно для дня недели
func (w WeeklySchedule) ForDay(d time.Weekday) DaySchedule {
	return w[int(d)]
}

// DefaultWeeklySchedule расписание по умолчанию: понедельник-суббота
// в пределах [earliest, latest], воскресенье закрыто
func DefaultWeeklySchedule(earliest, latest types.TimeString) WeeklySchedule {
	var w WeeklySchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[int(d)] = DaySchedule{
			Enabled:   d != time.Sunday,
			StartTime: earliest,
			EndTime:   latest,
		}
	}
	return w
}
