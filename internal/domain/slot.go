package domain

import "time"

// TimeSlot одно предлагаемое окно для бронирования: пара абсолютных
// моментов [Start, End). Производится генератором слотов, не мутируется.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// DurationMinutes длительность слота в минутах
func (s TimeSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Overlaps проверяет буквальное пересечение полуоткрытых интервалов
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}
