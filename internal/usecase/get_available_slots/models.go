package get_available_slots

import "time"

// Request модель запроса свободных слотов
type Request struct {
	InstructorID    int64     // ID инструктора
	Date            time.Time // День в зоне школы
	DurationMinutes int       // Желаемая длительность урока
}

// Slot свободный интервал
type Slot struct {
	StartTime string `json:"startTime"` // "HH:MM" в зоне школы
	EndTime   string `json:"endTime"`
}

// Response ответ со свободными слотами.
// Выходной день возвращает пустой список, это не ошибка.
type Response struct {
	InstructorID    int64  `json:"instructorId"`
	Date            string `json:"date"` // "YYYY-MM-DD"
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}
