package create_lesson

import (
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// Request модель запроса на бронирование урока
type Request struct {
	StudentID       int64     // ID студента
	InstructorID    int64     // ID инструктора
	StartTime       time.Time // Момент начала урока
	DurationMinutes int       // Длительность в минутах
	LessonType      *string   // Тип урока (опционально)
	Notes           *string   // Заметки (опционально)
}

// CreatedLesson данные созданного урока
type CreatedLesson struct {
	ID              int64
	Reference       string
	StudentID       int64
	InstructorID    int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	LessonType      *string
	Notes           *string
	CreatedAt       time.Time
}

// Response результат бронирования.
// При отказе Lesson равен nil, причины отказа перечислены в Errors.
// Warnings и Suggestions присутствуют и у успешных бронирований.
type Response struct {
	Valid       bool
	Errors      []string
	Warnings    []string
	Suggestions []string
	Lesson      *CreatedLesson
}

func newResponse(result *domain.ValidationResult) *Response {
	return &Response{
		Valid:       result.IsValid,
		Errors:      result.Errors,
		Warnings:    result.Warnings,
		Suggestions: result.Suggestions,
	}
}
