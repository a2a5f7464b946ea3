package validate_lesson

import "time"

// Request модель запроса на предварительную проверку бронирования
type Request struct {
	StudentID       int64
	InstructorID    int64
	StartTime       time.Time
	DurationMinutes int
	LessonType      *string
}

// Response результат проверки без побочных эффектов
type Response struct {
	Valid       bool
	Errors      []string
	Warnings    []string
	Suggestions []string
}
