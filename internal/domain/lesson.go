package domain

import "time"

// LessonStatus represents the status of a driving lesson booking
type LessonStatus string

const (
	StatusPending   LessonStatus = "pending"
	StatusConfirmed LessonStatus = "confirmed"
	StatusCancelled LessonStatus = "cancelled"
)

// Lesson represents a driving lesson booking in the system
type Lesson struct {
	ID              int64
	Reference       string // Публичный код бронирования (UUID), используется в письмах и календаре
	StudentID       int64
	InstructorID    int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          LessonStatus
	LessonType      *string // "standard", "highway", "test-prep" и т.п.; nil = standard
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the lesson is confirmed
func (l *Lesson) IsConfirmed() bool {
	return l.Status == StatusConfirmed
}

// CountsTowardLimits returns true if the lesson is included in
// weekly/daily/buffer calculations. Only confirmed lessons count.
func (l *Lesson) CountsTowardLimits() bool {
	return l.Status == StatusConfirmed
}

// CanBeCancelled returns true if the lesson can still be cancelled
func (l *Lesson) CanBeCancelled() bool {
	return l.Status == StatusPending || l.Status == StatusConfirmed
}

// LessonRequest запрос на бронирование урока.
// Эфемерная структура: строится на каждый вызов валидации, не сохраняется.
type LessonRequest struct {
	StudentID       int64
	InstructorID    int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int // Должна совпадать с EndTime - StartTime
	LessonType      *string
}

// StudentLessonsFilter фильтр для выборки уроков студента
type StudentLessonsFilter struct {
	StudentID int64
	Status    *LessonStatus // nil = все статусы
	From      *time.Time
	To        *time.Time
}
