package models

import (
	"errors"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid lesson status")
)

// Request модели

// CancelLessonRequest запрос на отмену урока
type CancelLessonRequest struct {
	UserID int64   `json:"userId"`
	Reason *string `json:"reason,omitempty"`
}

// GetStudentLessonsRequest запрос на получение уроков студента
type GetStudentLessonsRequest struct {
	StudentID int64      `json:"studentId"`
	Status    *string    `json:"status,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStudentLessonsRequest) ToDomainFilter() (domain.StudentLessonsFilter, error) {
	filter := domain.StudentLessonsFilter{
		StudentID: r.StudentID,
		From:      r.From,
		To:        r.To,
	}

	if r.Status != nil {
		status, err := ToDomainLessonStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LessonResponse ответ с данными урока
type LessonResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	StudentID       int64  `json:"studentId"`
	InstructorID    int64  `json:"instructorId"`
	StartTime       string `json:"startTime"` // ISO 8601 с зоной школы
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	LessonType *string `json:"lessonType,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonListResponse ответ со списком уроков
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
}

// Методы конвертации

// FromDomainLesson конвертирует domain модель в DTO.
// Моменты времени форматируются в гражданской зоне школы.
func FromDomainLesson(l *domain.Lesson, loc *time.Location) *LessonResponse {
	if l == nil {
		return nil
	}

	resp := &LessonResponse{
		ID:                 l.ID,
		Reference:          l.Reference,
		StudentID:          l.StudentID,
		InstructorID:       l.InstructorID,
		StartTime:          l.StartTime.In(loc).Format(time.RFC3339),
		EndTime:            l.EndTime.In(loc).Format(time.RFC3339),
		DurationMinutes:    l.DurationMinutes,
		Status:             string(l.Status),
		LessonType:         l.LessonType,
		Notes:              l.Notes,
		CancellationReason: l.CancellationReason,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}

	if l.CancelledAt != nil {
		cancelledStr := l.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainLessonList конвертирует список domain моделей в DTO
func FromDomainLessonList(lessons []*domain.Lesson, loc *time.Location) *LessonListResponse {
	resp := &LessonListResponse{
		Lessons: make([]LessonResponse, 0, len(lessons)),
	}

	for _, l := range lessons {
		if lr := FromDomainLesson(l, loc); lr != nil {
			resp.Lessons = append(resp.Lessons, *lr)
		}
	}

	return resp
}

// ToDomainLessonStatus конвертирует строку в domain.LessonStatus с валидацией
func ToDomainLessonStatus(status string) (domain.LessonStatus, error) {
	s := domain.LessonStatus(status)

	validStatuses := []domain.LessonStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
