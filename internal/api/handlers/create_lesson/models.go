package create_lesson

import (
	"time"

	createLesson "github.com/sunstate-driving/scheduling-service/internal/usecase/create_lesson"
)

// CreateLessonRequest HTTP request model
type CreateLessonRequest struct {
	StudentID       int64   `json:"studentId"`
	InstructorID    int64   `json:"instructorId"`
	StartTime       string  `json:"startTime"` // RFC 3339, например "2025-11-20T10:00:00+10:00"
	DurationMinutes int     `json:"durationMinutes"`
	LessonType      *string `json:"lessonType,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// LessonResponse HTTP response model созданного урока
type LessonResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	StudentID       int64   `json:"studentId"`
	InstructorID    int64   `json:"instructorId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	LessonType      *string `json:"lessonType,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// CreateLessonResponse HTTP response model результата бронирования
type CreateLessonResponse struct {
	Valid       bool            `json:"valid"`
	Errors      []string        `json:"errors"`
	Warnings    []string        `json:"warnings"`
	Suggestions []string        `json:"suggestions"`
	Lesson      *LessonResponse `json:"lesson,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateLessonRequest) ToUseCaseRequest() (*createLesson.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createLesson.Request{
		StudentID:       r.StudentID,
		InstructorID:    r.InstructorID,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		LessonType:      r.LessonType,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createLesson.Response) *CreateLessonResponse {
	out := &CreateLessonResponse{
		Valid:       resp.Valid,
		Errors:      resp.Errors,
		Warnings:    resp.Warnings,
		Suggestions: resp.Suggestions,
	}

	if resp.Lesson != nil {
		out.Lesson = &LessonResponse{
			ID:              resp.Lesson.ID,
			Reference:       resp.Lesson.Reference,
			StudentID:       resp.Lesson.StudentID,
			InstructorID:    resp.Lesson.InstructorID,
			StartTime:       resp.Lesson.StartTime.Format(time.RFC3339),
			EndTime:         resp.Lesson.EndTime.Format(time.RFC3339),
			DurationMinutes: resp.Lesson.DurationMinutes,
			Status:          resp.Lesson.Status,
			LessonType:      resp.Lesson.LessonType,
			Notes:           resp.Lesson.Notes,
			CreatedAt:       resp.Lesson.CreatedAt.Format(time.RFC3339),
		}
	}

	return out
}
