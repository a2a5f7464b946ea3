package validate_lesson

import (
	"time"

	validateLesson "github.com/sunstate-driving/scheduling-service/internal/usecase/validate_lesson"
)

// ValidateLessonRequest HTTP request model
type ValidateLessonRequest struct {
	StudentID       int64   `json:"studentId"`
	InstructorID    int64   `json:"instructorId"`
	StartTime       string  `json:"startTime"` // RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
	LessonType      *string `json:"lessonType,omitempty"`
}

// ValidateLessonResponse HTTP response model
type ValidateLessonResponse struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateLessonRequest) ToUseCaseRequest() (*validateLesson.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &validateLesson.Request{
		StudentID:       r.StudentID,
		InstructorID:    r.InstructorID,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		LessonType:      r.LessonType,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateLesson.Response) *ValidateLessonResponse {
	return &ValidateLessonResponse{
		Valid:       resp.Valid,
		Errors:      resp.Errors,
		Warnings:    resp.Warnings,
		Suggestions: resp.Suggestions,
	}
}
