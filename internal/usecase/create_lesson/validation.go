package create_lesson

import (
	"fmt"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// validateRequest проверяет структурную корректность запроса.
// Содержательные проверки (лимиты, буферы, рабочие часы) делает валидатор.
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorId must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
