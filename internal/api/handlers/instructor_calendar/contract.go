package instructor_calendar

import (
	"context"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

type LessonsService interface {
	GetInstructorLessons(ctx context.Context, instructorID int64, from, to time.Time) ([]*domain.Lesson, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
