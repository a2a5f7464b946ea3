package lessons

import (
	"context"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// LessonRepository интерфейс репозитория уроков
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	GetByStudent(ctx context.Context, filter domain.StudentLessonsFilter) ([]*domain.Lesson, error)
	GetByInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) ([]*domain.Lesson, error)
	Cancel(ctx context.Context, id int64, reason *string) (*domain.Lesson, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
