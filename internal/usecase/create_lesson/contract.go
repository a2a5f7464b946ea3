package create_lesson

import (
	"context"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// LessonRepository интерфейс репозитория уроков
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*domain.Lesson, error)
	GetByInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) ([]*domain.Lesson, error)
}

// ConstraintsProvider источник текущих настроек планирования
type ConstraintsProvider interface {
	GetDomain(ctx context.Context) (*domain.SchedulingConstraints, *domain.WeeklySchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
