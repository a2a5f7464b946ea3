package constraints

import (
	"context"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// ConstraintsRepository интерфейс репозитория настроек планирования
type ConstraintsRepository interface {
	GetConstraints(ctx context.Context) (*domain.SchedulingConstraints, error)
	SaveConstraints(ctx context.Context, c *domain.SchedulingConstraints) error
	GetWeeklySchedule(ctx context.Context) (*domain.WeeklySchedule, error)
	SaveWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
