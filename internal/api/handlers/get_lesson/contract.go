package get_lesson

import (
	"context"

	"github.com/sunstate-driving/scheduling-service/internal/service/lessons/models"
)

type LessonsService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.LessonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
