package cancel_lesson

import (
	"context"

	"github.com/sunstate-driving/scheduling-service/internal/service/lessons/models"
)

type LessonsService interface {
	Cancel(ctx context.Context, lessonID int64, req *models.CancelLessonRequest) (*models.LessonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
