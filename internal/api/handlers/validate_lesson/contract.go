package validate_lesson

import (
	"context"

	validateLesson "github.com/sunstate-driving/scheduling-service/internal/usecase/validate_lesson"
)

type ValidateLessonUseCase interface {
	Execute(ctx context.Context, req *validateLesson.Request) (*validateLesson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
