package update_constraints

import (
	"context"

	"github.com/sunstate-driving/scheduling-service/internal/service/constraints/models"
)

type ConstraintsService interface {
	Update(ctx context.Context, req *models.UpdateConstraintsRequest) (*models.ConstraintsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
