package constraints

import (
	"context"
	"errors"
	"fmt"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	constraintsRepo "github.com/sunstate-driving/scheduling-service/internal/infra/storage/constraints"
	"github.com/sunstate-driving/scheduling-service/internal/service/constraints/models"
)

// Service сервис настроек планирования
type Service struct {
	repo   ConstraintsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo ConstraintsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает текущие настройки школы.
// Пока администратор ничего не сохранял, действуют значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.ConstraintsResponse, error) {
	s.logger.Info("Get: fetching scheduling constraints")

	c, schedule, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConstraints(c, schedule), nil
}

// GetDomain возвращает текущие настройки в domain виде.
// Используется usecase-слоем для сборки валидатора.
func (s *Service) GetDomain(ctx context.Context) (*domain.SchedulingConstraints, *domain.WeeklySchedule, error) {
	return s.current(ctx)
}

// Update применяет частичное обновление настроек.
// Результат валидируется целиком перед сохранением: либо сохраняется
// полностью корректная запись, либо ничего не меняется.
func (s *Service) Update(ctx context.Context, req *models.UpdateConstraintsRequest) (*models.ConstraintsResponse, error) {
	s.logger.Info("Update: updating scheduling constraints")

	current, schedule, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	update, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("Update: invalid update payload: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	next := update.Apply(*current)
	if err := next.Validate(); err != nil {
		s.logger.Warn("Update: constraints validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConstraints, err)
	}

	nextSchedule, err := req.ToDomainSchedule(*schedule)
	if err != nil {
		s.logger.Warn("Update: invalid weekly schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateSchedule(nextSchedule); err != nil {
		s.logger.Warn("Update: weekly schedule validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConstraints, err)
	}

	if err := s.repo.SaveConstraints(ctx, &next); err != nil {
		s.logger.Error("Update: failed to save constraints: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	if err := s.repo.SaveWeeklySchedule(ctx, nextSchedule); err != nil {
		s.logger.Error("Update: failed to save weekly schedule: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated scheduling constraints")
	return models.FromDomainConstraints(&next, nextSchedule), nil
}

func (s *Service) current(ctx context.Context) (*domain.SchedulingConstraints, *domain.WeeklySchedule, error) {
	c, err := s.repo.GetConstraints(ctx)
	if errors.Is(err, constraintsRepo.ErrConstraintsNotFound) {
		defaults := domain.DefaultConstraints()
		c = &defaults
	} else if err != nil {
		s.logger.Error("current: failed to load constraints: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to load constraints: %v", ErrInternal, err)
	}

	schedule, err := s.repo.GetWeeklySchedule(ctx)
	if errors.Is(err, constraintsRepo.ErrConstraintsNotFound) {
		defaultSchedule := domain.DefaultWeeklySchedule(c.EarliestStartTime, c.LatestEndTime)
		schedule = &defaultSchedule
	} else if err != nil {
		s.logger.Error("current: failed to load weekly schedule: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to load weekly schedule: %v", ErrInternal, err)
	}

	return c, schedule, nil
}

// validateSchedule проверяет рабочие окна включенных дней
func validateSchedule(w *domain.WeeklySchedule) error {
	for dow, day := range w {
		if !day.Enabled {
			continue
		}
		if err := day.StartTime.Validate(); err != nil {
			return fmt.Errorf("day %d: startTime: %v", dow, err)
		}
		if err := day.EndTime.Validate(); err != nil {
			return fmt.Errorf("day %d: endTime: %v", dow, err)
		}
		if !day.StartTime.IsBefore(day.EndTime) {
			return fmt.Errorf("day %d: startTime %s must be before endTime %s", dow, day.StartTime, day.EndTime)
		}
	}
	return nil
}
