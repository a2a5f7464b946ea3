package validate_lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/internal/scheduling"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
)

// UseCase use case предварительной проверки бронирования.
// Отвечает на вопрос "пройдет ли такой урок", ничего не создавая.
// Результат носит информационный характер: к моменту реального
// бронирования расписание может измениться, create_lesson проверяет заново.
type UseCase struct {
	lessonRepo   LessonRepository
	constraints  ConstraintsProvider
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	constraints ConstraintsProvider,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:   lessonRepo,
		constraints:  constraints,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку запроса на бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateLesson: student=%d, instructor=%d, start=%s, duration=%d",
		req.StudentID, req.InstructorID, req.StartTime.Format(time.RFC3339), req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateLesson: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	c, _, err := uc.constraints.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to load constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to load constraints: %v", ErrInternal, err)
	}

	validator, err := scheduling.NewValidator(*c, uc.loc)
	if err != nil {
		uc.logger.Error("ValidateLesson: invalid constraints configuration: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	lessonReq := &domain.LessonRequest{
		StudentID:       req.StudentID,
		InstructorID:    req.InstructorID,
		StartTime:       req.StartTime,
		EndTime:         req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute),
		DurationMinutes: req.DurationMinutes,
		LessonType:      req.LessonType,
	}

	existing, err := uc.loadRelevantLessons(ctx, lessonReq)
	if err != nil {
		return nil, err
	}

	result := validator.ValidateBooking(lessonReq, existing, now)
	uc.logger.Info("ValidateLesson: student=%d valid=%t errors=%d warnings=%d",
		req.StudentID, result.IsValid, len(result.Errors), len(result.Warnings))

	return &Response{
		Valid:       result.IsValid,
		Errors:      result.Errors,
		Warnings:    result.Warnings,
		Suggestions: result.Suggestions,
	}, nil
}

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
	return nil
}

func (uc *UseCase) loadRelevantLessons(ctx context.Context, req *domain.LessonRequest) ([]*domain.Lesson, error) {
	weekStart := civiltime.StartOfWeek(req.StartTime, uc.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)
	dayStart := civiltime.StartOfDay(req.StartTime, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	studentLessons, err := uc.lessonRepo.GetByStudentBetween(ctx, req.StudentID, weekStart, weekEnd)
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to load student lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to load student lessons: %v", ErrInternal, err)
	}

	instructorLessons, err := uc.lessonRepo.GetByInstructorBetween(ctx, req.InstructorID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to load instructor lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to load instructor lessons: %v", ErrInternal, err)
	}

	seen := make(map[int64]bool, len(studentLessons))
	merged := make([]*domain.Lesson, 0, len(studentLessons)+len(instructorLessons))
	for _, l := range studentLessons {
		seen[l.ID] = true
		merged = append(merged, l)
	}
	for _, l := range instructorLessons {
		if !seen[l.ID] {
			merged = append(merged, l)
		}
	}
	return merged, nil
}
