package create_lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/internal/scheduling"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
)

// UseCase use case бронирования урока
type UseCase struct {
	lessonRepo   LessonRepository
	constraints  ConstraintsProvider
	txManager    TransactionManager
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	constraints ConstraintsProvider,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:   lessonRepo,
		constraints:  constraints,
		txManager:    txManager,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование урока.
// Проверка лимитов и запись урока идут в одной сериализуемой транзакции:
// два одновременных запроса не могут оба пройти проверку по одному и тому же
// снимку расписания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLesson: student=%d, instructor=%d, start=%s, duration=%d",
		req.StudentID, req.InstructorID, req.StartTime.Format(time.RFC3339), req.DurationMinutes)

	// 1. Структурная валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateLesson: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Загружаем настройки и собираем валидатор.
	// Некорректная конфигурация - отказ с 500, а не отказ в бронировании.
	c, _, err := uc.constraints.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("CreateLesson: failed to load constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to load constraints: %v", ErrInternal, err)
	}

	validator, err := scheduling.NewValidator(*c, uc.loc)
	if err != nil {
		uc.logger.Error("CreateLesson: invalid constraints configuration: %v", err)
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

	var response *Response
	var created *domain.Lesson

	// 3. Проверяем лимиты и создаем урок в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.loadRelevantLessons(txCtx, lessonReq)
		if err != nil {
			return err
		}

		result := validator.ValidateBooking(lessonReq, existing, now)
		response = newResponse(result)
		if !result.IsValid {
			uc.logger.Warn("CreateLesson: rejected for student=%d: %v", req.StudentID, result.Errors)
			return errLessonRejected
		}

		lesson := &domain.Lesson{
			Reference:       uuid.NewString(),
			StudentID:       req.StudentID,
			InstructorID:    req.InstructorID,
			StartTime:       lessonReq.StartTime,
			EndTime:         lessonReq.EndTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusConfirmed,
			LessonType:      req.LessonType,
			Notes:           req.Notes,
		}

		created, err = uc.lessonRepo.Create(txCtx, lesson)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to create lesson: %v", err)
			return fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
		}
		return nil
	})

	if errors.Is(err, errLessonRejected) {
		return response, nil
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateLesson: successfully created lesson id=%d reference=%s", created.ID, created.Reference)

	response.Lesson = &CreatedLesson{
		ID:              created.ID,
		Reference:       created.Reference,
		StudentID:       created.StudentID,
		InstructorID:    created.InstructorID,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		LessonType:      created.LessonType,
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
	}
	return response, nil
}

// loadRelevantLessons собирает снимок расписания, достаточный для всех
// проверок: уроки студента за неделю запроса и уроки инструктора за день.
func (uc *UseCase) loadRelevantLessons(ctx context.Context, req *domain.LessonRequest) ([]*domain.Lesson, error) {
	weekStart := civiltime.StartOfWeek(req.StartTime, uc.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)
	dayStart := civiltime.StartOfDay(req.StartTime, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	studentLessons, err := uc.lessonRepo.GetByStudentBetween(ctx, req.StudentID, weekStart, weekEnd)
	if err != nil {
		uc.logger.Error("CreateLesson: failed to load student lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to load student lessons: %v", ErrInternal, err)
	}

	instructorLessons, err := uc.lessonRepo.GetByInstructorBetween(ctx, req.InstructorID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("CreateLesson: failed to load instructor lessons: %v", err)
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
