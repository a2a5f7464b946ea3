package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/internal/scheduling"
	"github.com/sunstate-driving/scheduling-service/pkg/civiltime"
)

// UseCase use case подбора свободных слотов инструктора на день
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

// Execute возвращает свободные интервалы инструктора на указанный день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: instructor=%d, date=%s, duration=%d",
		req.InstructorID, civiltime.FormatDate(req.Date, uc.loc), req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	c, schedule, err := uc.constraints.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to load constraints: %v", ErrInternal, err)
	}

	validator, err := scheduling.NewValidator(*c, uc.loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid constraints configuration: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// Прошедшие дни и дни за горизонтом бронирования не обслуживаются
	if civiltime.IsPastDay(req.Date, now, uc.loc) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", civiltime.FormatDate(req.Date, uc.loc))
		return nil, ErrDateInPast
	}
	if c.MaxAdvanceBookingDays > 0 {
		horizon := civiltime.StartOfDay(now, uc.loc).AddDate(0, 0, c.MaxAdvanceBookingDays)
		if civiltime.StartOfDay(req.Date, uc.loc).After(horizon) {
			uc.logger.Warn("GetAvailableSlots: date %s is beyond %d days",
				civiltime.FormatDate(req.Date, uc.loc), c.MaxAdvanceBookingDays)
			return nil, ErrDateTooFar
		}
	}

	window := schedule.ForDay(req.Date.In(uc.loc).Weekday())

	dayStart := civiltime.StartOfDay(req.Date, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	existing, err := uc.lessonRepo.GetByInstructorBetween(ctx, req.InstructorID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load instructor lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to load instructor lessons: %v", ErrInternal, err)
	}

	slots, err := validator.AvailableSlots(req.Date, window, req.DurationMinutes, existing)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: slot generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for instructor=%d on %s",
		len(slots), req.InstructorID, civiltime.FormatDate(req.Date, uc.loc))

	return uc.buildResponse(req, slots), nil
}

func validateRequest(req *Request) error {
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}

func (uc *UseCase) buildResponse(req *Request, slots []domain.TimeSlot) *Response {
	resp := &Response{
		InstructorID:    req.InstructorID,
		Date:            civiltime.FormatDate(req.Date, uc.loc),
		DurationMinutes: req.DurationMinutes,
		Slots:           make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			StartTime: civiltime.FormatTime(s.Start, uc.loc),
			EndTime:   civiltime.FormatTime(s.End, uc.loc),
		})
	}
	return resp
}
