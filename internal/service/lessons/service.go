package lessons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	lessonRepo "github.com/sunstate-driving/scheduling-service/internal/infra/storage/lesson"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons/models"
)

// Service сервис для работы с уроками
type Service struct {
	lessonRepo LessonRepository
	loc        *time.Location
	logger     Logger
}

// NewService создает новый экземпляр сервиса уроков
func NewService(lessonRepo LessonRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		lessonRepo: lessonRepo,
		loc:        loc,
		logger:     logger,
	}
}

// GetByID получает урок по ID
// Проверяет права доступа - урок видят только его студент и его инструктор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.LessonResponse, error) {
	s.logger.Info("GetByID: fetching lesson id=%d for user=%d", id, userID)

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("GetByID: lesson id=%d not found", id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("GetByID: repository error for lesson id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if lesson.StudentID != userID && lesson.InstructorID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to lesson id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched lesson id=%d", id)
	return models.FromDomainLesson(lesson, s.loc), nil
}

// GetStudentLessons получает историю уроков студента
// Опционально фильтрует по статусу и периоду
func (s *Service) GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetStudentLessons: fetching lessons for student=%d, status=%v", req.StudentID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudentLessons: invalid status=%s for student=%d", *req.Status, req.StudentID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	lessons, err := s.lessonRepo.GetByStudent(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudentLessons: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentLessons: successfully fetched %d lessons for student=%d", len(lessons), req.StudentID)
	return models.FromDomainLessonList(lessons, s.loc), nil
}

// GetInstructorLessons получает подтвержденные уроки инструктора за период.
// Используется календарным фидом: отмененные и неподтвержденные уроки
// в календарь не попадают.
func (s *Service) GetInstructorLessons(ctx context.Context, instructorID int64, from, to time.Time) ([]*domain.Lesson, error) {
	s.logger.Info("GetInstructorLessons: fetching lessons for instructor=%d, period=%s to %s",
		instructorID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	lessons, err := s.lessonRepo.GetByInstructorBetween(ctx, instructorID, from, to)
	if err != nil {
		s.logger.Error("GetInstructorLessons: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetInstructorLessons - repository error: %v", ErrInternal, err)
	}

	confirmed := make([]*domain.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.IsConfirmed() {
			confirmed = append(confirmed, l)
		}
	}

	s.logger.Info("GetInstructorLessons: successfully fetched %d confirmed lessons for instructor=%d",
		len(confirmed), instructorID)
	return confirmed, nil
}

// Cancel отменяет урок
// Отменить урок может его студент или его инструктор
func (s *Service) Cancel(ctx context.Context, lessonID int64, req *models.CancelLessonRequest) (*models.LessonResponse, error) {
	s.logger.Info("Cancel: cancelling lesson id=%d by user=%d", lessonID, req.UserID)

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("Cancel: lesson id=%d not found", lessonID)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("Cancel: repository error for lesson id=%d: %v", lessonID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if lesson.StudentID != req.UserID && lesson.InstructorID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to lesson id=%d", req.UserID, lessonID)
		return nil, ErrAccessDenied
	}

	if !lesson.CanBeCancelled() {
		s.logger.Warn("Cancel: lesson id=%d cannot be cancelled, status=%s", lessonID, lesson.Status)
		return nil, ErrCannotCancel
	}

	cancelled, err := s.lessonRepo.Cancel(ctx, lessonID, req.Reason)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("Cancel: lesson id=%d not found during cancellation", lessonID)
			return nil, ErrLessonNotFound
		}
		if errors.Is(err, lessonRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: lesson id=%d already cancelled", lessonID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for lesson id=%d: %v", lessonID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled lesson id=%d", lessonID)
	return models.FromDomainLesson(cancelled, s.loc), nil
}
