// Package scheduling движок проверки ограничений планирования уроков:
// валидация запроса на бронирование против существующих подтвержденных
// уроков и генерация свободных слотов на день.
//
// Все операции — чистые функции над переданными данными: пакет не ходит
// ни в какое хранилище, не имеет разделяемого состояния и безопасен для
// конкурентного использования. Снапшот уроков и согласованность между
// "проверить" и "записать" обеспечивает вызывающая сторона.
package scheduling

import (
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

// Validator проверяет запросы на бронирование против одного неизменяемого
// снимка ограничений. Конструируется на каждую проверку из актуальной
// конфигурации; обновление ограничений администратором не затрагивает
// уже идущие проверки.
type Validator struct {
	constraints domain.SchedulingConstraints
	loc         *time.Location
}

// NewValidator создает валидатор.
// Некорректная конфигурация — ошибка сразу (domain.ErrInvalidConstraints),
// а не отказ в бронировании: это ошибка администратора, не пользователя.
func NewValidator(c domain.SchedulingConstraints, loc *time.Location) (*Validator, error) {
	if loc == nil {
		return nil, ErrNilLocation
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Validator{constraints: c, loc: loc}, nil
}

// Constraints возвращает снимок ограничений валидатора
func (v *Validator) Constraints() domain.SchedulingConstraints {
	return v.constraints
}

// ValidateBooking проверяет запрос против существующих уроков.
//
// Все проверки выполняются безусловно (без раннего выхода), чтобы вызывающая
// сторона увидела сразу все нарушения. В лимитах участвуют только
// подтвержденные уроки; pending и cancelled игнорируются, так что вызывающая
// сторона может передавать нефильтрованный срез.
func (v *Validator) ValidateBooking(req *domain.LessonRequest, existing []*domain.Lesson, now time.Time) *domain.ValidationResult {
	result := domain.NewValidationResult()

	v.checkRequestShape(req, result)
	v.checkTimeWindow(req, result)
	v.checkDuration(req, result)
	v.checkAdvanceNotice(req, now, result)
	v.checkWeeklyLimits(req, existing, result)
	v.checkDailyLimits(req, existing, result)
	v.checkBuffers(req, existing, result)
	v.checkConsecutiveLessons(req, existing, result)

	return result
}

// studentConfirmed отбирает подтвержденные уроки студента из запроса
func studentConfirmed(req *domain.LessonRequest, existing []*domain.Lesson) []*domain.Lesson {
	out := make([]*domain.Lesson, 0, len(existing))
	for _, l := range existing {
		if l.CountsTowardLimits() && l.StudentID == req.StudentID {
			out = append(out, l)
		}
	}
	return out
}

// neighborConfirmed отбирает подтвержденные уроки, соседство с которыми
// ограничено буфером: уроки самого студента плюс уроки инструктора
// с любыми студентами
func neighborConfirmed(req *domain.LessonRequest, existing []*domain.Lesson) []*domain.Lesson {
	out := make([]*domain.Lesson, 0, len(existing))
	for _, l := range existing {
		if !l.CountsTowardLimits() {
			continue
		}
		if l.StudentID != req.StudentID && l.InstructorID != req.InstructorID {
			continue
		}
		out = append(out, l)
	}
	return out
}

// instructorConfirmed отбирает подтвержденные уроки инструктора из запроса
func instructorConfirmed(req *domain.LessonRequest, existing []*domain.Lesson) []*domain.Lesson {
	out := make([]*domain.Lesson, 0, len(existing))
	for _, l := range existing {
		if l.CountsTowardLimits() && l.InstructorID == req.InstructorID {
			out = append(out, l)
		}
	}
	return out
}

func lessonMinutes(l *domain.Lesson) int {
	return int(l.EndTime.Sub(l.StartTime) / time.Minute)
}
