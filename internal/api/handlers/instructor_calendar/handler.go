package instructor_calendar

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gorilla/mux"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	"github.com/sunstate-driving/scheduling-service/internal/domain"
)

const (
	msgInvalidInstructorID = "invalid instructor ID"
	msgInvalidDate         = "invalid date format, YYYY-MM-DD expected"
)

// Окно фида по умолчанию: от начала текущей недели на 8 недель вперед
const defaultFeedWeeks = 8

const calendarProductID = "-//Sunstate Driving//Scheduling Service//EN"

type Handler struct {
	service LessonsService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service LessonsService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/calendar.ics
// Query params: from, to (опциональны, YYYY-MM-DD)
// Отдает подтвержденные уроки инструктора как iCalendar фид
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/calendar.ics - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	from, to, err := h.feedWindow(r)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/calendar.ics - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	lessons, err := h.service.GetInstructorLessons(r.Context(), instructorID, from, to)
	if err != nil {
		h.logger.Error("GET /instructors/{id}/calendar.ics - Failed to get lessons: instructor_id=%d, error=%v",
			instructorID, err)
		handlers.RespondInternalError(w)
		return
	}

	cal := h.buildCalendar(instructorID, lessons)

	h.logger.Info("GET /instructors/{id}/calendar.ics - Feed generated: instructor_id=%d, events=%d",
		instructorID, len(lessons))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="instructor-%d.ics"`, instructorID))
	w.WriteHeader(http.StatusOK)
	_ = cal.SerializeTo(w)
}

func (h *Handler) feedWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 0, defaultFeedWeeks*7)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, fromStr, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, toStr, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Верхняя граница не включается: добавляем день, чтобы покрыть "to" целиком
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, nil
}

func (h *Handler) buildCalendar(instructorID int64, lessons []*domain.Lesson) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName(fmt.Sprintf("Driving lessons - instructor %d", instructorID))

	for _, l := range lessons {
		event := cal.AddEvent(fmt.Sprintf("%s@sunstate-driving", l.Reference))
		event.SetDtStampTime(l.UpdatedAt)
		event.SetStartAt(l.StartTime)
		event.SetEndAt(l.EndTime)
		event.SetSummary(lessonSummary(l))
		event.SetDescription(fmt.Sprintf("Student #%d, %d minutes", l.StudentID, l.DurationMinutes))
	}

	return cal
}

func lessonSummary(l *domain.Lesson) string {
	if l.LessonType != nil {
		return fmt.Sprintf("Driving lesson (%s)", *l.LessonType)
	}
	return "Driving lesson"
}
