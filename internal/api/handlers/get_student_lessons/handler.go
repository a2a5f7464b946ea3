package get_student_lessons

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	"github.com/sunstate-driving/scheduling-service/internal/api/middleware"
	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons/models"
)

const (
	msgInvalidStudentID = "invalid student ID"
	msgInvalidStatus    = "invalid status, expected pending, confirmed or cancelled"
	msgInvalidDate      = "invalid date format, YYYY-MM-DD expected"
	msgAccessDenied     = "access denied"
)

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

// Handle GET /api/v1/students/{studentId}/lessons
// Query params: status, from, to (все опциональны)
// Студент видит только собственную историю
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/lessons - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("GET /students/{id}/lessons - User ID missing from context")
		handlers.RespondInternalError(w)
		return
	}
	if userID != studentID {
		h.logger.Warn("GET /students/{id}/lessons - Access denied: student_id=%d, user_id=%d", studentID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetStudentLessonsRequest{StudentID: studentID}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, h.loc)
		if err != nil {
			h.logger.Warn("GET /students/{id}/lessons - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, h.loc)
		if err != nil {
			h.logger.Warn("GET /students/{id}/lessons - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Верхняя граница не включается: добавляем день, чтобы покрыть "to" целиком
		toEnd := to.AddDate(0, 0, 1)
		req.To = &toEnd
	}

	result, err := h.service.GetStudentLessons(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/lessons - Invalid status filter: student_id=%d", studentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{id}/lessons - Failed to get lessons: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/lessons - Lessons retrieved successfully: student_id=%d, count=%d",
		studentID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
