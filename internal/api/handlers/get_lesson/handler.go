package get_lesson

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	"github.com/sunstate-driving/scheduling-service/internal/api/middleware"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons"
)

const (
	msgInvalidLessonID = "invalid lesson ID"
	msgLessonNotFound  = "lesson not found"
	msgAccessDenied    = "access denied"
)

type Handler struct {
	service LessonsService
	logger  Logger
}

func NewHandler(service LessonsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lessons/{lessonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lessonID, err := strconv.ParseInt(vars["lessonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /lessons/{id} - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("GET /lessons/{id} - User ID missing from context")
		handlers.RespondInternalError(w)
		return
	}

	lesson, err := h.service.GetByID(r.Context(), lessonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("GET /lessons/{id} - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("GET /lessons/{id} - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /lessons/{id} - Failed to get lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lessons/{id} - Lesson retrieved successfully: lesson_id=%d, user_id=%d", lessonID, userID)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
