package cancel_lesson

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	"github.com/sunstate-driving/scheduling-service/internal/api/middleware"
	"github.com/sunstate-driving/scheduling-service/internal/domain"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons"
	"github.com/sunstate-driving/scheduling-service/internal/service/lessons/models"
)

const (
	msgInvalidLessonID    = "invalid lesson ID"
	msgInvalidRequestBody = "invalid request body"
	msgReasonTooLong      = "cancellation reason is too long"
	msgLessonNotFound     = "lesson not found"
	msgAccessDenied       = "access denied"
	msgCannotCancel       = "lesson is already cancelled"
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

// Handle PATCH /api/v1/lessons/{lessonId}/cancel
// Тело запроса опционально: отмена без причины допустима
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lessonID, err := strconv.ParseInt(vars["lessonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("PATCH /lessons/{id}/cancel - User ID missing from context")
		handlers.RespondInternalError(w)
		return
	}

	var req CancelLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Reason too long: lesson_id=%d", lessonID)
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	lesson, err := h.service.Cancel(r.Context(), lessonID, &models.CancelLessonRequest{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, lessons.ErrCannotCancel):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Cannot cancel: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /lessons/{id}/cancel - Failed to cancel lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /lessons/{id}/cancel - Lesson cancelled successfully: lesson_id=%d, user_id=%d", lessonID, userID)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
