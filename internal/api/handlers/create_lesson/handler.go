package create_lesson

import (
	"errors"
	"net/http"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	createLesson "github.com/sunstate-driving/scheduling-service/internal/usecase/create_lesson"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid startTime, RFC 3339 timestamp expected"
)

type Handler struct {
	useCase CreateLessonUseCase
	logger  Logger
}

func NewHandler(useCase CreateLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /lessons - Failed to parse startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createLesson.ErrInvalidInput):
			h.logger.Warn("POST /lessons - Invalid input: student_id=%d, instructor_id=%d, error=%v",
				req.StudentID, req.InstructorID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createLesson.ErrInvalidConfiguration):
			h.logger.Error("POST /lessons - Invalid scheduling configuration: %v", err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("POST /lessons - Failed to create lesson: student_id=%d, instructor_id=%d, error=%v",
				req.StudentID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Отказ по лимитам - не ошибка сервера: клиент получает 422
	// со списком причин
	if !result.Valid {
		h.logger.Info("POST /lessons - Booking rejected: student_id=%d, errors=%d",
			req.StudentID, len(result.Errors))
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, response)
		return
	}

	h.logger.Info("POST /lessons - Lesson created successfully: lesson_id=%d, student_id=%d, instructor_id=%d",
		result.Lesson.ID, req.StudentID, req.InstructorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
