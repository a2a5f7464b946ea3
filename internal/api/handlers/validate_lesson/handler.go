package validate_lesson

import (
	"errors"
	"net/http"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	validateLesson "github.com/sunstate-driving/scheduling-service/internal/usecase/validate_lesson"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid startTime, RFC 3339 timestamp expected"
)

type Handler struct {
	useCase ValidateLessonUseCase
	logger  Logger
}

func NewHandler(useCase ValidateLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons/validate
// Проверка без побочных эффектов: всегда 200, вердикт в теле ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /lessons/validate - Failed to parse startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateLesson.ErrInvalidInput):
			h.logger.Warn("POST /lessons/validate - Invalid input: student_id=%d, error=%v", req.StudentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /lessons/validate - Validation failed: student_id=%d, error=%v", req.StudentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lessons/validate - student_id=%d, valid=%t", req.StudentID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
