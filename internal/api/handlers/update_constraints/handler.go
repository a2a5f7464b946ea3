package update_constraints

import (
	"errors"
	"net/http"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	"github.com/sunstate-driving/scheduling-service/internal/service/constraints"
	"github.com/sunstate-driving/scheduling-service/internal/service/constraints/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service ConstraintsService
	logger  Logger
}

func NewHandler(service ConstraintsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/scheduling/constraints
// Частичное обновление: отсутствующие поля сохраняют текущие значения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConstraintsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /scheduling/constraints - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrInvalidInput):
			h.logger.Warn("PUT /scheduling/constraints - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, constraints.ErrInvalidConstraints):
			// Конфигурация структурно корректна, но нарушает инварианты
			h.logger.Warn("PUT /scheduling/constraints - Constraints rejected: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		default:
			h.logger.Error("PUT /scheduling/constraints - Failed to update constraints: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /scheduling/constraints - Constraints updated successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
