package get_constraints

import (
	"net/http"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
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

// Handle GET /api/v1/scheduling/constraints
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /scheduling/constraints - Failed to get constraints: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /scheduling/constraints - Constraints retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
