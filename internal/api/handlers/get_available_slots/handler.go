package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
	getAvailableSlots "github.com/sunstate-driving/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidInstructorID = "invalid instructor ID"
	msgMissingDate         = "date query parameter is required"
	msgInvalidDate         = "invalid date format, YYYY-MM-DD expected"
	msgInvalidDuration     = "invalid duration, positive number of minutes expected"
	msgDateInPast          = "date is in the past"
	msgDateTooFar          = "date is beyond the advance booking window"
)

// Длительность по умолчанию, когда query параметр duration не указан
const defaultDurationMinutes = 60

type Handler struct {
	useCase GetAvailableSlotsUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /instructors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationMinutes := defaultDurationMinutes
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil || durationMinutes <= 0 {
			h.logger.Warn("GET /instructors/{id}/available-slots - Invalid duration: %s", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(instructorID, dateStr, durationMinutes, h.loc)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /instructors/{id}/available-slots - Date in past: instructor_id=%d, date=%s",
				instructorID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFar):
			h.logger.Warn("GET /instructors/{id}/available-slots - Date too far: instructor_id=%d, date=%s",
				instructorID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/available-slots - Invalid input: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /instructors/{id}/available-slots - Failed to get slots: instructor_id=%d, date=%s, error=%v",
				instructorID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/available-slots - Slots retrieved successfully: instructor_id=%d, date=%s, slots_count=%d",
		instructorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
