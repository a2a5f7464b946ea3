package get_available_slots

import (
	"time"

	"github.com/sunstate-driving/scheduling-service/internal/domain"
	getAvailableSlots "github.com/sunstate-driving/scheduling-service/internal/usecase/get_available_slots"
)

// SlotResponse свободный интервал в ответе
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	InstructorID    int64          `json:"instructorId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса.
// Дата интерпретируется в зоне школы.
func ToUseCaseRequest(instructorID int64, dateStr string, durationMinutes int, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		InstructorID:    instructorID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		InstructorID:    resp.InstructorID,
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out
}
