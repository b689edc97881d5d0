package get_available_slots

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	resolveAvailability "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/resolve_availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BarberID     int64      `json:"barberId"`
	Date         string     `json:"date"`
	ClosedReason *string    `json:"closedReason,omitempty"`
	Slots        []SlotView `json:"slots"`
	Available    []SlotView `json:"available"`
}

// SlotView модель временного слота
type SlotView struct {
	StartTime string `json:"startTime"` // "10:30" в таймзоне барбершопа
	Timestamp int64  `json:"timestamp"` // Unix время начала слота
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Времена форматируются в таймзоне loc (таймзона барбершопа)
func FromUseCaseResponse(resp *resolveAvailability.Response, loc *time.Location) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		BarberID:     resp.BarberID,
		Date:         resp.Date.In(loc).Format(domain.DateFormat),
		ClosedReason: resp.ClosedReason,
		Slots:        toSlotViews(resp.All, loc),
		Available:    toSlotViews(resp.Available, loc),
	}
}

func toSlotViews(slots []domain.Slot, loc *time.Location) []SlotView {
	views := make([]SlotView, len(slots))
	for i, slot := range slots {
		views[i] = SlotView{
			StartTime: slot.Timestamp.In(loc).Format(domain.TimeFormat),
			Timestamp: slot.Timestamp.Unix(),
			Status:    string(slot.Status),
		}
	}
	return views
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// Дата интерпретируется в таймзоне барбершопа, иначе для зон западнее UTC
// полночь UTC выпадает на предыдущий календарный день
func ToUseCaseRequest(barberID int64, dateStr string, excludeReservationID *int64, loc *time.Location) (*resolveAvailability.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &resolveAvailability.Request{
		BarberID:             barberID,
		Date:                 date,
		ExcludeReservationID: excludeReservationID,
	}, nil
}
