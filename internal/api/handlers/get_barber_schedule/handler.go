package get_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers"
	scheduleService "github.com/DanieLevy/RamelBarbershop-sub005/internal/service/schedule"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgBarberNotFound  = "барбер не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем barberId из URL
	vars := mux.Vars(r)
	barberIDStr := vars["barberId"]

	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/schedule - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	// Получаем расписание барбера
	schedule, err := h.service.GetBarberSchedule(r.Context(), barberID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/schedule - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)

		default:
			h.logger.Error("GET /barbers/{id}/schedule - Failed to get schedule: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/schedule - Schedule retrieved successfully: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
