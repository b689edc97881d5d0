package get_barber_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/middleware"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service ReservationService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/reservations
// Query params: date (required, YYYY-MM-DD), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем barberId из URL
	barberIDStr := vars["barberId"]
	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/reservations - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/reservations - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	serviceReq, err := ToServiceRequest(barberID, userID, dateStr, includeInactive, h.loc)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/reservations - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем брони барбера за день
	result, err := h.service.GetBarberReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/reservations - Access denied: barber_id=%d, user_id=%d",
				barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/reservations - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /barbers/{id}/reservations - Failed to get reservations: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/reservations - Reservations retrieved successfully: barber_id=%d, user_id=%d, count=%d",
		barberID, userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
