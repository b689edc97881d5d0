package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers"
	resolveAvailability "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/resolve_availability"
)

const (
	msgInvalidBarberID      = "некорректный ID барбера"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidExcludeID     = "некорректный ID исключаемой брони"
	msgBarberNotFound       = "барбер не найден"
	msgInvalidRequestParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/available-slots
// Query params: date (required, YYYY-MM-DD), excludeReservationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем barberId из URL
	barberIDStr := vars["barberId"]
	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем excludeReservationId из query параметров (опционально)
	var excludeReservationID *int64
	if excludeStr := r.URL.Query().Get("excludeReservationId"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/available-slots - Invalid exclude reservation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeReservationID = &excludeID
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(barberID, dateStr, excludeReservationID, h.loc)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/available-slots - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, resolveAvailability.ErrInvalidInput),
			errors.Is(err, resolveAvailability.ErrInvalidTimestamp):
			h.logger.Warn("GET /barbers/{id}/available-slots - Invalid params: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestParams)

		default:
			h.logger.Error("GET /barbers/{id}/available-slots - Failed to resolve slots: barber_id=%d, date=%s, error=%v",
				barberID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.loc)

	h.logger.Info("GET /barbers/{id}/available-slots - Slots resolved successfully: barber_id=%d, date=%s, slots=%d, available=%d",
		barberID, dateStr, len(result.All), len(result.Available))
	handlers.RespondJSON(w, http.StatusOK, response)
}
