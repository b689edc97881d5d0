package edit_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/middleware"
	editReservation "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/edit_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotEditable          = "бронь нельзя редактировать в текущем статусе"
	msgVersionConflict      = "бронь была изменена, перезагрузите её и повторите"
	msgSlotTaken            = "выбранный слот уже занят, выберите другой"
	msgTargetInPast         = "нельзя перенести бронь в прошлое"
	msgServiceNotFound      = "услуга не найдена"
	msgStoreUnavailable     = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase EditReservationUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase EditReservationUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req EditReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, callerID, h.loc)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editReservation.ErrInvalidState):
			h.logger.Warn("PATCH /reservations/{id} - Not editable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotEditable)

		case errors.Is(err, editReservation.ErrConcurrencyConflict):
			h.logger.Warn("PATCH /reservations/{id} - Version conflict: reservation_id=%d, expected_version=%d",
				reservationID, req.ExpectedVersion)
			handlers.RespondConflict(w, msgVersionConflict, handlers.CodeConcurrencyConflict)

		case errors.Is(err, editReservation.ErrSlotAlreadyTaken):
			h.logger.Warn("PATCH /reservations/{id} - Slot taken: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgSlotTaken, handlers.CodeSlotAlreadyTaken)

		case errors.Is(err, editReservation.ErrTargetInPast):
			h.logger.Warn("PATCH /reservations/{id} - Target in past: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTargetInPast)

		case errors.Is(err, editReservation.ErrServiceNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Service not found: reservation_id=%d, service_id=%v",
				reservationID, req.NewServiceID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, editReservation.ErrInvalidInput),
			errors.Is(err, editReservation.ErrInvalidTimestamp):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, editReservation.ErrStoreUnavailable):
			h.logger.Error("PATCH /reservations/{id} - Store unavailable: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to edit reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.loc)

	h.logger.Info("PATCH /reservations/{id} - Reservation rescheduled successfully: reservation_id=%d, user_id=%d, version=%d",
		reservationID, callerID, response.Version)
	handlers.RespondJSON(w, http.StatusOK, response)
}
