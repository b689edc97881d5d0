package edit_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	reservationRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/reservation"
	scheduleRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/schedule"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/pushservice"
	userClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
)

// UseCase use case переноса брони
//
// Единственный писатель броней. Мутация выражена одним условным UPDATE:
// успех только при совпадении версии И отсутствии другой confirmed брони
// на целевом слоте. Оба условия атомарны относительно конкурентных писателей -
// никаких in-process блокировок, вызывающие живут в разных процессах.
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	userClient      UserServiceClient
	pushClient      PushServiceClient
	txManager       TransactionManager
	normalizer      *schedtime.Normalizer
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	userClient UserServiceClient,
	pushClient PushServiceClient,
	txManager TransactionManager,
	normalizer *schedtime.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		userClient:      userClient,
		pushClient:      pushClient,
		txManager:       txManager,
		normalizer:      normalizer,
		timeProvider:    normalizer,
		logger:          logger,
	}
}

// Execute выполняет перенос брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditReservation: id=%d, caller=%d, version=%d",
		req.ReservationID, req.CallerID, req.ExpectedVersion)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем бронь
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("EditReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("EditReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrStoreUnavailable, err)
	}

	// 3. Отменённые и завершённые брони - терминальные для редактирования
	if !reservation.CanBeEdited() {
		uc.logger.Warn("EditReservation: reservation id=%d is %s, not editable",
			reservation.ID, reservation.Status)
		return nil, fmt.Errorf("%w: reservation is %s", ErrInvalidState, reservation.Status)
	}

	// 4. Проверяем права вызывающего
	if err := uc.authorize(ctx, req.CallerID, reservation); err != nil {
		return nil, err
	}

	// 5. Нормализуем целевой момент
	dayStart, err := uc.normalizer.DayStart(req.NewDate)
	if err != nil {
		uc.logger.Warn("EditReservation: invalid target date: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	target, err := uc.normalizer.At(dayStart, req.NewStartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	// 6. Слот в прошлом запрещён, кроме собственного текущего слота брони:
	// просроченную запись разрешено переносить вперёд, но "перенос" на её же
	// прошедшее время пропускаем как no-op по времени
	now := uc.timeProvider.Now()
	if target.Before(now) {
		currentKey, keyErr := uc.normalizer.SlotKey(reservation.TimeTimestamp)
		if keyErr != nil || !target.Equal(currentKey) {
			uc.logger.Warn("EditReservation: target %s is in the past", target)
			return nil, ErrTargetInPast
		}
	}

	// 7. Собираем патч; смена услуги тянет денормализованные имя и цену
	patch := domain.ReservationPatch{
		DateTimestamp: dayStart,
		TimeTimestamp: target,
	}
	if req.NewServiceID != nil && *req.NewServiceID != reservation.ServiceID {
		service, err := uc.scheduleRepo.GetService(ctx, *req.NewServiceID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
				uc.logger.Warn("EditReservation: service id=%d not found", *req.NewServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("EditReservation: failed to get service id=%d: %v", *req.NewServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
		}
		patch.ServiceID = &service.ID
		patch.ServiceName = &service.Name
		patch.ServicePrice = &service.Price
	}

	// 8. Условная запись в сериализуемой транзакции: версия и занятость слота
	// проверяются атомарно. Конфликт сериализации (40001) повторяется менеджером,
	// повторный прогон упирается в ноль строк и диагностируется как занятый слот
	var updated *domain.Reservation
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = uc.reservationRepo.EditGuarded(ctx, req.ReservationID, req.ExpectedVersion, patch)
		return txErr
	})
	if err != nil {
		return nil, uc.mapEditError(err, req)
	}

	uc.logger.Info("EditReservation: reservation id=%d moved to %s, version %d -> %d",
		updated.ID, updated.TimeTimestamp, req.ExpectedVersion, updated.Version)

	// 9. Уведомляем вторую сторону. Fire-and-forget: сбой уведомления
	// никогда не всплывает как сбой мутации
	uc.notifyCounterparty(ctx, req.CallerID, updated)

	return &Response{Reservation: updated}, nil
}

// authorize проверяет, что вызывающий - владелец брони, её барбер или админ
func (uc *UseCase) authorize(ctx context.Context, callerID int64, reservation *domain.Reservation) error {
	if callerID == reservation.CustomerID {
		return nil
	}

	caller, err := uc.userClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("EditReservation: caller id=%d not found", callerID)
			return ErrAccessDenied
		}
		uc.logger.Error("EditReservation: failed to get caller id=%d: %v", callerID, err)
		return fmt.Errorf("%w: failed to get caller: %v", ErrInternal, err)
	}

	if caller.IsAdmin() {
		return nil
	}
	if caller.IsBarber() && callerID == reservation.BarberID {
		return nil
	}

	uc.logger.Warn("EditReservation: caller id=%d has no access to reservation id=%d",
		callerID, reservation.ID)
	return ErrAccessDenied
}

// mapEditError переводит ошибки хранилища в ошибки usecase
//
// Конфликт версий и занятый слот разделены намеренно: первый требует
// перезагрузки всей брони, второй - только повторного выбора слота.
func (uc *UseCase) mapEditError(err error, req *Request) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrNotEditable):
		return ErrInvalidState
	case errors.Is(err, reservationRepo.ErrVersionMismatch):
		uc.logger.Warn("EditReservation: version conflict on id=%d, expected=%d",
			req.ReservationID, req.ExpectedVersion)
		return ErrConcurrencyConflict
	case errors.Is(err, reservationRepo.ErrSlotTaken):
		uc.logger.Warn("EditReservation: target slot taken for id=%d", req.ReservationID)
		return ErrSlotAlreadyTaken
	case errors.Is(err, reservationRepo.ErrExecQuery):
		uc.logger.Error("EditReservation: store failure on id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		uc.logger.Error("EditReservation: failed to edit reservation id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// notifyCounterparty отправляет push второй стороне брони
func (uc *UseCase) notifyCounterparty(ctx context.Context, initiatorID int64, reservation *domain.Reservation) {
	recipientID := reservation.BarberID
	if initiatorID != reservation.CustomerID {
		recipientID = reservation.CustomerID
	}

	newTime := reservation.TimeTimestamp
	n := &pushservice.Notification{
		Event:         pushservice.EventRescheduled,
		ReservationID: reservation.ID,
		RecipientID:   recipientID,
		InitiatorID:   initiatorID,
		BarberID:      reservation.BarberID,
		NewTime:       &newTime,
	}

	if err := uc.pushClient.Notify(ctx, n); err != nil {
		uc.logger.Warn("EditReservation: failed to notify user id=%d about reservation id=%d: %v",
			recipientID, reservation.ID, err)
	}
}
