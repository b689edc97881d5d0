package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	reservationRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/reservation"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/pushservice"
	userClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations/models"
)

// Service сервис для чтения и отмены броней
//
// Перенос брони живёт в отдельном use case с optimistic concurrency,
// здесь только чтение и переход confirmed -> cancelled.
type Service struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	pushClient      PushServiceClient
	normalizer      *schedtime.Normalizer
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	pushClient PushServiceClient,
	normalizer *schedtime.Normalizer,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		pushClient:      pushClient,
		normalizer:      normalizer,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Проверяет права доступа - бронь видят её клиент, её барбер и админ
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation, s.normalizer.Location()), nil
}

// GetBarberReservations получает брони барбера за календарный день
// Доступно самому барберу и админу
func (s *Service) GetBarberReservations(ctx context.Context, req *models.GetBarberReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetBarberReservations: fetching reservations for barber=%d, user=%d, date=%s",
		req.BarberID, req.UserID, req.Date.Format(domain.DateFormat))

	if err := s.checkBarberAccess(ctx, req.BarberID, req.UserID); err != nil {
		return nil, err
	}

	dayStart, err := s.normalizer.DayStart(req.Date)
	if err != nil {
		s.logger.Warn("GetBarberReservations: invalid date for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}
	dayEnd, err := s.normalizer.DayEnd(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.GetByBarberForDay(ctx, req.BarberID, dayStart, dayEnd, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetBarberReservations: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberReservations: successfully fetched %d reservations for barber=%d",
		len(reservations), req.BarberID)
	return models.FromDomainReservationList(reservations, s.normalizer.Location()), nil
}

// Cancel отменяет бронь
// Клиент может отменить свою бронь, барбер - бронь в своём расписании,
// админ - любую. Вторая сторона уведомляется fire-and-forget
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.checkUserAccess(ctx, reservation, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return err
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)

	s.notifyCancelled(ctx, req.UserID, reservation)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к брони
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.CustomerID == userID {
		return nil
	}

	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("checkUserAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkUserAccess - failed to get user: %v", ErrInternal, err)
	}

	if user.IsAdmin() {
		return nil
	}
	if user.IsBarber() && reservation.BarberID == userID {
		return nil
	}

	return ErrAccessDenied
}

// checkBarberAccess проверяет, что пользователь - этот барбер или админ
func (s *Service) checkBarberAccess(ctx context.Context, barberID int64, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkBarberAccess: user id=%d not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkBarberAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkBarberAccess - failed to get user: %v", ErrInternal, err)
	}

	if user.IsAdmin() {
		return nil
	}
	if user.IsBarber() && userID == barberID {
		return nil
	}

	s.logger.Warn("checkBarberAccess: user=%d has no access to barber=%d schedule", userID, barberID)
	return ErrAccessDenied
}

// notifyCancelled уведомляет вторую сторону об отмене
// Сбой уведомления не влияет на результат отмены
func (s *Service) notifyCancelled(ctx context.Context, initiatorID int64, reservation *domain.Reservation) {
	recipientID := reservation.BarberID
	if initiatorID != reservation.CustomerID {
		recipientID = reservation.CustomerID
	}

	n := &pushservice.Notification{
		Event:         pushservice.EventCancelled,
		ReservationID: reservation.ID,
		RecipientID:   recipientID,
		InitiatorID:   initiatorID,
		BarberID:      reservation.BarberID,
	}

	if err := s.pushClient.Notify(ctx, n); err != nil {
		s.logger.Warn("notifyCancelled: failed to notify user id=%d about reservation id=%d: %v",
			recipientID, reservation.ID, err)
	}
}
